package store

import (
	"strings"
	"testing"

	"github.com/sportiq/sportiq/internal/intent"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestResolveTeam(t *testing.T) {
	s := openStore(t)

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"canonical name", "score berlin united", "berlin united", true},
		{"alias", "who scored for munich", "munich city", true},
		{"short alias", "next match hfc", "hamburg fc", true},
		{"mixed case", "Score Berlin United", "berlin united", true},
		{"no team", "where was the match", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.ResolveTeam(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ResolveTeam(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLatestResultSkipsUnplayedMatches(t *testing.T) {
	s := openStore(t)

	// Berlin United's latest fixture on 2025-11-12 has no goals yet, so
	// the latest result must be the played 2025-11-08 match.
	m, ok, err := s.LatestResult("berlin united")
	if err != nil {
		t.Fatalf("LatestResult: %v", err)
	}
	if !ok {
		t.Fatal("LatestResult found no match")
	}
	if m.Date != "2025-11-08" || m.Home != "Berlin United" || m.Away != "Munich City" {
		t.Errorf("got %s %s vs %s, want 2025-11-08 Berlin United vs Munich City", m.Date, m.Home, m.Away)
	}
	if m.HomeGoals.Int64 != 2 || m.AwayGoals.Int64 != 1 {
		t.Errorf("got %d-%d, want 2-1", m.HomeGoals.Int64, m.AwayGoals.Int64)
	}
}

func TestUpcomingMatch(t *testing.T) {
	s := openStore(t)

	m, ok, err := s.UpcomingMatch("hamburg fc")
	if err != nil {
		t.Fatalf("UpcomingMatch: %v", err)
	}
	if !ok {
		t.Fatal("UpcomingMatch found no match")
	}
	if m.Date != "2025-11-12" || m.Home != "Berlin United" || m.Away != "Hamburg FC" {
		t.Errorf("got %s %s vs %s, want the 2025-11-12 fixture", m.Date, m.Home, m.Away)
	}
	if m.HomeGoals.Valid || m.AwayGoals.Valid {
		t.Error("upcoming match should have no score yet")
	}

	if _, ok, err := s.UpcomingMatch("munich city"); err != nil || ok {
		t.Errorf("UpcomingMatch(munich city) = ok=%v err=%v, want none", ok, err)
	}
}

func TestGoalScorersExcludesOrphanLedgerRows(t *testing.T) {
	s := openStore(t)

	goals, err := s.GoalScorers("munich city")
	if err != nil {
		t.Fatalf("GoalScorers: %v", err)
	}
	// The match_id 9 row has no fixture and must not appear.
	want := []struct {
		scorer string
		minute int64
	}{
		{"L. Bauer", 9},
		{"M. Ortega", 55},
		{"H. Novak", 80},
	}
	if len(goals) != len(want) {
		t.Fatalf("got %d goals, want %d", len(goals), len(want))
	}
	for i, w := range want {
		if goals[i].Scorer != w.scorer || goals[i].Minute != w.minute {
			t.Errorf("goal[%d] = %s (%d'), want %s (%d')", i, goals[i].Scorer, goals[i].Minute, w.scorer, w.minute)
		}
	}
}

func TestTopScorerCountsWholeLedger(t *testing.T) {
	s := openStore(t)

	// Ortega has one goal in the fixtures and a second in the orphan
	// ledger row; the aggregate counts both.
	scorer, goals, ok, err := s.TopScorer("munich city")
	if err != nil {
		t.Fatalf("TopScorer: %v", err)
	}
	if !ok {
		t.Fatal("TopScorer found no scorer")
	}
	if scorer != "M. Ortega" || goals != 2 {
		t.Errorf("got %s with %d, want M. Ortega with 2", scorer, goals)
	}

	if _, _, ok, err := s.TopScorer("nonexistent"); err != nil || ok {
		t.Errorf("TopScorer(nonexistent) = ok=%v err=%v, want none", ok, err)
	}
}

func TestAnswer(t *testing.T) {
	s := openStore(t)

	tests := []struct {
		name   string
		intent string
		text   string
		want   string
	}{
		{
			name:   "latest score",
			intent: intent.LatestScore,
			text:   "score berlin united",
			want:   "Berlin United 2 - 1 Munich City on 2025-11-08",
		},
		{
			name:   "latest score needs a team",
			intent: intent.LatestScore,
			text:   "what was the score",
			want:   "Which team do you mean?",
		},
		{
			name:   "goal scorers",
			intent: intent.GoalScorers,
			text:   "who scored for munich city",
			want:   "L. Bauer (9')\nM. Ortega (55')\nH. Novak (80')",
		},
		{
			name:   "goal scorers needs a team",
			intent: intent.GoalScorers,
			text:   "who scored",
			want:   "For which team?",
		},
		{
			name:   "stadium without team clarifies",
			intent: intent.StadiumLocation,
			text:   "where was the match",
			want:   "Which team or match do you mean? Try: where was Berlin United's last match?",
		},
		{
			name:   "stadium with team",
			intent: intent.StadiumLocation,
			text:   "where did hamburg play",
			want:   "Olympia Park, Berlin for Berlin United vs Hamburg FC on 2025-11-12",
		},
		{
			name:   "today fixtures",
			intent: intent.TodayFixtures,
			text:   "who is playing today",
			want:   "Berlin United vs Munich City at Olympia Park, Berlin",
		},
		{
			name:   "sport type falls back to latest overall",
			intent: intent.SportTypeForMatch,
			text:   "what sport is this match",
			want:   "Berlin United vs Hamburg FC is football (2025-11-12)",
		},
		{
			name:   "upcoming",
			intent: intent.UpcomingForTeam,
			text:   "next match berlin united",
			want:   "Next: Berlin United vs Hamburg FC on 2025-11-12 19:30 at Olympia Park, Berlin",
		},
		{
			name:   "last match",
			intent: intent.LastMatchForTeam,
			text:   "last match hamburg fc",
			want:   "Last: Munich City 3-2 Hamburg FC at Allianz Field on 2025-11-05",
		},
		{
			name:   "top scorer",
			intent: intent.TopScorerTeam,
			text:   "top scorer for munich city",
			want:   "Top scorer: M. Ortega with 2",
		},
		{
			name:   "tournament info",
			intent: intent.TournamentInfo,
			text:   "tournament info",
			want:   "Bundes Mock Cup 2025/26\nCity League 2025",
		},
		{
			name:   "unknown intent",
			intent: "made_up_intent",
			text:   "whatever",
			want:   "Sorry, I could not map that to one of my 10 questions.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Answer(tt.intent, tt.text)
			if err != nil {
				t.Fatalf("Answer(%s, %q): %v", tt.intent, tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Answer(%s, %q) =\n%q\nwant\n%q", tt.intent, tt.text, got, tt.want)
			}
		})
	}
}

func TestAnswerHelp(t *testing.T) {
	s := openStore(t)

	got, err := s.Answer(intent.Help, "help")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(got, "today's fixtures") || !strings.Contains(got, "tournament info") {
		t.Errorf("help text missing expected entries: %q", got)
	}
}
