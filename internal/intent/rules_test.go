package intent

import (
	"testing"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "todays fixtures",
			query: "who is playing today",
			want:  TodayFixtures,
		},
		{
			name:  "score",
			query: "score berlin united",
			want:  LatestScore,
		},
		{
			name:  "result phrasing",
			query: "what was the result for munich city",
			want:  LatestScore,
		},
		{
			name:  "goal scorers",
			query: "who scored for munich city",
			want:  GoalScorers,
		},
		{
			name:  "stadium",
			query: "which stadium was it played in",
			want:  StadiumLocation,
		},
		{
			name:  "sport type",
			query: "what sport is this match",
			want:  SportTypeForMatch,
		},
		{
			name:  "upcoming",
			query: "next match berlin united",
			want:  UpcomingForTeam,
		},
		{
			name:  "last match",
			query: "last match hamburg fc",
			want:  LastMatchForTeam,
		},
		{
			name:  "tournament",
			query: "tournament info",
			want:  TournamentInfo,
		},
		{
			name:  "winner routes to tournament",
			query: "who won the league this year",
			want:  TournamentInfo,
		},
		{
			name:  "help",
			query: "what can you do",
			want:  Help,
		},
		{
			name:  "mixed case input",
			query: "Score Berlin United",
			want:  LatestScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Route(tt.query)
			if !ok {
				t.Fatalf("Route(%q) did not match, want %s", tt.query, tt.want)
			}
			if got != tt.want {
				t.Errorf("Route(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

// Rule order is a product contract: the specific rule must win over the
// general one it would otherwise be swallowed by.
func TestRoutePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
		not   string
	}{
		{
			name:  "top scorer beats generic who scored",
			query: "top scorer for Munich City",
			want:  TopScorerTeam,
			not:   GoalScorers,
		},
		{
			name:  "leading scorer beats generic who scored",
			query: "who is the leading scorer for berlin",
			want:  TopScorerTeam,
			not:   GoalScorers,
		},
		{
			name:  "todays matches beats generic score",
			query: "today's matches and the score so far",
			want:  TodayFixtures,
			not:   LatestScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Route(tt.query)
			if !ok {
				t.Fatalf("Route(%q) did not match", tt.query)
			}
			if got == tt.not {
				t.Fatalf("Route(%q) = %s, the general rule swallowed the specific one", tt.query, got)
			}
			if got != tt.want {
				t.Errorf("Route(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestRouteNoMatch(t *testing.T) {
	for _, query := range []string{
		"tell me about quantum physics",
		"recommend a pizza place",
		"",
	} {
		if got, ok := Route(query); ok {
			t.Errorf("Route(%q) = %s, want no match", query, got)
		}
	}
}

func TestSmallTalk(t *testing.T) {
	tests := []struct {
		query string
		match bool
	}{
		{"hi", true},
		{"hello there", true},
		{"how are you", true},
		{"thanks a lot", true},
		{"bye", true},
		{"which teams?", true},
		{"score berlin united", false},
		{"who scored for munich city", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			reply, ok := SmallTalk(tt.query)
			if ok != tt.match {
				t.Fatalf("SmallTalk(%q) matched=%v, want %v", tt.query, ok, tt.match)
			}
			if ok && reply == "" {
				t.Errorf("SmallTalk(%q) returned empty reply", tt.query)
			}
		})
	}
}
