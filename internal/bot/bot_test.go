package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sportiq/sportiq/internal/nlp"
)

// stubClassifier returns a fixed prediction, or an error, without any
// training. The rule-routed paths never touch it.
type stubClassifier struct {
	intent     string
	confidence float64
	err        error
}

func (s *stubClassifier) EnsureModel(samples []nlp.Sample) (nlp.TrainStats, error) {
	return nlp.TrainStats{CacheHit: true}, nil
}

func (s *stubClassifier) Classify(text string) (string, float64, error) {
	return s.intent, s.confidence, s.err
}

func newBot(t *testing.T, c Classifier) *Bot {
	t.Helper()
	b, err := New(Config{Classifier: c})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestRespondRuleRouted(t *testing.T) {
	// A classifier that would reject everything proves the rule router
	// answers without consulting it.
	b := newBot(t, &stubClassifier{err: errors.New("must not be called")})

	tests := []struct {
		name       string
		query      string
		wantIntent string
		wantAnswer string
	}{
		{
			name:       "score",
			query:      "score berlin united",
			wantIntent: "latest_score",
			wantAnswer: "Berlin United 2 - 1 Munich City on 2025-11-08",
		},
		{
			name:       "goal scorers",
			query:      "who scored for munich city",
			wantIntent: "goal_scorers",
			wantAnswer: "L. Bauer (9')\nM. Ortega (55')\nH. Novak (80')",
		},
		{
			name:       "top scorer",
			query:      "top scorer for munich city",
			wantIntent: "top_scorer_team",
			wantAnswer: "Top scorer: M. Ortega with 2",
		},
		{
			name:       "stadium clarification",
			query:      "where was the match",
			wantIntent: "stadium_location",
			wantAnswer: "Which team or match do you mean? Try: where was Berlin United's last match?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := b.Respond(context.Background(), tt.query)
			if reply.Intent != tt.wantIntent {
				t.Errorf("intent = %s, want %s", reply.Intent, tt.wantIntent)
			}
			if reply.Answer != tt.wantAnswer {
				t.Errorf("answer =\n%q\nwant\n%q", reply.Answer, tt.wantAnswer)
			}
			if reply.Confidence != 1.0 {
				t.Errorf("rule-routed confidence = %v, want 1.0", reply.Confidence)
			}
		})
	}
}

func TestRespondTeamIsTitleCased(t *testing.T) {
	b := newBot(t, &stubClassifier{})

	reply := b.Respond(context.Background(), "score berlin united")
	if reply.Team != "Berlin United" {
		t.Errorf("team = %q, want %q", reply.Team, "Berlin United")
	}
}

func TestRespondSmallTalk(t *testing.T) {
	b := newBot(t, &stubClassifier{err: errors.New("must not be called")})

	reply := b.Respond(context.Background(), "hello")
	if reply.Intent != "" {
		t.Errorf("small talk should carry no intent, got %s", reply.Intent)
	}
	if !strings.Contains(reply.Answer, "SportIQ") {
		t.Errorf("unexpected small-talk reply: %q", reply.Answer)
	}
}

func TestRespondConfidenceGate(t *testing.T) {
	tests := []struct {
		name       string
		classifier *stubClassifier
		wantAnswer string
	}{
		{
			name:       "above gate answers",
			classifier: &stubClassifier{intent: "tournament_info", confidence: 0.9},
			wantAnswer: "Bundes Mock Cup 2025/26\nCity League 2025",
		},
		{
			name:       "below gate falls back",
			classifier: &stubClassifier{intent: "tournament_info", confidence: 0.2},
			wantAnswer: "I can help with sports only. Try asking about scores, fixtures, scorers, stadiums, or sport type.",
		},
		{
			name:       "at gate answers",
			classifier: &stubClassifier{intent: "help", confidence: DefaultThreshold},
			wantAnswer: "I can answer: today's fixtures, latest score, goal scorers, stadium and city, sport type, upcoming, last match, top scorer, and tournament info.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBot(t, tt.classifier)
			// A query no rule matches, forcing the classifier path.
			reply := b.Respond(context.Background(), "tell me something")
			if reply.Answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", reply.Answer, tt.wantAnswer)
			}
		})
	}
}

func TestRespondClassifierErrorIsTransient(t *testing.T) {
	b := newBot(t, &stubClassifier{err: nlp.ErrModelNotReady})

	reply := b.Respond(context.Background(), "tell me something")
	if reply.Answer != transientReply {
		t.Errorf("answer = %q, want %q", reply.Answer, transientReply)
	}
}

func TestRespondEndToEndWithTrainedModel(t *testing.T) {
	if testing.Short() {
		t.Skip("training in short mode")
	}
	samples := []nlp.Sample{
		{Text: "score berlin united", Intent: "latest_score"},
		{Text: "latest score for hamburg", Intent: "latest_score"},
		{Text: "what was the final score", Intent: "latest_score"},
		{Text: "how did the game end", Intent: "latest_score"},
		{Text: "tournament info", Intent: "tournament_info"},
		{Text: "which tournaments are there", Intent: "tournament_info"},
		{Text: "tell me about the cup", Intent: "tournament_info"},
		{Text: "info about the league", Intent: "tournament_info"},
	}
	fs, err := nlp.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	mgr := nlp.NewManager(fs, false)
	b, err := New(Config{Samples: samples, Classifier: mgr})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()

	// Phrasing outside the rule set so the trained model decides.
	reply := b.Respond(context.Background(), "tell me about the cup")
	if reply.Intent != "tournament_info" {
		t.Errorf("intent = %s (confidence %.3f), want tournament_info", reply.Intent, reply.Confidence)
	}
}

func TestNewRequiresClassifier(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for missing classifier")
	}
}
