// Package bot composes the resolution pipeline: small talk, the rule
// router, the classifier behind its confidence gate, and the knowledge
// store. Respond is the only entry point the presentation layers call.
package bot

import (
	"context"
	"fmt"

	"github.com/sportiq/sportiq/internal/intent"
	"github.com/sportiq/sportiq/internal/nlp"
	"github.com/sportiq/sportiq/internal/polish"
	"github.com/sportiq/sportiq/internal/store"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultThreshold is the minimum classifier confidence required to trust
// a prediction instead of replying with the out-of-domain fallback.
const DefaultThreshold = 0.45

const (
	transientReply  = "I refreshed my brain. Ask that again please."
	outOfScopeReply = "I can help with sports only. Try asking about scores, fixtures, scorers, stadiums, or sport type."
)

// Classifier is the model surface the bot needs; satisfied by
// nlp.Manager.
type Classifier interface {
	EnsureModel(samples []nlp.Sample) (nlp.TrainStats, error)
	Classify(text string) (string, float64, error)
}

// Config wires a Bot.
type Config struct {
	Samples    []nlp.Sample
	Classifier Classifier
	Polisher   *polish.Client // nil disables polishing
	Threshold  float64        // 0 means DefaultThreshold
	Debug      bool
}

// Reply is one resolved turn.
type Reply struct {
	Answer     string  `json:"answer"`
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence"`
	Team       string  `json:"team,omitempty"`
	UsedModel  string  `json:"used_model,omitempty"`
}

// Bot owns the pipeline. New returns only after the knowledge store is
// seeded and EnsureModel has completed, so a reachable Bot is never
// backed by a half-initialized classifier.
type Bot struct {
	store      *store.Store
	classifier Classifier
	polisher   *polish.Client
	threshold  float64
	debug      bool
	stats      nlp.TrainStats
	titler     cases.Caser
}

func New(cfg Config) (*Bot, error) {
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("bot needs a classifier")
	}
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	ks, err := store.Open()
	if err != nil {
		return nil, err
	}
	stats, err := cfg.Classifier.EnsureModel(cfg.Samples)
	if err != nil {
		ks.Close()
		return nil, fmt.Errorf("model startup failed: %w", err)
	}
	if cfg.Debug {
		fmt.Printf("[bot] model ready (cache hit: %v, val acc %.4f)\n", stats.CacheHit, stats.Accuracy)
	}
	return &Bot{
		store:      ks,
		classifier: cfg.Classifier,
		polisher:   cfg.Polisher,
		threshold:  threshold,
		debug:      cfg.Debug,
		stats:      stats,
		titler:     cases.Title(language.English),
	}, nil
}

func (b *Bot) Close() error {
	return b.store.Close()
}

// Stats reports what startup's EnsureModel did.
func (b *Bot) Stats() nlp.TrainStats {
	return b.stats
}

// Respond resolves one user turn to an answer string. Every path yields
// an answer; classifier faults surface as a transient ask-again reply and
// self-heal on the next startup pass.
func (b *Bot) Respond(ctx context.Context, text string) Reply {
	if reply, ok := intent.SmallTalk(text); ok {
		return b.polished(ctx, Reply{Answer: reply})
	}

	name, confidence := "", 1.0
	if routed, ok := intent.Route(text); ok {
		name = routed
	} else {
		var err error
		name, confidence, err = b.classifier.Classify(text)
		if err != nil {
			if b.debug {
				fmt.Printf("[bot] classify failed: %v\n", err)
			}
			return Reply{Answer: transientReply}
		}
	}

	if name == "" || confidence < b.threshold {
		if b.debug {
			fmt.Printf("[bot] below gate: intent=%q confidence=%.3f\n", name, confidence)
		}
		return b.polished(ctx, Reply{Answer: outOfScopeReply, Intent: name, Confidence: confidence})
	}

	answer, err := b.store.Answer(name, text)
	if err != nil {
		if b.debug {
			fmt.Printf("[bot] store query failed: %v\n", err)
		}
		return Reply{Answer: transientReply, Intent: name, Confidence: confidence}
	}

	reply := Reply{Answer: answer, Intent: name, Confidence: confidence}
	if team, ok := b.store.ResolveTeam(text); ok {
		reply.Team = b.titler.String(team)
	}
	return b.polished(ctx, reply)
}

func (b *Bot) polished(ctx context.Context, reply Reply) Reply {
	if b.polisher == nil {
		return reply
	}
	result := b.polisher.Polish(ctx, reply.Answer)
	reply.Answer = result.Text
	if result.UsedModel != "none" && result.UsedModel != "error" {
		reply.UsedModel = result.UsedModel
	}
	return reply
}
