package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/sportiq/sportiq/internal/bot"
	"github.com/sportiq/sportiq/internal/intent"
	"github.com/sportiq/sportiq/internal/nlp"
	"github.com/sportiq/sportiq/internal/polish"
)

// buildBot wires the full pipeline from config: corpus, model cache,
// classifier, knowledge store, and (optionally) the polish client.
// It returns once the model is loaded or trained.
func buildBot(withPolish bool) (*bot.Bot, error) {
	debug := viper.GetBool("debug")

	samples, err := intent.LoadCorpus(viper.GetString("nlp.corpus"))
	if err != nil {
		return nil, err
	}

	cacheDir, err := modelCacheDir()
	if err != nil {
		return nil, err
	}
	modelStore, err := nlp.NewFileStore(cacheDir)
	if err != nil {
		return nil, err
	}

	var polisher *polish.Client
	if withPolish {
		key := resolveOpenRouterKey()
		if key == "" && debug {
			fmt.Println("Polish requested but no OpenRouter API key found, replies pass through unchanged")
		}
		polisher = polish.NewClient(key, viper.GetString("polish.model"), debug)
	}

	return bot.New(bot.Config{
		Samples:    samples,
		Classifier: nlp.NewManager(modelStore, debug),
		Polisher:   polisher,
		Threshold:  viper.GetFloat64("nlp.confidence_threshold"),
		Debug:      debug,
	})
}
