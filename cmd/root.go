package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sportiq",
	Short: "AI sports companion for a mock dataset",
	Long: `SportIQ answers natural language questions about a small sports dataset.
Questions are resolved to intents by an ordered rule router with a trained
classifier as fallback, then answered from an embedded knowledge store.

Ask about fixtures, scores, goal scorers, stadiums, sport type, upcoming
and past matches, top scorers, and tournaments.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sportiq.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output (shows routing + model diagnostics)")
	rootCmd.PersistentFlags().String("corpus", "", "YAML training corpus file (default: built-in corpus)")
	rootCmd.PersistentFlags().String("cache-dir", "", "model cache directory (default is $HOME/.sportiq/models)")
	rootCmd.PersistentFlags().String("openrouter-key", "", "OpenRouter API key for answer polishing (or set OPENROUTER_API_KEY)")

	// TODO: add error return here
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("nlp.corpus", rootCmd.PersistentFlags().Lookup("corpus"))
	viper.BindPFlag("nlp.cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("polish.api_key", rootCmd.PersistentFlags().Lookup("openrouter-key"))

	viper.SetDefault("nlp.confidence_threshold", 0.45)
	viper.SetDefault("serve.addr", ":8080")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sportiq")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// modelCacheDir resolves the directory trained models persist in.
func modelCacheDir() (string, error) {
	if dir := viper.GetString("nlp.cache_dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".sportiq", "models"), nil
}

// resolveOpenRouterKey finds the polishing API key: flag/config first,
// then the environment.
func resolveOpenRouterKey() string {
	if key := viper.GetString("polish.api_key"); key != "" {
		return key
	}
	if envName := viper.GetString("polish.api_key_env"); envName != "" {
		if envVal := os.Getenv(envName); envVal != "" {
			return envVal
		}
	}
	return os.Getenv("OPENROUTER_API_KEY")
}
