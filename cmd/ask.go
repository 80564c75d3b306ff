package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about the sports dataset",
	Long: `Ask a natural language question and print the answer.

Examples:
  sportiq ask "who is playing today"
  sportiq ask "score berlin united"
  sportiq ask "who scored for munich city"
  sportiq ask "top scorer for munich city" --polish`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		withPolish, _ := cmd.Flags().GetBool("polish")
		debug := viper.GetBool("debug")

		b, err := buildBot(withPolish)
		if err != nil {
			return fmt.Errorf("failed to start SportIQ: %w", err)
		}
		defer b.Close()

		reply := b.Respond(context.Background(), question)
		if debug && reply.Intent != "" {
			fmt.Printf("[ask] intent=%s confidence=%.3f team=%q\n", reply.Intent, reply.Confidence, reply.Team)
		}
		fmt.Println(reply.Answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().Bool("polish", false, "Rewrite the answer in a friendlier tone via OpenRouter")
}
