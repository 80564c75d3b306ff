package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sportiq/sportiq/internal/intent"
	"github.com/sportiq/sportiq/internal/nlp"
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the intent classifier and print evaluation metrics",
	Long: `Train the intent classifier offline with a stratified validation split
and print per-epoch progress, per-intent precision/recall/F1, and the
validation confusion matrix. Optionally write a JSON metrics report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reportPath, _ := cmd.Flags().GetString("report")

		samples, err := intent.LoadCorpus(viper.GetString("nlp.corpus"))
		if err != nil {
			return err
		}

		vocab := nlp.BuildVocab(samples)
		labels := nlp.BuildLabels(samples)
		fmt.Printf("samples: %d, intents: %d, vocab: %d\n", len(samples), len(labels), len(vocab))

		_, report, err := nlp.Train(samples, vocab, labels)
		if err != nil {
			return fmt.Errorf("training failed: %w", err)
		}

		fmt.Printf("stratified split  train: %d  val: %d\n", report.TrainExamples, report.ValExamples)
		for e := 0; e < report.Epochs; e++ {
			fmt.Printf("epoch %02d | acc %.4f val_acc %.4f | loss %.4f val_loss %.4f\n",
				e+1, report.History.Acc[e], report.History.ValAcc[e],
				report.History.Loss[e], report.History.ValLoss[e])
		}

		fmt.Println("\n========== TRAINING SUMMARY ==========")
		fmt.Printf("final train acc: %.4f  final val acc: %.4f\n", report.TrainAcc, report.ValAcc)
		fmt.Printf("final train loss: %.4f  final val loss: %.4f\n", report.TrainLoss, report.ValLoss)
		fmt.Printf("vocab size: %d  intents: %d  trainable params: %d\n", report.Vocab, report.Intents, report.Params)
		fmt.Printf("macro precision: %.4f  macro recall: %.4f  macro F1: %.4f\n",
			report.MacroPrecision, report.MacroRecall, report.MacroF1)

		fmt.Println("\nPer intent metrics on validation:")
		for _, m := range report.PerIntent {
			fmt.Printf("%-20s | support %2d | P %.2f R %.2f F1 %.2f\n",
				m.Intent, m.Support, m.Precision, m.Recall, m.F1)
		}

		fmt.Println("\nValidation confusion matrix (rows=true, cols=pred):")
		header := make([]string, len(report.Labels))
		for i, l := range report.Labels {
			if len(l) > 3 {
				l = l[:3]
			}
			header[i] = fmt.Sprintf("%3s", l)
		}
		fmt.Printf("%-10s %s\n", "", strings.Join(header, " "))
		for i, row := range report.Confusion {
			label := report.Labels[i]
			if len(label) > 10 {
				label = label[:10]
			}
			cells := make([]string, len(row))
			for j, n := range row {
				cells[j] = fmt.Sprintf("%3d", n)
			}
			fmt.Printf("%-10s %s\n", label, strings.Join(cells, " "))
		}

		if reportPath != "" {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
			if err := os.WriteFile(reportPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("\nSaved metrics to %s\n", reportPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().String("report", "", "Write a JSON metrics report to this path")
}
