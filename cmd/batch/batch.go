// Package batch handles batch processing of statement files.
package batch

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerlens/cmd/root"
	"ledgerlens/internal/logging"
	"ledgerlens/pkg/ledger"
)

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process statements from a directory",
	Long: `Batch process statement files from an input directory and write one
ledger CSV per statement to the output directory.

Example:
  ledgerlens batch -i statements/ -o ledgers/`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		logger.Fatal("Input and output directories must be specified")
	}
	logger.Info("Batch processing statements",
		logging.Field{Key: "input_dir", Value: inputDir},
		logging.Field{Key: "output_dir", Value: outputDir})

	count, err := ledger.BatchConvert(inputDir, outputDir, root.ParseOptions())
	if err != nil {
		logger.Fatalf("Error during batch conversion: %v", err)
	}

	root.Log.Info(fmt.Sprintf("Batch processing completed. %d ledger files created.", count))
}
