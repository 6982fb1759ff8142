// Package parse handles statement parsing commands.
package parse

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerlens/cmd/root"
	"ledgerlens/internal/logging"
	"ledgerlens/internal/report"
	"ledgerlens/pkg/ledger"
)

// Cmd represents the parse command.
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a statement into a ledger CSV",
	Long: `Parse a bank or credit-card statement (PDF or plain text) into a
normalized ledger CSV and print a parse summary.`,
	Run: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		logger.Fatal("Input and output files must be specified")
	}
	logger.Info("Parsing statement",
		logging.Field{Key: logging.FieldInputFile, Value: root.SharedFlags.Input},
		logging.Field{Key: logging.FieldOutputFile, Value: root.SharedFlags.Output})

	result, err := ledger.ConvertToCSV(root.SharedFlags.Input, root.SharedFlags.Output, root.ParseOptions())
	if err != nil {
		logger.Fatalf("Error converting statement: %v", err)
	}

	format := root.SharedFlags.Format
	if !cmd.Root().PersistentFlags().Changed("format") {
		format = root.Config().Report.Format
	}
	summary := report.NewSummary(result, root.SharedFlags.Input, nil)
	out, err := report.NewGenerator(logger).Generate(summary, format)
	if err != nil {
		logger.Fatalf("Error generating summary: %v", err)
	}
	fmt.Println(string(out))

	root.Log.Info("Statement parsing completed successfully!")
}
