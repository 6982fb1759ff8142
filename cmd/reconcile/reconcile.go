// Package reconcile handles balance verification commands.
package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"ledgerlens/cmd/root"
	"ledgerlens/internal/logging"
	"ledgerlens/pkg/ledger"
)

var tolerance float64

// Cmd represents the reconcile command.
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check ledger balances for consistency",
	Long: `Parse a statement and flag every row whose stated running balance
disagrees with the previous balance plus the row's amount.`,
	Run: reconcileFunc,
}

func init() {
	Cmd.Flags().Float64Var(&tolerance, "tolerance", 0.01, "Allowed balance drift before a row is flagged")
}

func reconcileFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	if root.SharedFlags.Input == "" {
		logger.Fatal("Input file must be specified")
	}
	tol := tolerance
	if !cmd.Flags().Changed("tolerance") {
		tol = root.Config().Reconcile.Tolerance
	}
	logger.Info("Checking balances",
		logging.Field{Key: logging.FieldInputFile, Value: root.SharedFlags.Input},
		logging.Field{Key: logging.FieldTolerance, Value: tol})

	result, err := ledger.ParseFile(root.SharedFlags.Input, root.ParseOptions())
	if err != nil {
		logger.Fatalf("Error parsing statement: %v", err)
	}

	mismatches := ledger.CheckBalances(result.Records, decimal.NewFromFloat(tol))
	if len(mismatches) == 0 {
		root.Log.Info("All balances consistent")
		return
	}

	out, err := json.MarshalIndent(mismatches, "", "  ")
	if err != nil {
		logger.Fatalf("Error rendering mismatches: %v", err)
	}
	fmt.Println(string(out))
	logger.Warn("Balance mismatches found",
		logging.Field{Key: logging.FieldCount, Value: len(mismatches)})
}
