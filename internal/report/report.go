// Package report builds per-run parse summaries for the CLI output.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledgerlens/internal/logging"
	"ledgerlens/internal/models"
	"ledgerlens/internal/statement"
)

// Summary captures the outcome of parsing one statement.
type Summary struct {
	ReportID     string    `json:"report_id"`
	GeneratedAt  time.Time `json:"generated_at"`
	SourceFile   string    `json:"source_file,omitempty"`
	Layout       string    `json:"layout"`
	DateOrder    string    `json:"date_order,omitempty"`
	DefaultYear  int       `json:"default_year,omitempty"`
	CreditCard   bool      `json:"credit_card"`
	Transactions int       `json:"transactions"`
	Markers      int       `json:"markers"`
	Unparsed     int       `json:"unparsed"`
	AccountTypes []string  `json:"account_types"`
	NetAmount    string    `json:"net_amount"`
	Mismatches   int       `json:"mismatches"`
}

// NewSummary assembles a summary from a parse result. mismatches may be nil
// when balance checking was not requested.
func NewSummary(result *statement.Result, sourceFile string, mismatches []models.Mismatch) Summary {
	s := Summary{
		ReportID:    uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		SourceFile:  sourceFile,
		Layout:      string(result.Profile.Layout),
		DateOrder:   string(result.Profile.DateOrder),
		DefaultYear: result.Profile.DefaultYear,
		CreditCard:  result.Profile.CreditCard,
		Unparsed:    len(result.Unparsed),
		Mismatches:  len(mismatches),
	}

	net := decimal.Zero
	types := map[string]struct{}{}
	for i := range result.Records {
		rec := &result.Records[i]
		if rec.IsMarker() {
			s.Markers++
			continue
		}
		s.Transactions++
		if rec.Amount != nil {
			net = net.Add(*rec.Amount)
		}
		if rec.AccountType != models.AccountUnknown {
			types[string(rec.AccountType)] = struct{}{}
		}
	}
	s.NetAmount = net.StringFixed(2)
	for t := range types {
		s.AccountTypes = append(s.AccountTypes, t)
	}
	sort.Strings(s.AccountTypes)
	return s
}

// Generator renders summaries in the supported output formats.
type Generator struct {
	log logging.Logger
}

// NewGenerator creates a summary generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{log: logger.WithField("component", "ReportGenerator")}
}

// Generate renders the summary in the given format ("json" or "text").
func (g *Generator) Generate(s Summary, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(s)
	case "text":
		return g.generateText(s), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(s Summary) ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		g.log.WithError(err).Error("Failed to marshal JSON summary")
		return nil, fmt.Errorf("failed to marshal JSON summary: %w", err)
	}
	return out, nil
}

func (g *Generator) generateText(s Summary) []byte {
	accountTypes := "none"
	if len(s.AccountTypes) > 0 {
		accountTypes = fmt.Sprintf("%v", s.AccountTypes)
	}
	out := fmt.Sprintf(
		"report %s\nlayout: %s  credit card: %t\ntransactions: %d  markers: %d  unparsed: %d\naccount types: %s\nnet amount: %s\nbalance mismatches: %d\n",
		s.ReportID, s.Layout, s.CreditCard,
		s.Transactions, s.Markers, s.Unparsed,
		accountTypes, s.NetAmount, s.Mismatches,
	)
	return []byte(out)
}
