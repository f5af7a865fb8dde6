package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/purchase"
)

// Format represents the export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrNothingToExport is returned when no purchase matches the options.
var ErrNothingToExport = errors.New("no purchases match the export criteria")

// Options configures one export.
type Options struct {
	Format Format
	Since  time.Time
	Until  time.Time
	Token  string // token address or symbol
	Buyer  string
	// Phase is "whitelist", "public" or empty for both.
	Phase string
}

// Entry is one exported purchase.
type Entry struct {
	ID           string    `json:"id"`
	SaleID       string    `json:"sale_id"`
	SaleOwner    string    `json:"sale_owner"`
	Time         time.Time `json:"time"`
	Buyer        string    `json:"buyer"`
	TokenSymbol  string    `json:"token_symbol"`
	TokenAddress string    `json:"token_address"`
	Quantity     string    `json:"quantity"`
	Paid         string    `json:"paid"`
	Currency     string    `json:"currency"`
	Phase        string    `json:"phase"`
	TxHash       string    `json:"tx_hash"`
}

var csvHeader = []string{
	"id", "sale_id", "sale_owner", "time", "buyer", "token_symbol", "token_address",
	"quantity", "paid", "currency", "phase", "tx_hash",
}

func (e Entry) record() []string {
	return []string{
		e.ID, e.SaleID, e.SaleOwner, e.Time.Format(time.RFC3339), e.Buyer, e.TokenSymbol, e.TokenAddress,
		e.Quantity, e.Paid, e.Currency, e.Phase, e.TxHash,
	}
}

func entryFor(s purchase.Sale) Entry {
	phase := "public"
	if s.WhitelistEnabled {
		phase = "whitelist"
	}
	return Entry{
		ID:           s.ID,
		SaleID:       s.SaleID,
		SaleOwner:    s.SaleOwner,
		Time:         time.UnixMilli(s.Timestamp).UTC(),
		Buyer:        s.BuyerAddress,
		TokenSymbol:  s.TokenSymbol,
		TokenAddress: s.TokenAddress,
		Quantity:     s.QuantityPurchased.String(),
		Paid:         s.AmountPaid.String(),
		Currency:     s.PaymentToken,
		Phase:        phase,
		TxHash:       s.TransactionHash,
	}
}

// Summary aggregates the exported purchases.
type Summary struct {
	Purchases      int                        `json:"purchases"`
	WhitelistCount int                        `json:"whitelist_count"`
	PublicCount    int                        `json:"public_count"`
	UniqueBuyers   int                        `json:"unique_buyers"`
	UniqueTokens   int                        `json:"unique_tokens"`
	TokensSold     decimal.Decimal            `json:"tokens_sold"`
	PaidByCurrency map[string]decimal.Decimal `json:"paid_by_currency"`
	First          time.Time                  `json:"first"`
	Last           time.Time                  `json:"last"`
}

// HistoryExporter writes sale history to files under a directory.
type HistoryExporter struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewHistoryExporter creates an exporter writing into dir.
func NewHistoryExporter(dir string, logger *zap.Logger) *HistoryExporter {
	return &HistoryExporter{
		dir:    dir,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock overrides the time used for file names and export stamps.
func (e *HistoryExporter) WithClock(now func() time.Time) *HistoryExporter {
	e.now = now
	return e
}

// Dir returns the output directory.
func (e *HistoryExporter) Dir() string {
	return e.dir
}

// Export filters sales, writes them oldest first and returns the file path.
func (e *HistoryExporter) Export(sales []purchase.Sale, opts Options) (string, error) {
	entries := Filter(sales, opts)
	if len(entries) == 0 {
		return "", ErrNothingToExport
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(e.dir, e.filename(opts))

	var err error
	switch opts.Format {
	case FormatCSV:
		err = writeCSV(path, entries)
	case FormatJSON:
		err = e.writeJSON(path, entries)
	default:
		err = fmt.Errorf("unsupported format: %s", opts.Format)
	}
	if err != nil {
		return "", err
	}

	e.logger.Info("History exported",
		zap.String("file", path),
		zap.Int("count", len(entries)),
		zap.String("format", string(opts.Format)))
	return path, nil
}

// Filter converts the sales matching opts into entries.
func Filter(sales []purchase.Sale, opts Options) []Entry {
	var out []Entry
	for _, s := range sales {
		entry := entryFor(s)
		if !opts.Since.IsZero() && entry.Time.Before(opts.Since) {
			continue
		}
		if !opts.Until.IsZero() && entry.Time.After(opts.Until) {
			continue
		}
		if opts.Token != "" && !strings.EqualFold(opts.Token, entry.TokenAddress) && !strings.EqualFold(opts.Token, entry.TokenSymbol) {
			continue
		}
		if opts.Buyer != "" && !strings.EqualFold(opts.Buyer, entry.Buyer) {
			continue
		}
		if opts.Phase != "" && opts.Phase != entry.Phase {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (e *HistoryExporter) filename(opts Options) string {
	prefix := "history_all"
	if opts.Phase != "" {
		prefix = "history_" + opts.Phase
	}
	if token := strings.ToLower(opts.Token); token != "" {
		prefix += "_" + token[:min(len(token), 8)]
	}
	return fmt.Sprintf("%s_%s.%s", prefix, e.now().Format("20060102_150405"), opts.Format)
}

func writeCSV(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, entry := range entries {
		if err := writer.Write(entry.record()); err != nil {
			return fmt.Errorf("failed to write purchase: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (e *HistoryExporter) writeJSON(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	data := struct {
		ExportTime time.Time `json:"export_time"`
		Count      int       `json:"count"`
		Purchases  []Entry   `json:"purchases"`
		Summary    Summary   `json:"summary"`
	}{
		ExportTime: e.now().UTC(),
		Count:      len(entries),
		Purchases:  entries,
		Summary:    Summarize(entries),
	}
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// Summarize calculates totals over entries. Amounts that do not parse are
// counted as purchases but left out of the sums.
func Summarize(entries []Entry) Summary {
	summary := Summary{
		Purchases:      len(entries),
		TokensSold:     decimal.Zero,
		PaidByCurrency: make(map[string]decimal.Decimal),
	}

	buyers := make(map[string]bool)
	tokens := make(map[string]bool)
	for i, entry := range entries {
		if i == 0 || entry.Time.Before(summary.First) {
			summary.First = entry.Time
		}
		if entry.Time.After(summary.Last) {
			summary.Last = entry.Time
		}
		if entry.Phase == "whitelist" {
			summary.WhitelistCount++
		} else {
			summary.PublicCount++
		}
		buyers[strings.ToLower(entry.Buyer)] = true
		tokens[strings.ToLower(entry.TokenAddress)] = true

		if qty, err := decimal.NewFromString(entry.Quantity); err == nil {
			summary.TokensSold = summary.TokensSold.Add(qty)
		}
		if paid, err := decimal.NewFromString(entry.Paid); err == nil {
			summary.PaidByCurrency[entry.Currency] = summary.PaidByCurrency[entry.Currency].Add(paid)
		}
	}
	summary.UniqueBuyers = len(buyers)
	summary.UniqueTokens = len(tokens)
	return summary
}
