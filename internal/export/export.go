package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/launch-economics/internal/preview"
	"github.com/rovshanmuradov/launch-economics/internal/pricing"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ParseFormat accepts "csv" or "json"; empty means csv.
func ParseFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format     ExportFormat
	PlanFilter string // Filter by plan name, case-insensitive substring
	OnlyReady  bool   // Only export plans that passed validation
	OutputDir  string
}

// ReportExporter writes launch previews to disk
type ReportExporter struct {
	logger *zap.Logger
}

// NewReportExporter creates a new report exporter
func NewReportExporter(logger *zap.Logger) *ReportExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportExporter{
		logger: logger,
	}
}

// ExportReports exports reports based on the provided options
func (re *ReportExporter) ExportReports(reports []preview.Report, options ExportOptions) (string, error) {
	filtered := re.filterReports(reports, options)

	if len(filtered) == 0 {
		return "", fmt.Errorf("no reports match the export criteria")
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PlanID < filtered[j].PlanID
	})

	filename := re.generateFilename(options)
	outputPath := filepath.Join(options.OutputDir, filename)

	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	switch options.Format {
	case FormatCSV:
		err = re.exportToCSV(filtered, outputPath)
	case FormatJSON:
		err = re.exportToJSON(filtered, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}

	if err != nil {
		return "", err
	}

	re.logger.Info("Reports exported",
		zap.String("file", outputPath),
		zap.Int("count", len(filtered)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

// filterReports applies filters to the report list
func (re *ReportExporter) filterReports(reports []preview.Report, options ExportOptions) []preview.Report {
	var filtered []preview.Report
	needle := strings.ToLower(options.PlanFilter)

	for _, r := range reports {
		if needle != "" && !strings.Contains(strings.ToLower(r.Plan), needle) {
			continue
		}
		if options.OnlyReady && !r.Ready() {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}

// generateFilename creates a filename based on export options
func (re *ReportExporter) generateFilename(options ExportOptions) string {
	timestamp := time.Now().Format("20060102_150405")

	prefix := "launch_all"
	if options.OnlyReady {
		prefix = "launch_ready"
	}

	if options.PlanFilter != "" {
		slug := strings.ToLower(strings.Join(strings.Fields(options.PlanFilter), "-"))
		if len(slug) > 16 {
			slug = slug[:16]
		}
		prefix += "_" + slug
	}

	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, options.Format)
}

// exportToCSV writes one row per recipient of every report
func (re *ReportExporter) exportToCSV(reports []preview.Report, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range reports {
		for _, row := range ReportRows(r) {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write report %q: %w", r.Plan, err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// exportToJSON exports reports to JSON format
func (re *ReportExporter) exportToJSON(reports []preview.Report, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := struct {
		ExportTime  time.Time        `json:"export_time"`
		ReportCount int              `json:"report_count"`
		Reports     []preview.Report `json:"reports"`
		Summary     ExportSummary    `json:"summary"`
	}{
		ExportTime:  time.Now(),
		ReportCount: len(reports),
		Reports:     reports,
		Summary:     re.calculateSummary(reports),
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportSummary contains summary statistics for exported reports
type ExportSummary struct {
	TotalPlans     int                            `json:"total_plans"`
	ReadyPlans     int                            `json:"ready_plans"`
	BlockedPlans   int                            `json:"blocked_plans"`
	InitialBuys    int                            `json:"initial_buys"`
	TotalBuyIn     float64                        `json:"total_buy_in"`
	MaxPriceImpact float64                        `json:"max_price_impact"`
	AvgFeeBps      float64                        `json:"avg_fee_bps"`
	Recipients     int                            `json:"recipients"`
	Severities     map[pricing.ImpactSeverity]int `json:"severities"`
}

// calculateSummary calculates summary statistics for the export
func (re *ReportExporter) calculateSummary(reports []preview.Report) ExportSummary {
	summary := ExportSummary{
		TotalPlans: len(reports),
		Severities: make(map[pricing.ImpactSeverity]int),
	}

	if len(reports) == 0 {
		return summary
	}

	totalFee := 0
	for _, r := range reports {
		if r.Ready() {
			summary.ReadyPlans++
		} else {
			summary.BlockedPlans++
		}

		if r.InitialBuy {
			summary.InitialBuys++
			summary.TotalBuyIn += r.BuyIn
			if r.Pricing.PriceImpact > summary.MaxPriceImpact {
				summary.MaxPriceImpact = r.Pricing.PriceImpact
			}
			summary.Severities[r.Severity]++
		}

		totalFee += r.Display.FeeBps
		summary.Recipients += len(r.Recipients)
	}

	summary.AvgFeeBps = float64(totalFee) / float64(len(reports))

	return summary
}
