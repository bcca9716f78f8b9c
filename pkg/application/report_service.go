package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sazyar/sazyar/pkg/domain/evm"
)

// ReportService renders earned-value reports for export. It works on the
// output of AnalyticsService so exports and on-screen figures never diverge.
type ReportService struct {
	analytics *AnalyticsService
}

func NewReportService(analytics *AnalyticsService) *ReportService {
	return &ReportService{analytics: analytics}
}

// TasksCSV renders the per-task earned-value table.
func (s *ReportService) TasksCSV(report *evm.Report) string {
	lines := []string{"Task ID,Title,Status,Progress,BAC,EV,AC,CPI,ETC,EAC,VAC"}
	for _, a := range report.Tasks {
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%.1f,%.2f,%.2f,%.2f,%.3f,%.2f,%.2f,%.2f",
			a.Task.ID, csvEscape(a.Task.Title), a.Task.Status, a.Task.PercentComplete,
			a.BAC, a.EV, a.AC, a.CPI, a.ETC, a.EAC, a.VAC))
	}
	sum := report.Summary
	lines = append(lines, fmt.Sprintf("TOTAL,,,,%.2f,%.2f,%.2f,%.3f,,%.2f,%.2f",
		sum.TotalBAC, sum.TotalEV, sum.TotalAC, sum.CPI, sum.EAC, sum.VAC))
	return strings.Join(lines, "\n")
}

// CurveCSV renders the S-curve samples. Future EV and AC samples are left
// empty rather than written as zero.
func (s *ReportService) CurveCSV(report *evm.Report) string {
	lines := []string{"Index,Date,PV,EV,AC"}
	for _, pt := range report.Curve {
		ev := ""
		if pt.EV != nil {
			ev = fmt.Sprintf("%.2f", *pt.EV)
		}
		ac := ""
		if pt.AC != nil {
			ac = fmt.Sprintf("%.2f", *pt.AC)
		}
		lines = append(lines, fmt.Sprintf("%d,%s,%.2f,%s,%s", pt.Index, pt.Label, pt.PV, ev, ac))
	}
	return strings.Join(lines, "\n")
}

// JSON renders the full report as indented JSON.
func (s *ReportService) JSON(report *evm.Report) (string, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out), nil
}

// Export runs the analysis and renders it in the requested format:
// "csv" (task table), "curve" (S-curve CSV), or "json".
func (s *ReportService) Export(format string) (string, error) {
	report, err := s.analytics.Analyze()
	if err != nil {
		return "", err
	}
	switch format {
	case "csv", "":
		return s.TasksCSV(report), nil
	case "curve":
		return s.CurveCSV(report), nil
	case "json":
		return s.JSON(report)
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

// csvEscape guards against titles containing commas or quotes.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
