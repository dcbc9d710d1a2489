package renderer

import (
	"time"

	"github.com/etnz/tradingpost"
)

type reportView struct {
	*tradingpost.Report
	Date string
}

// RenderReport renders the valuation of the portfolio at a given time.
func RenderReport(r *tradingpost.Report, on time.Time, names Names) string {
	partials := map[string]string{
		"report_items":   "report_items.md",
		"report_missing": "report_missing.md",
	}
	view := reportView{Report: r, Date: on.Format("2006-01-02 15:04")}
	return renderTemplate("report", "report.md", partials, funcs(names), view)
}
