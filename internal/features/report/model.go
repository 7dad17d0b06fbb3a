package report

import (
	"context"
	"time"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/settings"
	"go-payroll/internal/features/template"
)

// RowResolver supplies the typed rows a report is rendered from. The
// engine never fetches data itself; the datasource feature provides the
// concrete implementation.
type RowResolver interface {
	FetchRows(ctx context.Context, reportType common_models.ReportType, filters map[string]string) ([]common_models.Row, error)
}

// RenderContext carries the per-request inputs of a render that do not
// live in the template: the company letterhead, the generation instant
// and an optional date-range caption.
type RenderContext struct {
	Company     settings.CompanyProfile
	GeneratedAt time.Time
	DateRange   string
}

// Cell is one formatted table cell.
type Cell struct {
	Text  string                  `json:"text"`
	Align common_models.Alignment `json:"align"`
}

// ColumnHeader describes one visible column of the rendered table.
type ColumnHeader struct {
	Key    string                     `json:"key"`
	Title  string                     `json:"title"`
	Format common_models.ColumnFormat `json:"format"`
	Align  common_models.Alignment    `json:"align"`
	Width  float64                    `json:"width,omitempty"`
}

// BodyGroup is one run of data rows, optionally labelled when the
// template groups by a column.
type BodyGroup struct {
	Label string   `json:"label,omitempty"`
	Rows  [][]Cell `json:"rows"`
}

// Document is the fully formatted report, independent of the output
// encoding. HTML and tabular renderings are projections of it.
type Document struct {
	Title       string
	Description string
	Company     settings.CompanyProfile
	GeneratedAt time.Time
	DateRange   string

	Columns     []ColumnHeader
	Groups      []BodyGroup
	Totals      []Cell // nil when the totals row is suppressed
	Placeholder string // non-empty when the row set is empty

	Config     template.ReportConfig
	Aggregates Aggregates
}

// ExportFile is one encoded report artifact ready to download or write
// to disk.
type ExportFile struct {
	Data     []byte
	Filename string
	RowCount int
}

// RunGroup carries one group of formatted cells keyed by column for
// the JSON run surface.
type RunGroup struct {
	Label string              `json:"label,omitempty"`
	Rows  []map[string]string `json:"rows"`
}

// RunResult is the JSON payload backing UI grids.
type RunResult struct {
	TemplateID  string                   `json:"template_id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Type        common_models.ReportType `json:"type"`
	Columns     []ColumnHeader           `json:"columns"`
	Groups      []RunGroup               `json:"groups"`
	Totals      map[string]float64       `json:"totals"`
	Averages    map[string]float64       `json:"averages"`
	RowCount    int                      `json:"row_count"`
}
