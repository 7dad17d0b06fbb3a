package template

import (
	"fmt"
	"time"

	common_models "go-payroll/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportTemplate is a saved report definition for one report type.
type ReportTemplate struct {
	ID          primitive.ObjectID       `json:"id" bson:"_id,omitempty"`
	Name        string                   `json:"name" bson:"name"`
	Description string                   `json:"description,omitempty" bson:"description,omitempty"`
	Type        common_models.ReportType `json:"type" bson:"type"`
	Config      ReportConfig             `json:"config" bson:"config"`
	IsDefault   bool                     `json:"is_default" bson:"is_default"`
	CreatedAt   time.Time                `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at" bson:"updated_at"`
}

// ReportConfig holds everything the renderer needs: the column layout,
// aggregation switches and page-level presentation settings.
type ReportConfig struct {
	Columns          []ColumnConfig            `json:"columns" bson:"columns"`
	Filters          []string                  `json:"filters,omitempty" bson:"filters,omitempty"` // filter identifiers echoed to callers
	ShowTotals       bool                      `json:"show_totals" bson:"show_totals"`
	GroupBy          string                    `json:"group_by,omitempty" bson:"group_by,omitempty"`
	Orientation      common_models.Orientation `json:"orientation,omitempty" bson:"orientation,omitempty"`
	PageSize         common_models.PageSize    `json:"page_size,omitempty" bson:"page_size,omitempty"`
	PageMargin       float64                   `json:"page_margin,omitempty" bson:"page_margin,omitempty"`
	FontSize         float64                   `json:"font_size,omitempty" bson:"font_size,omitempty"`
	FontFamily       string                    `json:"font_family,omitempty" bson:"font_family,omitempty"`
	HeaderImageURL   string                    `json:"header_image_url,omitempty" bson:"header_image_url,omitempty"`
	FooterText       string                    `json:"footer_text,omitempty" bson:"footer_text,omitempty"`
	IncludeDateRange bool                      `json:"include_date_range" bson:"include_date_range"`
}

// ColumnConfig describes one column of the report table.
type ColumnConfig struct {
	Key          string                     `json:"key" bson:"key"`
	Title        string                     `json:"title" bson:"title"`
	Format       common_models.ColumnFormat `json:"format" bson:"format"`
	Align        common_models.Alignment    `json:"align,omitempty" bson:"align,omitempty"`
	Width        float64                    `json:"width,omitempty" bson:"width,omitempty"`
	Visible      bool                       `json:"visible" bson:"visible"`
	ComputeTotal bool                       `json:"compute_total" bson:"compute_total"`
}

// TotalEligible reports whether this column participates in totals:
// it must be visible, flagged for totals, and carry a summable format.
func (c ColumnConfig) TotalEligible() bool {
	return c.Visible && c.ComputeTotal && c.Format.Numeric()
}

// VisibleColumns returns the columns shown in output, in config order.
func (rc ReportConfig) VisibleColumns() []ColumnConfig {
	var cols []ColumnConfig
	for _, col := range rc.Columns {
		if col.Visible {
			cols = append(cols, col)
		}
	}
	return cols
}

// MoveColumn relocates the column at fromIndex to toIndex, shifting the
// columns in between. Both indexes address the full column list,
// including hidden columns.
func (rc *ReportConfig) MoveColumn(fromIndex, toIndex int) error {
	n := len(rc.Columns)
	if fromIndex < 0 || fromIndex >= n {
		return fmt.Errorf("from index %d out of range [0,%d)", fromIndex, n)
	}
	if toIndex < 0 || toIndex >= n {
		return fmt.Errorf("to index %d out of range [0,%d)", toIndex, n)
	}
	if fromIndex == toIndex {
		return nil
	}

	col := rc.Columns[fromIndex]
	cols := append(rc.Columns[:fromIndex], rc.Columns[fromIndex+1:]...)

	cols = append(cols, ColumnConfig{})
	copy(cols[toIndex+1:], cols[toIndex:])
	cols[toIndex] = col

	rc.Columns = cols
	return nil
}
