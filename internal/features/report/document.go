package report

import (
	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/template"
	"go-payroll/pkg/format"
)

// Placeholder text for reports whose row set came back empty.
const noDataPlaceholder = "No data available"

// Totals row label, always in the first visible column slot.
const totalsLabel = "Total"

// BuildDocument formats a template and its resolved rows into the
// output-independent document. It is a pure function of its inputs;
// the generation timestamp comes in through the RenderContext.
func BuildDocument(tpl template.ReportTemplate, rows []common_models.Row, rc RenderContext) *Document {
	visible := tpl.Config.VisibleColumns()

	doc := &Document{
		Title:       tpl.Name,
		Description: tpl.Description,
		Company:     rc.Company,
		GeneratedAt: rc.GeneratedAt,
		DateRange:   rc.DateRange,
		Config:      tpl.Config,
		Aggregates:  Aggregate(tpl.Config.Columns, rows),
	}

	for _, col := range visible {
		doc.Columns = append(doc.Columns, ColumnHeader{
			Key:    col.Key,
			Title:  col.Title,
			Format: col.Format,
			Align:  format.Align(col.Align, col.Format),
			Width:  col.Width,
		})
	}

	if len(rows) == 0 {
		doc.Placeholder = noDataPlaceholder
		return doc
	}

	for _, group := range GroupRows(rows, tpl.Config.GroupBy) {
		bodyGroup := BodyGroup{}
		if tpl.Config.GroupBy != "" {
			bodyGroup.Label = groupLabel(tpl.Config, group.Key)
		}
		for _, row := range group.Rows {
			cells := make([]Cell, 0, len(visible))
			for _, col := range visible {
				text, _ := format.Cell(row[col.Key], col.Format)
				cells = append(cells, Cell{
					Text:  text,
					Align: format.Align(col.Align, col.Format),
				})
			}
			bodyGroup.Rows = append(bodyGroup.Rows, cells)
		}
		doc.Groups = append(doc.Groups, bodyGroup)
	}

	if tpl.Config.ShowTotals {
		doc.Totals = totalsRow(visible, doc.Aggregates)
	}

	return doc
}

// groupLabel renders a group key through its column's format when the
// grouping column is configured, so date or currency groups read the
// same as their cells.
func groupLabel(config template.ReportConfig, key common_models.CellValue) string {
	for _, col := range config.Columns {
		if col.Key == config.GroupBy {
			text, _ := format.Cell(key, col.Format)
			return text
		}
	}
	return key.Text()
}

// totalsRow lays the aggregates into visible column slots. The label
// claims the first slot even when that column is itself summable; the
// figure stays available through the run aggregates.
func totalsRow(visible []template.ColumnConfig, agg Aggregates) []Cell {
	cells := make([]Cell, len(visible))
	for i, col := range visible {
		switch {
		case i == 0:
			cells[i] = Cell{Text: totalsLabel, Align: common_models.AlignLeft}
		case col.TotalEligible():
			text, _ := format.Cell(common_models.Number(agg.Totals[col.Key]), col.Format)
			cells[i] = Cell{Text: text, Align: format.Align(col.Align, col.Format)}
		default:
			cells[i] = Cell{Align: format.Align(col.Align, col.Format)}
		}
	}
	return cells
}

// Tabular projects the document onto a plain grid: header row, group
// label rows, blank separators between groups, data rows and the
// optional totals row. Spreadsheet writers encode this grid as-is.
func (d *Document) Tabular() [][]string {
	width := len(d.Columns)

	header := make([]string, width)
	for i, col := range d.Columns {
		header[i] = col.Title
	}
	grid := [][]string{header}

	if d.Placeholder != "" {
		row := make([]string, width)
		if width > 0 {
			row[0] = d.Placeholder
		}
		return append(grid, row)
	}

	labelled := d.Config.GroupBy != ""
	for gi, group := range d.Groups {
		if gi > 0 {
			grid = append(grid, make([]string, width))
		}
		if labelled {
			row := make([]string, width)
			if width > 0 {
				row[0] = group.Label
			}
			grid = append(grid, row)
		}
		for _, cells := range group.Rows {
			row := make([]string, width)
			for i, cell := range cells {
				row[i] = cell.Text
			}
			grid = append(grid, row)
		}
	}

	if d.Totals != nil {
		row := make([]string, width)
		for i, cell := range d.Totals {
			row[i] = cell.Text
		}
		grid = append(grid, row)
	}

	return grid
}
