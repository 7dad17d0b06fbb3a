package report

import (
	"testing"
	"time"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/settings"
	"go-payroll/internal/features/template"
)

func payrollTemplate() template.ReportTemplate {
	return template.ReportTemplate{
		Name:        "Monthly Payroll",
		Description: "Net pay per employee",
		Type:        common_models.ReportTypePayroll,
		Config: template.ReportConfig{
			Columns: []template.ColumnConfig{
				{Key: "employee", Title: "Employee", Format: common_models.FormatText, Visible: true},
				{Key: "hours", Title: "Hours", Format: common_models.FormatNumber, Visible: true, ComputeTotal: true},
				{Key: "net_pay", Title: "Net Pay", Format: common_models.FormatCurrency, Visible: true, ComputeTotal: true},
				{Key: "bonus", Title: "Bonus", Format: common_models.FormatCurrency, Visible: false, ComputeTotal: true},
			},
			ShowTotals:  true,
			Orientation: common_models.OrientationPortrait,
			PageSize:    common_models.PageSizeA4,
		},
	}
}

func renderContext() RenderContext {
	return RenderContext{
		Company:     settings.CompanyProfile{Name: "Acme Staffing"},
		GeneratedAt: time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(payrollTemplate(), payrollRows(), renderContext())

	if len(doc.Columns) != 3 {
		t.Fatalf("got %d columns, want 3 visible", len(doc.Columns))
	}
	if doc.Columns[2].Title != "Net Pay" || doc.Columns[2].Align != common_models.AlignRight {
		t.Errorf("net_pay header = %+v, want right-aligned Net Pay", doc.Columns[2])
	}
	if doc.Placeholder != "" {
		t.Errorf("Placeholder = %q, want empty for populated report", doc.Placeholder)
	}

	if len(doc.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(doc.Groups))
	}
	rows := doc.Groups[0].Rows
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := rows[0][2].Text; got != "$200.25" {
		t.Errorf("first net_pay cell = %q, want $200.25", got)
	}
	if got := rows[0][1].Text; got != "160" {
		t.Errorf("first hours cell = %q, want 160", got)
	}

	if doc.Totals == nil {
		t.Fatal("Totals = nil, want totals row")
	}
	if got := doc.Totals[0].Text; got != "Total" {
		t.Errorf("totals label = %q, want Total", got)
	}
	if got := doc.Totals[2].Text; got != "$350.50" {
		t.Errorf("net_pay total = %q, want $350.50", got)
	}
	if got := doc.Totals[1].Text; got != "280" {
		t.Errorf("hours total = %q, want 280", got)
	}
}

func TestBuildDocumentEmptyRows(t *testing.T) {
	doc := BuildDocument(payrollTemplate(), nil, renderContext())

	if doc.Placeholder != "No data available" {
		t.Errorf("Placeholder = %q, want No data available", doc.Placeholder)
	}
	if doc.Totals != nil {
		t.Error("Totals present for empty report, want suppressed")
	}
	if len(doc.Groups) != 0 {
		t.Errorf("got %d groups, want none", len(doc.Groups))
	}
	if len(doc.Columns) != 3 {
		t.Errorf("got %d columns, want headers even without rows", len(doc.Columns))
	}
}

func TestBuildDocumentTotalsDisabled(t *testing.T) {
	tpl := payrollTemplate()
	tpl.Config.ShowTotals = false

	doc := BuildDocument(tpl, payrollRows(), renderContext())
	if doc.Totals != nil {
		t.Error("Totals present with showTotals off, want suppressed")
	}
	if doc.Aggregates.Totals["net_pay"] != 350.50 {
		t.Errorf("Aggregates.Totals[net_pay] = %v, want 350.50 regardless of the row",
			doc.Aggregates.Totals["net_pay"])
	}
}

func TestBuildDocumentGrouped(t *testing.T) {
	tpl := payrollTemplate()
	tpl.Config.GroupBy = "department"

	rows := []common_models.Row{
		{"employee": common_models.String("Alice"), "department": common_models.String("Engineering"), "net_pay": common_models.Number(100)},
		{"employee": common_models.String("Bob"), "department": common_models.String("Sales"), "net_pay": common_models.Number(50)},
		{"employee": common_models.String("Carol"), "department": common_models.String("Engineering"), "net_pay": common_models.Number(75)},
	}

	doc := BuildDocument(tpl, rows, renderContext())
	if len(doc.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(doc.Groups))
	}
	if doc.Groups[0].Label != "Engineering" || doc.Groups[1].Label != "Sales" {
		t.Errorf("labels = [%s, %s], want first-seen [Engineering, Sales]",
			doc.Groups[0].Label, doc.Groups[1].Label)
	}
	if len(doc.Groups[0].Rows) != 2 {
		t.Errorf("Engineering has %d rows, want 2", len(doc.Groups[0].Rows))
	}
}

func TestTabular(t *testing.T) {
	tpl := payrollTemplate()
	tpl.Config.GroupBy = "department"

	rows := []common_models.Row{
		{"employee": common_models.String("Alice"), "department": common_models.String("Engineering"), "hours": common_models.Number(8), "net_pay": common_models.Number(100)},
		{"employee": common_models.String("Bob"), "department": common_models.String("Sales"), "hours": common_models.Number(4), "net_pay": common_models.Number(50)},
	}

	grid := BuildDocument(tpl, rows, renderContext()).Tabular()

	// header, label, row, blank, label, row, totals
	if len(grid) != 7 {
		t.Fatalf("got %d grid rows, want 7", len(grid))
	}
	if grid[0][0] != "Employee" || grid[0][2] != "Net Pay" {
		t.Errorf("header = %v", grid[0])
	}
	if grid[1][0] != "Engineering" {
		t.Errorf("first label row = %v, want Engineering", grid[1])
	}
	if grid[2][0] != "Alice" || grid[2][2] != "$100.00" {
		t.Errorf("first data row = %v", grid[2])
	}
	for i, cell := range grid[3] {
		if cell != "" {
			t.Errorf("separator row cell %d = %q, want blank", i, cell)
		}
	}
	if grid[4][0] != "Sales" {
		t.Errorf("second label row = %v, want Sales", grid[4])
	}
	last := grid[len(grid)-1]
	if last[0] != "Total" || last[2] != "$150.00" {
		t.Errorf("totals row = %v", last)
	}
}

func TestTabularEmpty(t *testing.T) {
	grid := BuildDocument(payrollTemplate(), nil, renderContext()).Tabular()

	if len(grid) != 2 {
		t.Fatalf("got %d grid rows, want header plus placeholder", len(grid))
	}
	if grid[1][0] != "No data available" {
		t.Errorf("placeholder row = %v", grid[1])
	}
}
