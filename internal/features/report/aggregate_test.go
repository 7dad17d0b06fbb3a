package report

import (
	"testing"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/template"
)

func payrollColumns() []template.ColumnConfig {
	return []template.ColumnConfig{
		{Key: "employee", Title: "Employee", Format: common_models.FormatText, Visible: true},
		{Key: "hours", Title: "Hours", Format: common_models.FormatNumber, Visible: true, ComputeTotal: true},
		{Key: "net_pay", Title: "Net Pay", Format: common_models.FormatCurrency, Visible: true, ComputeTotal: true},
		{Key: "rating", Title: "Rating", Format: common_models.FormatText, Visible: true, ComputeTotal: true},
		{Key: "bonus", Title: "Bonus", Format: common_models.FormatCurrency, Visible: false, ComputeTotal: true},
		{Key: "deductions", Title: "Deductions", Format: common_models.FormatCurrency, Visible: true},
	}
}

func payrollRows() []common_models.Row {
	return []common_models.Row{
		{
			"employee":   common_models.String("Alice"),
			"hours":      common_models.Number(160),
			"net_pay":    common_models.Number(200.25),
			"bonus":      common_models.Number(50),
			"deductions": common_models.Number(10),
		},
		{
			"employee":   common_models.String("Bob"),
			"hours":      common_models.Number(120),
			"net_pay":    common_models.Number(150.25),
			"bonus":      common_models.Number(25),
			"deductions": common_models.Number(20),
		},
	}
}

func TestAggregate(t *testing.T) {
	agg := Aggregate(payrollColumns(), payrollRows())

	if agg.RowCount != 2 {
		t.Fatalf("RowCount = %d, want 2", agg.RowCount)
	}
	if got := agg.Totals["net_pay"]; got != 350.50 {
		t.Errorf("Totals[net_pay] = %v, want 350.50", got)
	}
	if got := agg.Totals["hours"]; got != 280 {
		t.Errorf("Totals[hours] = %v, want 280", got)
	}
	if got := agg.Averages["net_pay"]; got != 175.25 {
		t.Errorf("Averages[net_pay] = %v, want 175.25", got)
	}
	if got := agg.Averages["hours"]; got != 140 {
		t.Errorf("Averages[hours] = %v, want 140", got)
	}

	// Text, hidden and untotalled columns must not appear at all.
	for _, key := range []string{"employee", "rating", "bonus", "deductions"} {
		if _, ok := agg.Totals[key]; ok {
			t.Errorf("Totals contains %q, want absent", key)
		}
		if _, ok := agg.Averages[key]; ok {
			t.Errorf("Averages contains %q, want absent", key)
		}
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	rows := payrollRows()
	reversed := []common_models.Row{rows[1], rows[0]}

	a := Aggregate(payrollColumns(), rows)
	b := Aggregate(payrollColumns(), reversed)

	if a.Totals["net_pay"] != b.Totals["net_pay"] {
		t.Errorf("totals differ across row orders: %v vs %v", a.Totals["net_pay"], b.Totals["net_pay"])
	}
	if a.Averages["hours"] != b.Averages["hours"] {
		t.Errorf("averages differ across row orders: %v vs %v", a.Averages["hours"], b.Averages["hours"])
	}
}

func TestAggregateEmptyRows(t *testing.T) {
	agg := Aggregate(payrollColumns(), nil)

	if agg.RowCount != 0 {
		t.Fatalf("RowCount = %d, want 0", agg.RowCount)
	}
	if got := agg.Totals["net_pay"]; got != 0 {
		t.Errorf("Totals[net_pay] = %v, want 0", got)
	}
	if got := agg.Averages["net_pay"]; got != 0 {
		t.Errorf("Averages[net_pay] = %v, want 0", got)
	}
}

func TestAggregateMissingAndMalformedValues(t *testing.T) {
	rows := []common_models.Row{
		{"hours": common_models.Number(8)},
		{"hours": common_models.String("not a number")},
		{}, // value missing entirely
	}
	columns := []template.ColumnConfig{
		{Key: "hours", Format: common_models.FormatNumber, Visible: true, ComputeTotal: true},
	}

	agg := Aggregate(columns, rows)
	if got := agg.Totals["hours"]; got != 8 {
		t.Errorf("Totals[hours] = %v, want 8", got)
	}
}

func TestGroupRows(t *testing.T) {
	rows := []common_models.Row{
		{"department": common_models.String("Engineering"), "employee": common_models.String("Alice")},
		{"department": common_models.String("Sales"), "employee": common_models.String("Bob")},
		{"department": common_models.String("Engineering"), "employee": common_models.String("Carol")},
	}

	groups := GroupRows(rows, "department")
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key.Text() != "Engineering" || groups[1].Key.Text() != "Sales" {
		t.Errorf("group order = [%s, %s], want first-seen [Engineering, Sales]",
			groups[0].Key.Text(), groups[1].Key.Text())
	}
	if len(groups[0].Rows) != 2 || len(groups[1].Rows) != 1 {
		t.Errorf("group sizes = [%d, %d], want [2, 1]", len(groups[0].Rows), len(groups[1].Rows))
	}
	if got := groups[0].Rows[1]["employee"].Text(); got != "Carol" {
		t.Errorf("second Engineering row = %s, want Carol", got)
	}
}

func TestGroupRowsUngrouped(t *testing.T) {
	rows := payrollRows()

	groups := GroupRows(rows, "")
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Rows) != len(rows) {
		t.Errorf("single group holds %d rows, want %d", len(groups[0].Rows), len(rows))
	}
}

func TestGroupRowsEmpty(t *testing.T) {
	if groups := GroupRows(nil, "department"); groups != nil {
		t.Errorf("got %d groups for empty rows, want none", len(groups))
	}
}
