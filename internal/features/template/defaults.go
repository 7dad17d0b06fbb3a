package template

import (
	common_models "go-payroll/internal/common/models"
)

// DefaultTemplate returns the built-in template for a report type.
// Defaults are materialized into the store on first list and seeded by
// cmd/seed; they can be edited but never deleted.
func DefaultTemplate(t common_models.ReportType) ReportTemplate {
	tpl := ReportTemplate{
		Type:      t,
		IsDefault: true,
	}

	switch t {
	case common_models.ReportTypeAttendance:
		tpl.Name = "Default Attendance Report"
		tpl.Description = "Daily attendance entries with worked hours per employee."
		tpl.Config = ReportConfig{
			Columns: []ColumnConfig{
				column("date", "Date", common_models.FormatDate, false),
				column("employee", "Employee", common_models.FormatText, false),
				column("project", "Project", common_models.FormatText, false),
				column("status", "Status", common_models.FormatText, false),
				column("hours", "Hours", common_models.FormatNumber, true),
			},
			Filters:          []string{"date_range", "employee", "project", "status"},
			ShowTotals:       true,
			Orientation:      common_models.OrientationPortrait,
			PageSize:         common_models.PageSizeA4,
			IncludeDateRange: true,
		}

	case common_models.ReportTypePayroll:
		tpl.Name = "Default Payroll Report"
		tpl.Description = "Monthly salary breakdown with allowances and deductions."
		tpl.Config = ReportConfig{
			Columns: []ColumnConfig{
				column("employee", "Employee", common_models.FormatText, false),
				column("month", "Month", common_models.FormatText, false),
				column("basic_salary", "Basic Salary", common_models.FormatCurrency, true),
				column("allowances", "Allowances", common_models.FormatCurrency, true),
				column("deductions", "Deductions", common_models.FormatCurrency, true),
				column("net_salary", "Net Salary", common_models.FormatCurrency, true),
				column("attendance_pct", "Attendance", common_models.FormatPercentage, false),
			},
			Filters:     []string{"month", "employee"},
			ShowTotals:  true,
			Orientation: common_models.OrientationLandscape,
			PageSize:    common_models.PageSizeA4,
		}

	case common_models.ReportTypeEmployee:
		tpl.Name = "Default Employee Report"
		tpl.Description = "Employee directory with designation and base salary."
		tpl.Config = ReportConfig{
			Columns: []ColumnConfig{
				column("name", "Name", common_models.FormatText, false),
				column("email", "Email", common_models.FormatText, false),
				column("designation", "Designation", common_models.FormatText, false),
				column("department", "Department", common_models.FormatText, false),
				column("join_date", "Join Date", common_models.FormatDate, false),
				column("base_salary", "Base Salary", common_models.FormatCurrency, false),
			},
			Filters:     []string{"status"},
			Orientation: common_models.OrientationPortrait,
			PageSize:    common_models.PageSizeA4,
		}

	case common_models.ReportTypeProject:
		tpl.Name = "Default Project Report"
		tpl.Description = "Projects with schedule, budget and status."
		tpl.Config = ReportConfig{
			Columns: []ColumnConfig{
				column("name", "Project", common_models.FormatText, false),
				column("client", "Client", common_models.FormatText, false),
				column("start_date", "Start Date", common_models.FormatDate, false),
				column("end_date", "End Date", common_models.FormatDate, false),
				column("budget", "Budget", common_models.FormatCurrency, true),
				column("status", "Status", common_models.FormatText, false),
			},
			Filters:     []string{"status", "date_range"},
			ShowTotals:  true,
			Orientation: common_models.OrientationLandscape,
			PageSize:    common_models.PageSizeA4,
		}

	case common_models.ReportTypeExpenditure:
		tpl.Name = "Default Expenditure Report"
		tpl.Description = "Spending entries grouped by category."
		tpl.Config = ReportConfig{
			Columns: []ColumnConfig{
				column("date", "Date", common_models.FormatDate, false),
				column("category", "Category", common_models.FormatText, false),
				column("description", "Description", common_models.FormatText, false),
				column("amount", "Amount", common_models.FormatCurrency, true),
			},
			Filters:          []string{"date_range", "category"},
			ShowTotals:       true,
			GroupBy:          "category",
			Orientation:      common_models.OrientationPortrait,
			PageSize:         common_models.PageSizeA4,
			IncludeDateRange: true,
		}

	case common_models.ReportTypeIncome:
		tpl.Name = "Default Income Report"
		tpl.Description = "Incoming payments by source."
		tpl.Config = ReportConfig{
			Columns: []ColumnConfig{
				column("date", "Date", common_models.FormatDate, false),
				column("source", "Source", common_models.FormatText, false),
				column("description", "Description", common_models.FormatText, false),
				column("amount", "Amount", common_models.FormatCurrency, true),
			},
			Filters:          []string{"date_range", "category"},
			ShowTotals:       true,
			Orientation:      common_models.OrientationPortrait,
			PageSize:         common_models.PageSizeA4,
			IncludeDateRange: true,
		}
	}

	return tpl
}

func column(key, title string, format common_models.ColumnFormat, computeTotal bool) ColumnConfig {
	return ColumnConfig{
		Key:          key,
		Title:        title,
		Format:       format,
		Visible:      true,
		ComputeTotal: computeTotal,
	}
}
