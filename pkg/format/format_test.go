package format

import (
	"testing"
	"time"

	common_models "go-payroll/internal/common/models"
)

func TestCell(t *testing.T) {
	tests := []struct {
		name      string
		value     common_models.CellValue
		format    common_models.ColumnFormat
		want      string
		wantAlign common_models.Alignment
	}{
		{
			name:      "Currency With Grouping",
			value:     common_models.Number(1234.5),
			format:    common_models.FormatCurrency,
			want:      "$1,234.50",
			wantAlign: common_models.AlignRight,
		},
		{
			name:      "Currency Zero",
			value:     common_models.Number(0),
			format:    common_models.FormatCurrency,
			want:      "$0.00",
			wantAlign: common_models.AlignRight,
		},
		{
			name:      "Percentage Renders Value As Given",
			value:     common_models.Number(42),
			format:    common_models.FormatPercentage,
			want:      "42.00%",
			wantAlign: common_models.AlignRight,
		},
		{
			name:      "Percentage Zero",
			value:     common_models.Number(0),
			format:    common_models.FormatPercentage,
			want:      "0.00%",
			wantAlign: common_models.AlignRight,
		},
		{
			name:      "Number Keeps Precision",
			value:     common_models.Number(1234.567),
			format:    common_models.FormatNumber,
			want:      "1,234.567",
			wantAlign: common_models.AlignRight,
		},
		{
			name:      "Number From Numeric String",
			value:     common_models.String("8.5"),
			format:    common_models.FormatNumber,
			want:      "8.5",
			wantAlign: common_models.AlignRight,
		},
		{
			name:      "Number From Garbage String",
			value:     common_models.String("n/a"),
			format:    common_models.FormatNumber,
			want:      "0",
			wantAlign: common_models.AlignRight,
		},
		{
			name:      "Date From Time",
			value:     common_models.Date(time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)),
			format:    common_models.FormatDate,
			want:      "Mar 07, 2025",
			wantAlign: common_models.AlignCenter,
		},
		{
			name:      "Date From ISO String",
			value:     common_models.String("2025-03-07"),
			format:    common_models.FormatDate,
			want:      "Mar 07, 2025",
			wantAlign: common_models.AlignCenter,
		},
		{
			name:      "Date From RFC3339 String",
			value:     common_models.String("2025-03-07T10:30:00Z"),
			format:    common_models.FormatDate,
			want:      "Mar 07, 2025",
			wantAlign: common_models.AlignCenter,
		},
		{
			name:      "Date From Timestamp String",
			value:     common_models.String("2025-03-07 10:30:00"),
			format:    common_models.FormatDate,
			want:      "Mar 07, 2025",
			wantAlign: common_models.AlignCenter,
		},
		{
			name:      "Unparseable Date Degrades To Empty",
			value:     common_models.String("next tuesday"),
			format:    common_models.FormatDate,
			want:      "",
			wantAlign: common_models.AlignCenter,
		},
		{
			name:      "Text Passthrough",
			value:     common_models.String("Priya Sharma"),
			format:    common_models.FormatText,
			want:      "Priya Sharma",
			wantAlign: common_models.AlignLeft,
		},
		{
			name:      "Text Null Is Empty",
			value:     common_models.Null(),
			format:    common_models.FormatText,
			want:      "",
			wantAlign: common_models.AlignLeft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, align := Cell(tt.value, tt.format)
			if got != tt.want {
				t.Errorf("Cell() = %q, want %q", got, tt.want)
			}
			if align != tt.wantAlign {
				t.Errorf("Cell() align = %q, want %q", align, tt.wantAlign)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name     string
		explicit common_models.Alignment
		format   common_models.ColumnFormat
		want     common_models.Alignment
	}{
		{name: "Explicit Wins", explicit: common_models.AlignCenter, format: common_models.FormatCurrency, want: common_models.AlignCenter},
		{name: "Currency Defaults Right", explicit: "", format: common_models.FormatCurrency, want: common_models.AlignRight},
		{name: "Date Defaults Center", explicit: "", format: common_models.FormatDate, want: common_models.AlignCenter},
		{name: "Text Defaults Left", explicit: "", format: common_models.FormatText, want: common_models.AlignLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Align(tt.explicit, tt.format); got != tt.want {
				t.Errorf("Align() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		name  string
		value common_models.CellValue
		want  float64
	}{
		{name: "Number", value: common_models.Number(350.5), want: 350.5},
		{name: "Numeric String", value: common_models.String(" 42.5 "), want: 42.5},
		{name: "Grouped String", value: common_models.String("1,234.50"), want: 1234.5},
		{name: "Garbage String", value: common_models.String("eight"), want: 0},
		{name: "Null", value: common_models.Null(), want: 0},
		{name: "Date", value: common_models.Date(time.Now()), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Numeric(tt.value); got != tt.want {
				t.Errorf("Numeric() = %v, want %v", got, tt.want)
			}
		})
	}
}
