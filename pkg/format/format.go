// Package format turns resolved cell values into display strings.
//
// Every rule here is total: a value that cannot be parsed degrades to an
// empty or zero cell instead of failing, so one bad field never aborts a
// whole report.
package format

import (
	"strconv"
	"strings"
	"time"

	common_models "go-payroll/internal/common/models"

	"github.com/dustin/go-humanize"
)

// DateStyle is the fixed rendering applied by the date format.
const DateStyle = "Jan 02, 2006"

// CurrencySymbol prefixes every currency cell.
const CurrencySymbol = "$"

// moneyPattern renders grouped thousands with exactly two fraction
// digits, the shape shared by currency and percentage cells.
const moneyPattern = "#,###.##"

// dateLayouts are the accepted input shapes for string-typed dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// Cell converts one value into its display string for the given column
// format and returns the format's default alignment:
//
//	text        plain string form, null renders as ""     left
//	date        DateStyle, unparseable renders as ""      center
//	number      grouped thousands, precision preserved    right
//	currency    "$" + grouped thousands, 2 decimals       right
//	percentage  grouped thousands, 2 decimals, "%"        right
func Cell(v common_models.CellValue, f common_models.ColumnFormat) (string, common_models.Alignment) {
	switch f {
	case common_models.FormatDate:
		return formatDate(v), common_models.AlignCenter
	case common_models.FormatNumber:
		return humanize.Commaf(Numeric(v)), common_models.AlignRight
	case common_models.FormatCurrency:
		return CurrencySymbol + humanize.FormatFloat(moneyPattern, Numeric(v)), common_models.AlignRight
	case common_models.FormatPercentage:
		return humanize.FormatFloat(moneyPattern, Numeric(v)) + "%", common_models.AlignRight
	default:
		return v.Text(), common_models.AlignLeft
	}
}

// Align resolves the alignment for a column: an explicit setting wins,
// otherwise the format default applies.
func Align(explicit common_models.Alignment, f common_models.ColumnFormat) common_models.Alignment {
	if explicit != "" {
		return explicit
	}
	_, def := Cell(common_models.Null(), f)
	return def
}

// Numeric coerces a value to float64 for totals and numeric display.
// Strings are parsed after stripping spaces and thousands separators;
// anything unparseable, dates and nulls coerce to 0.
func Numeric(v common_models.CellValue) float64 {
	switch v.Kind {
	case common_models.KindNumber:
		return v.Num
	case common_models.KindString:
		s := strings.ReplaceAll(strings.TrimSpace(v.Str), ",", "")
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func formatDate(v common_models.CellValue) string {
	switch v.Kind {
	case common_models.KindDate:
		return v.Date.Format(DateStyle)
	case common_models.KindString:
		s := strings.TrimSpace(v.Str)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(DateStyle)
			}
		}
		return ""
	default:
		return ""
	}
}
