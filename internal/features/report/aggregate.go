package report

import (
	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/template"
	"go-payroll/pkg/format"
)

// Aggregates holds the per-column sums and averages over the full row
// set. Only visible columns flagged computeTotal with a number or
// currency format contribute; everything else is absent from the maps.
type Aggregates struct {
	Totals   map[string]float64 `json:"totals"`
	Averages map[string]float64 `json:"averages"`
	RowCount int                `json:"row_count"`
}

// Aggregate sums the eligible columns over all rows. Summation is
// plain addition, so row order never changes the result. Averages
// divide by the row count; an empty row set reports zero averages
// instead of failing.
func Aggregate(columns []template.ColumnConfig, rows []common_models.Row) Aggregates {
	agg := Aggregates{
		Totals:   map[string]float64{},
		Averages: map[string]float64{},
		RowCount: len(rows),
	}

	for _, col := range columns {
		if !col.TotalEligible() {
			continue
		}
		total := 0.0
		for _, row := range rows {
			total += format.Numeric(row[col.Key])
		}
		agg.Totals[col.Key] = total

		if len(rows) > 0 {
			agg.Averages[col.Key] = total / float64(len(rows))
		} else {
			agg.Averages[col.Key] = 0
		}
	}

	return agg
}

// RowGroup is one partition of the row set.
type RowGroup struct {
	Key  common_models.CellValue
	Rows []common_models.Row
}

// GroupRows partitions rows by the value at groupBy, preserving the
// order groups are first seen and each group's internal row order. An
// empty groupBy yields a single unlabelled group; an empty row set
// yields no groups.
func GroupRows(rows []common_models.Row, groupBy string) []RowGroup {
	if len(rows) == 0 {
		return nil
	}
	if groupBy == "" {
		return []RowGroup{{Key: common_models.Null(), Rows: rows}}
	}

	var groups []RowGroup
	index := map[string]int{}

	for _, row := range rows {
		key := row[groupBy]
		text := key.Text()

		i, ok := index[text]
		if !ok {
			i = len(groups)
			index[text] = i
			groups = append(groups, RowGroup{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}
