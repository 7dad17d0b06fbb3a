package datasource

import (
	"fmt"
	"sort"
	"strings"
	"time"

	common_models "go-payroll/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// filterBuilder turns one filter argument into query conditions.
type filterBuilder func(value string) ([]common_models.Filter, error)

// sourceSpec describes where a report type reads from, its stable row
// order and the filter keys it accepts.
type sourceSpec struct {
	collection string
	sort       bson.D
	filters    map[string]filterBuilder
}

var sources = map[common_models.ReportType]sourceSpec{
	common_models.ReportTypeAttendance: {
		collection: "attendance_records",
		sort:       bson.D{{Key: "date", Value: 1}, {Key: "employee", Value: 1}},
		filters: map[string]filterBuilder{
			"date_range": dateRangeFilter("date"),
			"month":      monthFilter("date"),
			"employee":   referenceFilter("employee_id", "employee"),
			"status":     eqFilter("status"),
		},
	},
	common_models.ReportTypePayroll: {
		collection: "payroll_records",
		sort:       bson.D{{Key: "period", Value: 1}, {Key: "employee", Value: 1}},
		filters: map[string]filterBuilder{
			"month":    eqFilter("period"),
			"employee": referenceFilter("employee_id", "employee"),
			"status":   eqFilter("status"),
		},
	},
	common_models.ReportTypeEmployee: {
		collection: "employees",
		sort:       bson.D{{Key: "name", Value: 1}},
		filters: map[string]filterBuilder{
			"status":     eqFilter("status"),
			"department": eqFilter("department"),
		},
	},
	common_models.ReportTypeProject: {
		collection: "projects",
		sort:       bson.D{{Key: "name", Value: 1}},
		filters: map[string]filterBuilder{
			"status":     eqFilter("status"),
			"date_range": dateRangeFilter("start_date"),
		},
	},
	common_models.ReportTypeExpenditure: {
		collection: "expenditures",
		sort:       bson.D{{Key: "date", Value: 1}},
		filters: map[string]filterBuilder{
			"date_range": dateRangeFilter("date"),
			"month":      monthFilter("date"),
			"category":   eqFilter("category"),
			"project":    referenceFilter("project_id", "project"),
		},
	},
	common_models.ReportTypeIncome: {
		collection: "incomes",
		sort:       bson.D{{Key: "date", Value: 1}},
		filters: map[string]filterBuilder{
			"date_range": dateRangeFilter("date"),
			"month":      monthFilter("date"),
			"category":   eqFilter("category"),
			"project":    referenceFilter("project_id", "project"),
		},
	},
}

// translate walks the filter arguments in key order and builds the query
// conditions the source understands. Unknown keys are ignored with a
// warning so a stale UI never breaks a report; the expr key is pulled
// aside for post-fetch evaluation.
func (s *DataSourceServiceImpl) translate(spec sourceSpec, args map[string]string) ([]common_models.Filter, string, error) {
	var (
		filters []common_models.Filter
		expr    string
	)

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := args[key]
		if value == "" {
			continue
		}
		if key == exprFilterKey {
			expr = value
			continue
		}

		build, ok := spec.filters[key]
		if !ok {
			s.Logger.Warn("Ignoring unknown report filter",
				zap.String("collection", spec.collection),
				zap.String("filter", key))
			continue
		}

		built, err := build(value)
		if err != nil {
			return nil, "", err
		}
		filters = append(filters, built...)
	}

	return filters, expr, nil
}

func eqFilter(field string) filterBuilder {
	return func(value string) ([]common_models.Filter, error) {
		return []common_models.Filter{
			{Field: field, Operator: "eq", Value: value},
		}, nil
	}
}

// referenceFilter matches a hex object id against the id field, and any
// other value against the denormalized display field.
func referenceFilter(idField, nameField string) filterBuilder {
	return func(value string) ([]common_models.Filter, error) {
		if oid, err := primitive.ObjectIDFromHex(value); err == nil {
			return []common_models.Filter{
				{Field: idField, Operator: "eq", Value: oid},
			}, nil
		}
		return []common_models.Filter{
			{Field: nameField, Operator: "eq", Value: value},
		}, nil
	}
}

// dateRangeFilter accepts "from,to" ISO dates and matches the whole
// closed range, last day included.
func dateRangeFilter(field string) filterBuilder {
	return func(value string) ([]common_models.Filter, error) {
		parts := strings.SplitN(value, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: date_range must be from,to", common_models.ErrBadFilter)
		}

		from, err := time.Parse("2006-01-02", strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad date_range start %q", common_models.ErrBadFilter, parts[0])
		}
		to, err := time.Parse("2006-01-02", strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad date_range end %q", common_models.ErrBadFilter, parts[1])
		}

		return []common_models.Filter{
			{Field: field, Operator: "gte", Value: from},
			{Field: field, Operator: "lt", Value: to.AddDate(0, 0, 1)},
		}, nil
	}
}

// monthFilter accepts "YYYY-MM" and matches every instant inside that
// calendar month.
func monthFilter(field string) filterBuilder {
	return func(value string) ([]common_models.Filter, error) {
		start, err := time.Parse("2006-01", value)
		if err != nil {
			return nil, fmt.Errorf("%w: month must be YYYY-MM, got %q", common_models.ErrBadFilter, value)
		}

		return []common_models.Filter{
			{Field: field, Operator: "gte", Value: start},
			{Field: field, Operator: "lt", Value: start.AddDate(0, 1, 0)},
		}, nil
	}
}
