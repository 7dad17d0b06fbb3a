package datasource

import (
	"fmt"

	common_models "go-payroll/internal/common/models"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"
)

// exprFilterKey is the reserved filter argument holding a tengo
// expression evaluated against each fetched row, for conditions that
// cannot be pushed into the store query.
const exprFilterKey = "expr"

// filterRows keeps the rows for which the expression yields true. A
// compile failure is the caller's fault; a per-row evaluation failure
// only excludes that row.
func (s *DataSourceServiceImpl) filterRows(rows []common_models.Row, expr string) ([]common_models.Row, error) {
	compiled, err := compileExpr(expr)
	if err != nil {
		return nil, err
	}

	var kept []common_models.Row
	for _, row := range rows {
		ok, err := evalExpr(compiled, row)
		if err != nil {
			s.Logger.Warn("Excluding row after expr filter error", zap.Error(err))
			continue
		}
		if ok {
			kept = append(kept, row)
		}
	}

	return kept, nil
}

func compileExpr(expr string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte("ok := " + expr))
	if err := script.Add("row", map[string]interface{}{}); err != nil {
		return nil, err
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: bad expr filter: %v", common_models.ErrBadFilter, err)
	}
	return compiled, nil
}

func evalExpr(compiled *tengo.Compiled, row common_models.Row) (bool, error) {
	clone := compiled.Clone()
	if err := clone.Set("row", exprRow(row)); err != nil {
		return false, err
	}
	if err := clone.Run(); err != nil {
		return false, err
	}
	return clone.Get("ok").Bool(), nil
}

// exprRow flattens the typed row into the plain values a script indexes
// as row.key. Dates appear as ISO strings so comparisons read naturally.
func exprRow(row common_models.Row) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for key, v := range row {
		switch v.Kind {
		case common_models.KindString:
			out[key] = v.Str
		case common_models.KindNumber:
			out[key] = v.Num
		case common_models.KindDate:
			out[key] = v.Date.Format("2006-01-02")
		default:
			out[key] = nil
		}
	}
	return out
}
