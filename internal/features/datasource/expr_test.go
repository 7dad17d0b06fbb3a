package datasource

import (
	"errors"
	"testing"

	common_models "go-payroll/internal/common/models"

	"go.uber.org/zap"
)

func exprService() *DataSourceServiceImpl {
	return &DataSourceServiceImpl{Logger: zap.NewNop()}
}

func exprRows() []common_models.Row {
	return []common_models.Row{
		{"employee": common_models.String("Alice"), "net_pay": common_models.Number(100), "status": common_models.String("paid")},
		{"employee": common_models.String("Bob"), "net_pay": common_models.Number(500), "status": common_models.String("pending")},
		{"employee": common_models.String("Carol"), "net_pay": common_models.Number(300), "status": common_models.String("paid")},
	}
}

func TestFilterRows(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"numeric comparison", `row.net_pay > 200`, []string{"Bob", "Carol"}},
		{"string equality", `row.status == "paid"`, []string{"Alice", "Carol"}},
		{"combined", `row.net_pay > 200 && row.status == "paid"`, []string{"Carol"}},
		{"matches nothing", `row.net_pay > 10000`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exprService().filterRows(exprRows(), tt.expr)
			if err != nil {
				t.Fatalf("filterRows() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("kept %d rows, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i]["employee"].Text() != name {
					t.Errorf("row %d = %s, want %s", i, got[i]["employee"].Text(), name)
				}
			}
		})
	}
}

func TestFilterRowsCompileError(t *testing.T) {
	_, err := exprService().filterRows(exprRows(), `&&&`)
	if !errors.Is(err, common_models.ErrBadFilter) {
		t.Errorf("error = %v, want ErrBadFilter", err)
	}
}

func TestFilterRowsExcludesFailingRows(t *testing.T) {
	rows := []common_models.Row{
		{"employee": common_models.String("Alice"), "hours": common_models.Number(8)},
		{"employee": common_models.String("Bob")}, // no hours key
	}

	got, err := exprService().filterRows(rows, `row.hours > 4`)
	if err != nil {
		t.Fatalf("filterRows() error = %v", err)
	}
	if len(got) != 1 || got[0]["employee"].Text() != "Alice" {
		t.Errorf("kept = %+v, want just Alice", got)
	}
}
