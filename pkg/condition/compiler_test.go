package condition

import (
	"reflect"
	"testing"
	"time"

	common_models "go-payroll/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCompile(t *testing.T) {
	compiler := NewCompiler(map[string]interface{}{
		"currentUser": "emp-42",
	})

	tests := []struct {
		name    string
		filters []common_models.Filter
		want    bson.M
		wantErr bool
	}{
		{
			name:    "Empty Filters Match All",
			filters: nil,
			want:    bson.M{},
		},
		{
			name: "Simple Equality",
			filters: []common_models.Filter{
				{Field: "status", Operator: "eq", Value: "present"},
			},
			want: bson.M{"$and": []bson.M{
				{"status": bson.M{"$eq": "present"}},
			}},
		},
		{
			name: "Multiple Filters Are ANDed",
			filters: []common_models.Filter{
				{Field: "status", Operator: "eq", Value: "present"},
				{Field: "hours", Operator: "gte", Value: 4.0},
			},
			want: bson.M{"$and": []bson.M{
				{"status": bson.M{"$eq": "present"}},
				{"hours": bson.M{"$gte": 4.0}},
			}},
		},
		{
			name: "Between Expands To Range",
			filters: []common_models.Filter{
				{Field: "date", Operator: "between", Value: []interface{}{"2025-01-01", "2025-01-31"}},
			},
			want: bson.M{"$and": []bson.M{
				{"date": bson.M{"$gte": "2025-01-01", "$lte": "2025-01-31"}},
			}},
		},
		{
			name: "Between Rejects Single Bound",
			filters: []common_models.Filter{
				{Field: "date", Operator: "between", Value: []interface{}{"2025-01-01"}},
			},
			wantErr: true,
		},
		{
			name: "Context Variable Resolves",
			filters: []common_models.Filter{
				{Field: "employee_id", Operator: "eq", Value: "$currentUser"},
			},
			want: bson.M{"$and": []bson.M{
				{"employee_id": bson.M{"$eq": "emp-42"}},
			}},
		},
		{
			name: "Unknown Variable Fails",
			filters: []common_models.Filter{
				{Field: "employee_id", Operator: "eq", Value: "$ghost"},
			},
			wantErr: true,
		},
		{
			name: "Unknown Operator Fails",
			filters: []common_models.Filter{
				{Field: "status", Operator: "near", Value: "present"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compiler.Compile(tt.filters)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveNow(t *testing.T) {
	compiler := NewCompiler(nil)

	got, err := compiler.Compile([]common_models.Filter{
		{Field: "date", Operator: "lte", Value: "$now"},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	conditions := got["$and"].([]bson.M)
	resolved := conditions[0]["date"].(bson.M)["$lte"]
	if _, ok := resolved.(time.Time); !ok {
		t.Errorf("$now resolved to %T, want time.Time", resolved)
	}
}
