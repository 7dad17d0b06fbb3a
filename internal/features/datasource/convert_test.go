package datasource

import (
	"testing"
	"time"

	common_models "go-payroll/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToRow(t *testing.T) {
	oid := primitive.NewObjectID()
	joined := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	row := ToRow(bson.M{
		"_id":      oid,
		"name":     "Alice Nguyen",
		"hours":    int32(8),
		"absences": int64(3),
		"net_pay":  1250.5,
		"active":   true,
		"archived": false,
		"joined":   primitive.NewDateTimeFromTime(joined),
		"project":  bson.M{"name": "Apollo"},
		"mystery":  bson.M{"code": 7},
		"tags":     primitive.A{"a", "b"},
	})

	tests := []struct {
		key  string
		kind common_models.ValueKind
		text string
	}{
		{"_id", common_models.KindString, oid.Hex()},
		{"name", common_models.KindString, "Alice Nguyen"},
		{"hours", common_models.KindNumber, "8"},
		{"absences", common_models.KindNumber, "3"},
		{"net_pay", common_models.KindNumber, "1250.5"},
		{"active", common_models.KindString, "true"},
		{"archived", common_models.KindString, "false"},
		{"joined", common_models.KindDate, "2024-06-01"},
		{"project", common_models.KindString, "Apollo"},
		{"mystery", common_models.KindNull, ""},
		{"tags", common_models.KindNull, ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cell := row[tt.key]
			if cell.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", cell.Kind, tt.kind)
			}
			if got := cell.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestToRowNativeTime(t *testing.T) {
	when := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	row := ToRow(bson.M{"date": when})

	cell := row["date"]
	if cell.Kind != common_models.KindDate || !cell.Date.Equal(when) {
		t.Errorf("cell = %+v, want date %v", cell, when)
	}
}

func TestToRowMissingKeyIsNull(t *testing.T) {
	row := ToRow(bson.M{})
	if row["anything"].Kind != common_models.KindNull {
		t.Error("absent key should read as null")
	}
}
