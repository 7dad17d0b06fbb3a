package datasource

import (
	"time"

	common_models "go-payroll/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToRow converts one raw document into the typed row union. This is the
// single place loose driver shapes become cell values; anything the
// union cannot express maps to null rather than leaking through.
func ToRow(doc bson.M) common_models.Row {
	row := make(common_models.Row, len(doc))
	for key, value := range doc {
		row[key] = toCell(value)
	}
	return row
}

func toCell(value interface{}) common_models.CellValue {
	switch v := value.(type) {
	case string:
		return common_models.String(v)
	case int:
		return common_models.Number(float64(v))
	case int32:
		return common_models.Number(float64(v))
	case int64:
		return common_models.Number(float64(v))
	case float64:
		return common_models.Number(v)
	case bool:
		if v {
			return common_models.String("true")
		}
		return common_models.String("false")
	case primitive.DateTime:
		return common_models.Date(v.Time())
	case time.Time:
		return common_models.Date(v)
	case primitive.ObjectID:
		return common_models.String(v.Hex())
	case bson.M:
		// Lookup sub-documents render as their display name.
		if name, ok := v["name"].(string); ok {
			return common_models.String(name)
		}
		return common_models.Null()
	default:
		return common_models.Null()
	}
}
