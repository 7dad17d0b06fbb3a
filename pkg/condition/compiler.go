package condition

import (
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compiler translates report filters into MongoDB query documents.
// Context supplies values for $-prefixed variables in filter values.
type Compiler struct {
	Context map[string]interface{}
}

func NewCompiler(ctx map[string]interface{}) *Compiler {
	return &Compiler{Context: ctx}
}

// Compile combines all filters into a single query. Filters are always
// ANDed together; an empty list compiles to the match-all query.
func (c *Compiler) Compile(filters []models.Filter) (bson.M, error) {
	var conditions []bson.M

	for _, filter := range filters {
		cond, err := c.compileFilter(filter)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}

	if len(conditions) == 0 {
		return bson.M{}, nil
	}

	return bson.M{"$and": conditions}, nil
}

func (c *Compiler) compileFilter(filter models.Filter) (bson.M, error) {
	val, err := c.resolveValue(filter.Value)
	if err != nil {
		return nil, err
	}

	field := filter.Field

	switch filter.Operator {
	case "eq":
		return bson.M{field: bson.M{"$eq": val}}, nil
	case "ne":
		return bson.M{field: bson.M{"$ne": val}}, nil
	case "gt":
		return bson.M{field: bson.M{"$gt": val}}, nil
	case "lt":
		return bson.M{field: bson.M{"$lt": val}}, nil
	case "gte":
		return bson.M{field: bson.M{"$gte": val}}, nil
	case "lte":
		return bson.M{field: bson.M{"$lte": val}}, nil
	case "in":
		return bson.M{field: bson.M{"$in": val}}, nil
	case "nin":
		return bson.M{field: bson.M{"$nin": val}}, nil
	case "between":
		bounds, ok := val.([]interface{})
		if !ok || len(bounds) != 2 {
			return nil, fmt.Errorf("between operator requires [low, high] value")
		}
		low, err := c.resolveValue(bounds[0])
		if err != nil {
			return nil, err
		}
		high, err := c.resolveValue(bounds[1])
		if err != nil {
			return nil, err
		}
		return bson.M{field: bson.M{"$gte": low, "$lte": high}}, nil
	case "contains":
		if strVal, ok := val.(string); ok {
			return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: strVal, Options: "i"}}}, nil
		}
		return nil, fmt.Errorf("contains operator requires string value")
	case "startsWith", "starts_with":
		if strVal, ok := val.(string); ok {
			return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: "^" + strVal, Options: "i"}}}, nil
		}
		return nil, fmt.Errorf("startsWith operator requires string value")
	case "endsWith", "ends_with":
		if strVal, ok := val.(string); ok {
			return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: strVal + "$", Options: "i"}}}, nil
		}
		return nil, fmt.Errorf("endsWith operator requires string value")
	default:
		return nil, fmt.Errorf("unknown operator: %s", filter.Operator)
	}
}

func (c *Compiler) resolveValue(val interface{}) (interface{}, error) {
	strVal, ok := val.(string)
	if !ok {
		return val, nil
	}

	if strings.HasPrefix(strVal, "$") {
		key := strings.TrimPrefix(strVal, "$")

		// Special handling for time
		if key == "now" {
			return time.Now(), nil
		}

		if resolved, ok := c.Context[key]; ok {
			return resolved, nil
		}
		return nil, fmt.Errorf("variable not found in context: %s", key)
	}

	return strVal, nil
}
