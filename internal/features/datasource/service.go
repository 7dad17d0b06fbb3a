package datasource

import (
	"context"
	"fmt"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/database"
	"go-payroll/pkg/condition"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DataSourceService resolves the rows behind a report type. It is the
// concrete row resolver the report engine renders from: one collection
// per report type, filter arguments translated into a Mongo query, and
// every document converted to the typed row union at this boundary.
type DataSourceService interface {
	FetchRows(ctx context.Context, reportType common_models.ReportType, filters map[string]string) ([]common_models.Row, error)
}

type DataSourceServiceImpl struct {
	DB     *database.MongodbDB
	Logger *zap.Logger
}

func NewDataSourceService(db *database.MongodbDB, logger *zap.Logger) DataSourceService {
	return &DataSourceServiceImpl{
		DB:     db,
		Logger: logger,
	}
}

func (s *DataSourceServiceImpl) FetchRows(ctx context.Context, reportType common_models.ReportType, args map[string]string) ([]common_models.Row, error) {
	spec, ok := sources[reportType]
	if !ok {
		return nil, fmt.Errorf("no data source for report type %q", reportType)
	}

	filters, expr, err := s.translate(spec, args)
	if err != nil {
		return nil, err
	}

	query, err := condition.NewCompiler(nil).Compile(filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common_models.ErrBadFilter, err)
	}

	findOptions := options.Find().SetSort(spec.sort)
	cursor, err := s.DB.DB.Collection(spec.collection).Find(ctx, query, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", spec.collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", spec.collection, err)
	}

	rows := make([]common_models.Row, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, ToRow(doc))
	}

	if expr != "" {
		rows, err = s.filterRows(rows, expr)
		if err != nil {
			return nil, err
		}
	}

	return rows, nil
}
