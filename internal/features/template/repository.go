package template

import (
	"context"
	"time"

	"go-payroll/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// TemplateRepository is a durable keyed store of report templates.
// Save is an atomic whole-document upsert: readers observe either the
// previous or the new template, never a partial write.
type TemplateRepository interface {
	List(ctx context.Context) ([]ReportTemplate, error)
	Get(ctx context.Context, id string) (*ReportTemplate, error)
	Save(ctx context.Context, tpl *ReportTemplate) error
	Delete(ctx context.Context, id string) error
}

type MongoTemplateRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewMongoTemplateRepository(db *database.MongodbDB, logger *zap.Logger) *MongoTemplateRepository {
	return &MongoTemplateRepository{
		collection: db.DB.Collection("report_templates"),
		logger:     logger,
	}
}

func (r *MongoTemplateRepository) List(ctx context.Context) ([]ReportTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	// Decode records one by one so a single corrupt document is skipped
	// instead of failing the whole listing.
	var templates []ReportTemplate
	for cursor.Next(ctx) {
		var tpl ReportTemplate
		if err := cursor.Decode(&tpl); err != nil {
			r.logger.Warn("Skipping unreadable report template", zap.Error(err))
			continue
		}
		templates = append(templates, tpl)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *MongoTemplateRepository) Get(ctx context.Context, id string) (*ReportTemplate, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var tpl ReportTemplate
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&tpl)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &tpl, nil
}

func (r *MongoTemplateRepository) Save(ctx context.Context, tpl *ReportTemplate) error {
	if tpl.ID.IsZero() {
		tpl.ID = primitive.NewObjectID()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now()
	}
	tpl.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tpl.ID}, tpl, opts)
	return err
}

func (r *MongoTemplateRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *MongoTemplateRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "type", Value: 1},
				{Key: "name", Value: 1},
			},
			Options: options.Index().SetName("idx_type_name"),
		},
		{
			Keys: bson.D{
				{Key: "type", Value: 1},
				{Key: "is_default", Value: 1},
			},
			Options: options.Index().SetName("idx_type_default"),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
