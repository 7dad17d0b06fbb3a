package schedule

import (
	"context"
	"time"

	"go-payroll/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *ScheduledReport) error
	GetByID(ctx context.Context, id string) (*ScheduledReport, error)
	List(ctx context.Context, filter map[string]interface{}) ([]ScheduledReport, error)
	Update(ctx context.Context, schedule *ScheduledReport) error
	Delete(ctx context.Context, id string) error
	GetActive(ctx context.Context) ([]ScheduledReport, error)
	UpdateLastRun(ctx context.Context, id string, lastRun time.Time, nextRun *time.Time) error

	// Run log operations
	CreateLog(ctx context.Context, log *ScheduleRunLog) error
	GetLogs(ctx context.Context, scheduleID string, limit int) ([]ScheduleRunLog, error)
	UpdateLog(ctx context.Context, log *ScheduleRunLog) error
}

type ScheduleRepositoryImpl struct {
	collection    *mongo.Collection
	logCollection *mongo.Collection
}

func NewScheduleRepository(db *database.MongodbDB) ScheduleRepository {
	return &ScheduleRepositoryImpl{
		collection:    db.DB.Collection("scheduled_reports"),
		logCollection: db.DB.Collection("schedule_run_logs"),
	}
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, schedule *ScheduledReport) error {
	schedule.ID = primitive.NewObjectID()
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, schedule)
	return err
}

func (r *ScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (*ScheduledReport, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var schedule ScheduledReport
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &schedule, nil
}

func (r *ScheduleRepositoryImpl) List(ctx context.Context, filter map[string]interface{}) ([]ScheduledReport, error) {
	var schedules []ScheduledReport

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}

	if schedules == nil {
		schedules = []ScheduledReport{}
	}

	return schedules, nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, schedule *ScheduledReport) error {
	schedule.UpdatedAt = time.Now()
	filter := bson.M{"_id": schedule.ID}
	update := bson.M{"$set": schedule}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

func (r *ScheduleRepositoryImpl) GetActive(ctx context.Context) ([]ScheduledReport, error) {
	filter := bson.M{"active": true}
	return r.List(ctx, filter)
}

func (r *ScheduleRepositoryImpl) UpdateLastRun(ctx context.Context, id string, lastRun time.Time, nextRun *time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"last_run":   lastRun,
			"next_run":   nextRun,
			"updated_at": time.Now(),
		},
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (r *ScheduleRepositoryImpl) CreateLog(ctx context.Context, log *ScheduleRunLog) error {
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now()

	_, err := r.logCollection.InsertOne(ctx, log)
	return err
}

func (r *ScheduleRepositoryImpl) GetLogs(ctx context.Context, scheduleID string, limit int) ([]ScheduleRunLog, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return nil, err
	}

	var logs []ScheduleRunLog

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.logCollection.Find(ctx, bson.M{"schedule_id": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	if logs == nil {
		logs = []ScheduleRunLog{}
	}

	return logs, nil
}

func (r *ScheduleRepositoryImpl) UpdateLog(ctx context.Context, log *ScheduleRunLog) error {
	filter := bson.M{"_id": log.ID}
	update := bson.M{"$set": log}

	_, err := r.logCollection.UpdateOne(ctx, filter, update)
	return err
}
