package schedule

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduledReport runs a report template on a cron schedule and writes
// the encoded artifact to the export directory.
type ScheduledReport struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	TemplateID   string             `json:"template_id" bson:"template_id"`
	OutputFormat string             `json:"output_format" bson:"output_format"` // "csv" or "xlsx"
	Schedule     string             `json:"schedule" bson:"schedule"`
	Filters      map[string]string  `json:"filters,omitempty" bson:"filters,omitempty"`
	Active       bool               `json:"active" bson:"active"`
	LastRun      *time.Time         `json:"last_run,omitempty" bson:"last_run,omitempty"`
	NextRun      *time.Time         `json:"next_run,omitempty" bson:"next_run,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// ScheduleRunLog records a single firing of a scheduled report.
type ScheduleRunLog struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ScheduleID   primitive.ObjectID `json:"schedule_id" bson:"schedule_id"`
	ScheduleName string             `json:"schedule_name" bson:"schedule_name"`
	StartTime    time.Time          `json:"start_time" bson:"start_time"`
	EndTime      *time.Time         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Status       string             `json:"status" bson:"status"` // "success", "failed", "running"
	RowCount     int                `json:"row_count" bson:"row_count"`
	OutputFile   string             `json:"output_file,omitempty" bson:"output_file,omitempty"`
	Error        string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
