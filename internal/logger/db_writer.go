package logger

import (
	"context"
	"fmt"
	"time"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/config"
	"go-payroll/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from the zap core to the worker.
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Caller  string
}

// DBLogWriter drains a buffered channel of log entries into the "logs"
// collection on a background goroutine, so logging never blocks request
// handling.
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog queues one entry. When the buffer is full the entry is dropped
// rather than blocking the caller.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		logRecord := common_models.Log{
			Message:   entry.Message,
			Level:     entry.Level.String(),
			Caller:    entry.Caller,
			AppID:     w.appId,
			CreatedAt: time.Now().UTC(),
		}

		// Insert failures are ignored on purpose: losing a log line must
		// never take the application down.
		w.db.Collection("logs").InsertOne(context.Background(), logRecord)
	}
}
