package schedule

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/config"
	"go-payroll/internal/features/audit"
	"go-payroll/internal/features/report"

	"github.com/robfig/cron/v3"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, schedule *ScheduledReport) error
	GetSchedule(ctx context.Context, id string) (*ScheduledReport, error)
	ListSchedules(ctx context.Context, filter map[string]interface{}) ([]ScheduledReport, error)
	UpdateSchedule(ctx context.Context, schedule *ScheduledReport) error
	DeleteSchedule(ctx context.Context, id string) error
	RunSchedule(ctx context.Context, id string) error
	GetRunLogs(ctx context.Context, scheduleID string, limit int) ([]ScheduleRunLog, error)
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
	RegisterJob(schedule *ScheduledReport) error
	UnregisterJob(id string) error
}

type ScheduleServiceImpl struct {
	repo          ScheduleRepository
	reportService report.ReportService
	auditService  audit.AuditService
	config        *config.Config

	scheduler  *cron.Cron
	jobEntries map[string]cron.EntryID
	mu         sync.RWMutex
}

func NewScheduleService(
	repo ScheduleRepository,
	reportService report.ReportService,
	auditService audit.AuditService,
	config *config.Config,
) ScheduleService {
	return &ScheduleServiceImpl{
		repo:          repo,
		reportService: reportService,
		auditService:  auditService,
		config:        config,
		jobEntries:    make(map[string]cron.EntryID),
	}
}

func validateSchedule(schedule *ScheduledReport) error {
	if schedule.Name == "" {
		return fmt.Errorf("schedule name is required")
	}
	if schedule.TemplateID == "" {
		return fmt.Errorf("template_id is required")
	}
	if schedule.OutputFormat != "csv" && schedule.OutputFormat != "xlsx" {
		return fmt.Errorf("output format must be csv or xlsx, got %q", schedule.OutputFormat)
	}
	if _, err := cron.ParseStandard(schedule.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, schedule *ScheduledReport) error {
	if err := validateSchedule(schedule); err != nil {
		return err
	}

	now := time.Now()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	spec, _ := cron.ParseStandard(schedule.Schedule)
	nextRun := spec.Next(now)
	schedule.NextRun = &nextRun

	if err := s.repo.Create(ctx, schedule); err != nil {
		return err
	}

	s.auditService.LogChange(ctx, common_models.AuditActionSchedule, "schedule", schedule.ID.Hex(), map[string]common_models.Change{
		"schedule": {New: schedule},
	})

	if schedule.Active && s.scheduler != nil {
		if err := s.RegisterJob(schedule); err != nil {
			log.Printf("Failed to register scheduled report %s: %v", schedule.ID.Hex(), err)
		}
	}

	return nil
}

func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string) (*ScheduledReport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context, filter map[string]interface{}) ([]ScheduledReport, error) {
	return s.repo.List(ctx, filter)
}

func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, schedule *ScheduledReport) error {
	if err := validateSchedule(schedule); err != nil {
		return err
	}

	spec, _ := cron.ParseStandard(schedule.Schedule)
	nextRun := spec.Next(time.Now())
	schedule.NextRun = &nextRun

	oldSchedule, _ := s.GetSchedule(ctx, schedule.ID.Hex())

	if err := s.repo.Update(ctx, schedule); err != nil {
		return err
	}

	s.auditService.LogChange(ctx, common_models.AuditActionSchedule, "schedule", schedule.ID.Hex(), map[string]common_models.Change{
		"schedule": {Old: oldSchedule, New: schedule},
	})

	s.UnregisterJob(schedule.ID.Hex())

	if schedule.Active && s.scheduler != nil {
		if err := s.RegisterJob(schedule); err != nil {
			log.Printf("Failed to register updated scheduled report %s: %v", schedule.ID.Hex(), err)
		}
	}

	return nil
}

func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	oldSchedule, _ := s.GetSchedule(ctx, id)
	s.UnregisterJob(id)
	err := s.repo.Delete(ctx, id)
	if err == nil {
		s.auditService.LogChange(ctx, common_models.AuditActionSchedule, "schedule", id, map[string]common_models.Change{
			"schedule": {Old: oldSchedule, New: "DELETED"},
		})
	}
	return err
}

func (s *ScheduleServiceImpl) RunSchedule(ctx context.Context, id string) error {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if schedule == nil {
		return fmt.Errorf("scheduled report not found")
	}

	return s.runScheduleInternal(ctx, schedule)
}

// runScheduleInternal renders the snapshot, writes it under the export
// directory and records the run outcome.
func (s *ScheduleServiceImpl) runScheduleInternal(ctx context.Context, schedule *ScheduledReport) error {
	startTime := time.Now()

	logEntry := &ScheduleRunLog{
		ScheduleID:   schedule.ID,
		ScheduleName: schedule.Name,
		StartTime:    startTime,
		Status:       "running",
	}

	if err := s.repo.CreateLog(ctx, logEntry); err != nil {
		log.Printf("Failed to create run log for schedule %s: %v", schedule.ID.Hex(), err)
	}

	outputFile, rowCount, execError := s.exportSnapshot(ctx, schedule)

	endTime := time.Now()
	logEntry.EndTime = &endTime
	logEntry.RowCount = rowCount
	logEntry.OutputFile = outputFile

	if execError != nil {
		logEntry.Status = "failed"
		logEntry.Error = execError.Error()
	} else {
		logEntry.Status = "success"
	}

	if err := s.repo.UpdateLog(ctx, logEntry); err != nil {
		log.Printf("Failed to update run log for schedule %s: %v", schedule.ID.Hex(), err)
	}

	auditStatus := "success"
	if execError != nil {
		auditStatus = "failed"
	}
	s.auditService.LogChange(ctx, common_models.AuditActionSchedule, "schedule", schedule.ID.Hex(), map[string]common_models.Change{
		"status": {New: auditStatus},
		"rows":   {New: rowCount},
		"output": {New: outputFile},
	})

	spec, _ := cron.ParseStandard(schedule.Schedule)
	nextRun := spec.Next(time.Now())
	if err := s.repo.UpdateLastRun(ctx, schedule.ID.Hex(), startTime, &nextRun); err != nil {
		log.Printf("Failed to update last run for schedule %s: %v", schedule.ID.Hex(), err)
	}

	return execError
}

func (s *ScheduleServiceImpl) exportSnapshot(ctx context.Context, schedule *ScheduledReport) (string, int, error) {
	file, err := s.reportService.Export(ctx, schedule.TemplateID, schedule.OutputFormat, schedule.Filters)
	if err != nil {
		return "", 0, fmt.Errorf("failed to export report: %w", err)
	}

	if err := os.MkdirAll(s.config.ExportDir, 0o755); err != nil {
		return "", file.RowCount, fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.config.ExportDir, file.Filename)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", file.RowCount, fmt.Errorf("failed to write snapshot: %w", err)
	}

	return path, file.RowCount, nil
}

func (s *ScheduleServiceImpl) GetRunLogs(ctx context.Context, scheduleID string, limit int) ([]ScheduleRunLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetLogs(ctx, scheduleID, limit)
}

func (s *ScheduleServiceImpl) InitializeScheduler(ctx context.Context) error {
	log.Println("Initializing report scheduler...")
	s.scheduler = cron.New()
	schedules, err := s.repo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active schedules: %w", err)
	}

	for i := range schedules {
		if err := s.RegisterJob(&schedules[i]); err != nil {
			log.Printf("Failed to register scheduled report %s: %v", schedules[i].ID.Hex(), err)
		}
	}

	s.scheduler.Start()
	return nil
}

func (s *ScheduleServiceImpl) StopScheduler() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

func (s *ScheduleServiceImpl) RegisterJob(schedule *ScheduledReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return fmt.Errorf("scheduler not initialized")
	}

	scheduleID := schedule.ID.Hex()
	jobFunc := func() {
		ctx := context.Background()
		latest, err := s.repo.GetByID(ctx, scheduleID)
		if err != nil || latest == nil || !latest.Active {
			return
		}
		s.runScheduleInternal(ctx, latest)
	}

	entryID, err := s.scheduler.AddFunc(schedule.Schedule, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add schedule to scheduler: %w", err)
	}

	s.jobEntries[scheduleID] = entryID
	return nil
}

func (s *ScheduleServiceImpl) UnregisterJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.jobEntries[id]; exists {
		s.scheduler.Remove(entryID)
		delete(s.jobEntries, id)
	}
	return nil
}
