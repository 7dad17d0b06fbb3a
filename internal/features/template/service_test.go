package template

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "go-payroll/internal/common/models"

	"go.uber.org/zap"
)

type auditStub struct {
	entries int
}

func (a *auditStub) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	a.entries++
	return nil
}

func (a *auditStub) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newTestService() (TemplateService, *MemoryTemplateRepository, *auditStub) {
	repo := NewMemoryTemplateRepository()
	stub := &auditStub{}
	return NewTemplateService(repo, stub, zap.NewNop()), repo, stub
}

func TestListMaterializesDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	templates, err := svc.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}

	types := common_models.AllReportTypes()
	if len(templates) != len(types) {
		t.Fatalf("ListTemplates() returned %d templates, want %d defaults", len(templates), len(types))
	}
	for i, tpl := range templates {
		if !tpl.IsDefault {
			t.Errorf("template %q is not a default", tpl.Name)
		}
		if tpl.ID.IsZero() {
			t.Errorf("template %q was not persisted", tpl.Name)
		}
		// List order is (type, name)
		if i > 0 && templates[i-1].Type > tpl.Type {
			t.Errorf("templates out of order: %q before %q", templates[i-1].Type, tpl.Type)
		}
	}

	// Second call must not duplicate the defaults.
	again, err := svc.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(again) != len(types) {
		t.Errorf("second ListTemplates() returned %d templates, want %d", len(again), len(types))
	}
}

func TestCreateTemplate(t *testing.T) {
	svc, _, stub := newTestService()
	ctx := context.Background()

	tpl := validTemplate()
	tpl.IsDefault = true // clients cannot mint defaults

	created, err := svc.CreateTemplate(ctx, tpl)
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	if created.ID.IsZero() {
		t.Error("created template has no id")
	}
	if created.IsDefault {
		t.Error("created template kept the client supplied default flag")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("created template is missing timestamps")
	}
	if stub.entries != 1 {
		t.Errorf("audit entries = %d, want 1", stub.entries)
	}
}

func TestCreateTemplateRejectsInvalid(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	tpl := validTemplate()
	tpl.Config.Columns[1].Key = tpl.Config.Columns[0].Key

	_, err := svc.CreateTemplate(ctx, tpl)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateTemplate() error = %v, want *ValidationError", err)
	}

	// Nothing may be written on a failed validation.
	stored, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("store holds %d templates after rejected create, want 0", len(stored))
	}
}

func TestUpdateTemplate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, validTemplate())
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	update := *created
	update.Name = "Attendance With Status"
	update.Config.Columns = []ColumnConfig{
		{Key: "employee", Title: "Employee", Format: common_models.FormatText, Visible: true},
		{Key: "status", Title: "Status", Format: common_models.FormatText, Visible: true},
	}

	updated, err := svc.UpdateTemplate(ctx, created.ID.Hex(), update)
	if err != nil {
		t.Fatalf("UpdateTemplate() error = %v", err)
	}

	if updated.Name != "Attendance With Status" {
		t.Errorf("name = %q, want updated name", updated.Name)
	}
	// Whole-config replace: the old column set must be gone.
	if len(updated.Config.Columns) != 2 {
		t.Errorf("columns = %d, want 2 after replace", len(updated.Config.Columns))
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not advanced: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateTemplateTypeImmutable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, validTemplate())
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	update := *created
	update.Type = common_models.ReportTypePayroll

	_, err = svc.UpdateTemplate(ctx, created.ID.Hex(), update)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("UpdateTemplate() error = %v, want *ValidationError", err)
	}
	if _, ok := verr.Fields["type"]; !ok {
		t.Errorf("expected type field error, got %v", verr.Fields)
	}
}

func TestUpdateTemplateNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateTemplate(context.Background(), "64b000000000000000000000", validTemplate())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTemplate() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTemplate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, validTemplate())
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	if err := svc.DeleteTemplate(ctx, created.ID.Hex()); err != nil {
		t.Fatalf("DeleteTemplate() error = %v", err)
	}

	if _, err := svc.GetTemplate(ctx, created.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTemplate() after delete error = %v, want ErrNotFound", err)
	}

	if err := svc.DeleteTemplate(ctx, created.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteTemplate() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTemplateProtectsDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	templates, err := svc.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}

	err = svc.DeleteTemplate(ctx, templates[0].ID.Hex())
	if !errors.Is(err, ErrProtected) {
		t.Errorf("DeleteTemplate() on default error = %v, want ErrProtected", err)
	}

	// Defaults stay editable.
	update := templates[0]
	update.Name = "Renamed Default"
	updated, err := svc.UpdateTemplate(ctx, templates[0].ID.Hex(), update)
	if err != nil {
		t.Fatalf("UpdateTemplate() on default error = %v", err)
	}
	if !updated.IsDefault {
		t.Error("default flag lost on update")
	}
}

func TestServiceMoveColumn(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, validTemplate())
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	updated, err := svc.MoveColumn(ctx, created.ID.Hex(), 2, 0)
	if err != nil {
		t.Fatalf("MoveColumn() error = %v", err)
	}
	if updated.Config.Columns[0].Key != "hours" {
		t.Errorf("first column = %q, want %q", updated.Config.Columns[0].Key, "hours")
	}

	// The new order must be persisted.
	stored, err := svc.GetTemplate(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if stored.Config.Columns[0].Key != "hours" {
		t.Errorf("stored first column = %q, want %q", stored.Config.Columns[0].Key, "hours")
	}

	_, err = svc.MoveColumn(ctx, created.ID.Hex(), 99, 0)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("MoveColumn() out of range error = %v, want *ValidationError", err)
	}
}
