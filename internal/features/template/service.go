package template

import (
	"context"
	"sort"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type TemplateService interface {
	ListTemplates(ctx context.Context) ([]ReportTemplate, error)
	GetTemplate(ctx context.Context, id string) (*ReportTemplate, error)
	CreateTemplate(ctx context.Context, tpl ReportTemplate) (*ReportTemplate, error)
	UpdateTemplate(ctx context.Context, id string, tpl ReportTemplate) (*ReportTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	MoveColumn(ctx context.Context, id string, fromIndex, toIndex int) (*ReportTemplate, error)
}

type TemplateServiceImpl struct {
	Repo         TemplateRepository
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewTemplateService(repo TemplateRepository, auditService audit.AuditService, logger *zap.Logger) TemplateService {
	return &TemplateServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Logger:       logger,
	}
}

// ListTemplates returns all templates sorted by (type, name). Report
// types that have no template yet get their built-in default
// materialized and persisted on first access.
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context) ([]ReportTemplate, error) {
	templates, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	covered := map[common_models.ReportType]bool{}
	for _, tpl := range templates {
		covered[tpl.Type] = true
	}

	for _, t := range common_models.AllReportTypes() {
		if covered[t] {
			continue
		}
		def := DefaultTemplate(t)
		if err := s.Repo.Save(ctx, &def); err != nil {
			return nil, err
		}
		s.Logger.Info("Materialized default report template", zap.String("type", string(t)))
		templates = append(templates, def)
	}

	sort.Slice(templates, func(i, j int) bool {
		if templates[i].Type != templates[j].Type {
			return templates[i].Type < templates[j].Type
		}
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, id string) (*ReportTemplate, error) {
	return s.Repo.Get(ctx, id)
}

func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, tpl ReportTemplate) (*ReportTemplate, error) {
	// The store assigns ids, and defaults are only born from seeding.
	tpl.ID = primitive.NilObjectID
	tpl.IsDefault = false

	editor := NewEditor(tpl)
	if err := editor.Validate(); err != nil {
		return nil, err
	}

	validated, err := editor.Template()
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, &validated); err != nil {
		return nil, err
	}
	editor.MarkPersisted(validated)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "template", validated.ID.Hex(), map[string]common_models.Change{
		"template": {
			Old: nil,
			New: validated,
		},
	})

	return &validated, nil
}

// UpdateTemplate replaces the whole stored template with the incoming
// one. Type, default flag and creation time always come from the
// stored record; a type change is rejected rather than ignored.
func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, id string, tpl ReportTemplate) (*ReportTemplate, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if tpl.Type != "" && tpl.Type != existing.Type {
		return nil, &ValidationError{Fields: map[string]string{
			"type": "report type cannot be changed",
		}}
	}

	tpl.ID = existing.ID
	tpl.Type = existing.Type
	tpl.IsDefault = existing.IsDefault
	tpl.CreatedAt = existing.CreatedAt

	editor := NewEditor(tpl)
	if err := editor.Validate(); err != nil {
		return nil, err
	}

	validated, err := editor.Template()
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, &validated); err != nil {
		return nil, err
	}
	editor.MarkPersisted(validated)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "template", validated.ID.Hex(), map[string]common_models.Change{
		"template": {
			Old: existing,
			New: validated,
		},
	})

	return &validated, nil
}

func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if existing.IsDefault {
		return ErrProtected
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "template", id, map[string]common_models.Change{
		"template": {
			Old: existing,
			New: nil,
		},
	})

	return nil
}

// MoveColumn relocates one column within the stored template and
// persists the new order.
func (s *TemplateServiceImpl) MoveColumn(ctx context.Context, id string, fromIndex, toIndex int) (*ReportTemplate, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// The editor reorders in place, so keep a copy for the audit log.
	oldColumns := append([]ColumnConfig(nil), existing.Config.Columns...)

	editor := NewEditor(*existing)
	if err := editor.MoveColumn(fromIndex, toIndex); err != nil {
		return nil, &ValidationError{Fields: map[string]string{
			"config.columns": err.Error(),
		}}
	}
	if err := editor.Validate(); err != nil {
		return nil, err
	}

	validated, err := editor.Template()
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, &validated); err != nil {
		return nil, err
	}
	editor.MarkPersisted(validated)

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionTemplate, "template", id, map[string]common_models.Change{
		"columns": {
			Old: oldColumns,
			New: validated.Config.Columns,
		},
	})

	return &validated, nil
}
