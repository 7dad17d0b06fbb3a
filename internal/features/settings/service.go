package settings

import (
	"context"
	"time"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/audit"
)

type SettingsService interface {
	GetCompanyProfile(ctx context.Context) (*CompanyProfile, error)
	UpdateCompanyProfile(ctx context.Context, profile CompanyProfile) error
}

type SettingsServiceImpl struct {
	Repo         SettingsRepository
	AuditService audit.AuditService
}

func NewSettingsService(repo SettingsRepository, auditService audit.AuditService) SettingsService {
	return &SettingsServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

// GetCompanyProfile returns the stored profile, or the default one when
// nothing has been saved yet.
func (s *SettingsServiceImpl) GetCompanyProfile(ctx context.Context) (*CompanyProfile, error) {
	settings, err := s.Repo.GetByType(ctx, SettingsTypeCompany)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.Company == nil {
		profile := DefaultCompanyProfile()
		return &profile, nil
	}
	return settings.Company, nil
}

func (s *SettingsServiceImpl) UpdateCompanyProfile(ctx context.Context, profile CompanyProfile) error {
	oldProfile, _ := s.GetCompanyProfile(ctx)

	settings := &Settings{
		Type:      SettingsTypeCompany,
		Company:   &profile,
		UpdatedAt: time.Now(),
	}
	err := s.Repo.Upsert(ctx, settings)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionSettings, "settings", "company_profile", map[string]common_models.Change{
			"company_profile": {
				Old: oldProfile,
				New: profile,
			},
		})
	}
	return err
}
