package template

import (
	"context"
	"fmt"

	"go-payroll/internal/config"
	"go-payroll/internal/database"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewTemplateRepository selects the store backend from configuration:
// mongo (default), postgres, or memory for development and tests.
func NewTemplateRepository(lc fx.Lifecycle, cfg *config.Config, db *database.MongodbDB, logger *zap.Logger) (TemplateRepository, error) {
	switch cfg.TemplateStore {
	case "", "mongo":
		return NewMongoTemplateRepository(db, logger), nil

	case "postgres":
		repo, err := NewPostgresTemplateRepository(context.Background(), cfg.PostgresDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres template store: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return repo.Close()
			},
		})
		logger.Info("Using Postgres template store")
		return repo, nil

	case "memory":
		logger.Warn("Using in-memory template store, templates will not survive restarts")
		return NewMemoryTemplateRepository(), nil

	default:
		return nil, fmt.Errorf("unknown TEMPLATE_STORE %q (expected mongo, postgres or memory)", cfg.TemplateStore)
	}
}
