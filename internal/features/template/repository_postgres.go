package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	common_models "go-payroll/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

const createTemplatesTable = `
CREATE TABLE IF NOT EXISTS report_templates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL,
	is_default  BOOLEAN NOT NULL DEFAULT FALSE,
	config      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
)`

// PostgresTemplateRepository stores one row per template with the
// column layout serialized into a JSONB column.
type PostgresTemplateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresTemplateRepository(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresTemplateRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if _, err := db.ExecContext(ctx, createTemplatesTable); err != nil {
		return nil, fmt.Errorf("failed to create report_templates table: %w", err)
	}

	return &PostgresTemplateRepository{db: db, logger: logger}, nil
}

func (r *PostgresTemplateRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresTemplateRepository) List(ctx context.Context) ([]ReportTemplate, error) {
	query := `
		SELECT id, name, description, type, is_default, config, created_at, updated_at
		FROM report_templates
		ORDER BY type, name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []ReportTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			r.logger.Warn("Skipping unreadable report template", zap.Error(err))
			continue
		}
		templates = append(templates, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *PostgresTemplateRepository) Get(ctx context.Context, id string) (*ReportTemplate, error) {
	query := `
		SELECT id, name, description, type, is_default, config, created_at, updated_at
		FROM report_templates
		WHERE id = $1
	`
	tpl, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return tpl, nil
}

func (r *PostgresTemplateRepository) Save(ctx context.Context, tpl *ReportTemplate) error {
	if tpl.ID.IsZero() {
		tpl.ID = primitive.NewObjectID()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now()
	}
	tpl.UpdatedAt = time.Now()

	configJSON, err := json.Marshal(tpl.Config)
	if err != nil {
		return fmt.Errorf("failed to encode template config: %w", err)
	}

	query := `
		INSERT INTO report_templates (id, name, description, type, is_default, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			is_default = EXCLUDED.is_default,
			config = EXCLUDED.config,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		tpl.ID.Hex(), tpl.Name, tpl.Description, string(tpl.Type),
		tpl.IsDefault, configJSON, tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	return nil
}

func (r *PostgresTemplateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM report_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row scanner) (*ReportTemplate, error) {
	var (
		tpl        ReportTemplate
		idHex      string
		typeStr    string
		configJSON []byte
	)

	err := row.Scan(&idHex, &tpl.Name, &tpl.Description, &typeStr,
		&tpl.IsDefault, &configJSON, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		return nil, err
	}

	objID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("invalid template id %q: %w", idHex, err)
	}
	tpl.ID = objID
	tpl.Type = common_models.ReportType(typeStr)

	if err := json.Unmarshal(configJSON, &tpl.Config); err != nil {
		return nil, fmt.Errorf("invalid template config for %s: %w", idHex, err)
	}

	return &tpl, nil
}
