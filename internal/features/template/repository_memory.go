package template

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryTemplateRepository keeps templates in a process-local map.
// It backs tests and the TEMPLATE_STORE=memory development mode.
type MemoryTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]ReportTemplate
}

func NewMemoryTemplateRepository() *MemoryTemplateRepository {
	return &MemoryTemplateRepository{
		templates: make(map[string]ReportTemplate),
	}
}

func (r *MemoryTemplateRepository) List(ctx context.Context) ([]ReportTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templates := make([]ReportTemplate, 0, len(r.templates))
	for _, tpl := range r.templates {
		templates = append(templates, cloneTemplate(tpl))
	}

	sort.Slice(templates, func(i, j int) bool {
		if templates[i].Type != templates[j].Type {
			return templates[i].Type < templates[j].Type
		}
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

func (r *MemoryTemplateRepository) Get(ctx context.Context, id string) (*ReportTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[id]
	if !ok {
		return nil, ErrNotFound
	}

	clone := cloneTemplate(tpl)
	return &clone, nil
}

func (r *MemoryTemplateRepository) Save(ctx context.Context, tpl *ReportTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tpl.ID.IsZero() {
		tpl.ID = primitive.NewObjectID()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now()
	}
	tpl.UpdatedAt = time.Now()

	r.templates[tpl.ID.Hex()] = cloneTemplate(*tpl)
	return nil
}

func (r *MemoryTemplateRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[id]; !ok {
		return ErrNotFound
	}

	delete(r.templates, id)
	return nil
}

// cloneTemplate copies the nested slices so stored state is never
// shared with callers.
func cloneTemplate(tpl ReportTemplate) ReportTemplate {
	clone := tpl
	if tpl.Config.Columns != nil {
		clone.Config.Columns = make([]ColumnConfig, len(tpl.Config.Columns))
		copy(clone.Config.Columns, tpl.Config.Columns)
	}
	if tpl.Config.Filters != nil {
		clone.Config.Filters = make([]string, len(tpl.Config.Filters))
		copy(clone.Config.Filters, tpl.Config.Filters)
	}
	return clone
}
