package report

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
)

const reportTemplatePath = "templates/report.html.tmpl"

// HTMLRenderer turns documents into standalone HTML pages using the
// embedded pongo2 bundle. Compiled templates are cached per path.
type HTMLRenderer struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		set:       pongo2.NewSet("reports", pongo2.NewFSLoader(TemplatesFS())),
		templates: make(map[string]*pongo2.Template),
	}
}

func (r *HTMLRenderer) Render(doc *Document) ([]byte, error) {
	tmpl, err := r.template(reportTemplatePath)
	if err != nil {
		return nil, err
	}

	ctx := pongo2.Context{
		"doc":          doc,
		"company":      doc.Company,
		"config":       doc.Config,
		"columns":      doc.Columns,
		"groups":       doc.Groups,
		"totals":       doc.Totals,
		"generated_at": doc.GeneratedAt.Format("Jan 02, 2006 15:04"),
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *HTMLRenderer) template(path string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[path]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := r.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load report template %q: %w", path, err)
	}

	r.templates[path] = tmpl
	return tmpl, nil
}
