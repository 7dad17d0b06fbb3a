package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	common_models "go-payroll/internal/common/models"
	"go-payroll/internal/features/settings"
	"go-payroll/internal/features/template"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type templateStub struct {
	tpl *template.ReportTemplate
	err error
}

func (s *templateStub) ListTemplates(ctx context.Context) ([]template.ReportTemplate, error) {
	return nil, nil
}

func (s *templateStub) GetTemplate(ctx context.Context, id string) (*template.ReportTemplate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tpl, nil
}

func (s *templateStub) CreateTemplate(ctx context.Context, tpl template.ReportTemplate) (*template.ReportTemplate, error) {
	return nil, nil
}

func (s *templateStub) UpdateTemplate(ctx context.Context, id string, tpl template.ReportTemplate) (*template.ReportTemplate, error) {
	return nil, nil
}

func (s *templateStub) DeleteTemplate(ctx context.Context, id string) error { return nil }

func (s *templateStub) MoveColumn(ctx context.Context, id string, fromIndex, toIndex int) (*template.ReportTemplate, error) {
	return nil, nil
}

type resolverStub struct {
	rows    []common_models.Row
	filters map[string]string
	err     error
}

func (s *resolverStub) FetchRows(ctx context.Context, reportType common_models.ReportType, filters map[string]string) ([]common_models.Row, error) {
	s.filters = filters
	return s.rows, s.err
}

type settingsStub struct {
	profile *settings.CompanyProfile
	err     error
}

func (s *settingsStub) GetCompanyProfile(ctx context.Context) (*settings.CompanyProfile, error) {
	return s.profile, s.err
}

func (s *settingsStub) UpdateCompanyProfile(ctx context.Context, profile settings.CompanyProfile) error {
	return nil
}

func newTestReportService(tpl template.ReportTemplate, rows []common_models.Row) (ReportService, *resolverStub) {
	tpl.ID = primitive.NewObjectID()
	resolver := &resolverStub{rows: rows}
	svc := NewReportService(
		&templateStub{tpl: &tpl},
		resolver,
		&settingsStub{profile: &settings.CompanyProfile{Name: "Acme Staffing"}},
		NewHTMLRenderer(),
		zap.NewNop(),
	)
	return svc, resolver
}

func TestRun(t *testing.T) {
	svc, resolver := newTestReportService(payrollTemplate(), payrollRows())

	result, err := svc.Run(context.Background(), "any", map[string]string{"month": "2025-03"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if resolver.filters["month"] != "2025-03" {
		t.Error("filters were not handed to the row resolver")
	}
	if result.Name != "Monthly Payroll" || result.Type != common_models.ReportTypePayroll {
		t.Errorf("result header = %s/%s", result.Name, result.Type)
	}
	if result.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", result.RowCount)
	}
	if result.Totals["net_pay"] != 350.50 {
		t.Errorf("Totals[net_pay] = %v, want 350.50", result.Totals["net_pay"])
	}
	if len(result.Groups) != 1 || len(result.Groups[0].Rows) != 2 {
		t.Fatalf("Groups = %+v, want one group of two rows", result.Groups)
	}
	if got := result.Groups[0].Rows[0]["net_pay"]; got != "$200.25" {
		t.Errorf("first row net_pay = %q, want $200.25", got)
	}
}

func TestRunEmptyGroupsMarshalsAsArray(t *testing.T) {
	svc, _ := newTestReportService(payrollTemplate(), nil)

	result, err := svc.Run(context.Background(), "any", nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Groups == nil {
		t.Error("Groups = nil, want empty slice so JSON renders []")
	}
	if result.RowCount != 0 {
		t.Errorf("RowCount = %d, want 0", result.RowCount)
	}
}

func TestRenderHTMLUsesCompanyProfile(t *testing.T) {
	svc, _ := newTestReportService(payrollTemplate(), payrollRows())

	html, filename, err := svc.RenderHTML(context.Background(), "any", nil)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(string(html), "Acme Staffing") {
		t.Error("rendered HTML missing the company name")
	}
	if !strings.HasSuffix(filename, ".html") || !strings.HasPrefix(filename, "monthly-payroll_") {
		t.Errorf("filename = %q", filename)
	}
}

func TestExportCSV(t *testing.T) {
	svc, _ := newTestReportService(payrollTemplate(), payrollRows())

	file, err := svc.Export(context.Background(), "any", "csv", nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasSuffix(file.Filename, ".csv") {
		t.Errorf("filename = %q, want .csv suffix", file.Filename)
	}
	if file.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", file.RowCount)
	}

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d csv lines, want header + 2 rows + totals", len(lines))
	}
	if lines[0] != "Employee,Hours,Net Pay" {
		t.Errorf("csv header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "Total,") {
		t.Errorf("csv totals row = %q", lines[3])
	}
}

func TestExportExcel(t *testing.T) {
	svc, _ := newTestReportService(payrollTemplate(), payrollRows())

	file, err := svc.Export(context.Background(), "any", "xlsx", nil)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasSuffix(file.Filename, ".xlsx") {
		t.Errorf("filename = %q, want .xlsx suffix", file.Filename)
	}
	// xlsx is a zip container.
	if !bytes.HasPrefix(file.Data, []byte("PK")) {
		t.Error("xlsx payload is not a zip archive")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	svc, _ := newTestReportService(payrollTemplate(), payrollRows())

	_, err := svc.Export(context.Background(), "any", "pdf", nil)
	if !errors.Is(err, ErrBadFormat) {
		t.Errorf("Export(pdf) error = %v, want ErrBadFormat", err)
	}
}

func TestRunTemplateErrorPassesThrough(t *testing.T) {
	svc := NewReportService(
		&templateStub{err: template.ErrNotFound},
		&resolverStub{},
		&settingsStub{},
		NewHTMLRenderer(),
		zap.NewNop(),
	)

	_, err := svc.Run(context.Background(), "missing", nil)
	if !errors.Is(err, template.ErrNotFound) {
		t.Errorf("Run() error = %v, want ErrNotFound", err)
	}
}
