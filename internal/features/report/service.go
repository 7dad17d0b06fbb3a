package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/features/settings"
	"go-payroll/internal/features/template"
	"go-payroll/pkg/format"
	"go-payroll/pkg/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrBadFormat is returned when a render or export names an output
// format the engine does not produce.
var ErrBadFormat = errors.New("unsupported output format")

type ReportService interface {
	Run(ctx context.Context, templateID string, filters map[string]string) (*RunResult, error)
	RenderHTML(ctx context.Context, templateID string, filters map[string]string) ([]byte, string, error)
	RenderTabular(ctx context.Context, templateID string, filters map[string]string) ([][]string, error)
	Export(ctx context.Context, templateID string, exportFormat string, filters map[string]string) (*ExportFile, error)
}

type ReportServiceImpl struct {
	TemplateService template.TemplateService
	Resolver        RowResolver
	SettingsService settings.SettingsService
	Renderer        *HTMLRenderer
	Logger          *zap.Logger
}

func NewReportService(templateService template.TemplateService, resolver RowResolver, settingsService settings.SettingsService, renderer *HTMLRenderer, logger *zap.Logger) ReportService {
	return &ReportServiceImpl{
		TemplateService: templateService,
		Resolver:        resolver,
		SettingsService: settingsService,
		Renderer:        renderer,
		Logger:          logger,
	}
}

// Run resolves rows and returns the formatted grid plus aggregates as
// JSON for UI consumption.
func (s *ReportServiceImpl) Run(ctx context.Context, templateID string, filters map[string]string) (*RunResult, error) {
	doc, tpl, err := s.buildDocument(ctx, templateID, filters)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		TemplateID:  tpl.ID.Hex(),
		Name:        tpl.Name,
		Description: tpl.Description,
		Type:        tpl.Type,
		Columns:     doc.Columns,
		Groups:      []RunGroup{},
		Totals:      doc.Aggregates.Totals,
		Averages:    doc.Aggregates.Averages,
		RowCount:    doc.Aggregates.RowCount,
	}

	for _, group := range doc.Groups {
		runGroup := RunGroup{Label: group.Label}
		for _, cells := range group.Rows {
			row := make(map[string]string, len(doc.Columns))
			for i, col := range doc.Columns {
				row[col.Key] = cells[i].Text
			}
			runGroup.Rows = append(runGroup.Rows, row)
		}
		result.Groups = append(result.Groups, runGroup)
	}

	return result, nil
}

func (s *ReportServiceImpl) RenderHTML(ctx context.Context, templateID string, filters map[string]string) ([]byte, string, error) {
	doc, tpl, err := s.buildDocument(ctx, templateID, filters)
	if err != nil {
		return nil, "", err
	}

	html, err := s.Renderer.Render(doc)
	if err != nil {
		return nil, "", err
	}

	return html, utils.ExportFilename(tpl.Name, "html"), nil
}

func (s *ReportServiceImpl) RenderTabular(ctx context.Context, templateID string, filters map[string]string) ([][]string, error) {
	doc, _, err := s.buildDocument(ctx, templateID, filters)
	if err != nil {
		return nil, err
	}
	return doc.Tabular(), nil
}

// Export encodes the tabular grid with an external writer: encoding/csv
// for csv, excelize for xlsx.
func (s *ReportServiceImpl) Export(ctx context.Context, templateID string, exportFormat string, filters map[string]string) (*ExportFile, error) {
	doc, tpl, err := s.buildDocument(ctx, templateID, filters)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch exportFormat {
	case "csv":
		data, err = encodeCSV(doc.Tabular())
	case "xlsx":
		data, err = encodeExcel(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, exportFormat)
	}
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Data:     data,
		Filename: utils.ExportFilename(tpl.Name, exportFormat),
		RowCount: doc.Aggregates.RowCount,
	}, nil
}

func (s *ReportServiceImpl) buildDocument(ctx context.Context, templateID string, filters map[string]string) (*Document, *template.ReportTemplate, error) {
	tpl, err := s.TemplateService.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.Resolver.FetchRows(ctx, tpl.Type, filters)
	if err != nil {
		return nil, nil, err
	}

	// A missing letterhead never blocks a render.
	company := settings.DefaultCompanyProfile()
	if profile, err := s.SettingsService.GetCompanyProfile(ctx); err != nil {
		s.Logger.Warn("Falling back to default company profile", zap.Error(err))
	} else if profile != nil {
		company = *profile
	}

	rc := RenderContext{
		Company:     company,
		GeneratedAt: time.Now(),
		DateRange:   dateRangeCaption(tpl.Config, filters),
	}

	return BuildDocument(*tpl, rows, rc), tpl, nil
}

// dateRangeCaption derives the header caption from the date_range
// filter when the template asks for one. The filter value is "from,to"
// with ISO dates.
func dateRangeCaption(config template.ReportConfig, filters map[string]string) string {
	if !config.IncludeDateRange {
		return ""
	}
	value := filters["date_range"]
	if value == "" {
		return ""
	}

	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return value
	}

	from := prettyDate(strings.TrimSpace(parts[0]))
	to := prettyDate(strings.TrimSpace(parts[1]))
	return fmt.Sprintf("%s to %s", from, to)
}

func prettyDate(s string) string {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format(format.DateStyle)
	}
	return s
}

func encodeCSV(grid [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range grid {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeExcel(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	grid := doc.Tabular()
	for rowIdx, row := range grid {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			f.SetCellValue(sheetName, cell, value)
			if rowIdx == 0 {
				f.SetCellStyle(sheetName, cell, cell, headerStyle)
			}
		}
	}

	for i := range doc.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 15)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
