package template

import (
	"fmt"
	"strings"

	common_models "go-payroll/internal/common/models"
)

// EditorState tracks a template through the authoring lifecycle.
// Draft allows arbitrary edits, Validated means the current shape passed
// all checks, Persisted means the validated shape reached the store.
// Any mutation drops the editor back to Draft.
type EditorState string

const (
	StateDraft     EditorState = "draft"
	StateValidated EditorState = "validated"
	StatePersisted EditorState = "persisted"
)

const (
	maxNameLength        = 120
	maxDescriptionLength = 500
)

// Editor wraps a template during authoring. Only a validated editor
// will hand out its template for persistence, so unvalidated shapes
// can never reach the repository.
type Editor struct {
	tpl   ReportTemplate
	state EditorState
}

func NewEditor(tpl ReportTemplate) *Editor {
	return &Editor{tpl: tpl, state: StateDraft}
}

func (e *Editor) State() EditorState {
	return e.state
}

func (e *Editor) SetName(name string) {
	e.tpl.Name = name
	e.state = StateDraft
}

func (e *Editor) SetDescription(description string) {
	e.tpl.Description = description
	e.state = StateDraft
}

func (e *Editor) SetConfig(config ReportConfig) {
	e.tpl.Config = config
	e.state = StateDraft
}

func (e *Editor) AddColumn(col ColumnConfig) {
	e.tpl.Config.Columns = append(e.tpl.Config.Columns, col)
	e.state = StateDraft
}

func (e *Editor) RemoveColumn(index int) error {
	cols := e.tpl.Config.Columns
	if index < 0 || index >= len(cols) {
		return fmt.Errorf("column index %d out of range [0,%d)", index, len(cols))
	}
	e.tpl.Config.Columns = append(cols[:index], cols[index+1:]...)
	e.state = StateDraft
	return nil
}

func (e *Editor) MoveColumn(fromIndex, toIndex int) error {
	if err := e.tpl.Config.MoveColumn(fromIndex, toIndex); err != nil {
		return err
	}
	e.state = StateDraft
	return nil
}

// Validate checks the current shape and advances the editor to
// Validated, or returns a *ValidationError and stays in Draft.
func (e *Editor) Validate() error {
	if verr := validateTemplate(&e.tpl); verr != nil {
		return verr
	}
	e.state = StateValidated
	return nil
}

// Template returns the validated template. Calling it on a Draft editor
// is a programming error and is rejected.
func (e *Editor) Template() (ReportTemplate, error) {
	if e.state == StateDraft {
		return ReportTemplate{}, fmt.Errorf("template is not validated")
	}
	return e.tpl, nil
}

// MarkPersisted records a successful save of the validated template.
func (e *Editor) MarkPersisted(saved ReportTemplate) {
	e.tpl = saved
	e.state = StatePersisted
}

func validateTemplate(tpl *ReportTemplate) *ValidationError {
	fields := map[string]string{}

	name := strings.TrimSpace(tpl.Name)
	if name == "" {
		fields["name"] = "name is required"
	} else if len(tpl.Name) > maxNameLength {
		fields["name"] = fmt.Sprintf("name must be at most %d characters", maxNameLength)
	}

	description := strings.TrimSpace(tpl.Description)
	if description == "" {
		fields["description"] = "description is required"
	} else if len(tpl.Description) > maxDescriptionLength {
		fields["description"] = fmt.Sprintf("description must be at most %d characters", maxDescriptionLength)
	}

	if !tpl.Type.Valid() {
		fields["type"] = "type must be one of " + reportTypeList()
	}

	validateConfig(&tpl.Config, fields)

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func validateConfig(config *ReportConfig, fields map[string]string) {
	seen := map[string]int{}
	for i, col := range config.Columns {
		path := fmt.Sprintf("config.columns[%d]", i)

		key := strings.TrimSpace(col.Key)
		if key == "" {
			fields[path+".key"] = "column key is required"
		} else if first, dup := seen[key]; dup {
			fields[path+".key"] = fmt.Sprintf("duplicate column key %q (first used at index %d)", key, first)
		} else {
			seen[key] = i
		}

		if !col.Format.Valid() {
			fields[path+".format"] = "format must be one of text, number, date, currency, percentage"
		}
		// Empty align means "use the format's default"
		if col.Align != "" && !col.Align.Valid() {
			fields[path+".align"] = "align must be one of left, center, right"
		}
		if col.Width < 0 {
			fields[path+".width"] = "width must not be negative"
		}
	}

	if !config.Orientation.Valid() {
		fields["config.orientation"] = "orientation must be portrait or landscape"
	}
	if !config.PageSize.Valid() {
		fields["config.page_size"] = "page size must be one of A4, A5, Letter, Legal"
	}
	if config.PageMargin < 0 {
		fields["config.page_margin"] = "page margin must not be negative"
	}
	if config.FontSize < 0 {
		fields["config.font_size"] = "font size must not be negative"
	}
}

func reportTypeList() string {
	types := common_models.AllReportTypes()
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
