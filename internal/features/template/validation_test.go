package template

import (
	"strings"
	"testing"

	common_models "go-payroll/internal/common/models"
)

func validTemplate() ReportTemplate {
	return ReportTemplate{
		Name:        "Monthly Attendance",
		Description: "Attendance summary for the selected month.",
		Type:        common_models.ReportTypeAttendance,
		Config: ReportConfig{
			Columns: []ColumnConfig{
				{Key: "date", Title: "Date", Format: common_models.FormatDate, Visible: true},
				{Key: "employee", Title: "Employee", Format: common_models.FormatText, Visible: true},
				{Key: "hours", Title: "Hours", Format: common_models.FormatNumber, Visible: true, ComputeTotal: true},
			},
			ShowTotals:  true,
			Orientation: common_models.OrientationPortrait,
			PageSize:    common_models.PageSizeA4,
		},
	}
}

func TestEditorValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*ReportTemplate)
		wantFields []string
	}{
		{
			name:   "Valid Template",
			mutate: func(tpl *ReportTemplate) {},
		},
		{
			name:       "Missing Name",
			mutate:     func(tpl *ReportTemplate) { tpl.Name = "   " },
			wantFields: []string{"name"},
		},
		{
			name:       "Name Too Long",
			mutate:     func(tpl *ReportTemplate) { tpl.Name = strings.Repeat("x", 121) },
			wantFields: []string{"name"},
		},
		{
			name:       "Missing Description",
			mutate:     func(tpl *ReportTemplate) { tpl.Description = "" },
			wantFields: []string{"description"},
		},
		{
			name:       "Description Too Long",
			mutate:     func(tpl *ReportTemplate) { tpl.Description = strings.Repeat("x", 501) },
			wantFields: []string{"description"},
		},
		{
			name:       "Unknown Report Type",
			mutate:     func(tpl *ReportTemplate) { tpl.Type = "inventory" },
			wantFields: []string{"type"},
		},
		{
			name: "Duplicate Column Key",
			mutate: func(tpl *ReportTemplate) {
				tpl.Config.Columns[2].Key = "date"
			},
			wantFields: []string{"config.columns[2].key"},
		},
		{
			name: "Empty Column Key",
			mutate: func(tpl *ReportTemplate) {
				tpl.Config.Columns[1].Key = ""
			},
			wantFields: []string{"config.columns[1].key"},
		},
		{
			name: "Unknown Column Format",
			mutate: func(tpl *ReportTemplate) {
				tpl.Config.Columns[0].Format = "scientific"
			},
			wantFields: []string{"config.columns[0].format"},
		},
		{
			name: "Unknown Alignment",
			mutate: func(tpl *ReportTemplate) {
				tpl.Config.Columns[0].Align = "justified"
			},
			wantFields: []string{"config.columns[0].align"},
		},
		{
			name: "Negative Width",
			mutate: func(tpl *ReportTemplate) {
				tpl.Config.Columns[0].Width = -10
			},
			wantFields: []string{"config.columns[0].width"},
		},
		{
			name:       "Unknown Page Size",
			mutate:     func(tpl *ReportTemplate) { tpl.Config.PageSize = "Tabloid" },
			wantFields: []string{"config.page_size"},
		},
		{
			name:       "Unknown Orientation",
			mutate:     func(tpl *ReportTemplate) { tpl.Config.Orientation = "diagonal" },
			wantFields: []string{"config.orientation"},
		},
		{
			name: "Multiple Failures Reported Together",
			mutate: func(tpl *ReportTemplate) {
				tpl.Name = ""
				tpl.Config.Columns[0].Format = "scientific"
			},
			wantFields: []string{"name", "config.columns[0].format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate()
			tt.mutate(&tpl)

			editor := NewEditor(tpl)
			err := editor.Validate()

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				if editor.State() != StateValidated {
					t.Errorf("State() = %q, want %q", editor.State(), StateValidated)
				}
				return
			}

			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if editor.State() != StateDraft {
				t.Errorf("State() after failed validation = %q, want %q", editor.State(), StateDraft)
			}
			for _, field := range tt.wantFields {
				if _, ok := verr.Fields[field]; !ok {
					t.Errorf("Fields missing %q, got %v", field, verr.Fields)
				}
			}
		})
	}
}

func TestEditorStateMachine(t *testing.T) {
	editor := NewEditor(validTemplate())

	if editor.State() != StateDraft {
		t.Fatalf("new editor state = %q, want %q", editor.State(), StateDraft)
	}

	// A draft never hands out its template.
	if _, err := editor.Template(); err == nil {
		t.Error("Template() on draft should fail")
	}

	if err := editor.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if editor.State() != StateValidated {
		t.Fatalf("state after validate = %q, want %q", editor.State(), StateValidated)
	}

	// Any edit drops back to draft.
	editor.AddColumn(ColumnConfig{Key: "status", Title: "Status", Format: common_models.FormatText, Visible: true})
	if editor.State() != StateDraft {
		t.Errorf("state after edit = %q, want %q", editor.State(), StateDraft)
	}

	if err := editor.Validate(); err != nil {
		t.Fatalf("Validate() after edit error = %v", err)
	}

	tpl, err := editor.Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	editor.MarkPersisted(tpl)
	if editor.State() != StatePersisted {
		t.Errorf("state after persist = %q, want %q", editor.State(), StatePersisted)
	}
}

func TestMoveColumn(t *testing.T) {
	keys := func(cols []ColumnConfig) []string {
		out := make([]string, len(cols))
		for i, c := range cols {
			out[i] = c.Key
		}
		return out
	}

	tests := []struct {
		name    string
		from    int
		to      int
		want    []string
		wantErr bool
	}{
		{name: "Forward", from: 0, to: 2, want: []string{"employee", "hours", "date"}},
		{name: "Backward", from: 2, to: 0, want: []string{"hours", "date", "employee"}},
		{name: "Same Position", from: 1, to: 1, want: []string{"date", "employee", "hours"}},
		{name: "From Out Of Range", from: 3, to: 0, wantErr: true},
		{name: "To Out Of Range", from: 0, to: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTemplate().Config
			err := config.MoveColumn(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MoveColumn() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			got := keys(config.Columns)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("columns = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
