package models

import (
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportType identifies one report domain. Every template belongs to
// exactly one type and the type never changes after creation.
type ReportType string

const (
	ReportTypeAttendance  ReportType = "attendance"
	ReportTypePayroll     ReportType = "payroll"
	ReportTypeEmployee    ReportType = "employee"
	ReportTypeProject     ReportType = "project"
	ReportTypeExpenditure ReportType = "expenditure"
	ReportTypeIncome      ReportType = "income"
)

// AllReportTypes returns the fixed set of report domains in seed order.
func AllReportTypes() []ReportType {
	return []ReportType{
		ReportTypeAttendance,
		ReportTypePayroll,
		ReportTypeEmployee,
		ReportTypeProject,
		ReportTypeExpenditure,
		ReportTypeIncome,
	}
}

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeAttendance, ReportTypePayroll, ReportTypeEmployee,
		ReportTypeProject, ReportTypeExpenditure, ReportTypeIncome:
		return true
	}
	return false
}

// ColumnFormat selects the display rule applied to a column's cells.
type ColumnFormat string

const (
	FormatText       ColumnFormat = "text"
	FormatNumber     ColumnFormat = "number"
	FormatDate       ColumnFormat = "date"
	FormatCurrency   ColumnFormat = "currency"
	FormatPercentage ColumnFormat = "percentage"
)

func (f ColumnFormat) Valid() bool {
	switch f {
	case FormatText, FormatNumber, FormatDate, FormatCurrency, FormatPercentage:
		return true
	}
	return false
}

// Numeric reports whether the format carries a summable value.
func (f ColumnFormat) Numeric() bool {
	return f == FormatNumber || f == FormatCurrency
}

// Alignment is a horizontal cell alignment. The empty value means
// "use the format's default".
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// PageSize and Orientation are presentation pass-throughs. The engine
// validates them and hands them to the HTML layer uninterpreted.
type PageSize string

const (
	PageSizeA4     PageSize = "A4"
	PageSizeA5     PageSize = "A5"
	PageSizeLetter PageSize = "Letter"
	PageSizeLegal  PageSize = "Legal"
)

func (p PageSize) Valid() bool {
	switch p {
	case PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal:
		return true
	}
	return false
}

type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

func (o Orientation) Valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// ValueKind tags the variant held by a CellValue.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindDate
)

// CellValue is the small tagged union a resolver produces for every row
// field: string, number, date or null. Downstream code never sees raw
// driver types, so one conversion at the resolver boundary is the only
// place loose data shapes are handled.
type CellValue struct {
	Kind ValueKind
	Str  string
	Num  float64
	Date time.Time
}

func Null() CellValue            { return CellValue{Kind: KindNull} }
func String(s string) CellValue  { return CellValue{Kind: KindString, Str: s} }
func Number(n float64) CellValue { return CellValue{Kind: KindNumber, Num: n} }
func Date(t time.Time) CellValue { return CellValue{Kind: KindDate, Date: t} }

// Text returns the plain string form of the value: the raw string, a
// minimal decimal rendering for numbers, RFC 3339 date for dates and ""
// for null. Used for group keys and as the text-format base.
func (v CellValue) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		return v.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Row maps column keys to resolved values. Lookup of an absent key
// yields the zero CellValue, which is null.
type Row map[string]CellValue

// Filter is one resolved query condition handed to the row resolver.
type Filter struct {
	Field    string      `json:"field" bson:"field"`
	Operator string      `json:"operator" bson:"operator"` // eq, ne, gt, lt, gte, lte, in, nin, contains, between
	Value    interface{} `json:"value" bson:"value"`
}

// ErrBadFilter marks resolver failures caused by the caller's filter
// arguments rather than the backing store. HTTP surfaces map it to a
// client error.
var ErrBadFilter = errors.New("invalid filter arguments")

type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionTemplate AuditAction = "TEMPLATE"
	AuditActionSettings AuditAction = "SETTINGS"
	AuditActionSchedule AuditAction = "SCHEDULE"
	AuditActionReport   AuditAction = "REPORT"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`
	RecordID  string             `bson:"record_id" json:"record_id"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is the persisted shape of one application log line written by the
// async database log writer.
type Log struct {
	Message   string    `bson:"message" json:"message"`
	Level     string    `bson:"level" json:"level"`
	Caller    string    `bson:"caller,omitempty" json:"caller,omitempty"`
	AppID     string    `bson:"app_id" json:"app_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
