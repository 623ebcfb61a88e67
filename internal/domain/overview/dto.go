package overview

import (
	"fmt"
	"time"

	"github.com/timelog-hq/timelog-backend-go/internal/pkg/calendar"
	"github.com/timelog-hq/timelog-backend-go/internal/pkg/validator"
)

// GroupBy is the primary bucketing dimension of an overview.
type GroupBy string

const (
	GroupByDay    GroupBy = "day"
	GroupByWeek   GroupBy = "week"
	GroupByMonth  GroupBy = "month"
	GroupByYear   GroupBy = "year"
	GroupByClient GroupBy = "client"
)

// ParseGroupBy parses a group_by string. Unknown values fail explicitly.
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByYear, GroupByClient:
		return GroupBy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroupBy, s)
}

// ThenBy is the secondary bucketing dimension of an overview. The empty
// string is accepted as ThenByNone.
type ThenBy string

const (
	ThenByNone   ThenBy = "none"
	ThenByDay    ThenBy = "day"
	ThenByWeek   ThenBy = "week"
	ThenByMonth  ThenBy = "month"
	ThenByYear   ThenBy = "year"
	ThenByClient ThenBy = "client"
)

// ParseThenBy parses a then_by string. Unknown values fail explicitly.
func ParseThenBy(s string) (ThenBy, error) {
	if s == "" {
		return ThenByNone, nil
	}
	switch ThenBy(s) {
	case ThenByNone, ThenByDay, ThenByWeek, ThenByMonth, ThenByYear, ThenByClient:
		return ThenBy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownThenBy, s)
}

// ========================================
// OVERVIEW REQUEST
// ========================================

// OverviewRequest carries the caller-supplied overview parameters. StartDate
// is the reference instant; its UTC offset is preserved through all period
// arithmetic.
type OverviewRequest struct {
	// EmployeeID is the target employee. Empty means the caller themselves;
	// a non-empty value requires the Admin role.
	EmployeeID string `json:"employee_id"`

	TimePeriod string     `json:"time_period"`
	TimeMode   string     `json:"time_mode"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`

	GroupBy        string `json:"group_by"`
	ThenBy         string `json:"then_by"`
	SortAscending  bool   `json:"sort_ascending"`
	ShowEmptyUnits bool   `json:"show_empty_units"`

	// SetAsDefault persists the query as the caller's default overview.
	// Honored by the work overview only.
	SetAsDefault bool `json:"set_as_default"`

	// AbsenceType narrows an absence overview to one absence type. Ignored
	// by the work and transportation overviews.
	AbsenceType string `json:"absence_type,omitempty"`
}

func (r *OverviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := calendar.ParseTimePeriod(r.TimePeriod); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "time_period",
			Message: fmt.Sprintf("unknown time_period %q", r.TimePeriod),
		})
	}

	if _, err := calendar.ParseTimeMode(r.TimeMode); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "time_mode",
			Message: fmt.Sprintf("unknown time_mode %q", r.TimeMode),
		})
	}

	if _, err := ParseGroupBy(r.GroupBy); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "group_by",
			Message: fmt.Sprintf("unknown group_by %q", r.GroupBy),
		})
	}

	if _, err := ParseThenBy(r.ThenBy); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "then_by",
			Message: fmt.Sprintf("unknown then_by %q", r.ThenBy),
		})
	}

	if r.StartDate.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}

	if r.EndDate != nil {
		// An explicit end date only makes sense for a fully custom range.
		if r.TimePeriod != string(calendar.TimePeriodCustom) || r.TimeMode != string(calendar.TimeModeCustom) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date requires time_period and time_mode to be custom",
			})
		}
		if r.EndDate.Before(r.StartDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if r.ShowEmptyUnits && r.GroupBy != string(GroupByDay) && r.ThenBy != string(ThenByDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "show_empty_units",
			Message: "show_empty_units requires group_by or then_by to be day",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// OVERVIEW RESULT
// ========================================

// ThenByBucket is a second-level bucket with its summed total in minutes.
type ThenByBucket struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// GroupByBucket is a top-level bucket: a period or client, its total in
// minutes, and its second-level breakdown.
type GroupByBucket struct {
	Name       string         `json:"name"`
	Total      int            `json:"total"`
	SubBuckets []ThenByBucket `json:"sub_buckets"`
}

// OverviewResult is a fully assembled overview report. It is transient,
// computed per request, never persisted.
type OverviewResult struct {
	RegistrationType string          `json:"registration_type"`
	Query            string          `json:"query"`
	PeriodLabel      string          `json:"period_label"`
	TimespanLabel    string          `json:"timespan_label"`
	GrandTotal       int             `json:"grand_total"`
	Buckets          []GroupByBucket `json:"buckets"`
}
