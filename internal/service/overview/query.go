package overview

import (
	"fmt"
	"strings"
	"time"

	"github.com/timelog-hq/timelog-backend-go/internal/domain/overview"
	"github.com/timelog-hq/timelog-backend-go/internal/pkg/calendar"
)

// buildQueryString renders the request in its canonical key order. This is
// the string echoed on the result and persisted as an employee's default
// overview, so the order and the then_by normalization must stay stable.
func buildQueryString(req overview.OverviewRequest) string {
	thenBy := req.ThenBy
	if thenBy == "" {
		thenBy = string(overview.ThenByNone)
	}

	query := fmt.Sprintf("timePeriod=%s&timeMode=%s&groupBy=%s&thenBy=%s&sortAscending=%t&showEmptyUnits=%t",
		req.TimePeriod, req.TimeMode, req.GroupBy, thenBy, req.SortAscending, req.ShowEmptyUnits)

	// Concrete dates only matter for custom ranges; relative selectors are
	// replayed against the date of the replay.
	if req.TimePeriod == string(calendar.TimePeriodCustom) {
		query += "&startDate=" + req.StartDate.Format(time.RFC3339)
		if req.EndDate != nil {
			query += "&endDate=" + req.EndDate.Format(time.RFC3339)
		}
	}
	return query
}

// periodLabel renders the selector as a human-readable heading, e.g.
// "Current week" or "Custom period".
func periodLabel(period calendar.TimePeriod, mode calendar.TimeMode) string {
	if period == calendar.TimePeriodCustom && mode == calendar.TimeModeCustom {
		return "Custom period"
	}
	return capitalize(string(mode)) + " " + string(period)
}

// timespanLabel renders the resolved range, e.g.
// "Mon 19/02/2024 - Sun 25/02/2024".
func timespanLabel(start, end time.Time) string {
	return start.Format("Mon 02/01/2006") + " - " + end.Format("Mon 02/01/2006")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
