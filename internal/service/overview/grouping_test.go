package overview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timelog-hq/timelog-backend-go/internal/domain/overview"
	"github.com/timelog-hq/timelog-backend-go/internal/domain/registration"
	"github.com/timelog-hq/timelog-backend-go/internal/pkg/calendar"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// workReg builds a work registration starting at the given instant.
func workReg(start time.Time, minutes int, clientID *string) registration.Registration {
	return registration.Registration{
		ID:           "reg-" + start.Format("20060102T1504"),
		EmployeeID:   "emp-1",
		CreatorID:    "emp-1",
		Type:         registration.TypeWork,
		Amount:       intPtr(minutes),
		Start:        start,
		CreationTime: start,
		Status:       registration.StatusApproved,
		ClientID:     clientID,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestIsGroupByValid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		gb    overview.GroupBy
		start time.Time
		end   time.Time
		want  bool
	}{
		{"day always valid", overview.GroupByDay, day(2024, time.February, 1), day(2024, time.February, 1), true},
		{"client always valid", overview.GroupByClient, day(2024, time.February, 1), day(2024, time.February, 1), true},
		{"year over full year", overview.GroupByYear, day(2024, time.January, 1), day(2024, time.December, 31), true},
		{"year within one year", overview.GroupByYear, day(2024, time.January, 1), day(2024, time.June, 1), false},
		{"year january to mid december", overview.GroupByYear, day(2024, time.January, 1), day(2024, time.December, 1), false},
		{"year across two years", overview.GroupByYear, day(2023, time.July, 1), day(2024, time.June, 30), true},
		{"month within february", overview.GroupByMonth, day(2024, time.February, 1), day(2024, time.February, 29), false},
		{"month crossing boundary", overview.GroupByMonth, day(2024, time.February, 1), day(2024, time.March, 1), true},
		{"week within one week", overview.GroupByWeek, day(2024, time.February, 19), day(2024, time.February, 25), false},
		{"week across two weeks", overview.GroupByWeek, day(2024, time.February, 19), day(2024, time.February, 26), true},
		// Week 5 of 2024 runs Jan 29 - Feb 4: same week number, same year,
		// but the month differs, so week grouping stays valid.
		{"week crossing month boundary", overview.GroupByWeek, day(2024, time.January, 31), day(2024, time.February, 1), true},
		{"week same number across years", overview.GroupByWeek, day(2023, time.February, 1), day(2024, time.January, 31), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, isGroupByValid(c.gb, c.start, c.end))
		})
	}
}

func TestValidateGroupByError(t *testing.T) {
	t.Parallel()

	err := validateGroupBy(overview.GroupByYear, day(2024, time.January, 1), day(2024, time.June, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, overview.ErrGroupByInvalidForRange)
	assert.Contains(t, err.Error(), "year")
}

func TestNarrowThenBy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		gb   overview.GroupBy
		tb   overview.ThenBy
		want overview.ThenBy
	}{
		{overview.GroupByMonth, overview.ThenByDay, overview.ThenByDay},
		{overview.GroupByMonth, overview.ThenByWeek, overview.ThenByWeek},
		{overview.GroupByMonth, overview.ThenByMonth, overview.ThenByWeek},
		{overview.GroupByMonth, overview.ThenByYear, overview.ThenByWeek},
		{overview.GroupByYear, overview.ThenByYear, overview.ThenByMonth},
		{overview.GroupByWeek, overview.ThenByWeek, overview.ThenByDay},
		{overview.GroupByDay, overview.ThenByDay, overview.ThenByDay},
		{overview.GroupByDay, overview.ThenByMonth, overview.ThenByDay},
		{overview.GroupByMonth, overview.ThenByClient, overview.ThenByClient},
		{overview.GroupByClient, overview.ThenByMonth, overview.ThenByMonth},
		{overview.GroupByMonth, overview.ThenByNone, overview.ThenByNone},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, narrowThenBy(c.tb, c.gb), "groupBy=%s thenBy=%s", c.gb, c.tb)
	}
}

func TestGroupByDay(t *testing.T) {
	t.Parallel()

	regs := []registration.Registration{
		workReg(day(2024, time.February, 21), 120, nil),
		workReg(day(2024, time.February, 19), 480, nil),
		workReg(day(2024, time.February, 19).Add(5*time.Hour), 60, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByDay, overview.ThenByNone,
		day(2024, time.February, 19), day(2024, time.February, 21), false, calendar.English, clientContext{})

	require.Len(t, buckets, 2)
	assert.Equal(t, "19/02/2024", buckets[0].Name)
	assert.Equal(t, 540, buckets[0].Total)
	assert.Empty(t, buckets[0].SubBuckets)
	assert.Equal(t, "21/02/2024", buckets[1].Name)
	assert.Equal(t, 120, buckets[1].Total)
}

func TestGroupByDayShowEmptyUnits(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.February, 19, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 21, 23, 59, 59, 999e6, time.UTC)
	regs := []registration.Registration{
		workReg(day(2024, time.February, 20), 300, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByDay, overview.ThenByNone,
		start, end, true, calendar.English, clientContext{})

	require.Len(t, buckets, 3)
	assert.Equal(t, "19/02/2024", buckets[0].Name)
	assert.Equal(t, 0, buckets[0].Total)
	assert.Empty(t, buckets[0].SubBuckets)
	assert.Equal(t, "20/02/2024", buckets[1].Name)
	assert.Equal(t, 300, buckets[1].Total)
	assert.Equal(t, "21/02/2024", buckets[2].Name)
	assert.Equal(t, 0, buckets[2].Total)
	assert.Empty(t, buckets[2].SubBuckets)
}

func TestGroupByWeek(t *testing.T) {
	t.Parallel()

	regs := []registration.Registration{
		workReg(day(2024, time.February, 26), 240, nil), // week 9
		workReg(day(2024, time.February, 19), 480, nil), // week 8
		workReg(day(2024, time.February, 23), 120, nil), // week 8
	}

	buckets := groupRegistrations(regs, overview.GroupByWeek, overview.ThenByNone,
		day(2024, time.February, 19), day(2024, time.March, 3), false, calendar.English, clientContext{})

	require.Len(t, buckets, 2)
	assert.Equal(t, "Week 8, 2024", buckets[0].Name)
	assert.Equal(t, 600, buckets[0].Total)
	assert.Equal(t, "Week 9, 2024", buckets[1].Name)
	assert.Equal(t, 240, buckets[1].Total)
}

func TestGroupByMonthAcrossYears(t *testing.T) {
	t.Parallel()

	regs := []registration.Registration{
		workReg(day(2024, time.January, 10), 100, nil),
		workReg(day(2023, time.December, 12), 200, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByMonth, overview.ThenByNone,
		day(2023, time.December, 1), day(2024, time.January, 31), false, calendar.English, clientContext{})

	require.Len(t, buckets, 2)
	assert.Equal(t, "December 2023", buckets[0].Name)
	assert.Equal(t, "January 2024", buckets[1].Name)
}

func TestGroupByMonthLocale(t *testing.T) {
	t.Parallel()

	locale := calendar.NewLocale([12]string{
		"januar", "februar", "marts", "april", "maj", "juni",
		"juli", "august", "september", "oktober", "november", "december",
	})
	regs := []registration.Registration{
		workReg(day(2024, time.February, 12), 200, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByMonth, overview.ThenByNone,
		day(2024, time.January, 1), day(2024, time.June, 30), false, locale, clientContext{})

	require.Len(t, buckets, 1)
	assert.Equal(t, "februar 2024", buckets[0].Name)
}

func TestGroupByYear(t *testing.T) {
	t.Parallel()

	regs := []registration.Registration{
		workReg(day(2024, time.March, 1), 100, nil),
		workReg(day(2023, time.March, 1), 200, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByYear, overview.ThenByNone,
		day(2023, time.January, 1), day(2024, time.December, 31), false, calendar.English, clientContext{})

	require.Len(t, buckets, 2)
	assert.Equal(t, "2023", buckets[0].Name)
	assert.Equal(t, 200, buckets[0].Total)
	assert.Equal(t, "2024", buckets[1].Name)
	assert.Equal(t, 100, buckets[1].Total)
}

func TestGroupByClient(t *testing.T) {
	t.Parallel()

	clients := clientContext{
		names:   map[string]string{"client-a": "Acme", "client-b": "Globex"},
		allowed: map[string]bool{"client-a": true, "client-b": true, "client-x": true},
	}
	regs := []registration.Registration{
		workReg(day(2024, time.February, 20), 100, strPtr("client-b")),
		workReg(day(2024, time.February, 19), 200, strPtr("client-a")),
		workReg(day(2024, time.February, 21), 50, nil),
		workReg(day(2024, time.February, 22), 75, strPtr("client-x")), // accessible but deleted
		workReg(day(2024, time.February, 23), 25, strPtr("client-a")),
	}

	buckets := groupRegistrations(regs, overview.GroupByClient, overview.ThenByNone,
		day(2024, time.February, 19), day(2024, time.February, 25), false, calendar.English, clients)

	// First-occurrence order of the chronologically sorted input.
	require.Len(t, buckets, 4)
	assert.Equal(t, "Acme", buckets[0].Name)
	assert.Equal(t, 225, buckets[0].Total)
	assert.Equal(t, "Globex", buckets[1].Name)
	assert.Equal(t, 100, buckets[1].Total)
	assert.Equal(t, "No Client", buckets[2].Name)
	assert.Equal(t, 50, buckets[2].Total)
	assert.Equal(t, "Unknown Client", buckets[3].Name)
	assert.Equal(t, 75, buckets[3].Total)
}

func TestThenByBreakdown(t *testing.T) {
	t.Parallel()

	regs := []registration.Registration{
		workReg(day(2024, time.February, 19), 480, nil),
		workReg(day(2024, time.February, 20), 120, nil),
		workReg(day(2024, time.March, 4), 60, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByMonth, overview.ThenByDay,
		day(2024, time.February, 1), day(2024, time.March, 31), false, calendar.English, clientContext{})

	require.Len(t, buckets, 2)
	require.Len(t, buckets[0].SubBuckets, 2)
	assert.Equal(t, "19/02/2024", buckets[0].SubBuckets[0].Name)
	assert.Equal(t, 480, buckets[0].SubBuckets[0].Total)
	assert.Equal(t, "20/02/2024", buckets[0].SubBuckets[1].Name)
	require.Len(t, buckets[1].SubBuckets, 1)
	assert.Equal(t, "04/03/2024", buckets[1].SubBuckets[0].Name)

	// A then-by as coarse as the group-by narrows one step finer.
	buckets = groupRegistrations(regs, overview.GroupByMonth, overview.ThenByMonth,
		day(2024, time.February, 1), day(2024, time.March, 31), false, calendar.English, clientContext{})
	require.Len(t, buckets, 2)
	require.Len(t, buckets[0].SubBuckets, 1)
	assert.Equal(t, "Week 8, 2024", buckets[0].SubBuckets[0].Name)
}

func TestThenByClient(t *testing.T) {
	t.Parallel()

	clients := clientContext{
		names:   map[string]string{"client-a": "Acme"},
		allowed: map[string]bool{"client-a": true},
	}
	regs := []registration.Registration{
		workReg(day(2024, time.February, 19), 200, strPtr("client-a")),
		workReg(day(2024, time.February, 20), 100, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByWeek, overview.ThenByClient,
		day(2024, time.February, 19), day(2024, time.March, 3), false, calendar.English, clients)

	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].SubBuckets, 2)
	assert.Equal(t, "Acme", buckets[0].SubBuckets[0].Name)
	assert.Equal(t, 200, buckets[0].SubBuckets[0].Total)
	assert.Equal(t, "No Client", buckets[0].SubBuckets[1].Name)
}

func TestReverseBuckets(t *testing.T) {
	t.Parallel()

	regs := []registration.Registration{
		workReg(day(2024, time.February, 19), 480, nil),
		workReg(day(2024, time.February, 20), 120, nil),
		workReg(day(2024, time.March, 4), 60, nil),
	}

	ascending := groupRegistrations(regs, overview.GroupByMonth, overview.ThenByDay,
		day(2024, time.February, 1), day(2024, time.March, 31), false, calendar.English, clientContext{})
	descending := groupRegistrations(regs, overview.GroupByMonth, overview.ThenByDay,
		day(2024, time.February, 1), day(2024, time.March, 31), false, calendar.English, clientContext{})
	reverseBuckets(descending)

	require.Len(t, descending, len(ascending))
	for i := range ascending {
		mirrored := descending[len(descending)-1-i]
		assert.Equal(t, ascending[i].Name, mirrored.Name)
		assert.Equal(t, ascending[i].Total, mirrored.Total)
		require.Len(t, mirrored.SubBuckets, len(ascending[i].SubBuckets))
		for j := range ascending[i].SubBuckets {
			assert.Equal(t, ascending[i].SubBuckets[j], mirrored.SubBuckets[len(mirrored.SubBuckets)-1-j])
		}
	}
}

func TestGroupRegistrationsNilAmount(t *testing.T) {
	t.Parallel()

	ongoing := workReg(day(2024, time.February, 19), 0, nil)
	ongoing.Amount = nil
	regs := []registration.Registration{
		ongoing,
		workReg(day(2024, time.February, 19).Add(time.Hour), 90, nil),
	}

	buckets := groupRegistrations(regs, overview.GroupByDay, overview.ThenByNone,
		day(2024, time.February, 19), day(2024, time.February, 19), false, calendar.English, clientContext{})

	require.Len(t, buckets, 1)
	assert.Equal(t, 90, buckets[0].Total)
}
