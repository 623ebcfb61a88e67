package overview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/timelog-hq/timelog-backend-go/internal/domain/client"
	"github.com/timelog-hq/timelog-backend-go/internal/domain/employee"
	"github.com/timelog-hq/timelog-backend-go/internal/domain/overview"
	"github.com/timelog-hq/timelog-backend-go/internal/domain/registration"
	"github.com/timelog-hq/timelog-backend-go/internal/pkg/calendar"
	"github.com/timelog-hq/timelog-backend-go/internal/pkg/validator"
)

type OverviewServiceImpl struct {
	registrationRepo registration.RegistrationRepository
	employeeRepo     employee.EmployeeRepository
	clientRepo       client.ClientRepository
	locale           calendar.Locale
	clock            func() time.Time
	logger           *slog.Logger
}

func NewOverviewService(registrationRepo registration.RegistrationRepository, employeeRepo employee.EmployeeRepository, clientRepo client.ClientRepository) overview.OverviewService {
	return &OverviewServiceImpl{
		registrationRepo: registrationRepo,
		employeeRepo:     employeeRepo,
		clientRepo:       clientRepo,
		locale:           calendar.English,
		clock:            time.Now,
		logger:           slog.Default(),
	}
}

// WorkOverview aggregates work registrations. This is the only overview that
// honors SetAsDefault.
func (s *OverviewServiceImpl) WorkOverview(ctx context.Context, callerID string, req overview.OverviewRequest) (overview.OverviewResult, error) {
	return s.generate(ctx, callerID, req, registration.TypeWork, req.SetAsDefault)
}

// TransportationOverview aggregates transportation registrations.
func (s *OverviewServiceImpl) TransportationOverview(ctx context.Context, callerID string, req overview.OverviewRequest) (overview.OverviewResult, error) {
	return s.generate(ctx, callerID, req, registration.TypeTransportation, false)
}

// AbsenceOverview aggregates registrations of the requested absence type.
// Client grouping is rejected before any dates are resolved or data fetched.
func (s *OverviewServiceImpl) AbsenceOverview(ctx context.Context, callerID string, req overview.OverviewRequest) (overview.OverviewResult, error) {
	if validator.IsEmpty(req.AbsenceType) {
		return overview.OverviewResult{}, overview.ErrAbsenceTypeRequired
	}

	absenceType, err := registration.ParseType(req.AbsenceType)
	if err != nil {
		return overview.OverviewResult{}, err
	}
	if !absenceType.IsAbsence() {
		return overview.OverviewResult{}, fmt.Errorf("%w: %q", overview.ErrInvalidAbsenceType, req.AbsenceType)
	}

	if req.GroupBy == string(overview.GroupByClient) || req.ThenBy == string(overview.ThenByClient) {
		return overview.OverviewResult{}, overview.ErrClientGroupingNotAllowed
	}

	return s.generate(ctx, callerID, req, absenceType, false)
}

func (s *OverviewServiceImpl) generate(ctx context.Context, callerID string, req overview.OverviewRequest, regType registration.Type, setAsDefault bool) (overview.OverviewResult, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.logger.Debug("rejected overview request", slog.Any("fields", verrs.ToMap()))
		}
		return overview.OverviewResult{}, err
	}

	caller, err := s.employeeRepo.GetByID(ctx, callerID)
	if err != nil {
		return overview.OverviewResult{}, fmt.Errorf("failed to load caller: %w", err)
	}

	// Resolve the target employee. An explicit target requires Admin, even
	// when it names the caller themselves.
	target := caller
	if req.EmployeeID != "" {
		if !caller.IsAdmin() {
			return overview.OverviewResult{}, overview.ErrUnauthorized
		}
		target, err = s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return overview.OverviewResult{}, fmt.Errorf("failed to load target employee: %w", err)
		}
	}

	// Validate() already vetted the raw strings, so these cannot fail here.
	timePeriod, err := calendar.ParseTimePeriod(req.TimePeriod)
	if err != nil {
		return overview.OverviewResult{}, err
	}
	timeMode, err := calendar.ParseTimeMode(req.TimeMode)
	if err != nil {
		return overview.OverviewResult{}, err
	}
	groupBy, err := overview.ParseGroupBy(req.GroupBy)
	if err != nil {
		return overview.OverviewResult{}, err
	}
	thenBy, err := overview.ParseThenBy(req.ThenBy)
	if err != nil {
		return overview.OverviewResult{}, err
	}

	// Resolve the concrete range. Fully specified custom dates short-circuit
	// the calendar resolver and are used verbatim.
	var start, end time.Time
	if req.EndDate != nil {
		start, end = req.StartDate, *req.EndDate
	} else {
		start, end, err = calendar.ResolveRange(req.StartDate, s.clock(), timePeriod, timeMode)
		if err != nil {
			return overview.OverviewResult{}, err
		}
	}

	if err := validateGroupBy(groupBy, start, end); err != nil {
		return overview.OverviewResult{}, err
	}

	regs, err := s.registrationRepo.GetInRange(ctx, target.ID, regType, start, end)
	if err != nil {
		return overview.OverviewResult{}, fmt.Errorf("failed to fetch registrations: %w", err)
	}
	corrections, err := s.registrationRepo.GetCorrectionsInRange(ctx, target.ID, regType, start, end)
	if err != nil {
		return overview.OverviewResult{}, fmt.Errorf("failed to fetch corrections: %w", err)
	}

	lookup := registration.NewCorrectionLookup(corrections)
	effective := make([]registration.Registration, 0, len(regs))
	for _, reg := range regs {
		effective = append(effective, registration.ResolveEffective(reg, lookup))
	}

	// Client grouping sees only the caller's accessible clients; rows booked
	// on other clients drop out before bucketing so that every total,
	// including the grand total, stays consistent with the visible rows.
	var clients clientContext
	if groupBy == overview.GroupByClient || thenBy == overview.ThenByClient {
		clients, err = s.loadClientContext(ctx, caller.ID, effective)
		if err != nil {
			return overview.OverviewResult{}, err
		}
		effective = filterAccessible(effective, clients)
	}

	buckets := groupRegistrations(effective, groupBy, thenBy, start, end, req.ShowEmptyUnits, s.locale, clients)
	if !req.SortAscending {
		reverseBuckets(buckets)
	}

	grandTotal := 0
	for _, b := range buckets {
		grandTotal += b.Total
	}

	query := buildQueryString(req)

	s.logger.Debug("assembled overview",
		slog.String("type", string(regType)),
		slog.String("employee_id", target.ID),
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("buckets", len(buckets)),
	)

	if setAsDefault {
		if err := s.employeeRepo.SetDefaultOverviewQuery(ctx, caller.ID, query); err != nil {
			return overview.OverviewResult{}, fmt.Errorf("failed to persist default query: %w", err)
		}
	}

	return overview.OverviewResult{
		RegistrationType: string(regType),
		Query:            query,
		PeriodLabel:      periodLabel(timePeriod, timeMode),
		TimespanLabel:    timespanLabel(start, end),
		GrandTotal:       grandTotal,
		Buckets:          buckets,
	}, nil
}

// loadClientContext resolves display names for every client referenced by
// the candidate registrations and the caller's accessible-client set. An id
// that no longer resolves keeps its rows and surfaces as "Unknown Client".
func (s *OverviewServiceImpl) loadClientContext(ctx context.Context, employeeID string, regs []registration.Registration) (clientContext, error) {
	ids, err := s.clientRepo.AccessibleClientIDs(ctx, employeeID)
	if err != nil {
		return clientContext{}, fmt.Errorf("failed to fetch accessible clients: %w", err)
	}
	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}

	names := make(map[string]string)
	for _, reg := range regs {
		if reg.ClientID == nil {
			continue
		}
		if _, ok := names[*reg.ClientID]; ok {
			continue
		}
		c, err := s.clientRepo.GetByID(ctx, *reg.ClientID)
		if err != nil {
			if errors.Is(err, client.ErrClientNotFound) {
				continue
			}
			return clientContext{}, fmt.Errorf("failed to resolve client name: %w", err)
		}
		names[*reg.ClientID] = c.Name
	}

	return clientContext{names: names, allowed: allowed}, nil
}

func filterAccessible(regs []registration.Registration, clients clientContext) []registration.Registration {
	result := make([]registration.Registration, 0, len(regs))
	for _, reg := range regs {
		if clients.includes(reg) {
			result = append(result, reg)
		}
	}
	return result
}
