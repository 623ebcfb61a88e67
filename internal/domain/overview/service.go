package overview

import "context"

// OverviewService defines the interface for overview report generation. The
// caller id identifies the requesting employee; requesting another employee's
// data requires the Admin role.
type OverviewService interface {
	// WorkOverview aggregates work registrations.
	WorkOverview(ctx context.Context, callerID string, req OverviewRequest) (OverviewResult, error)

	// TransportationOverview aggregates transportation registrations.
	TransportationOverview(ctx context.Context, callerID string, req OverviewRequest) (OverviewResult, error)

	// AbsenceOverview aggregates registrations of one absence type. Client
	// grouping is not available for absences.
	AbsenceOverview(ctx context.Context, callerID string, req OverviewRequest) (OverviewResult, error)
}
