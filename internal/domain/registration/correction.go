package registration

// CorrectionLookup returns the most recent correction of the registration
// with the given id, if one exists.
type CorrectionLookup func(originalID string) (Registration, bool)

// NewCorrectionLookup indexes a slice of correction records by the
// registration they amend, keeping only the most recent correction per
// original (greatest creation time). Records without a CorrectionOfID are
// ignored.
func NewCorrectionLookup(corrections []Registration) CorrectionLookup {
	latest := make(map[string]Registration, len(corrections))
	for _, c := range corrections {
		if c.CorrectionOfID == nil {
			continue
		}
		current, ok := latest[*c.CorrectionOfID]
		if !ok || c.CreationTime.After(current.CreationTime) {
			latest[*c.CorrectionOfID] = c
		}
	}
	return func(originalID string) (Registration, bool) {
		c, ok := latest[originalID]
		return c, ok
	}
}

// ResolveEffective returns the reporting view of a registration. If a
// correction exists, the effective record carries the correction's amount,
// span, client, status and comments, but keeps the original's identity
// fields for display continuity, and never exposes a CorrectionOfID of its
// own. Without a correction the registration is returned unchanged.
//
// The function is pure; it can safely run once per candidate registration on
// every request.
func ResolveEffective(reg Registration, lookup CorrectionLookup) Registration {
	correction, ok := lookup(reg.ID)
	if !ok {
		return reg
	}

	reg.Amount = correction.Amount
	reg.Start = correction.Start
	reg.End = correction.End
	reg.ClientID = correction.ClientID
	reg.Status = correction.Status
	reg.FirstComment = correction.FirstComment
	reg.SecondComment = correction.SecondComment
	reg.CorrectionOfID = nil
	return reg
}
