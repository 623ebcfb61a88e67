package memory

import (
	"context"
	"sync"
	"time"

	"github.com/timelog-hq/timelog-backend-go/internal/pkg/calendar"
)

// HolidayProvider serves a fixed list of holiday dates.
type HolidayProvider struct {
	mu    sync.RWMutex
	dates []time.Time
}

func NewHolidayProvider(dates ...time.Time) *HolidayProvider {
	return &HolidayProvider{dates: dates}
}

func (p *HolidayProvider) HolidaysInRange(_ context.Context, start, end time.Time) ([]time.Time, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []time.Time
	for _, d := range p.dates {
		if d.Before(calendar.SetMinTimeOnDate(start)) || d.After(calendar.SetMaxTimeOnDate(end)) {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}
