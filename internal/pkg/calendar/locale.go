package calendar

import "time"

// Locale carries the culture-specific naming the engine needs for bucket
// labels. It is passed explicitly so that calendar output never depends on
// ambient process locale.
type Locale struct {
	monthNames [12]string
}

// NewLocale builds a locale from twelve month names, January first.
func NewLocale(monthNames [12]string) Locale {
	return Locale{monthNames: monthNames}
}

// MonthName returns the locale's name for the given month.
func (l Locale) MonthName(m time.Month) string {
	if l.monthNames[0] == "" {
		return m.String()
	}
	return l.monthNames[m-1]
}

// English is the default locale.
var English = Locale{}
