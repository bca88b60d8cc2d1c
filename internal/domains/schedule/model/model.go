package model

const (
	EntityName = "schedule"
)

// Window is the operating window resolved for one calendar date. Times are HH:MM clock
// values; Close and LastArrival may fall past midnight on the following calendar day.
type Window struct {
	Open        string `json:"open"`
	Close       string `json:"close"`
	LastArrival string `json:"last_arrival"`
	Special     bool   `json:"special"`
	Label       string `json:"label,omitempty"`
}

// Override is a date-keyed special-hours entry (holiday events, private functions).
type Override struct {
	Date        string `json:"date"         validate:"required,dateonly"`
	Name        string `json:"name"`
	Open        string `json:"open"         validate:"required,timeslot"`
	Close       string `json:"close"        validate:"required,timeslot"`
	LastArrival string `json:"last_arrival" validate:"required,timeslot"`
}

// Calendar maps calendar dates to operating windows: a recurring default plus exact-date
// overrides. It is immutable configuration; request paths only ever read it.
type Calendar struct {
	Default             Window
	SlotIntervalMinutes int
	Overrides           map[string]Override
}

// Resolve returns the operating window for the given date. Absence of an override is the
// common case, not a failure.
func (c *Calendar) Resolve(date string) Window {
	if override, ok := c.Overrides[date]; ok {
		return Window{
			Open:        override.Open,
			Close:       override.Close,
			LastArrival: override.LastArrival,
			Special:     true,
			Label:       override.Name,
		}
	}

	return c.Default
}
