package query

import "time"

// Preset is a relative date window ending today. Applying one sets After
// and clears Before.
type Preset uint8

const (
	NoPreset Preset = iota
	PastDay
	PastWeek
	PastMonth
	PastYear
)

var presets = options{
	{"none", "", ""},
	{"day", "Past 24h", ""},
	{"week", "Past week", ""},
	{"month", "Past month", ""},
	{"year", "Past year", ""},
}

func (p Preset) String() string                { return presets.name(uint8(p)) }
func (p Preset) MarshalText() ([]byte, error)  { return []byte(p.String()), nil }
func (p *Preset) UnmarshalText(b []byte) error { return presets.parse("past", string(b), (*uint8)(p)) }
func (p *Preset) Set(v string) error           { return p.UnmarshalText([]byte(v)) }
func (Preset) Type() string                    { return "past" }

// ParsePreset parses "day", "week", "month" or "year".
func ParsePreset(s string) (Preset, error) {
	var p Preset
	err := p.Set(s)

	return p, err
}

// Since returns the first day of the window relative to now, or the zero
// Date for NoPreset.
func (p Preset) Since(now time.Time) Date {
	switch p {
	case PastDay:
		return DateOf(now.AddDate(0, 0, -1))
	case PastWeek:
		return DateOf(now.AddDate(0, 0, -7))
	case PastMonth:
		return monthsBack(now, 1)
	case PastYear:
		return monthsBack(now, 12)
	default:
		return Date{}
	}
}

// monthsBack steps n calendar months back from now, clamping the day to the
// end of the target month.
func monthsBack(now time.Time, n int) Date {
	y, m, d := now.Date()

	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()

	return Date{Year: first.Year(), Month: first.Month(), Day: min(d, last)}
}

// Apply returns spec restricted to the preset window. NoPreset returns spec
// unchanged.
func (p Preset) Apply(spec SearchSpec, now time.Time) SearchSpec {
	if p == NoPreset {
		return spec
	}

	spec.After = p.Since(now)
	spec.Before = Date{}

	return spec
}
