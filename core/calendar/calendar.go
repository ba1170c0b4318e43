// Package calendar provides working-hours arithmetic over a minute-based
// time axis. Day zero starts at the scheduling horizon.
package calendar

import "sort"

// MinutesPerDay is the length of the repeating calendar cycle.
const MinutesPerDay = 24 * 60

// Window is a daily availability interval [Start, End) in minutes since
// midnight.
type Window struct {
	Start int
	End   int
}

// Calendar is the repeating daily availability of one machine. A nil or empty
// calendar means always available.
type Calendar struct {
	windows []Window
	longest int
}

// New builds a calendar from daily windows. Windows are sorted by start time.
func New(windows []Window) *Calendar {
	if len(windows) == 0 {
		return nil
	}
	ws := make([]Window, len(windows))
	copy(ws, windows)
	sort.Slice(ws, func(i, j int) bool { return ws[i].Start < ws[j].Start })
	longest := 0
	for _, w := range ws {
		if w.End-w.Start > longest {
			longest = w.End - w.Start
		}
	}
	return &Calendar{windows: ws, longest: longest}
}

// DailyCapacity returns the total available minutes per day.
func (c *Calendar) DailyCapacity() int {
	if c == nil {
		return MinutesPerDay
	}
	total := 0
	for _, w := range c.windows {
		total += w.End - w.Start
	}
	return total
}

// Fits reports whether an operation of the given duration can run inside any
// single window occurrence. Operations never carry over across off-hours.
func (c *Calendar) Fits(duration int) bool {
	if c == nil {
		return true
	}
	return duration <= c.longest
}

// Next returns the earliest start at or after t such that [start, start+duration)
// lies entirely within one daily window. The boolean is false when the
// duration fits no window at all.
func (c *Calendar) Next(t, duration int) (int, bool) {
	if c == nil {
		return t, true
	}
	if !c.Fits(duration) {
		return 0, false
	}
	if t < 0 {
		t = 0
	}
	day := t / MinutesPerDay
	tod := t % MinutesPerDay
	for {
		base := day * MinutesPerDay
		for _, w := range c.windows {
			if w.End-w.Start < duration {
				continue
			}
			start := tod
			if start < w.Start {
				start = w.Start
			}
			if start+duration <= w.End {
				return base + start, true
			}
		}
		day++
		tod = 0
	}
}
