package pipeline

import (
	"fmt"
	"time"
)

// Schedule is a fixed run cadence.
type Schedule struct {
	name     string
	interval time.Duration
}

var presets = map[string]time.Duration{
	"@hourly": time.Hour,
	"@daily":  24 * time.Hour,
	"@weekly": 7 * 24 * time.Hour,
}

// Daily runs once every 24 hours.
var Daily = Schedule{name: "@daily", interval: 24 * time.Hour}

// ParseSchedule accepts a preset (@hourly, @daily, @weekly) or a positive
// duration such as "6h".
func ParseSchedule(s string) (Schedule, error) {
	if d, ok := presets[s]; ok {
		return Schedule{name: s, interval: d}, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid schedule %q: %w", s, err)
	}
	if d <= 0 {
		return Schedule{}, fmt.Errorf("invalid schedule %q: interval must be positive", s)
	}
	return Schedule{name: s, interval: d}, nil
}

// EveryInterval builds an unnamed schedule from d.
func EveryInterval(d time.Duration) Schedule {
	return Schedule{name: d.String(), interval: d}
}

func (s Schedule) String() string { return s.name }

// Interval returns the time between two runs.
func (s Schedule) Interval() time.Duration { return s.interval }

// NextRun returns the first boundary start + k*interval strictly after after.
func (s Schedule) NextRun(start, after time.Time) time.Time {
	if after.Before(start) {
		return start
	}
	k := after.Sub(start)/s.interval + 1
	return start.Add(k * s.interval)
}

// StartDate returns midnight of the day that is offsetDays before now, in
// now's location.
func StartDate(now time.Time, offsetDays int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offsetDays)
}
