// Package dates turns the loosely formatted, usually year-less date cells of
// bank statements into calendar dates in a known statement year.
package dates

import (
	"fmt"
	"time"
)

// Resolver parses statement date texts.
type Resolver struct {
	// DefaultYear is the year assumed for texts that carry none, before the
	// statement year is applied. Defaults to the current year.
	DefaultYear func() int
}

// New returns a Resolver that assumes the current year for year-less texts.
func New() *Resolver {
	return &Resolver{DefaultYear: func() int { return time.Now().Year() }}
}

// Resolve parses text and forces the result into year. It reports false for
// texts that are not dates, including days that do not exist in year.
func (r *Resolver) Resolve(year int, text string) (time.Time, bool) {
	p, err := r.parseForYear(year, text)
	if err != nil {
		return time.Time{}, false
	}
	if p.day > daysIn(p.month, year) {
		return time.Time{}, false
	}
	return time.Date(year, p.month, p.day, 0, 0, 0, 0, time.UTC), true
}

// parseForYear parses text. When the day does not exist in the text's own
// year, the statement year is written into the text and it is parsed again,
// so the day is checked against the right month length.
func (r *Resolver) parseForYear(year int, text string) (parsed, error) {
	p, err := parse(text)
	if err != nil {
		return parsed{}, err
	}

	literal := p.year
	if !p.hasYear {
		literal = r.defaultYear()
	}
	if p.day <= daysIn(p.month, literal) {
		return p, nil
	}

	p, err = parse(fmt.Sprintf("%d/%s", year, text))
	if err != nil {
		return parsed{}, err
	}
	if p.day > daysIn(p.month, p.year) {
		return parsed{}, errDayOutOfRange
	}
	return p, nil
}

// ResolveColumn resolves every cell of a date column. Cells that are not
// dates come back as the zero time. A column whose dates fall only in
// December and January spans a year boundary: its December dates are moved
// to the previous year.
func (r *Resolver) ResolveColumn(year int, texts []string) []time.Time {
	out := make([]time.Time, len(texts))
	months := make(map[time.Month]bool)
	for i, text := range texts {
		d, ok := r.Resolve(year, text)
		if !ok {
			continue
		}
		out[i] = d
		months[d.Month()] = true
	}

	if len(months) != 2 || !months[time.January] || !months[time.December] {
		return out
	}
	for i, d := range out {
		if !d.IsZero() && d.Month() == time.December {
			out[i] = d.AddDate(-1, 0, 0)
		}
	}
	return out
}

func (r *Resolver) defaultYear() int {
	if r == nil || r.DefaultYear == nil {
		return time.Now().Year()
	}
	return r.DefaultYear()
}
