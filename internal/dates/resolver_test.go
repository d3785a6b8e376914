package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fixedYear(y int) *Resolver {
	return &Resolver{DefaultYear: func() int { return y }}
}

func TestResolve(t *testing.T) {
	r := fixedYear(2023)
	tests := []struct {
		text string
		want time.Time
		ok   bool
	}{
		{"01/15", date(2021, 1, 15), true},
		{"1/5", date(2021, 1, 5), true},
		{"01/15/19", date(2021, 1, 15), true},
		{"12/31/2020", date(2021, 12, 31), true},
		{"2019-07-04", date(2021, 7, 4), true},
		{"2019/07/04", date(2021, 7, 4), true},
		{"Jan 15", date(2021, 1, 15), true},
		{"Jan 15, 2020", date(2021, 1, 15), true},
		{"15 Jan 2020", date(2021, 1, 15), true},
		{"15-Jan-20", date(2021, 1, 15), true},
		{"September 3rd", date(2021, 9, 3), true},
		{"Sept 3", date(2021, 9, 3), true},
		{"13/01", date(2021, 1, 13), true},
		{" 03/04 ", date(2021, 3, 4), true},
		{"", time.Time{}, false},
		{"Date", time.Time{}, false},
		{"Total fees", time.Time{}, false},
		{"Daily Cash", time.Time{}, false},
		{"12.50", time.Time{}, false},
		{"13/13", time.Time{}, false},
		{"04/31", time.Time{}, false},
		{"1/2/3/4", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := r.Resolve(2021, tt.text)
		assert.Equal(t, tt.ok, ok, "Resolve(%q)", tt.text)
		assert.Equal(t, tt.want, got, "Resolve(%q)", tt.text)
	}
}

func TestResolve_DayOverflowReparsesWithStatementYear(t *testing.T) {
	// 2023 is not a leap year, so "02/29" only parses once 2020 is written in.
	r := fixedYear(2023)
	got, ok := r.Resolve(2020, "02/29")
	require.True(t, ok)
	assert.Equal(t, date(2020, 2, 29), got)

	got, ok = r.Resolve(2020, "Feb 29")
	require.True(t, ok)
	assert.Equal(t, date(2020, 2, 29), got)
}

func TestResolve_DayOverflowInNonLeapStatementYear(t *testing.T) {
	r := fixedYear(2023)
	_, ok := r.Resolve(2021, "02/29")
	assert.False(t, ok)
}

func TestResolve_LeapDefaultYearNonLeapStatementYear(t *testing.T) {
	r := fixedYear(2024)
	_, ok := r.Resolve(2021, "02/29")
	assert.False(t, ok)
}

func TestResolve_Idempotent(t *testing.T) {
	r := fixedYear(2023)
	for _, text := range []string{"01/15", "Dec 31", "02/28", "7/4/19"} {
		first, ok := r.Resolve(2021, text)
		require.True(t, ok, text)
		second, ok := r.Resolve(2021, first.Format("2006-01-02"))
		require.True(t, ok, text)
		assert.Equal(t, first, second, text)
	}
}

func TestResolve_NilResolverUsesCurrentYear(t *testing.T) {
	var r *Resolver
	got, ok := r.Resolve(2021, "03/04")
	require.True(t, ok)
	assert.Equal(t, date(2021, 3, 4), got)
}

func TestResolveColumn_YearBoundary(t *testing.T) {
	r := fixedYear(2023)
	got := r.ResolveColumn(2021, []string{"Date", "12/28", "12/31", "01/02", "", "01/05"})
	assert.Equal(t, []time.Time{
		{},
		date(2020, 12, 28),
		date(2020, 12, 31),
		date(2021, 1, 2),
		{},
		date(2021, 1, 5),
	}, got)
}

func TestResolveColumn_NoAdjustment(t *testing.T) {
	r := fixedYear(2023)
	tests := []struct {
		name  string
		texts []string
	}{
		{"only december", []string{"12/01", "12/31"}},
		{"only january", []string{"01/01", "01/31"}},
		{"nov dec jan", []string{"11/30", "12/01", "01/02"}},
		{"jan feb", []string{"01/30", "02/01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, d := range r.ResolveColumn(2021, tt.texts) {
				assert.Equal(t, 2021, d.Year())
			}
		})
	}
}

func TestMonthFromWord(t *testing.T) {
	tests := []struct {
		word string
		want time.Month
		ok   bool
	}{
		{"jan", time.January, true},
		{"JANUARY", time.January, true},
		{"Sept", time.September, true},
		{"ma", 0, false},
		{"mar", time.March, true},
		{"janx", 0, false},
	}
	for _, tt := range tests {
		got, ok := monthFromWord(tt.word)
		assert.Equal(t, tt.ok, ok, tt.word)
		assert.Equal(t, tt.want, got, tt.word)
	}
}
