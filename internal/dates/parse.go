package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	errNotDate        = errors.New("not a date")
	errDayOutOfRange  = errors.New("day is out of range for month")
	ordinalSuffixes   = []string{"st", "nd", "rd", "th"}
	twoDigitYearPivot = 70
)

// parsed holds the calendar fields found in a date text. year is only
// meaningful when hasYear is set.
type parsed struct {
	year    int
	hasYear bool
	month   time.Month
	day     int
}

type number struct {
	val    int
	digits int
}

func (n number) looksLikeYear() bool {
	return n.digits == 4 || n.val > 31
}

// parse leniently reads month, day and an optional year from text. Numeric
// forms are month-first unless the first value cannot be a month.
func parse(text string) (parsed, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return parsed{}, errNotDate
	}

	var nums []number
	var month time.Month
	for _, f := range fields {
		if n, ok := parseNumber(f); ok {
			nums = append(nums, n)
			continue
		}
		m, ok := monthFromWord(f)
		if !ok || month != 0 {
			return parsed{}, errNotDate
		}
		month = m
	}

	var p parsed
	switch {
	case month != 0 && len(nums) == 1:
		p = parsed{month: month, day: nums[0].val}
	case month != 0 && len(nums) == 2:
		y, d := nums[1], nums[0]
		if nums[0].looksLikeYear() {
			y, d = nums[0], nums[1]
		}
		p = parsed{month: month, day: d.val, year: expandYear(y), hasYear: true}
	case month == 0 && len(nums) == 2:
		if nums[0].digits == 4 {
			return parsed{}, errNotDate
		}
		p = parsed{month: time.Month(nums[0].val), day: nums[1].val}
	case month == 0 && len(nums) == 3:
		if nums[0].looksLikeYear() {
			p = parsed{year: expandYear(nums[0]), month: time.Month(nums[1].val), day: nums[2].val, hasYear: true}
		} else {
			p = parsed{month: time.Month(nums[0].val), day: nums[1].val, year: expandYear(nums[2]), hasYear: true}
		}
	default:
		return parsed{}, errNotDate
	}

	if p.month > 12 && p.day <= 12 && month == 0 {
		p.month, p.day = time.Month(p.day), int(p.month)
	}
	if p.month < time.January || p.month > time.December || p.day < 1 || p.day > 31 {
		return parsed{}, errNotDate
	}
	return p, nil
}

func parseNumber(f string) (number, bool) {
	lower := strings.ToLower(f)
	for _, suffix := range ordinalSuffixes {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) {
			lower = strings.TrimSuffix(lower, suffix)
			break
		}
	}
	if len(lower) == 0 || len(lower) > 4 {
		return number{}, false
	}
	v, err := strconv.Atoi(lower)
	if err != nil {
		return number{}, false
	}
	return number{val: v, digits: len(lower)}, true
}

// monthFromWord accepts full month names and prefixes of at least three
// letters ("Jan", "Sept").
func monthFromWord(w string) (time.Month, bool) {
	w = strings.ToLower(w)
	if len(w) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), w) {
			return m, true
		}
	}
	return 0, false
}

func expandYear(n number) int {
	if n.digits > 2 {
		return n.val
	}
	if n.val < twoDigitYearPivot {
		return 2000 + n.val
	}
	return 1900 + n.val
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
