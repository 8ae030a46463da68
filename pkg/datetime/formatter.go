package datetime

import "time"

type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatForDisplay renders a timestamp the way the listing cards and the
// registered-users table show it: relative for recent dates, absolute
// otherwise.
func (f *Formatter) FormatForDisplay(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}

	local := t.Local()
	now := time.Now()

	if isSameDay(local, now) {
		return "Today"
	}

	yesterday := now.AddDate(0, 0, -1)
	if isSameDay(local, yesterday) {
		return "Yesterday"
	}

	weekAgo := now.AddDate(0, 0, -7)
	if local.After(weekAgo) && local.Before(now) {
		return local.Format("Monday")
	}

	if local.Year() == now.Year() {
		return local.Format("January 2")
	}

	return local.Format("January 2, 2006")
}

// FormatDate is the short absolute form used inside lease periods.
func (f *Formatter) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006")
}

// ParseDateInput parses the value of an HTML date input.
func (f *Formatter) ParseDateInput(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func isSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
