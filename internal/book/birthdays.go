package book

import "time"

// UpcomingDates returns the month-day keys ("01-02") of every date from
// the given day through daysAhead days later, inclusive. A negative
// daysAhead yields an empty set.
func UpcomingDates(from time.Time, daysAhead int) map[string]bool {
	dates := make(map[string]bool, daysAhead+1)
	for i := 0; i <= daysAhead; i++ {
		dates[from.AddDate(0, 0, i).Format("01-02")] = true
	}
	return dates
}

// BirthdayInWindow reports whether a YYYY-MM-DD birthday falls on one of
// the dates, comparing month and day only. Empty or unparseable values
// never match.
func BirthdayInWindow(birthday string, dates map[string]bool) bool {
	parsed, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return false
	}
	return dates[parsed.Format("01-02")]
}

// UpcomingBirthdays returns the records whose birthday falls within
// daysAhead days of from, in insertion order. The year is ignored; records
// without a birthday are skipped.
func (b *Book) UpcomingBirthdays(from time.Time, daysAhead int) []*Record {
	dates := UpcomingDates(from, daysAhead)
	var matched []*Record
	for _, rec := range b.records {
		if BirthdayInWindow(rec.Field("birthday"), dates) {
			matched = append(matched, rec)
		}
	}
	return matched
}
