package book

import (
	"testing"
	"time"
)

func addContactWithBirthday(t *testing.T, b *Book, firstname, lastname, birthday string) *Record {
	t.Helper()
	values := map[string]string{"firstname": firstname, "lastname": lastname}
	if birthday != "" {
		values["birthday"] = birthday
	}
	rec, err := b.AddRecord(values)
	if err != nil {
		t.Fatalf("add %s %s: %v", firstname, lastname, err)
	}
	return rec
}

func TestUpcomingBirthdays(t *testing.T) {
	b := newContactBook(t)
	from := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	today := addContactWithBirthday(t, b, "Alice", "Smith", "1990-03-10")
	inFive := addContactWithBirthday(t, b, "Bob", "Jones", "1985-03-15")
	addContactWithBirthday(t, b, "Carol", "White", "1970-12-01")
	addContactWithBirthday(t, b, "Dave", "Brown", "")

	// Day-of match only.
	recs := b.UpcomingBirthdays(from, 0)
	if len(recs) != 1 || recs[0] != today {
		t.Fatalf("days=0: expected only the same-day birthday, got %d records", len(recs))
	}

	// The window is inclusive on both ends; the year is ignored.
	recs = b.UpcomingBirthdays(from, 5)
	if len(recs) != 2 {
		t.Fatalf("days=5: expected 2 records, got %d", len(recs))
	}
	if recs[0] != today || recs[1] != inFive {
		t.Error("days=5: expected insertion order preserved")
	}

	// One day short of the window excludes the later birthday.
	recs = b.UpcomingBirthdays(from, 4)
	if len(recs) != 1 {
		t.Errorf("days=4: expected 1 record, got %d", len(recs))
	}

	if recs := b.UpcomingBirthdays(from, -1); len(recs) != 0 {
		t.Errorf("negative window: expected no records, got %d", len(recs))
	}
}

func TestUpcomingBirthdays_CrossesYearBoundary(t *testing.T) {
	b := newContactBook(t)
	from := time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC)
	jan := addContactWithBirthday(t, b, "Alice", "Smith", "1990-01-02")

	recs := b.UpcomingBirthdays(from, 3)
	if len(recs) != 1 || recs[0] != jan {
		t.Errorf("expected the January birthday inside a window starting in December, got %d records", len(recs))
	}
}

func TestBirthdayInWindow(t *testing.T) {
	dates := UpcomingDates(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), 1)
	if !BirthdayInWindow("1990-03-11", dates) {
		t.Error("expected a birthday on the last window day to match")
	}
	if BirthdayInWindow("1990-03-12", dates) {
		t.Error("expected a birthday past the window not to match")
	}
	if BirthdayInWindow("", dates) {
		t.Error("expected an empty birthday not to match")
	}
	if BirthdayInWindow("03-11", dates) {
		t.Error("expected an unparseable birthday not to match")
	}
}
