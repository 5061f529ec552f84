package countdown

import (
	"fmt"
	"time"

	"countdown/internal/core/model"
)

const secondsPerDay = 24 * 60 * 60

// Today returns the local calendar date of now at UTC midnight, the form
// EventRecord.Date uses, so the two subtract to a whole number of days.
func Today(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysLeft returns the number of calendar days from today to the record date.
func DaysLeft(record model.EventRecord, today time.Time) (int, bool) {
	date, ok := record.Date()
	if !ok {
		return 0, false
	}
	return int((date.Unix() - today.Unix()) / secondsPerDay), true
}

// Visible reports whether a record with the given policy and day count is shown.
func Visible(hidden model.HiddenPolicy, daysLeft, autoHiddenDays int) bool {
	if hidden == model.HiddenAlways {
		return false
	}
	if daysLeft < 0 {
		return false
	}
	if hidden == model.HiddenAuto && daysLeft > autoHiddenDays {
		return false
	}
	return true
}

// LabelText formats the remaining time as "name: N day(s)" under a week and
// "name: WwDd" from a week on.
func LabelText(name string, daysLeft int) string {
	weeks, days := daysLeft/7, daysLeft%7
	if weeks == 0 {
		unit := "day"
		if days > 1 {
			unit = "days"
		}
		return fmt.Sprintf("%s: %d %s", name, days, unit)
	}
	if days > 0 {
		return fmt.Sprintf("%s: %dw%dd", name, weeks, days)
	}
	return fmt.Sprintf("%s: %dw", name, weeks)
}

// Tip returns the record date as year/month/day without padding.
func Tip(record model.EventRecord) string {
	return fmt.Sprintf("%d/%d/%d", record.Year, record.Month, record.Day)
}

// Project turns a record into a label, or reports false when it is filtered out.
func Project(record model.EventRecord, today time.Time, autoHiddenDays int) (model.Label, bool) {
	if record.Hidden == model.HiddenAlways {
		return model.Label{}, false
	}
	daysLeft, ok := DaysLeft(record, today)
	if !ok || !Visible(record.Hidden, daysLeft, autoHiddenDays) {
		return model.Label{}, false
	}
	return model.Label{
		Text:  LabelText(record.Name, daysLeft),
		Color: record.BgColor,
		Tip:   Tip(record),
	}, true
}
