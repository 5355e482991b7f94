package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
)

// Period keys are persisted and compared as opaque strings, so every key
// for a given (frequency, date) pair must come out of these functions and
// nowhere else. All of them are pure.
//
// Formats: daily "2006-01-02", weekly "2006-W02" (ISO week), biweekly
// "2006-B01" (ceil of ISO week / 2), monthly "2006-01".

func NormalizeFrequency(frequency string) string {
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyBiweekly, models.FrequencyMonthly:
		return frequency
	default:
		// Unknown frequencies degrade to daily keys rather than failing.
		return models.FrequencyDaily
	}
}

func PeriodKey(frequency string, day time.Time) string {
	switch NormalizeFrequency(frequency) {
	case models.FrequencyWeekly:
		year, week := day.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case models.FrequencyBiweekly:
		year, week := day.ISOWeek()
		return fmt.Sprintf("%04d-B%02d", year, (week+1)/2)
	case models.FrequencyMonthly:
		return day.Format("2006-01")
	default:
		return day.Format("2006-01-02")
	}
}

func PreviousPeriodKey(frequency string, day time.Time) string {
	normalized := NormalizeFrequency(frequency)
	return PeriodKey(normalized, previousPeriodReference(normalized, day))
}

func previousPeriodReference(frequency string, day time.Time) time.Time {
	switch frequency {
	case models.FrequencyWeekly:
		return day.AddDate(0, 0, -7)
	case models.FrequencyBiweekly:
		return day.AddDate(0, 0, -14)
	case models.FrequencyMonthly:
		firstOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return firstOfMonth.AddDate(0, 0, -1)
	default:
		return day.AddDate(0, 0, -1)
	}
}

// PeriodDisplay is the human-readable label for the period containing day.
func PeriodDisplay(frequency string, day time.Time) string {
	switch NormalizeFrequency(frequency) {
	case models.FrequencyWeekly:
		year, week := day.ISOWeek()
		return fmt.Sprintf("Week %02d of %d", week, year)
	case models.FrequencyBiweekly:
		year, week := day.ISOWeek()
		return fmt.Sprintf("Fortnight %02d of %d", (week+1)/2, year)
	case models.FrequencyMonthly:
		return day.Format("January 2006")
	default:
		return day.Format("02 Jan 2006")
	}
}

// DateAtLocation truncates value to midnight in the given location. Period
// keys for "now" must always be derived from the company's local calendar
// date, not the UTC one.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
