package weather

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// DailySummaries collapses a multi-timestamp forecast feed into one
// DailyRecord per calendar day. Entries are grouped by the local date of
// their timestamp; the first entry for a date fixes the day's condition
// and description, and later entries only widen the min/max range.
//
// The day matching now's local date is excluded: the forecast feed
// overlaps the current day, which the current-conditions section already
// covers. Records are returned sorted by date ascending so callers can
// truncate to the nearest N days.
func DailySummaries(entries []ForecastEntry, now time.Time) []DailyRecord {
	byDate := make(map[string]*DailyRecord)

	for _, e := range entries {
		date := time.Unix(e.Timestamp, 0).Format(dateLayout)

		rec, ok := byDate[date]
		if !ok {
			byDate[date] = &DailyRecord{
				Date:        date,
				TempMinC:    e.TempMinC,
				TempMaxC:    e.TempMaxC,
				Condition:   e.Condition,
				Description: e.Description,
			}
			continue
		}

		if e.TempMinC < rec.TempMinC {
			rec.TempMinC = e.TempMinC
		}
		if e.TempMaxC > rec.TempMaxC {
			rec.TempMaxC = e.TempMaxC
		}
	}

	today := now.Format(dateLayout)

	records := make([]DailyRecord, 0, len(byDate))
	for date, rec := range byDate {
		if date == today {
			continue
		}
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})

	return records
}
