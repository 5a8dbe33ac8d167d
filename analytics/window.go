// Package analytics holds the pure aggregation functions behind the
// analytic endpoints: time-window filtering, per-concept performance,
// calendar-bucketed timelines and account-wide statistics. Every function
// here is a pure transformation over an in-memory record slice; fetching,
// caching and HTTP concerns live in the services layer.
package analytics

import (
	"time"

	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/shared"
)

const dateLayout = "2006-01-02"

// daysPerMonth is a deliberate approximation: a "month" window is 30 days,
// not a calendar month.
const daysPerMonth = 30

// Window is a resolved time filter. Start is always set; End is nil for
// open-ended trailing windows.
type Window struct {
	Start time.Time
	End   *time.Time
}

// ResolveWindow turns the raw query parameters into a Window relative to
// now. It returns nil (identity filter) when no time parameter is given.
//
//   - start_date only: [start_date, now]
//   - start_date and end_date: [start_date, end_date]
//   - num_periods: [now - num_periods*unit, open), week-sized units
//     unless time_unit says otherwise
//
// A time_unit alone carries no window; it only picks the bucket size.
func ResolveWindow(startDate, endDate, timeUnit string, numPeriods int, now time.Time) (*Window, error) {
	if timeUnit != "" && timeUnit != shared.TimeUnitWeek && timeUnit != shared.TimeUnitMonth {
		return nil, shared.ErrInvalidTimeUnit(timeUnit)
	}

	if startDate != "" {
		start, err := parseDate(startDate)
		if err != nil {
			return nil, err
		}

		end := now.UTC()
		if endDate != "" {
			end, err = parseDate(endDate)
			if err != nil {
				return nil, err
			}
		}
		return &Window{Start: start, End: &end}, nil
	}

	if endDate != "" {
		return nil, shared.ErrInvalidDateFormat("start_date is required when end_date is set")
	}

	if numPeriods > 0 {
		unit := timeUnit
		if unit == "" {
			unit = shared.TimeUnitWeek
		}

		var delta time.Duration
		switch unit {
		case shared.TimeUnitWeek:
			delta = time.Duration(numPeriods) * 7 * 24 * time.Hour
		case shared.TimeUnitMonth:
			delta = time.Duration(numPeriods) * daysPerMonth * 24 * time.Hour
		}
		return &Window{Start: now.UTC().Add(-delta)}, nil
	}

	return nil, nil
}

// FilterByWindow returns the records whose created_at falls inside w. A nil
// window is the identity filter. Once any window is active, records without
// created_at are dropped. Comparisons happen in UTC; the interval is closed
// on both ends.
func FilterByWindow(records []model.Story, w *Window) []model.Story {
	if w == nil {
		return records
	}

	filtered := make([]model.Story, 0, len(records))
	for _, record := range records {
		if record.CreatedAt == nil {
			continue
		}

		createdAt := record.CreatedAt.UTC()
		if createdAt.Before(w.Start) {
			continue
		}
		if w.End != nil && createdAt.After(*w.End) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.ErrInvalidDateFormat(value)
	}
	return parsed.UTC(), nil
}
