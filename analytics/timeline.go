package analytics

import (
	"sort"
	"time"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// bucketAccumulator collects one calendar period's raw figures before the
// final metrics are computed. Accumulators for the same key can be merged,
// so batches may be aggregated independently.
type bucketAccumulator struct {
	totalMinutes     float64
	storiesCompleted int
	successes        int
	totalChoices     int
	concepts         map[string]struct{}
	activeDays       map[string]struct{}
	sessionMinutes   []float64
}

func newBucketAccumulator() *bucketAccumulator {
	return &bucketAccumulator{
		concepts:   make(map[string]struct{}),
		activeDays: make(map[string]struct{}),
	}
}

func (b *bucketAccumulator) add(record model.Story) {
	// Zero-second sessions carry no duration signal and stay out of both
	// the minute total and the session average, finished or not.
	if record.SessionSeconds > 0 {
		minutes := float64(record.SessionSeconds) / 60
		b.totalMinutes += minutes
		b.sessionMinutes = append(b.sessionMinutes, minutes)
	}

	if record.Status == shared.StatusFinished {
		b.storiesCompleted++
	}

	b.successes += countCorrect(record.Choices)
	b.totalChoices += len(record.Choices)

	for _, theme := range record.Themes {
		b.concepts[theme] = struct{}{}
	}
	if record.CreatedAt != nil {
		b.activeDays[record.CreatedAt.UTC().Format(dateLayout)] = struct{}{}
	}
}

func (b *bucketAccumulator) merge(other *bucketAccumulator) {
	b.totalMinutes += other.totalMinutes
	b.storiesCompleted += other.storiesCompleted
	b.successes += other.successes
	b.totalChoices += other.totalChoices
	b.sessionMinutes = append(b.sessionMinutes, other.sessionMinutes...)
	for concept := range other.concepts {
		b.concepts[concept] = struct{}{}
	}
	for day := range other.activeDays {
		b.activeDays[day] = struct{}{}
	}
}

func (b *bucketAccumulator) metrics() dto.TimelineMetrics {
	avgSession := 0.0
	if len(b.sessionMinutes) > 0 {
		sum := 0.0
		for _, minutes := range b.sessionMinutes {
			sum += minutes
		}
		avgSession = sum / float64(len(b.sessionMinutes))
	}

	concepts := make([]string, 0, len(b.concepts))
	for concept := range b.concepts {
		concepts = append(concepts, concept)
	}
	sort.Strings(concepts)

	return dto.TimelineMetrics{
		TotalMinutesPlayed:     round1(b.totalMinutes),
		StoriesCompleted:       b.storiesCompleted,
		SuccessRate:            successRate(b.successes, b.totalChoices),
		ConceptsEncountered:    concepts,
		ActiveDays:             len(b.activeDays),
		AverageSessionDuration: round1(avgSession),
	}
}

// BucketKey returns the calendar bucket a timestamp belongs to: the ISO
// Monday of its week as YYYY-MM-DD, or YYYY-MM for month buckets. Both
// forms sort chronologically as strings.
func BucketKey(t time.Time, unit string) string {
	t = t.UTC()
	if unit == shared.TimeUnitMonth {
		return t.Format("2006-01")
	}

	offset := int(t.Weekday()) - 1
	if offset < 0 { // Sunday
		offset = 6
	}
	return t.AddDate(0, 0, -offset).Format(dateLayout)
}

// Timeline buckets records into calendar periods and computes per-bucket
// engagement metrics, most recent bucket first. Records without created_at
// cannot be assigned a bucket and are skipped.
func Timeline(records []model.Story, unit string) ([]dto.TimelineBucket, error) {
	if unit != shared.TimeUnitWeek && unit != shared.TimeUnitMonth {
		return nil, shared.ErrInvalidTimeUnit(unit)
	}

	buckets := aggregateBuckets(records, unit)

	keys := sortedKeysDescending(buckets)
	timeline := make([]dto.TimelineBucket, 0, len(keys))
	for _, key := range keys {
		timeline = append(timeline, dto.TimelineBucket{
			TimeUnit: key,
			Metrics:  buckets[key].metrics(),
		})
	}
	return timeline, nil
}

// WeeklyTimeline is the dashboard view: always week buckets, keyed "week".
func WeeklyTimeline(records []model.Story) []dto.WeekBucket {
	buckets := aggregateBuckets(records, shared.TimeUnitWeek)

	keys := sortedKeysDescending(buckets)
	timeline := make([]dto.WeekBucket, 0, len(keys))
	for _, key := range keys {
		timeline = append(timeline, dto.WeekBucket{
			Week:    key,
			Metrics: buckets[key].metrics(),
		})
	}
	return timeline
}

func aggregateBuckets(records []model.Story, unit string) map[string]*bucketAccumulator {
	buckets := make(map[string]*bucketAccumulator)
	for _, record := range records {
		if record.CreatedAt == nil {
			continue
		}

		key := BucketKey(*record.CreatedAt, unit)
		acc, ok := buckets[key]
		if !ok {
			acc = newBucketAccumulator()
			buckets[key] = acc
		}
		acc.add(record)
	}
	return buckets
}

func sortedKeysDescending(buckets map[string]*bucketAccumulator) []string {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
