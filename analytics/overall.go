package analytics

import (
	"sort"
	"time"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// Mastery tier thresholds: strictly above masteredThreshold is mastered,
// [learningThreshold, masteredThreshold] is learning, below is struggling.
const (
	masteredThreshold = 80.0
	learningThreshold = 60.0
)

// Overall computes account-wide statistics over the full, unfiltered record
// set of one user. Tier classification reuses the per-concept aggregation
// without any time window applied.
func Overall(records []model.Story) dto.OverallStats {
	var (
		storiesCompleted    int
		learningTimeSeconds int
		totalCorrect        int
		totalChoices        int
		accountCreated      *time.Time
	)

	for _, record := range records {
		if record.Status == shared.StatusFinished {
			storiesCompleted++
			learningTimeSeconds += record.SessionSeconds
		}

		totalChoices += len(record.Choices)
		totalCorrect += countCorrect(record.Choices)

		if record.CreatedAt != nil {
			createdAt := record.CreatedAt.UTC()
			if accountCreated == nil || createdAt.Before(*accountCreated) {
				accountCreated = &createdAt
			}
		}
	}

	mastered := []string{}
	learning := []string{}
	struggling := []string{}
	for concept, stats := range ConceptPerformance(records, nil) {
		switch {
		case stats.SuccessRate > masteredThreshold:
			mastered = append(mastered, concept)
		case stats.SuccessRate >= learningThreshold:
			learning = append(learning, concept)
		default:
			struggling = append(struggling, concept)
		}
	}
	sort.Strings(mastered)
	sort.Strings(learning)
	sort.Strings(struggling)

	return dto.OverallStats{
		TotalStoriesCompleted:  storiesCompleted,
		TotalLearningTimeHours: round1(float64(learningTimeSeconds) / 3600),
		OverallSuccessRate:     successRate(totalCorrect, totalChoices),
		ConceptsMastered:       mastered,
		ConceptsLearning:       learning,
		ConceptsStruggling:     struggling,
		AccountCreated:         accountCreated,
	}
}
