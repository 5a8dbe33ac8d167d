package analytics

import (
	"time"

	"github.com/dongeng-kita/dongeng_api/dto"
	"github.com/dongeng-kita/dongeng_api/model"
)

type conceptAccumulator struct {
	totalDecisions   int
	correctDecisions int
	firstEncounter   *time.Time
	lastEncounter    *time.Time
}

// ConceptPerformance aggregates per-concept decision counts and success
// rates. Every theme attached to a record receives credit for all of that
// record's choices: the source data does not link individual choices to
// individual themes, so the whole session counts toward every theme it
// touched.
//
// When themes is non-empty the output is restricted to those labels;
// concepts never encountered are absent either way.
func ConceptPerformance(records []model.Story, themes []string) map[string]dto.ConceptStats {
	var restrict map[string]struct{}
	if len(themes) > 0 {
		restrict = make(map[string]struct{}, len(themes))
		for _, theme := range themes {
			restrict[theme] = struct{}{}
		}
	}

	accumulators := make(map[string]*conceptAccumulator)
	for _, record := range records {
		correct := countCorrect(record.Choices)

		for _, theme := range record.Themes {
			if restrict != nil {
				if _, ok := restrict[theme]; !ok {
					continue
				}
			}

			acc, ok := accumulators[theme]
			if !ok {
				acc = &conceptAccumulator{}
				accumulators[theme] = acc
			}

			acc.totalDecisions += len(record.Choices)
			acc.correctDecisions += correct

			if record.CreatedAt != nil {
				createdAt := record.CreatedAt.UTC()
				if acc.firstEncounter == nil || createdAt.Before(*acc.firstEncounter) {
					acc.firstEncounter = &createdAt
				}
			}
			if record.FinishedAt != nil {
				finishedAt := record.FinishedAt.UTC()
				if acc.lastEncounter == nil || finishedAt.After(*acc.lastEncounter) {
					acc.lastEncounter = &finishedAt
				}
			}
		}
	}

	performance := make(map[string]dto.ConceptStats, len(accumulators))
	for theme, acc := range accumulators {
		performance[theme] = dto.ConceptStats{
			TotalDecisions:   acc.totalDecisions,
			CorrectDecisions: acc.correctDecisions,
			SuccessRate:      successRate(acc.correctDecisions, acc.totalDecisions),
			FirstEncounter:   acc.firstEncounter,
			LastEncounter:    acc.lastEncounter,
		}
	}
	return performance
}
