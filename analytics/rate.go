package analytics

import (
	"math"

	"github.com/dongeng-kita/dongeng_api/model"
	"github.com/dongeng-kita/dongeng_api/shared"
)

// round1 rounds to one decimal place, the precision of every rate and
// duration figure in the analytic responses.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// successRate is correct/total as a percentage in [0,100], defined as 0.0
// for an empty denominator.
func successRate(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return round1(float64(correct) / float64(total) * 100)
}

func countCorrect(choices model.ChoiceList) int {
	correct := 0
	for _, choice := range choices {
		if shared.IsGoodOutcome(choice.Outcome) {
			correct++
		}
	}
	return correct
}
