package shared

import (
	"os"
	"strings"
)

const (
	UserID = "user_id"

	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"

	TimeUnitWeek  = "week"
	TimeUnitMonth = "month"
)

// defaultGoodOutcomes covers both generations of story data: older stories
// label the correct branch "baik", newer English ones "good".
var defaultGoodOutcomes = []string{"baik", "good"}

var goodOutcomes = loadGoodOutcomes()

func loadGoodOutcomes() map[string]struct{} {
	values := defaultGoodOutcomes
	if env := os.Getenv("ANALYTIC_GOOD_OUTCOMES"); env != "" {
		values = strings.Split(env, ",")
	}

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// IsGoodOutcome reports whether a choice outcome counts as the correct
// branch. Unknown or legacy values count as incorrect.
func IsGoodOutcome(outcome string) bool {
	_, ok := goodOutcomes[outcome]
	return ok
}
