package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongeng-kita/dongeng_api/analytics"
	"github.com/dongeng-kita/dongeng_api/model"
)

func choicesOf(outcomes ...string) model.ChoiceList {
	choices := make(model.ChoiceList, 0, len(outcomes))
	for i, outcome := range outcomes {
		choices = append(choices, model.Choice{Scene: i + 1, Outcome: outcome})
	}
	return choices
}

func TestConceptPerformance(t *testing.T) {
	created1 := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	created2 := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)
	created3 := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	finished3 := time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)

	records := []model.Story{
		{
			Themes:    model.StringList{"menabung"},
			Choices:   choicesOf("baik", "baik", "buruk"),
			CreatedAt: &created1,
		},
		{
			Themes:    model.StringList{"menabung", "kejujuran"},
			Choices:   choicesOf("baik", "buruk"),
			CreatedAt: &created2,
		},
		{
			Themes:     model.StringList{"kejujuran"},
			Choices:    choicesOf("baik", "baik", "baik", "baik"),
			CreatedAt:  &created3,
			FinishedAt: &finished3,
		},
	}

	t.Run("whole session credit per theme", func(t *testing.T) {
		performance := analytics.ConceptPerformance(records, nil)
		require.Len(t, performance, 2)

		menabung := performance["menabung"]
		assert.Equal(t, 5, menabung.TotalDecisions)
		assert.Equal(t, 3, menabung.CorrectDecisions)
		assert.Equal(t, 60.0, menabung.SuccessRate)

		kejujuran := performance["kejujuran"]
		assert.Equal(t, 6, kejujuran.TotalDecisions)
		assert.Equal(t, 5, kejujuran.CorrectDecisions)
		assert.Equal(t, 83.3, kejujuran.SuccessRate)
	})

	t.Run("encounter timestamps span the concept's sessions", func(t *testing.T) {
		performance := analytics.ConceptPerformance(records, nil)

		kejujuran := performance["kejujuran"]
		require.NotNil(t, kejujuran.FirstEncounter)
		assert.Equal(t, created2, *kejujuran.FirstEncounter)
		require.NotNil(t, kejujuran.LastEncounter)
		assert.Equal(t, finished3, *kejujuran.LastEncounter)

		// menabung sessions never finished.
		assert.Nil(t, performance["menabung"].LastEncounter)
	})

	t.Run("restriction keeps only requested concepts", func(t *testing.T) {
		performance := analytics.ConceptPerformance(records, []string{"menabung"})
		require.Len(t, performance, 1)
		assert.Contains(t, performance, "menabung")
	})

	t.Run("never encountered concept is absent", func(t *testing.T) {
		performance := analytics.ConceptPerformance(records, []string{"keberanian"})
		assert.Empty(t, performance)
	})

	t.Run("no choices yields a zero rate", func(t *testing.T) {
		empty := []model.Story{{
			Themes:    model.StringList{"kesabaran"},
			CreatedAt: &created1,
		}}
		performance := analytics.ConceptPerformance(empty, nil)
		stats := performance["kesabaran"]
		assert.Equal(t, 0, stats.TotalDecisions)
		assert.Equal(t, 0.0, stats.SuccessRate)
	})

	t.Run("idempotent over the same input", func(t *testing.T) {
		first := analytics.ConceptPerformance(records, nil)
		second := analytics.ConceptPerformance(records, nil)
		assert.Equal(t, first, second)
	})
}
