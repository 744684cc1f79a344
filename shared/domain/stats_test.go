package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Record(t *testing.T) {
	var s Stats

	s.Record(SessionResult{Wpm: 60, Cpm: 300, Accuracy: 90})
	s.Record(SessionResult{Wpm: 80, Cpm: 400, Accuracy: 100, Missed: []string{"q"}})

	assert.Equal(t, 2, s.TestsCompleted)
	assert.Equal(t, 80.0, s.BestWpm)
	assert.InDelta(t, 70.0, s.AverageWpm, 1e-9)
	assert.InDelta(t, 350.0, s.AverageCpm, 1e-9)
	assert.InDelta(t, 95.0, s.AverageAccuracy, 1e-9)
	assert.Len(t, s.History, 2)
	assert.Equal(t, []string{"q"}, s.History[1].Missed)
}

func TestStats_Reset(t *testing.T) {
	s := Stats{TestsCompleted: 3, BestWpm: 100, History: []SessionResult{{Wpm: 1}}}
	s.Reset()

	assert.Zero(t, s.TestsCompleted)
	assert.Zero(t, s.BestWpm)
	assert.NotNil(t, s.History)
	assert.Empty(t, s.History)
}

func TestSettings_Merge(t *testing.T) {
	t.Run("nil receiver", func(t *testing.T) {
		var s Settings
		got := s.Merge(map[string]any{"theme": "dark"})
		assert.Equal(t, Settings{"theme": "dark"}, got)
	})

	t.Run("overrides only given keys", func(t *testing.T) {
		s := Settings{"theme": "light", "caret": "block"}
		got := s.Merge(map[string]any{"theme": "dark"})
		assert.Equal(t, Settings{"theme": "dark", "caret": "block"}, got)
	})
}
