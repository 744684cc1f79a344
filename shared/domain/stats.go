package domain

// SessionResult is the snapshot of one finished typing test.
// Timestamp is unix milliseconds, as browsers produce it.
type SessionResult struct {
	Wpm          float64  `json:"wpm"`
	Cpm          float64  `json:"cpm"`
	Accuracy     float64  `json:"accuracy"`
	Timestamp    int64    `json:"timestamp"`
	Missed       []string `json:"missed"`
	Combinations []string `json:"combinations"`
}

type Stats struct {
	TestsCompleted  int             `json:"testsCompleted"`
	BestWpm         float64         `json:"bestWpm"`
	AverageWpm      float64         `json:"averageWpm"`
	AverageCpm      float64         `json:"averageCpm"`
	AverageAccuracy float64         `json:"averageAccuracy"`
	History         []SessionResult `json:"history"`
}

// Record appends a session and updates the running averages.
func (s *Stats) Record(r SessionResult) {
	n := float64(s.TestsCompleted)
	s.AverageWpm = (s.AverageWpm*n + r.Wpm) / (n + 1)
	s.AverageCpm = (s.AverageCpm*n + r.Cpm) / (n + 1)
	s.AverageAccuracy = (s.AverageAccuracy*n + r.Accuracy) / (n + 1)
	if r.Wpm > s.BestWpm {
		s.BestWpm = r.Wpm
	}
	s.TestsCompleted++
	s.History = append(s.History, r)
}

// Reset wipes counters and history.
func (s *Stats) Reset() {
	*s = Stats{History: []SessionResult{}}
}
