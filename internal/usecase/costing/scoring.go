package costing

// ScoringInput are the observed facts a scoring strategy works from
type ScoringInput struct {
	ScheduledMinutes  int
	ActualMinutes     int
	AttendanceRate    float64 // attended / invited, in [0,1]
	StartDelayMinutes int
}

// Scores are the bounded [0,1] quality signals of a completed meeting
type Scores struct {
	Efficiency   float64
	Productivity float64
	Satisfaction float64
}

// ScoringStrategy turns meeting facts into quality scores. Organizations
// plug in their own; DefaultScoring documents the shipped formula.
type ScoringStrategy interface {
	Score(in ScoringInput) Scores
}

// DefaultScoring implements the default formulas:
//
//	efficiency   = clamp01(attendanceRate x min(1, scheduled/actual))
//	productivity = clamp01((efficiency + punctuality) / 2)
//	punctuality  = clamp01(1 - startDelay/scheduled)
//	satisfaction = 0 (not collected; survey integration supplies it)
//
// Efficiency decreases monotonically with the overrun ratio and increases
// monotonically with attendance rate. A meeting that finishes within its
// scheduled slot is not penalized for being short.
type DefaultScoring struct{}

// Score implements ScoringStrategy
func (DefaultScoring) Score(in ScoringInput) Scores {
	timeFactor := 1.0
	if in.ActualMinutes > 0 && in.ScheduledMinutes > 0 && in.ActualMinutes > in.ScheduledMinutes {
		timeFactor = float64(in.ScheduledMinutes) / float64(in.ActualMinutes)
	}

	efficiency := clamp01(in.AttendanceRate * timeFactor)

	punctuality := 1.0
	if in.ScheduledMinutes > 0 {
		punctuality = clamp01(1 - float64(in.StartDelayMinutes)/float64(in.ScheduledMinutes))
	}

	return Scores{
		Efficiency:   efficiency,
		Productivity: clamp01((efficiency + punctuality) / 2),
		Satisfaction: 0,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
