package performance

import (
	"math"
	"time"
)

// DateOnly drops the clock part, keeping the calendar day of t.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the closed intervals [s1,e1] and [s2,e2] share a day.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}

// FindOverlap returns the first period intersecting [start,end], skipping excludeID.
func FindOverlap(periods []Period, start, end time.Time, excludeID string) (Period, bool) {
	for _, p := range periods {
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		if Overlaps(DateOnly(p.StartDate), DateOnly(p.EndDate), DateOnly(start), DateOnly(end)) {
			return p, true
		}
	}
	return Period{}, false
}

// ActivePeriod picks the active period containing today, latest start first.
func ActivePeriod(periods []Period, today time.Time) (Period, bool) {
	day := DateOnly(today)
	var (
		best  Period
		found bool
	)
	for _, p := range periods {
		if !p.Active {
			continue
		}
		if day.Before(DateOnly(p.StartDate)) || day.After(DateOnly(p.EndDate)) {
			continue
		}
		if !found || p.StartDate.After(best.StartDate) {
			best = p
			found = true
		}
	}
	return best, found
}

// round2 rounds half away from zero to the two decimals percentages and
// scores are stored with.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// WeightedAchievement is Σ(w·c/100) / Σw · 100 over the goals, 0 when Σw is 0.
func WeightedAchievement(goals []Goal) Achievement {
	var result Achievement
	var weighted float64
	for _, goal := range goals {
		result.TotalGoals++
		if goal.Status == GoalStatusCompleted {
			result.CompletedGoals++
		}
		result.WeightTotal += goal.Weight
		weighted += goal.Weight * goal.Completion / 100
	}
	if result.WeightTotal > 0 {
		result.Percent = round2(weighted / result.WeightTotal * 100)
	}
	result.WeightTotal = round2(result.WeightTotal)
	return result
}

func buildGoalSummary(employeeID string, goals []Goal) GoalSummary {
	summary := GoalSummary{
		EmployeeID: employeeID,
		ByStatus:   make(map[string]int, len(GoalStatuses)),
	}
	for _, status := range GoalStatuses {
		summary.ByStatus[status] = 0
	}
	var completion float64
	for _, goal := range goals {
		summary.Total++
		summary.ByStatus[goal.Status]++
		completion += goal.Completion
	}
	if summary.Total > 0 {
		summary.AverageCompletion = round2(completion / float64(summary.Total))
	}
	return summary
}

type criterion struct {
	name  string
	value *float64
}

func (in *ScoreInput) criteria() []criterion {
	return []criterion{
		{"qualityOfWork", in.QualityOfWork},
		{"productivity", in.Productivity},
		{"technicalKnowledge", in.TechnicalKnowledge},
		{"teamwork", in.Teamwork},
		{"communication", in.Communication},
		{"leadership", in.Leadership},
		{"responsibility", in.Responsibility},
		{"initiative", in.Initiative},
	}
}

func (s *Scores) values() []*float64 {
	return []*float64{
		&s.QualityOfWork,
		&s.Productivity,
		&s.TechnicalKnowledge,
		&s.Teamwork,
		&s.Communication,
		&s.Leadership,
		&s.Responsibility,
		&s.Initiative,
	}
}

// ValidateScores checks every supplied criterion against the 1-5 scale in half steps.
func ValidateScores(in ScoreInput) error {
	verr := &ValidationError{}
	for _, c := range in.criteria() {
		if c.value == nil {
			continue
		}
		if reason := scoreProblem(*c.value); reason != "" {
			verr.add(c.name, reason)
		}
	}
	return verr.orNil()
}

func scoreProblem(v float64) string {
	if math.IsNaN(v) || v < MinCriterionScore || v > MaxCriterionScore {
		return "must be between 1 and 5"
	}
	steps := v / CriterionStep
	if steps != math.Trunc(steps) {
		return "must be a multiple of 0.5"
	}
	return ""
}

// MergeScores overlays the supplied criteria on top of current.
func MergeScores(current Scores, in ScoreInput) Scores {
	out := current
	dst := out.values()
	for i, c := range in.criteria() {
		if c.value != nil {
			*dst[i] = *c.value
		}
	}
	return out
}

func completeScores(in ScoreInput) (Scores, error) {
	verr := &ValidationError{}
	for _, c := range in.criteria() {
		if c.value == nil {
			verr.add(c.name, "is required")
		}
	}
	if err := verr.orNil(); err != nil {
		return Scores{}, err
	}
	return MergeScores(Scores{}, in), nil
}

// TotalScore is the arithmetic mean of the eight criteria.
func TotalScore(s Scores) float64 {
	values := s.values()
	var sum float64
	for _, v := range values {
		sum += *v
	}
	return round2(sum / float64(len(values)))
}

func buildEvaluationStatistics(samples []ScoreSample) EvaluationStatistics {
	stats := EvaluationStatistics{Count: len(samples)}
	if len(samples) == 0 {
		return stats
	}
	var scoreSum, achievementSum float64
	stats.MaxScore = samples[0].TotalScore
	stats.MinScore = samples[0].TotalScore
	for _, sample := range samples {
		scoreSum += sample.TotalScore
		achievementSum += sample.AchievementPercent
		stats.MaxScore = math.Max(stats.MaxScore, sample.TotalScore)
		stats.MinScore = math.Min(stats.MinScore, sample.TotalScore)
	}
	stats.AverageScore = round2(scoreSum / float64(len(samples)))
	stats.AverageAchievement = round2(achievementSum / float64(len(samples)))
	return stats
}

func percentProblem(v float64) string {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return "must be between 0 and 100"
	}
	return ""
}

func contains(values []string, candidate string) bool {
	for _, v := range values {
		if v == candidate {
			return true
		}
	}
	return false
}
