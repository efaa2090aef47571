package performance

import "time"

type Period struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PeriodInput struct {
	Name        string
	Type        string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	Active      *bool
}

type PeriodUpdate struct {
	Name        *string
	Type        *string
	StartDate   *time.Time
	EndDate     *time.Time
	Description *string
	Active      *bool
}

type Goal struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	PeriodID     string    `json:"periodId"`
	PeriodName   string    `json:"periodName,omitempty"`
	Description  string    `json:"description"`
	Weight       float64   `json:"weightPercent"`
	DueDate      time.Time `json:"dueDate"`
	Status       string    `json:"status"`
	Completion   float64   `json:"completionPercent"`
	Observations string    `json:"observations"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type GoalInput struct {
	EmployeeID   string
	PeriodID     string
	Description  string
	Weight       *float64
	DueDate      time.Time
	Status       string
	Completion   *float64
	Observations string
}

type GoalUpdate struct {
	Description  *string
	Weight       *float64
	DueDate      *time.Time
	Status       *string
	Completion   *float64
	Observations *string
}

type GoalFilter struct {
	EmployeeID string
	PeriodID   string
}

type Achievement struct {
	EmployeeID     string  `json:"employeeId"`
	PeriodID       string  `json:"periodId"`
	Percent        float64 `json:"percent"`
	TotalGoals     int     `json:"totalGoals"`
	CompletedGoals int     `json:"completedGoals"`
	WeightTotal    float64 `json:"weightTotal"`
}

type GoalSummary struct {
	EmployeeID        string         `json:"employeeId"`
	Total             int            `json:"total"`
	ByStatus          map[string]int `json:"byStatus"`
	AverageCompletion float64        `json:"averageCompletion"`
}

// Scores holds the eight evaluation criteria.
type Scores struct {
	QualityOfWork      float64 `json:"qualityOfWork"`
	Productivity       float64 `json:"productivity"`
	TechnicalKnowledge float64 `json:"technicalKnowledge"`
	Teamwork           float64 `json:"teamwork"`
	Communication      float64 `json:"communication"`
	Leadership         float64 `json:"leadership"`
	Responsibility     float64 `json:"responsibility"`
	Initiative         float64 `json:"initiative"`
}

// ScoreInput is a partial set of criteria; nil means "not supplied".
type ScoreInput struct {
	QualityOfWork      *float64
	Productivity       *float64
	TechnicalKnowledge *float64
	Teamwork           *float64
	Communication      *float64
	Leadership         *float64
	Responsibility     *float64
	Initiative         *float64
}

type Evaluation struct {
	ID                      string     `json:"id"`
	EmployeeID              string     `json:"employeeId"`
	PeriodID                *string    `json:"periodId"`
	PeriodName              string     `json:"periodName,omitempty"`
	PeriodType              string     `json:"periodType,omitempty"`
	EvaluatorID             string     `json:"evaluatorId"`
	EvaluatorName           string     `json:"evaluatorName,omitempty"`
	Type                    string     `json:"type"`
	EvaluationDate          time.Time  `json:"evaluationDate"`
	Scores                  Scores     `json:"scores"`
	TotalScore              float64    `json:"totalScore"`
	AchievementPercent      float64    `json:"achievementPercent"`
	Strengths               string     `json:"strengths"`
	ImprovementAreas        string     `json:"improvementAreas"`
	GeneralComments         string     `json:"generalComments"`
	RequiresImprovementPlan bool       `json:"requiresImprovementPlan"`
	ImprovementPlan         string     `json:"improvementPlan"`
	FollowUpDate            *time.Time `json:"followUpDate"`
	Status                  string     `json:"status"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

type EvaluationInput struct {
	EmployeeID              string
	PeriodID                string
	Type                    string
	EvaluationDate          *time.Time
	Scores                  ScoreInput
	AchievementPercent      *float64
	Strengths               string
	ImprovementAreas        string
	GeneralComments         string
	RequiresImprovementPlan bool
	ImprovementPlan         string
	FollowUpDate            *time.Time
	Status                  string
}

type EvaluationUpdate struct {
	EvaluationDate          *time.Time
	Scores                  ScoreInput
	AchievementPercent      *float64
	Strengths               *string
	ImprovementAreas        *string
	GeneralComments         *string
	RequiresImprovementPlan *bool
	ImprovementPlan         *string
	FollowUpDate            *time.Time
	Status                  *string
}

type EvaluationFilter struct {
	EmployeeID string
	PeriodID   string
	Type       string
	Status     string
}

type EvaluationStatistics struct {
	Count              int     `json:"count"`
	AverageScore       float64 `json:"averageScore"`
	MaxScore           float64 `json:"maxScore"`
	MinScore           float64 `json:"minScore"`
	AverageAchievement float64 `json:"averageAchievement"`
}

// ScoreSample is the pair of figures statistics are computed from.
type ScoreSample struct {
	TotalScore         float64
	AchievementPercent float64
}

type EmployeeHistory struct {
	EmployeeID  string               `json:"employeeId"`
	Evaluations []Evaluation         `json:"evaluations"`
	Statistics  EvaluationStatistics `json:"statistics"`
}
