package performance

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func sampleEvaluation() Evaluation {
	periodID := "period-1"
	followUp := day("2025-05-01")
	return Evaluation{
		ID:                      "eval-1",
		EmployeeID:              "E",
		PeriodID:                &periodID,
		PeriodName:              "Q1 2025",
		PeriodType:              PeriodTypeQuarterly,
		EvaluatorID:             "u1",
		EvaluatorName:           "Dana Reviewer",
		Type:                    EvaluationTypeCompetencySkills,
		EvaluationDate:          time.Date(2025, 3, 30, 10, 0, 0, 0, time.UTC),
		Scores:                  Scores{QualityOfWork: 4, Productivity: 4, TechnicalKnowledge: 4, Teamwork: 4, Communication: 4, Leadership: 4, Responsibility: 4, Initiative: 4},
		TotalScore:              4,
		AchievementPercent:      70,
		Strengths:               "Reliable delivery.",
		RequiresImprovementPlan: true,
		ImprovementPlan:         "Pair on design reviews.",
		FollowUpDate:            &followUp,
		Status:                  EvaluationStatusApproved,
	}
}

func TestWriteEvaluationPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEvaluationPDF(&buf, sampleEvaluation()); err != nil {
		t.Fatalf("pdf error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestWriteHistoryXLSX(t *testing.T) {
	history := EmployeeHistory{
		EmployeeID:  "E",
		Evaluations: []Evaluation{sampleEvaluation()},
		Statistics:  EvaluationStatistics{Count: 1, AverageScore: 4, MaxScore: 4, MinScore: 4, AverageAchievement: 70},
	}
	var buf bytes.Buffer
	if err := WriteHistoryXLSX(&buf, history); err != nil {
		t.Fatalf("xlsx error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	period, err := f.GetCellValue("Evaluations", "B2")
	if err != nil || period != "Q1 2025" {
		t.Fatalf("expected period in B2, got %q (%v)", period, err)
	}
	evaluator, err := f.GetCellValue("Evaluations", "E2")
	if err != nil || evaluator != "Dana Reviewer" {
		t.Fatalf("expected evaluator in E2, got %q (%v)", evaluator, err)
	}
	count, err := f.GetCellValue("Statistics", "B1")
	if err != nil || count != "1" {
		t.Fatalf("expected approved count 1, got %q (%v)", count, err)
	}

	for _, ref := range [][2]string{{"Evaluations", "A1"}, {"Evaluations", "H1"}, {"Statistics", "A3"}} {
		style, err := f.GetCellStyle(ref[0], ref[1])
		if err != nil || style == 0 {
			t.Fatalf("expected header style on %s!%s, got %d (%v)", ref[0], ref[1], style, err)
		}
	}
	if style, _ := f.GetCellStyle("Evaluations", "A2"); style != 0 {
		t.Fatalf("expected data rows unstyled, got style %d", style)
	}
}
