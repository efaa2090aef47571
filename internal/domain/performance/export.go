package performance

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// WriteEvaluationPDF renders a one-page scorecard.
func WriteEvaluationPDF(w io.Writer, eval Evaluation) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance evaluation")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", eval.EmployeeID))
	pdf.Ln(7)
	period := "none"
	if eval.PeriodName != "" {
		period = fmt.Sprintf("%s (%s)", eval.PeriodName, eval.PeriodType)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period))
	pdf.Ln(7)
	evaluator := eval.EvaluatorName
	if evaluator == "" {
		evaluator = eval.EvaluatorID
	}
	pdf.Cell(0, 8, fmt.Sprintf("Evaluator: %s", evaluator))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Type: %s    Date: %s    Status: %s", eval.Type, eval.EvaluationDate.Format(dateLayout), eval.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Criterion", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Score", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	rows := []struct {
		label string
		value float64
	}{
		{"Quality of work", eval.Scores.QualityOfWork},
		{"Productivity", eval.Scores.Productivity},
		{"Technical knowledge", eval.Scores.TechnicalKnowledge},
		{"Teamwork", eval.Scores.Teamwork},
		{"Communication", eval.Scores.Communication},
		{"Leadership", eval.Scores.Leadership},
		{"Responsibility", eval.Scores.Responsibility},
		{"Initiative", eval.Scores.Initiative},
	}
	for _, row := range rows {
		pdf.CellFormat(90, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.1f", row.value), "1", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", eval.TotalScore), "1", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Goal achievement: %.2f%%", eval.AchievementPercent))
	pdf.Ln(10)
	for _, section := range []struct{ title, body string }{
		{"Strengths", eval.Strengths},
		{"Improvement areas", eval.ImprovementAreas},
		{"General comments", eval.GeneralComments},
	} {
		if section.body == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, section.title)
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.body, "", "L", false)
		pdf.Ln(3)
	}
	if eval.RequiresImprovementPlan {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Improvement plan")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, eval.ImprovementPlan, "", "L", false)
		if eval.FollowUpDate != nil {
			pdf.Cell(0, 8, "Follow-up: "+eval.FollowUpDate.Format(dateLayout))
		}
	}
	return pdf.Output(w)
}

// WriteHistoryXLSX writes the evaluation history and approved statistics as a workbook.
func WriteHistoryXLSX(w io.Writer, history EmployeeHistory) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Evaluations"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	header := []any{"Date", "Period", "Period type", "Type", "Evaluator", "Total score", "Achievement %", "Status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", headerStyle); err != nil {
		return err
	}
	for i, eval := range history.Evaluations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		evaluator := eval.EvaluatorName
		if evaluator == "" {
			evaluator = eval.EvaluatorID
		}
		row := []any{
			eval.EvaluationDate.Format(dateLayout),
			eval.PeriodName,
			eval.PeriodType,
			eval.Type,
			evaluator,
			eval.TotalScore,
			eval.AchievementPercent,
			eval.Status,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	const statsSheet = "Statistics"
	if _, err := f.NewSheet(statsSheet); err != nil {
		return err
	}
	stats := [][]any{
		{"Approved evaluations", history.Statistics.Count},
		{"Average score", history.Statistics.AverageScore},
		{"Max score", history.Statistics.MaxScore},
		{"Min score", history.Statistics.MinScore},
		{"Average achievement %", history.Statistics.AverageAchievement},
	}
	for i, row := range stats {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(statsSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(statsSheet, "A1", "A5", headerStyle); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
