// Package report renders interview report artifacts: a PDF document
// for interviewers plus a structured JSON record, both served from the
// static reports directory.
package report

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"excelinterview/internal/model"
)

// PDFRenderer writes report artifacts under dir and returns the URL of
// the PDF.
type PDFRenderer struct {
	dir string
}

func NewPDFRenderer(dir string) *PDFRenderer {
	return &PDFRenderer{dir: dir}
}

func (r *PDFRenderer) Render(rep *model.InterviewReport) (string, error) {
	filename := fmt.Sprintf("report_%s.pdf", rep.SessionID)

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(13, 13, 13)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, fmt.Sprintf("Interview Report - %s", rep.CandidateName), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// Meta block
	pdf.SetFont("Helvetica", "", 9)
	meta := [][2]string{
		{"Candidate", rep.CandidateName},
		{"Email", rep.CandidateEmail},
		{"Skill Level", rep.SkillLevel},
		{"Overall Score", fmt.Sprintf("%.1f", rep.OverallScore)},
		{"Total Time (min)", fmt.Sprintf("%.1f", rep.TotalTimeMinutes)},
		{"Started At", rep.StartedAt.Format(time.RFC3339)},
		{"Completed At", rep.CompletedAt.Format(time.RFC3339)},
	}
	pdf.SetFillColor(245, 245, 245)
	for _, row := range meta {
		pdf.CellFormat(40, 6, row[0]+":", "1", 0, "L", true, 0, "")
		pdf.CellFormat(0, 6, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Metrics block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Detailed Metrics", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	metrics := [][2]string{
		{"Communication", fmt.Sprintf("%.1f", rep.Analysis.CommunicationScore)},
		{"Presentation", fmt.Sprintf("%.1f", rep.Analysis.PresentationScore)},
		{"Clarity", fmt.Sprintf("%.1f", rep.Analysis.ClarityScore)},
		{"Confidence", fmt.Sprintf("%.1f", rep.Analysis.ConfidenceScore)},
		{"Problem Solving", fmt.Sprintf("%.1f", rep.Analysis.ProblemSolvingScore)},
	}
	pdf.SetFillColor(240, 244, 255)
	for _, m := range metrics {
		pdf.CellFormat(38, 6, m[0], "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	for _, m := range metrics {
		pdf.CellFormat(38, 6, m[1], "1", 0, "C", false, 0, "")
	}
	pdf.Ln(10)

	// Summary and suggestions
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, rep.Analysis.Summary, "", "L", false)
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Improvement Suggestions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, sug := range rep.Analysis.Suggestions {
		pdf.MultiCell(0, 5, "- "+sug, "", "L", false)
	}
	pdf.Ln(5)

	// Answers table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Answers", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 6, "QID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(90, 6, "Answer", "1", 0, "L", true, 0, "")
	pdf.CellFormat(15, 6, "Score", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 6, "Followup", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 6, "Feedback", "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, a := range rep.Answers {
		qid := "None"
		if a.QuestionID != nil {
			qid = fmt.Sprintf("%d", *a.QuestionID)
		}
		followUp := "No"
		if a.IsFollowUp {
			followUp = "Yes"
		}
		pdf.CellFormat(15, 6, qid, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, truncate(a.UserAnswer, 70), "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%.0f", a.Score), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, followUp, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, truncate(a.Feedback, 40), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Generated: "+rep.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filepath.Join(r.dir, filename)); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	// The JSON record rides along with the PDF; a failure here does not
	// invalidate the artifact.
	if err := r.writeJSON(rep); err != nil {
		log.Printf("[report] failed to write JSON record: %v", err)
	}

	return "/static/reports/" + filename, nil
}

func (r *PDFRenderer) writeJSON(rep *model.InterviewReport) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(r.dir, fmt.Sprintf("report_%s.json", rep.SessionID))
	return os.WriteFile(path, data, 0o644)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
