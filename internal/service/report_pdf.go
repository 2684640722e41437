package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// BuildSystemReportPDF renders a system report as a downloadable PDF
func BuildSystemReportPDF(report *SystemReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("System Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SYSTEM REPORT")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC1123)))
	pdf.Ln(10)

	stats := report.Overview.Stats
	section(pdf, "Totals")
	lines := []string{
		fmt.Sprintf("Users:                %d", stats.TotalUsers),
		fmt.Sprintf("Questions:            %d", stats.TotalQuestions),
		fmt.Sprintf("Comments:             %d", stats.TotalComments),
		fmt.Sprintf("Votes:                %d", stats.TotalVotes),
		fmt.Sprintf("Tags:                 %d", stats.TotalTags),
		fmt.Sprintf("Unread notifications: %d", stats.UnreadNotifications),
	}
	body(pdf, lines)

	growth := report.Overview.Growth
	section(pdf, "Growth (trailing window)")
	body(pdf, []string{
		fmt.Sprintf("Users:     %d total, %d recent (+%.1f%%)", growth.Users.Total, growth.Users.Recent, growth.Users.Percentage),
		fmt.Sprintf("Questions: %d total, %d recent (+%.1f%%)", growth.Questions.Total, growth.Questions.Recent, growth.Questions.Percentage),
		fmt.Sprintf("Comments:  %d total, %d recent (+%.1f%%)", growth.Comments.Total, growth.Comments.Recent, growth.Comments.Percentage),
	})

	section(pdf, "Top Tags")
	for _, tag := range report.Overview.TopTags {
		pdf.Cell(0, 6, fmt.Sprintf("#%d  %s (%d questions)", tag.Rank, tag.Name, tag.QuestionCount))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, "Storage")
	for _, table := range report.Tables {
		pdf.Cell(0, 6, fmt.Sprintf("%s: ~%d rows, %d KB data, %d KB index",
			table.TableName, table.Rows, table.DataBytes/1024, table.IndexBytes/1024))
		pdf.Ln(6)
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %d KB data, %d KB index", report.DataBytes/1024, report.IndexBytes/1024))
	pdf.Ln(6)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("system_report_%s.pdf", report.GeneratedAt.Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func body(pdf *gofpdf.Fpdf, lines []string) {
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)
}
