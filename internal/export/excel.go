// Package export writes candidate data and filled forms to Excel workbooks.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/candidate-intake/internal/db"
	"github.com/jonathan/candidate-intake/internal/forms"
)

// CandidatesToExcel writes all candidates to a workbook with a summary sheet
// and a candidates table.
func CandidatesToExcel(candidates []db.Candidate, outputPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	summarySheet := "Summary"
	candidatesSheet := "Candidates"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, candidates); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, candidatesSheet, candidates); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	return saveWorkbook(f, outputPath)
}

// FormToExcel writes one filled form to a workbook, one section per block.
func FormToExcel(form forms.FilledForm, template forms.FormTemplate, outputPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Form"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "B", 60)

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return err
	}
	labelStyle, err := newLabelStyle(f)
	if err != nil {
		return err
	}

	row := 1
	_ = f.SetCellValue(sheet, cell("A", row), formTitle(form.FormType))
	_ = f.SetCellStyle(sheet, cell("A", row), cell("B", row), headerStyle)
	_ = f.MergeCell(sheet, cell("A", row), cell("B", row))
	row++

	_ = f.SetCellValue(sheet, cell("A", row), "Generated:")
	_ = f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
	_ = f.SetCellValue(sheet, cell("B", row), form.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"))
	row += 2

	for _, sectionName := range template.SectionNames() {
		values := form.Sections[sectionName]

		_ = f.SetCellValue(sheet, cell("A", row), sectionTitle(sectionName))
		_ = f.SetCellStyle(sheet, cell("A", row), cell("B", row), headerStyle)
		_ = f.MergeCell(sheet, cell("A", row), cell("B", row))
		row++

		fields := template.Sections[sectionName]
		for _, fieldKey := range fields.FieldKeys() {
			label := fields[fieldKey].Label
			if label == "" {
				label = sectionTitle(fieldKey)
			}
			_ = f.SetCellValue(sheet, cell("A", row), label+":")
			_ = f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
			if values != nil {
				_ = f.SetCellValue(sheet, cell("B", row), values[fieldKey])
			}
			row++
		}
		row++
	}

	return saveWorkbook(f, outputPath)
}

func writeSummarySheet(f *excelize.File, sheet string, candidates []db.Candidate) error {
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 50)

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return err
	}
	labelStyle, err := newLabelStyle(f)
	if err != nil {
		return err
	}

	row := 1
	_ = f.SetCellValue(sheet, cell("A", row), "Candidate Intake Report")
	_ = f.SetCellStyle(sheet, cell("A", row), cell("B", row), headerStyle)
	_ = f.MergeCell(sheet, cell("A", row), cell("B", row))
	row += 2

	_ = f.SetCellValue(sheet, cell("A", row), "Generated:")
	_ = f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
	_ = f.SetCellValue(sheet, cell("B", row), time.Now().Format("2006-01-02 15:04:05"))
	row++

	_ = f.SetCellValue(sheet, cell("A", row), "Total Candidates:")
	_ = f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
	_ = f.SetCellValue(sheet, cell("B", row), len(candidates))
	row++

	withEmail := 0
	withExperience := 0
	for _, c := range candidates {
		if c.Record.Email != "" {
			withEmail++
		}
		if c.Record.ExperienceYears > 0 {
			withExperience++
		}
	}
	_ = f.SetCellValue(sheet, cell("A", row), "With Email:")
	_ = f.SetCellValue(sheet, cell("B", row), withEmail)
	row++
	_ = f.SetCellValue(sheet, cell("A", row), "With Known Experience:")
	_ = f.SetCellValue(sheet, cell("B", row), withExperience)

	return nil
}

var candidateHeaders = []string{
	"Name", "Email", "Phone", "Location", "Current Position",
	"Current Company", "Experience (Years)", "Skills", "LinkedIn", "Added",
}

func writeCandidatesSheet(f *excelize.File, sheet string, candidates []db.Candidate) error {
	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		return err
	}

	for i, header := range candidateHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		_ = f.SetColWidth(sheet, col, col, 22)
		_ = f.SetCellValue(sheet, cell(col, 1), header)
	}
	lastCol, err := excelize.ColumnNumberToName(len(candidateHeaders))
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, cell("A", 1), cell(lastCol, 1), headerStyle)

	for i, c := range candidates {
		row := i + 2
		values := []any{
			c.Record.Name, c.Record.Email, c.Record.Phone, c.Record.Location,
			c.Record.CurrentPosition, c.Record.CurrentCompany,
			c.Record.ExperienceYears, strings.Join(c.Record.Skills, ", "),
			c.Record.LinkedInURL, c.CreatedAt.Format("2006-01-02"),
		}
		for j, value := range values {
			col, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				return err
			}
			_ = f.SetCellValue(sheet, cell(col, row), value)
		}
	}
	return nil
}

func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
}

func newLabelStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
}

// saveWorkbook writes the file, falling back to a buffered write when the
// direct save fails.
func saveWorkbook(f *excelize.File, outputPath string) error {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SaveAs(outputPath); err != nil {
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save workbook: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0o644); fileErr != nil {
			return fmt.Errorf("failed to save workbook: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func formTitle(formType string) string {
	return sectionTitle(formType)
}

// sectionTitle turns snake_case keys into display headings.
func sectionTitle(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
