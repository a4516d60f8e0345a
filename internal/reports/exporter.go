package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/jkz07/transcare/internal/agenda"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// Exporter renders a personal agenda in a downloadable format.
type Exporter interface {
	Export(format string, events []agenda.Event) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

// Export returns the file bytes, a filename and the content type.
func (e *exporter) Export(format string, events []agenda.Event) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := e.exportCSV(events)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("agenda_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportExcel(events)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("agenda_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportPDF(events)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("agenda_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

var agendaHeaders = []string{"ID", "Título", "Tipo", "Data", "Horário", "Descrição"}

func (e *exporter) exportCSV(events []agenda.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(agendaHeaders); err != nil {
		return nil, err
	}

	for _, ev := range events {
		record := []string{
			strconv.FormatUint(uint64(ev.ID), 10),
			ev.Title,
			string(ev.Type),
			ev.Date,
			ev.Time,
			ev.Description,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportExcel(events []agenda.Event) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Agenda"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range agendaHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for i, ev := range events {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ev.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ev.Title)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(ev.Type))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), ev.Date)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ev.Time)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), ev.Description)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportPDF(events []agenda.Event) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Minha Agenda")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{15, 70, 30, 25, 20, 110}

	for i, h := range agendaHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, ev := range events {
		description := truncate(ev.Description, 70)

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(ev.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, ev.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, string(ev.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, ev.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, ev.Time, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, description, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate shortens s to at most max characters, counting runes so accented
// text is never cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
