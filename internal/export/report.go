// Package export renders analysis reports as XLSX workbooks and PDF documents.
package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/wattplan/meter-service/internal/analysis"
	"github.com/wattplan/meter-service/internal/meter"
)

// Format is a report file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a query or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want xlsx or pdf)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename returns the download name for a report of the given month.
func (f Format) Filename(month int) string {
	return fmt.Sprintf("meter-report-%02d.%s", month, f)
}

// Render renders report in format.
func Render(format Format, report *analysis.Report) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return BuildReportXLSX(report)
	case FormatPDF:
		return BuildReportPDF(report)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

type hourlyRow struct {
	hour             int
	weekday, weekend *float64
}

// mergeHourly lines the two profiles up by hour. Hours absent from both are skipped.
func mergeHourly(weekday, weekend []meter.HourlyAverage) []hourlyRow {
	var byHour [24]hourlyRow
	for _, h := range weekday {
		avg := roundAverage(h.Average)
		byHour[h.Hour].weekday = &avg
	}
	for _, h := range weekend {
		avg := roundAverage(h.Average)
		byHour[h.Hour].weekend = &avg
	}

	rows := make([]hourlyRow, 0, 24)
	for h := range byHour {
		if byHour[h].weekday == nil && byHour[h].weekend == nil {
			continue
		}
		byHour[h].hour = h
		rows = append(rows, byHour[h])
	}
	return rows
}

func roundAverage(v float64) float64 {
	return math.Round(v*1000) / 1000
}

var planColumns = []string{"Plan", "Window", "Discount %", "Type", "Discount (kWh)", "Discount Value", "Net Cost"}

// BuildReportXLSX renders a workbook with summary, plans and hourly sheets.
// Cost and consumption cells hold the two-decimal display values.
func BuildReportXLSX(report *analysis.Report) ([]byte, error) {
	rounded := report.Report.Rounded()
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	plansSheet := "plans"
	hourlySheet := "hourly"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{plansSheet, hourlySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Electricity Usage Report")
	_ = f.SetCellValue(summarySheet, "A3", "Month")
	_ = f.SetCellValue(summarySheet, "B3", report.Month)
	_ = f.SetCellValue(summarySheet, "A4", "Price per kWh")
	_ = f.SetCellValue(summarySheet, "B4", report.Price)
	_ = f.SetCellValue(summarySheet, "A5", "Readings")
	_ = f.SetCellValue(summarySheet, "B5", report.Readings)
	_ = f.SetCellValue(summarySheet, "A6", "Total Consumption (kWh)")
	_ = f.SetCellValue(summarySheet, "B6", rounded.TotalConsumption)
	_ = f.SetCellValue(summarySheet, "A7", "Total Cost")
	_ = f.SetCellValue(summarySheet, "B7", rounded.TotalCost)

	for col, title := range planColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(plansSheet, cell, title)
	}
	for i, p := range rounded.Plans {
		row := i + 2
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("A%d", row), p.Index+1)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%d-%d", p.Plan.StartHour, p.Plan.EndHour))
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("C%d", row), p.Plan.Discount)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("D%d", row), string(p.Plan.PlanType))
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("E%d", row), p.DiscountAmount)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("F%d", row), p.DiscountCurrency)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("G%d", row), p.NetCost)
	}

	_ = f.SetCellValue(hourlySheet, "A1", "Hour")
	_ = f.SetCellValue(hourlySheet, "B1", "Weekday Avg (kWh)")
	_ = f.SetCellValue(hourlySheet, "C1", "Weekend Avg (kWh)")
	for i, h := range mergeHourly(report.WeekdayHourly, report.WeekendHourly) {
		row := i + 2
		_ = f.SetCellValue(hourlySheet, fmt.Sprintf("A%d", row), h.hour)
		if h.weekday != nil {
			_ = f.SetCellValue(hourlySheet, fmt.Sprintf("B%d", row), *h.weekday)
		}
		if h.weekend != nil {
			_ = f.SetCellValue(hourlySheet, fmt.Sprintf("C%d", row), *h.weekend)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders a one-page summary with plan and hourly tables.
func BuildReportPDF(report *analysis.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Electricity Usage Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Month: "+monthLabel(report.Month))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Price per kWh: %.4f", report.Price))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Readings: %d", report.Readings))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Consumption (kWh): %.2f", report.TotalConsumption))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Cost: %.2f", report.TotalCost))
	pdf.Ln(8)

	widths := []float64{12, 20, 22, 26, 32, 32, 32}
	pdf.SetFont("Arial", "B", 10)
	for i, title := range planColumns {
		pdf.CellFormat(widths[i], 6, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, p := range report.Plans {
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", p.Index+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d-%d", p.Plan.StartHour, p.Plan.EndHour), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%g", p.Plan.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, string(p.Plan.PlanType), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", p.DiscountAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f", p.DiscountCurrency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", p.NetCost), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(20, 6, "Hour", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Weekday Avg (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Weekend Avg (kWh)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, h := range mergeHourly(report.WeekdayHourly, report.WeekendHourly) {
		pdf.CellFormat(20, 6, fmt.Sprintf("%02d", h.hour), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, formatOptional(h.weekday), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, formatOptional(h.weekend), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func monthLabel(m int) string {
	if m < 1 || m > 12 {
		return "-"
	}
	return time.Month(m).String()
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}
