package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattplan/meter-service/internal/tariff"
)

const plansJSON = `[
    {"start_hour": 22, "end_hour": 6, "discount": 50, "plan_type": "Weekdays"},
    {"start_hour": 9, "end_hour": 12, "discount": 10, "plan_type": "Weekends"}
]`

const plansYAML = `- start_hour: 22
  end_hour: 6
  discount: 50
  plan_type: Weekdays
- start_hour: 9
  end_hour: 12
  discount: 10
  plan_type: Weekends
`

const usageCSV = "header\n" +
	"16/09/2024,08:00,1.0\n" +
	"16/09/2024,23:00,2.0\n" +
	"21/09/2024,10:00,3.0\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadPlans(t *testing.T) {
	dir := t.TempDir()

	fromJSON, err := loadPlans(writeFile(t, dir, "plans.json", plansJSON))
	require.NoError(t, err)
	fromYAML, err := loadPlans(writeFile(t, dir, "plans.yml", plansYAML))
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, tariff.PlanType("Weekends"), fromJSON[1].PlanType)

	_, err = loadPlans(writeFile(t, dir, "bad.json", `[{"start_hour": 30, "end_hour": 6, "discount": 50, "plan_type": "Both"}]`))
	var importErr *tariff.ImportError
	assert.ErrorAs(t, err, &importErr)

	_, err = loadPlans(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestPlansCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "plans.yaml", plansYAML)

	out, err := execute(t, "plans", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 valid plan(s)")
	assert.Contains(t, out, "Plan 1: 22-6 hrs, 50% off (Weekdays)")

	out, err = execute(t, "plans", "fmt", path)
	require.NoError(t, err)
	plans, err := tariff.DecodePlans([]byte(out))
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	usage := writeFile(t, dir, "usage.csv", usageCSV)
	plans := writeFile(t, dir, "plans.json", plansJSON)

	out, err := execute(t, "report", usage, "--plans", plans, "--header-lines", "1", "--price", "1", "--output", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Report for month 9")
	assert.Contains(t, out, "Total Consumption: 6.00 kWh")
	assert.Contains(t, out, "Total Cost: 6.00")
	assert.Contains(t, out, "Net Cost")
	assert.Contains(t, out, "Plan 1: Total Cost = 5.00, Total Discount = 1.00 kWh, Discount Value = 1.00")
	assert.Contains(t, out, "Plan 2: Total Cost = 5.70, Total Discount = 0.30 kWh, Discount Value = 0.30")

	pdfPath := filepath.Join(dir, "out.pdf")
	out, err = execute(t, "report", usage, "--plans", plans, "--header-lines", "1", "--output", "pdf", "--out", pdfPath)
	require.NoError(t, err)
	assert.Contains(t, out, pdfPath)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	usage := writeFile(t, dir, "usage.csv", usageCSV+"bad,row,here\n")

	out, err := execute(t, "parse", usage, "--header-lines", "1", "--output", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid Rows")
	assert.Contains(t, out, "Months")
	assert.Contains(t, out, "Row 5")

	_, err = execute(t, "parse", usage, "--header-lines", "1", "--output", "xml")
	assert.ErrorContains(t, err, "invalid output format")
}
