package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wattplan/meter-service/internal/analysis"
	"github.com/wattplan/meter-service/internal/export"
	"github.com/wattplan/meter-service/internal/tariff"
)

var (
	reportPlans  string
	reportMonth  int
	reportPrice  float64
	reportOutput string
	reportOut    string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Compare discount plans against a meter export",
	Long: `Parse a meter export, apply every discount plan to the selected month and
print the discount each plan would have given. Plans are applied independently;
the total cost is the undiscounted cost of the month.`,
	Example: `  meter-service report ./data/usage.csv --plans ./plans.json
  meter-service report ./data/usage.csv --plans ./plans.yaml --month 10 --price 0.55
  meter-service report ./data/usage.xlsx --plans ./plans.json --output pdf --out report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addReadingsFlags(reportCmd)

	reportCmd.Flags().StringVar(&reportPlans, "plans", "", "Plan list file (JSON or YAML)")
	reportCmd.Flags().IntVar(&reportMonth, "month", 0, "Month 1-12 (default earliest month in the file)")
	reportCmd.Flags().Float64Var(&reportPrice, "price", 0, "Price per kWh (default pricing.default_price)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "table", "Output format: table, json, xlsx or pdf")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output file for xlsx and pdf (default meter-report-<month>.<format>)")
}

func runReport(cmd *cobra.Command, args []string) error {
	result, err := readReadings(cmd, args[0])
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	var plans []tariff.DiscountPlan
	if reportPlans != "" {
		if plans, err = loadPlans(reportPlans); err != nil {
			return err
		}
	}

	q := analysis.Query{Month: reportMonth}
	if cmd.Flags().Changed("price") {
		q.Price = &reportPrice
	}

	svc := analysis.NewService(cfg.Pricing.DefaultPrice, logger, nil)
	report, err := svc.Report(context.Background(), result.Series, plans, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(reportOutput) {
	case "table":
		writeReportTable(out, report)
		return nil
	case "json":
		return writeJSON(out, report)
	}

	format, err := export.ParseFormat(reportOutput)
	if err != nil {
		return fmt.Errorf("invalid output format: %s (use 'table', 'json', 'xlsx' or 'pdf')", reportOutput)
	}
	data, err := export.Render(format, report)
	if err != nil {
		return err
	}
	path := reportOut
	if path == "" {
		path = format.Filename(report.Month)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(out, "Report written to %s\n", path)
	return nil
}

func writeReportTable(out io.Writer, report *analysis.Report) {
	rounded := report.Report.Rounded()

	fmt.Fprintf(out, "\nReport for month %d (price %.2f per kWh, %d readings)\n", report.Month, report.Price, report.Readings)
	fmt.Fprintln(out, strings.Repeat("-", 60))

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Plan\tWindow\tWeekday kWh\tWeekend kWh\tDiscount kWh\tDiscount Value\tNet Cost\n")
	for _, p := range rounded.Plans {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			p.Index+1, p.Plan, p.WeekdayAmount, p.WeekendAmount, p.DiscountAmount, p.DiscountCurrency, p.NetCost)
	}
	w.Flush()

	if len(rounded.Plans) == 0 {
		fmt.Fprintln(out, "No plans.")
	} else {
		fmt.Fprintln(out)
	}
	for _, p := range rounded.Plans {
		fmt.Fprintln(out, p)
	}
	fmt.Fprintf(out, "\nTotal Consumption: %.2f kWh\n", rounded.TotalConsumption)
	fmt.Fprintf(out, "Total Cost: %.2f\n", rounded.TotalCost)
}
