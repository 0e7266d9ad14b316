package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wattplan/meter-service/internal/app"
	"github.com/wattplan/meter-service/internal/parsers"
	"github.com/wattplan/meter-service/internal/parsers/charset"
	"github.com/wattplan/meter-service/internal/parsers/record"
	"github.com/wattplan/meter-service/internal/types"
)

var (
	parseOutput      string
	parseEncoding    string
	parseDelimiter   string
	parseHeaderLines int
	parseSheet       string
	parseCutoff      bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a meter export and show import statistics",
	Long: `Parse a local meter export (CSV or XLSX) the same way the service parses
uploads. The output shows row counts, dropped row samples and the months found.

Supported encodings: auto (default), utf-8, utf-16le, windows-1250, windows-1252, iso-8859-2`,
	Example: `  meter-service parse ./data/usage.csv
  meter-service parse ./data/usage.csv --encoding windows-1250 --delimiter semicolon
  meter-service parse ./data/usage.xlsx --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addReadingsFlags(parseCmd)
	parseCmd.Flags().StringVar(&parseOutput, "output", "table", "Output format: table or json")
}

// addReadingsFlags registers the flags that override readings.* config.
func addReadingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&parseEncoding, "encoding", "", "File encoding (default from config)")
	cmd.Flags().StringVar(&parseDelimiter, "delimiter", "", "CSV delimiter: auto, comma, semicolon or tab (default from config)")
	cmd.Flags().IntVar(&parseHeaderLines, "header-lines", 0, "Lines to skip before the first reading (default from config)")
	cmd.Flags().StringVar(&parseSheet, "sheet", "", "XLSX sheet name (default first sheet)")
	cmd.Flags().BoolVar(&parseCutoff, "apply-cutoff", false, "Drop readings before readings.cutoff")
}

// readingsOptions merges config with the readings flags set on cmd.
func readingsOptions(cmd *cobra.Command) (parsers.Options, error) {
	rc := cfg.Readings
	if cmd.Flags().Changed("encoding") {
		rc.Encoding = parseEncoding
	}
	if cmd.Flags().Changed("delimiter") {
		rc.Delimiter = parseDelimiter
	}
	if cmd.Flags().Changed("header-lines") {
		rc.HeaderLines = parseHeaderLines
	}

	build := app.ParseOptions
	if parseCutoff {
		build = app.BundledOptions
	}
	opts, err := build(rc)
	if err != nil {
		return opts, err
	}
	opts.Sheet = parseSheet
	return opts, nil
}

// readReadings parses the file at path with the command's options.
func readReadings(cmd *cobra.Command, path string) (*record.Result, error) {
	opts, err := readingsOptions(cmd)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("file", path).Msg("Reading file")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	logger.Info().Str("file", path).Msgf("Read %d bytes", len(content))

	if opts.Encoding == charset.EncodingAuto && parsers.DetectFileType(path, content) == types.FileTypeCSV {
		logger.Info().Str("encoding", string(charset.DetectEncoding(content))).Msg("Auto-detected encoding")
	}

	return parsers.ParseReadings(path, content, opts)
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := readReadings(cmd, args[0])
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(parseOutput) {
	case "json":
		return writeJSON(out, result.Stats)
	case "table":
		writeParseTable(out, args[0], result)
	default:
		return fmt.Errorf("invalid output format: %s (use 'table' or 'json')", parseOutput)
	}
	return nil
}

func writeParseTable(out io.Writer, path string, result *record.Result) {
	stats := result.Stats
	fmt.Fprintf(out, "\nParse Results for %s\n", path)
	fmt.Fprintln(out, strings.Repeat("-", 60))

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Metric\tValue\n")
	fmt.Fprintf(w, "File Type\t%s\n", stats.FileType)
	fmt.Fprintf(w, "Total Rows\t%d\n", stats.TotalRows)
	fmt.Fprintf(w, "Valid Rows\t%d\n", stats.ValidRows)
	fmt.Fprintf(w, "Dropped Rows\t%d\n", stats.DroppedRows)
	fmt.Fprintf(w, "Filtered Rows\t%d\n", stats.FilteredRows)
	if stats.FirstReading != nil && stats.LastReading != nil {
		fmt.Fprintf(w, "First Reading\t%s\n", stats.FirstReading.Format(time.DateTime))
		fmt.Fprintf(w, "Last Reading\t%s\n", stats.LastReading.Format(time.DateTime))
	}
	fmt.Fprintf(w, "Months\t%s\n", joinInts(result.Series.Months()))
	w.Flush()

	if len(stats.Errors) > 0 {
		fmt.Fprintf(out, "\nFirst %d Dropped Rows:\n", len(stats.Errors))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, e := range stats.Errors {
			rowNum := "-"
			if e.RowNumber != nil {
				rowNum = fmt.Sprintf("%d", *e.RowNumber)
			}
			field := "-"
			if e.Field != nil {
				field = *e.Field
			}
			fmt.Fprintf(out, "Row %s, Field '%s': %s\n", rowNum, field, e.Message)
		}
	}
	for _, warn := range stats.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", warn.Message)
	}
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
