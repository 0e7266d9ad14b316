package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wattplan/meter-service/internal/tariff"
)

var plansWrite bool

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Validate and normalize discount plan files",
}

var plansValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a JSON or YAML plan list",
	Example: `  meter-service plans validate ./plans.json
  meter-service plans validate ./plans.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlansValidate,
}

var plansFmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Print a plan list in the canonical JSON import format",
	Long: `Reads a JSON or YAML plan list and prints it as the indented JSON list
accepted by the plan import endpoint. With --write a JSON file is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlansFmt,
}

func init() {
	rootCmd.AddCommand(plansCmd)
	plansCmd.AddCommand(plansValidateCmd, plansFmtCmd)
	plansFmtCmd.Flags().BoolVarP(&plansWrite, "write", "w", false, "Rewrite the file instead of printing it")
}

// loadPlans decodes a plan list, choosing YAML by file extension.
func loadPlans(path string) ([]tariff.DiscountPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}
	if isYAML(path) {
		return tariff.DecodePlansYAML(data)
	}
	return tariff.DecodePlans(data)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func runPlansValidate(cmd *cobra.Command, args []string) error {
	plans, err := loadPlans(args[0])
	if err != nil {
		return err
	}
	writePlanList(cmd.OutOrStdout(), plans)
	return nil
}

func writePlanList(out io.Writer, plans []tariff.DiscountPlan) {
	fmt.Fprintf(out, "%d valid plan(s)\n", len(plans))
	for i, p := range plans {
		fmt.Fprintf(out, "Plan %d: %s\n", i+1, p)
	}
}

func runPlansFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	plans, err := loadPlans(path)
	if err != nil {
		return err
	}
	data, err := tariff.EncodePlans(plans)
	if err != nil {
		return err
	}

	if !plansWrite {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if isYAML(path) {
		return fmt.Errorf("--write only rewrites JSON files; redirect the output for %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write plans: %w", err)
	}
	logger.Info().Str("file", path).Int("plans", len(plans)).Msg("Plans formatted")
	return nil
}
