package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the backends",
	Long:  `Checks the bucket-index pool, the available-pool registry and the catalog schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Check and fix the bucket-index pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Check the available-pool registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the catalog schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(indexCmd, registryCmd, schemaCmd)

	indexCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the index pool when missing")
}

func runIntegrityChecks(ctx context.Context, runIndex, runRegistry, runSchema bool) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	logg := a.logger
	svc := a.integrity

	if runIndex {
		logg.Info("Checking index pool...", zap.String("pool", a.cfg.Pools.IndexPool))
		exists, err := svc.CheckIndexPool(ctx)
		if err != nil {
			return fmt.Errorf("index pool check failed: %w", err)
		}

		switch {
		case exists:
			logg.Info("Index pool is present.")
		case fixFlag:
			logg.Info("Creating index pool...")
			if err := svc.FixIndexPool(ctx); err != nil {
				return fmt.Errorf("failed to create index pool: %w", err)
			}
		default:
			logg.Warn("Index pool is missing. Run 'integrity index --fix' to create it.")
		}
	}

	if runRegistry {
		logg.Info("Checking available-pool registry...")
		report, err := svc.CheckRegistry(ctx)
		if err != nil {
			return fmt.Errorf("registry check failed: %w", err)
		}
		if !report.Present {
			logg.Warn("Registry has not been written yet.")
		} else {
			logg.Info("Registry is readable.", zap.Int("available", report.Available), zap.Int("blank", report.Blank))
		}
	}

	if runSchema {
		logg.Info("Checking catalog schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("catalog schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Catalog schema matches expected definition.")
		} else {
			for table, tbl := range report.Tables {
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	return nil
}
