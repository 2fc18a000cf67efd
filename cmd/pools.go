package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"bucket-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	purgePools  bool
	dryRunPools bool
	yesConfirm  bool
)

// poolsCmd groups pool registry operations.
var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "Inspect and maintain the available-pool registry",
}

var poolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available pools",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.pools.ListAvailable(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		a.logger.Info("Available pools", zap.Int("count", len(names)))
		return nil
	},
}

var poolsMaintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run one maintenance pass",
	Long:  `Tops the registry up to the preallocation maximum when it holds fewer pools than the threshold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.pools.MaintainPools(cmd.Context())
		if err != nil {
			return fmt.Errorf("pool maintenance failed: %w", err)
		}
		a.logger.Info("Pool maintenance completed",
			zap.Int("before", res.Before),
			zap.Int("generated", res.Generated),
			zap.Int("after", res.After))
		return nil
	},
}

var poolsAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the registry (report + optionally purge)",
	Long: `Audit the available-pool registry against storage and the bucket catalog.

Reports entries whose pool no longer exists and entries whose pool is already
bound to a bucket. Optionally purge them from the registry.

Examples:
  # Report only
  pools audit

  # Purge with interactive confirmation
  pools audit --purge

  # Purge with auto-confirm (non-interactive)
  pools audit --purge --yes`,
	RunE: runPoolsAudit,
}

func init() {
	RootCmd.AddCommand(poolsCmd)
	poolsCmd.AddCommand(poolsListCmd, poolsMaintainCmd, poolsAuditCmd)

	poolsAuditCmd.Flags().BoolVar(&purgePools, "purge", false, "Enable purge (remove unhealthy registry entries)")
	poolsAuditCmd.Flags().BoolVar(&dryRunPools, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	poolsAuditCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
}

func runPoolsAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	l := a.logger

	opts := reconcile.ReconcileOptions{
		DoPurge: purgePools,
		DryRun:  true,
	}

	l.Info("Planning registry audit...")
	plan, _, err := a.pools.Audit(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to plan audit: %w", err)
	}
	printAuditReport(l, plan)

	if !purgePools {
		l.Info("No actions requested. Use --purge to remove unhealthy entries.")
		return nil
	}
	if dryRunPools {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	opts.DryRun = false
	opts.Confirmed = true

	l.Info("Applying actions...")
	_, executed, err := a.pools.Audit(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printAuditReport prints a formatted audit report using logger.
func printAuditReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary

	l.Info("Registry audit report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("healthy", s.Healthy),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("bound", s.Bound),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions", zap.Int("purge_actions", s.PurgeActions))

	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
