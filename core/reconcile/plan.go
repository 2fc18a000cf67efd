package reconcile

import (
	"context"
	"fmt"
)

// ReconcileWithPlan performs reconciliation and returns a plan with results and actions.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, adapter Adapter, opts ReconcileOptions) (*ReconcilePlan, error) {
	idx, err := BuildIndex(ctx, adapter)
	if err != nil {
		return nil, err
	}

	results := resultsFromIndex(idx)
	summary, actions := buildPlanFromResults(results, opts)

	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a reconcile plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, adapter Adapter, plan *ReconcilePlan, opts ReconcileOptions) (int, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	mutator, ok := adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", adapter.Name())
	}

	var remove []string
	for _, action := range plan.Actions {
		if action.Type == ActionRemoveEntry {
			remove = append(remove, action.Key)
		}
	}
	if len(remove) == 0 {
		return 0, nil
	}

	if err := mutator.RemoveListed(ctx, remove); err != nil {
		return 0, fmt.Errorf("failed to remove %d entries: %w", len(remove), err)
	}
	return len(remove), nil
}

// ReconcileAndApply is a convenience wrapper that plans and optionally applies actions.
func ReconcileAndApply(ctx context.Context, adapter Adapter, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, adapter, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, adapter, plan, opts)
	return plan, executed, err
}

// buildPlanFromResults generates a summary and action plan from reconciliation results.
func buildPlanFromResults(results []ReconcileResult, opts ReconcileOptions) (PlanSummary, []Action) {
	var (
		summary PlanSummary
		actions []Action
	)

	summary.TotalItems = len(results)

	for _, result := range results {
		if !result.Present {
			summary.MissingStorage++
		}
		if result.BoundTo != "" {
			summary.Bound++
		}
		if result.Healthy() {
			summary.Healthy++
			continue
		}

		if opts.DoPurge {
			actions = append(actions, Action{
				Type:   ActionRemoveEntry,
				Key:    result.ID,
				Reason: getReason(result),
			})
			summary.PurgeActions++
		}
	}

	return summary, actions
}

// getReason builds a reason string for why an entry should be removed.
func getReason(result ReconcileResult) string {
	switch {
	case !result.Present && result.BoundTo != "":
		return fmt.Sprintf("missing in storage, bound to %s", result.BoundTo)
	case !result.Present:
		return "missing in storage"
	case result.BoundTo != "":
		return fmt.Sprintf("bound to %s", result.BoundTo)
	default:
		return "healthy"
	}
}
