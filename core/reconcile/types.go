package reconcile

// ReconcileResult represents the reconciliation output for a single entry.
type ReconcileResult struct {
	// ID is the entry key, e.g. a pool name.
	ID string `json:"id"`

	// Listed indicates whether the entry is in the ledger under audit.
	Listed bool `json:"listed"`

	// Present indicates whether the resource exists in storage.
	Present bool `json:"present"`

	// BoundTo names the owner that already consumed the resource, if any.
	BoundTo string `json:"bound_to,omitempty"`
}

// Healthy reports whether a listed entry is both present and unbound.
func (r ReconcileResult) Healthy() bool {
	return r.Present && r.BoundTo == ""
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionRemoveEntry drops an entry from the ledger.
	ActionRemoveEntry ActionType = "remove_entry"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entry identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcilePlan contains reconciliation results and planned actions.
type ReconcilePlan struct {
	Results []ReconcileResult `json:"results"`
	Actions []Action          `json:"actions"`
	Summary PlanSummary       `json:"summary"`
}

// PlanSummary provides aggregate counts for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the number of listed entries.
	TotalItems int `json:"total_items"`

	// Healthy counts entries that need no action.
	Healthy int `json:"healthy"`

	// MissingStorage counts listed entries whose resource does not exist.
	MissingStorage int `json:"missing_storage"`

	// Bound counts listed entries already consumed.
	Bound int `json:"bound"`

	// PurgeActions counts planned removals.
	PurgeActions int `json:"purge_actions"`
}

// ReconcileOptions controls whether a plan is acted upon.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge plans removal of unhealthy entries.
	DoPurge bool

	// Confirmed indicates user has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
