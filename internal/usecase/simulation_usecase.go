package usecase

import "context"

// BatchOutcome is the result of one order within a batch. Exactly one
// outcome is produced per input order.
type BatchOutcome struct {
	Index         int    `json:"index"`
	TransactionID string `json:"transaction_id,omitempty"`
	Status        string `json:"status"` // Committed, Degraded or Rejected.
	Error         string `json:"error,omitempty"`
}

// RunBatchInput selects either a named scenario or an explicit order list.
type RunBatchInput struct {
	Scenario string              `json:"scenario,omitempty"` // e.g. "lunch-rush".
	StoreID  string              `json:"store_id"`
	Orders   []*SubmitOrderInput `json:"orders,omitempty"`
}

// BatchReport aggregates a bulk simulation run.
type BatchReport struct {
	Count     int             `json:"count"`
	ElapsedMs int64           `json:"elapsed_ms"`
	Committed int             `json:"committed"`
	Degraded  int             `json:"degraded"`
	Rejected  int             `json:"rejected"`
	Results   []*BatchOutcome `json:"results"`
}

// SimulationUsecase replays synthetic order batches through the order
// pipeline, trading per-order read-your-write visibility for throughput:
// individual orders skip the barrier and one batch-wide barrier runs at
// the end.
type SimulationUsecase interface {
	RunBatch(ctx context.Context, input *RunBatchInput) (*BatchReport, error)
}
