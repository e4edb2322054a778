package rewards

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
)

// FulfillArgs is the queued fulfillment job for one redemption. It is
// enqueued with InsertTx in the same transaction as the points decrement, so
// a committed decrement always has exactly one fulfillment job.
type FulfillArgs struct {
	RedemptionID uuid.UUID `json:"redemption_id"`
	UserID       string    `json:"user_id"`
	OptionID     string    `json:"option_id"`
}

func (FulfillArgs) Kind() string { return "fulfill_redemption" }

// InsertFulfillTxFunc enqueues a fulfillment job within the given
// transaction. Provided by main using river.Client.InsertTx.
type InsertFulfillTxFunc func(ctx context.Context, tx pgx.Tx, args FulfillArgs) error

// RedemptionStore is the subset of Repository the worker needs.
type RedemptionStore interface {
	MarkIssued(ctx context.Context, id uuid.UUID) error
}

// FulfillWorker issues the voucher for a redemption. The partner integration
// (SimplyGo, FairPrice, ...) is an external collaborator; here fulfillment
// means marking the redemption ISSUED so clients can display it.
type FulfillWorker struct {
	river.WorkerDefaults[FulfillArgs]
	store RedemptionStore
	log   *slog.Logger
}

func NewFulfillWorker(store RedemptionStore, log *slog.Logger) *FulfillWorker {
	if log == nil {
		log = slog.Default()
	}
	return &FulfillWorker{store: store, log: log}
}

func (w *FulfillWorker) Work(ctx context.Context, job *river.Job[FulfillArgs]) error {
	args := job.Args
	if err := w.store.MarkIssued(ctx, args.RedemptionID); err != nil {
		return fmt.Errorf("mark redemption %s issued: %w", args.RedemptionID, err)
	}
	w.log.Info("redemption fulfilled", "redemption_id", args.RedemptionID, "user", args.UserID, "option", args.OptionID)
	return nil
}
