// Package handler processes Pub/Sub push deliveries for the restock worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"hive/config"
	deliverycontext "hive/internal/delivery/context"
	"hive/internal/domain/repository"
	domainservice "hive/internal/domain/service"
	apperrors "hive/internal/errors"
)

// restockMultiple sizes a replenishment delivery: each restock adds this
// many reorder thresholds worth of units.
const restockMultiple = 3

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// RestockHandler consumes low-stock signals and applies replenishment
// deliveries to the inventory projection.
type RestockHandler struct {
	logger        *slog.Logger
	inventoryRepo repository.InventoryRepository
	store         domainservice.DocumentStore
}

// RestockHandlerParams holds dependencies for the RestockHandler
type RestockHandlerParams struct {
	fx.In

	Config        *config.Config
	Logger        *slog.Logger
	InventoryRepo repository.InventoryRepository
	Store         domainservice.DocumentStore
}

// NewRestockHandler creates a new Pub/Sub push handler
func NewRestockHandler(params RestockHandlerParams) *RestockHandler {
	return &RestockHandler{
		logger:        params.Logger,
		inventoryRepo: params.InventoryRepo,
		store:         params.Store,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *RestockHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event domainservice.LowStockEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse low-stock event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	reqLogger := h.logger.With(
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("event_id", event.EventID),
	)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing low-stock signal",
		slog.String("store_id", event.StoreID),
		slog.String("item_id", event.ItemID),
		slog.Int("quantity", event.Quantity),
	)

	if err := h.restock(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to restock",
			slog.String("item_id", event.ItemID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// Return 503 for retryable errors to trigger Pub/Sub redelivery.
		// Return 200 for permanent errors to prevent infinite retries.
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Restock applied",
		slog.String("store_id", event.StoreID),
		slog.String("item_id", event.ItemID),
	)

	return c.NoContent(http.StatusOK)
}

// restock tops up the flagged position and makes the new quantity visible.
func (h *RestockHandler) restock(ctx context.Context, event *domainservice.LowStockEvent) error {
	record, err := h.inventoryRepo.FindInventoryRecord(ctx, event.StoreID, event.ItemID)
	if err != nil {
		if apperrors.Is(err, repository.ErrInventoryNotFound) {
			// Position vanished since the signal fired; nothing to top up.
			return errors.WithStack(err)
		}

		return newRetryableError(errors.WithStack(err))
	}

	if record.Quantity > record.ReorderThreshold {
		// A concurrent restock already handled it.
		return nil
	}

	record.Quantity += record.ReorderThreshold * restockMultiple
	record.UpdatedAt = event.OccurredAt

	if err := h.inventoryRepo.SaveInventoryRecord(ctx, record); err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	if err := h.store.Barrier(ctx, domainservice.CollectionInventory); err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	return nil
}
