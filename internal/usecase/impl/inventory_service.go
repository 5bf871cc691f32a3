package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"hive/internal/domain/entity"
	domainerrors "hive/internal/domain/errors"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
	"hive/internal/util"
)

// Reservation is the in-process record of one order's stock decrements.
// It carries the decremented lines and the low-stock signals to publish
// once the sale is committed.
type Reservation struct {
	TransactionID string

	lines    []reservedLine
	lowStock []*service.LowStockEvent

	released bool
	mu       sync.Mutex
}

type reservedLine struct {
	key      string
	quantity int
}

// LowStockItems lists the item ids that crossed their reorder threshold.
func (r *Reservation) LowStockItems() []string {
	items := make([]string, 0, len(r.lowStock))
	for _, event := range r.lowStock {
		items = append(items, event.ItemID)
	}

	return items
}

// InventoryService is the inventory ledger: the single in-process
// serialization point for stock decrements. Persistence is a projection of
// ledger state; concurrent orders for the same (store, item) are ordered
// here, not in the document store.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	publisher     service.LowStockPublisher
	logger        *slog.Logger

	locks util.KeyedMutex

	mu        sync.RWMutex
	positions map[string]*entity.InventoryRecord // key -> authoritative on-hand state
	missing   map[string]bool                    // keys confirmed untracked
}

// NewInventoryService creates the ledger. Positions are pulled from
// persistence on first touch and authoritative in process afterwards.
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	publisher service.LowStockPublisher,
	logger *slog.Logger,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
		logger:        logger,
		positions:     make(map[string]*entity.InventoryRecord),
		missing:       make(map[string]bool),
	}
}

// position returns the ledger's authoritative record for key, loading it
// from persistence on first touch. Untracked keys return (nil, false).
// Callers must hold the key's lock.
func (s *InventoryService) position(ctx context.Context, storeID, itemID string) (*entity.InventoryRecord, bool, error) {
	key := entity.InventoryKey(storeID, itemID)

	s.mu.RLock()
	record, ok := s.positions[key]
	untracked := s.missing[key]
	s.mu.RUnlock()

	if ok {
		return record, true, nil
	}
	if untracked {
		return nil, false, nil
	}

	record, err := s.inventoryRepo.FindInventoryRecord(ctx, storeID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrInventoryNotFound) {
			s.mu.Lock()
			s.missing[key] = true
			s.mu.Unlock()

			return nil, false, nil
		}

		return nil, false, err
	}

	s.mu.Lock()
	// A concurrent first touch may have loaded it already; keep that copy.
	if existing, ok := s.positions[key]; ok {
		record = existing
	} else {
		s.positions[key] = record
	}
	s.mu.Unlock()

	return record, true, nil
}

// Reserve atomically decrements stock for every tracked line of the
// transaction, or decrements nothing. Items without an inventory position
// are untracked and pass through. Insufficient stock on any line rolls back
// the lines already taken and fails the whole reservation.
func (s *InventoryService) Reserve(ctx context.Context, tx *entity.Transaction) (*Reservation, error) {
	resv := &Reservation{TransactionID: tx.ID}

	for _, line := range tx.Lines {
		key := entity.InventoryKey(tx.StoreID, line.ItemID)
		unlock := s.locks.Lock(key)

		record, tracked, err := s.position(ctx, tx.StoreID, line.ItemID)
		if err != nil {
			unlock()
			s.Release(resv)

			return nil, err
		}
		if !tracked {
			unlock()

			continue
		}

		if record.Quantity < line.Quantity {
			available := record.Quantity
			unlock()
			s.Release(resv)

			return nil, domainerrors.ErrInsufficientStock.WithDetails(
				fmt.Sprintf("%s: requested %d, available %d", line.ItemID, line.Quantity, available),
			)
		}

		record.Quantity -= line.Quantity
		record.UpdatedAt = tx.Timestamp

		resv.lines = append(resv.lines, reservedLine{key: key, quantity: line.Quantity})

		if record.Quantity <= record.ReorderThreshold {
			resv.lowStock = append(resv.lowStock, &service.LowStockEvent{
				EventID:       uuid.NewString(),
				StoreID:       record.StoreID,
				ItemID:        record.ItemID,
				ItemName:      record.ItemName,
				Quantity:      record.Quantity,
				Threshold:     record.ReorderThreshold,
				TransactionID: tx.ID,
				OccurredAt:    tx.Timestamp,
			})
		}

		unlock()
	}

	return resv, nil
}

// Release returns a reservation's units to the ledger. Compensation path
// for a sale that failed to persist; releasing twice is a no-op.
func (s *InventoryService) Release(resv *Reservation) {
	resv.mu.Lock()
	defer resv.mu.Unlock()

	if resv.released {
		return
	}
	resv.released = true

	for _, line := range resv.lines {
		unlock := s.locks.Lock(line.key)

		s.mu.RLock()
		record := s.positions[line.key]
		s.mu.RUnlock()

		if record != nil {
			record.Quantity += line.quantity
		}

		unlock()
	}

	if len(resv.lines) > 0 {
		s.logger.Warn("Released inventory reservation",
			slog.String("transaction_id", resv.TransactionID),
			slog.Int("lines", len(resv.lines)),
		)
	}
}

// Commit projects the reservation's positions to persistence and raises the
// low-stock signals. The decrement itself already happened in Reserve; the
// ledger state is re-read under each key's lock at save time, so a commit
// never writes back a position an interleaved reservation has since moved.
// A persistence failure here degrades the order but never restocks.
func (s *InventoryService) Commit(ctx context.Context, resv *Reservation) error {
	for _, line := range resv.lines {
		if err := s.projectPosition(ctx, line.key); err != nil {
			return err
		}
	}

	for _, event := range resv.lowStock {
		s.logger.Warn("Low stock",
			slog.String("store_id", event.StoreID),
			slog.String("item_id", event.ItemID),
			slog.Int("quantity", event.Quantity),
			slog.Int("threshold", event.Threshold),
			slog.String("transaction_id", event.TransactionID),
		)

		// The signal is advisory. A publish failure must not fail or
		// degrade an order that already committed its stock movement.
		if err := s.publisher.PublishLowStock(ctx, event); err != nil {
			s.logger.Error("Low-stock publish failed",
				slog.String("item_id", event.ItemID),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// projectPosition persists the ledger's current state for key. The key lock
// is held across the save, so projections of the same position land in
// ledger order and a slow commit cannot clobber a later decrement.
func (s *InventoryService) projectPosition(ctx context.Context, key string) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	s.mu.RLock()
	record := s.positions[key]
	s.mu.RUnlock()

	if record == nil {
		return nil
	}

	snapshot := *record
	if err := s.inventoryRepo.SaveInventoryRecord(ctx, &snapshot); err != nil {
		return errors.Wrapf(err, "project inventory position %s", key)
	}

	return nil
}
