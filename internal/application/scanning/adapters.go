package scanning

import (
	"context"
	"errors"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/scanning"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// repositoryDirectory resolves scanned barcodes against the buyer and
// item repositories
type repositoryDirectory struct {
	buyerRepo registry.BuyerRepository
	itemRepo  registry.ItemRepository
}

// NewDirectory creates a barcode directory backed by the registry
func NewDirectory(buyerRepo registry.BuyerRepository, itemRepo registry.ItemRepository) scanning.Directory {
	return &repositoryDirectory{buyerRepo: buyerRepo, itemRepo: itemRepo}
}

func (d *repositoryDirectory) BuyerByBarcode(ctx context.Context, barcodeID string) (scanning.BuyerRef, bool, error) {
	buyer, err := d.buyerRepo.FindByBarcodeID(ctx, barcodeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return scanning.BuyerRef{}, false, nil
		}
		return scanning.BuyerRef{}, false, err
	}
	return scanning.BuyerRef{ID: buyer.ID, Name: buyer.Name}, true, nil
}

func (d *repositoryDirectory) ItemByBarcode(ctx context.Context, barcodeID string) (scanning.ItemRef, bool, error) {
	item, err := d.itemRepo.FindByBarcodeID(ctx, barcodeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return scanning.ItemRef{}, false, nil
		}
		return scanning.ItemRef{}, false, err
	}
	return scanning.ItemRef{ID: item.ID, Name: item.Name, IsUnique: item.IsUnique}, true, nil
}

// purchaseCommitter writes pending purchases through the purchase
// repository, enforcing the unique-item guard at write time
type purchaseCommitter struct {
	purchaseRepo event.PurchaseRepository
	itemRepo     registry.ItemRepository
	logger       *zap.Logger
}

// NewCommitter creates a purchase committer
func NewCommitter(purchaseRepo event.PurchaseRepository, itemRepo registry.ItemRepository, logger *zap.Logger) scanning.Committer {
	return &purchaseCommitter{
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// Commit writes the pending purchase. A unique item already held by
// another buyer is skipped silently; the warning was already shown when
// the item was selected.
func (c *purchaseCommitter) Commit(ctx context.Context, pending scanning.PendingPurchase) (bool, error) {
	item, err := c.itemRepo.FindByID(ctx, pending.ItemID)
	if err != nil {
		return false, err
	}

	if item.IsUnique {
		held, err := c.purchaseRepo.ExistsForItemByOtherBuyer(ctx, pending.EventID, pending.ItemID, pending.BuyerID)
		if err != nil {
			return false, err
		}
		if held {
			c.logger.Warn("Skipped committing a unique item held by another buyer",
				zap.String("event_id", pending.EventID.String()),
				zap.String("item", item.Name))
			return false, nil
		}
	}

	purchase, err := event.NewScannedPurchase(pending.EventID, pending.BuyerID, pending.ItemID, pending.Price)
	if err != nil {
		return false, err
	}

	if err := c.purchaseRepo.Save(ctx, purchase); err != nil {
		return false, err
	}

	c.logger.Info("Purchase committed",
		zap.String("event_id", pending.EventID.String()),
		zap.String("item", item.Name),
		zap.String("price", pending.Price.String()))
	return true, nil
}

// purchaseConflictChecker reports which buyer, if any, already holds a
// unique item at the event
type purchaseConflictChecker struct {
	purchaseRepo event.PurchaseRepository
	buyerRepo    registry.BuyerRepository
}

// NewConflictChecker creates a conflict checker over purchase history
func NewConflictChecker(purchaseRepo event.PurchaseRepository, buyerRepo registry.BuyerRepository) scanning.ConflictChecker {
	return &purchaseConflictChecker{purchaseRepo: purchaseRepo, buyerRepo: buyerRepo}
}

func (c *purchaseConflictChecker) HeldByOtherBuyer(ctx context.Context, eventID, itemID, buyerID uuid.UUID) (string, bool, error) {
	first, err := c.purchaseRepo.FindFirstForItem(ctx, eventID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if first.BuyerID == buyerID {
		return "", false, nil
	}

	holder, err := c.buyerRepo.FindByID(ctx, first.BuyerID)
	if err != nil {
		return "", false, err
	}
	return holder.Name, true, nil
}
