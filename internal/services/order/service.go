// Package order coordinates order settlement: draft validation, promotion
// pricing, wallet payment, persistence and cart cleanup composed under one
// database transaction, with a post-commit notification step.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mesa/internal/models"
	"mesa/internal/repositories"
	"mesa/internal/services/transaction"
	"mesa/internal/services/wallet"

	"github.com/shopspring/decimal"
)

type service struct {
	store     repositories.Store
	ledger    wallet.Service
	settler   Settler
	publisher Publisher
}

// NewService creates the order settlement coordinator.
func NewService(store repositories.Store, ledger wallet.Service, settler Settler, publisher Publisher) Service {
	if store == nil {
		panic("store is required")
	}
	if ledger == nil {
		panic("ledger is required")
	}
	if settler == nil {
		panic("settler is required")
	}
	return &service{
		store:     store,
		ledger:    ledger,
		settler:   settler,
		publisher: publisher,
	}
}

func (s *service) CreateOrder(ctx context.Context, draft OrderDraft) (*SettlementResult, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	// Step 1: resolve every reference before anything is mutated.
	cat := s.store.Catalog()
	customer, err := cat.GetUser(ctx, draft.CustomerID)
	if err != nil {
		return nil, err
	}
	restaurant, err := cat.GetRestaurant(ctx, draft.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.AcceptingOrders {
		return nil, ErrNotAcceptingOrders
	}
	if _, err := cat.GetAddress(ctx, draft.DeliveryAddressID); err != nil {
		return nil, err
	}
	if _, err := cat.GetAddress(ctx, restaurant.AddressID); err != nil {
		return nil, err
	}

	// Step 2: price each line against active promotions and recompute the
	// total from the settled unit prices.
	now := time.Now()
	items := make([]models.OrderItem, 0, len(draft.Items))
	total := decimal.Zero
	var appliedPromo *uint
	for _, di := range draft.Items {
		item, err := cat.GetMenuItem(ctx, di.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item.RestaurantID != restaurant.ID {
			return nil, fmt.Errorf("%w: menu item %d does not belong to restaurant %d",
				ErrInvalidDraft, item.ID, restaurant.ID)
		}

		name := item.Name
		price := item.Price
		if di.VariantID != nil {
			variant, err := cat.GetVariant(ctx, *di.VariantID)
			if err != nil {
				return nil, err
			}
			if variant.MenuItemID != item.ID {
				return nil, fmt.Errorf("%w: variant %d does not belong to item %d",
					ErrInvalidDraft, variant.ID, item.ID)
			}
			name = fmt.Sprintf("%s (%s)", item.Name, variant.Name)
			price = variant.Price
		}

		promos, err := s.store.Promotions().FindActiveForCategories(ctx, item.CategoryIDs, now)
		if err != nil {
			return nil, err
		}
		unit, promoID := bestPrice(price, promos)
		if appliedPromo == nil {
			appliedPromo = promoID
		}

		items = append(items, models.OrderItem{
			MenuItemID: item.ID,
			VariantID:  di.VariantID,
			Name:       name,
			Quantity:   di.Quantity,
			ListPrice:  price,
			UnitPrice:  unit,
		})
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(di.Quantity))))
	}
	total = total.Round(2)

	// Wallet resolution stays outside the transactional window, the same as
	// the promotion lookups; only the settlement itself holds the unit of
	// work open.
	var sourceWallet, destWallet *models.Wallet
	if draft.PaymentMethod == models.PaymentMethodWallet {
		sourceWallet, err = s.ledger.GetByOwner(ctx, customer.ID, models.WalletOwnerCustomer)
		if err != nil {
			return nil, err
		}
		destWallet, err = s.ledger.EnsureWallet(ctx, restaurant.OwnerID, models.WalletOwnerRestaurant)
		if err != nil {
			return nil, err
		}
	}

	// Steps 3-5: settle, persist, cleanup — one outer transaction. Any
	// failure rolls the whole unit back.
	var (
		created *models.Order
		txn     *models.LedgerTransaction
		req     transaction.Request
	)
	err = s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		if sourceWallet != nil {
			req = transaction.Request{
				Type:                models.TransactionTypePurchase,
				Amount:              total,
				SourceWalletID:      &sourceWallet.ID,
				DestinationWalletID: destWallet.ID,
				Description:         fmt.Sprintf("order payment, restaurant %d", restaurant.ID),
			}
			var settleErr error
			txn, settleErr = s.settler.Settle(ctx, tx, req)
			if settleErr != nil {
				return settleErr
			}
		}

		created = &models.Order{
			CustomerID:          draft.CustomerID,
			RestaurantID:        restaurant.ID,
			DeliveryAddressID:   draft.DeliveryAddressID,
			RestaurantAddressID: restaurant.AddressID,
			Items:               items,
			TotalAmount:         total,
			TipAmount:           decimal.Zero,
			PromotionID:         appliedPromo,
			PaymentMethod:       draft.PaymentMethod,
			Status:              models.OrderStatusPending,
			TrackingInfo:        models.TrackingOrderPlaced,
		}
		if txn != nil {
			created.TransactionID = &txn.ID
		}
		if err := tx.Orders().Create(ctx, created); err != nil {
			return err
		}

		if txn != nil {
			txn.OrderID = &created.ID
			if err := tx.Transactions().Update(ctx, txn); err != nil {
				return err
			}
		}

		if err := tx.Orders().CreateProgress(ctx, &models.DeliveryProgress{
			OrderID:   created.ID,
			Stage:     models.OrderStatusPending,
			TipAmount: decimal.Zero,
		}); err != nil {
			return err
		}

		itemIDs := make([]uint, 0, len(draft.Items))
		for _, di := range draft.Items {
			itemIDs = append(itemIDs, di.MenuItemID)
		}
		if err := tx.Carts().DeleteMatching(ctx, draft.CustomerID, itemIDs); err != nil {
			return err
		}

		return tx.Catalog().IncrementOrderCount(ctx, restaurant.ID)
	})
	if err != nil {
		// The rollback erased the PENDING row along with any wallet write;
		// a terminal ledger failure still leaves a durable FAILED trace.
		if errors.Is(err, wallet.ErrInsufficientBalance) || errors.Is(err, wallet.ErrRetryExhausted) {
			s.settler.RecordFailure(ctx, req, err)
		}
		return nil, err
	}

	// Step 6: notify only after the commit, so subscribers never see state
	// that could still be rolled back.
	s.publish(ctx, EventOrderSettled, s.snapshot(created, txn))

	return &SettlementResult{Order: created, Transaction: txn}, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	o, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// UpdateOrderStatus moves the order to the given lifecycle status and
// re-derives the tracking label from the status table. Fulfillment gateways
// call this; they never write tracking info directly.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) (*models.Order, error) {
	info, ok := TrackingFor(status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	var updated *models.Order
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		o, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		o.Status = status
		o.TrackingInfo = info
		if err := tx.Orders().Update(ctx, o); err != nil {
			return err
		}

		progress, err := tx.Orders().GetProgress(ctx, orderID)
		if err == nil {
			progress.Stage = status
			now := time.Now()
			switch status {
			case models.OrderStatusDispatched:
				if progress.DispatchedAt == nil {
					progress.DispatchedAt = &now
				}
			case models.OrderStatusDelivered:
				if progress.DeliveredAt == nil {
					progress.DeliveredAt = &now
				}
			}
			if err := tx.Orders().UpdateProgress(ctx, progress); err != nil {
				return err
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventTrackingUpdated, s.snapshot(updated, nil))
	return updated, nil
}

// TipDriver accumulates a tip on the order and its delivery progress record.
// Allowed only once the order has passed the dispatch threshold.
func (s *service) TipDriver(ctx context.Context, orderID uint, amount decimal.Decimal) (*models.Order, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidTipAmount
	}

	var updated *models.Order
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		o, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !TipAllowed(o.Status) {
			return ErrTipNotAllowed
		}
		if err := tx.Orders().AddTip(ctx, orderID, amount); err != nil {
			return err
		}
		o.TipAmount = o.TipAmount.Add(amount)
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RefundOrder reverses a cancelled wallet-funded order: one REFUND leg
// crediting the original source wallet. Refunding twice is rejected.
func (s *service) RefundOrder(ctx context.Context, orderID uint) (*models.LedgerTransaction, error) {
	var refund *models.LedgerTransaction
	err := s.store.WithinTransaction(ctx, func(tx repositories.Store) error {
		o, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Status != models.OrderStatusCancelled ||
			o.PaymentMethod != models.PaymentMethodWallet ||
			o.TransactionID == nil {
			return ErrNotRefundable
		}

		prior, err := tx.Transactions().ListByOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		for _, t := range prior {
			if t.Type == models.TransactionTypeRefund && t.Status == models.TransactionStatusCompleted {
				return ErrAlreadyRefunded
			}
		}

		original, err := tx.Transactions().GetByID(ctx, *o.TransactionID)
		if err != nil {
			return err
		}
		if original.Status != models.TransactionStatusCompleted || original.SourceWalletID == nil {
			return ErrNotRefundable
		}

		refund, err = s.settler.Settle(ctx, tx, transaction.Request{
			Type:                models.TransactionTypeRefund,
			Amount:              original.Amount,
			SourceWalletID:      &original.DestinationWalletID,
			DestinationWalletID: *original.SourceWalletID,
			OrderID:             &o.ID,
			Description:         fmt.Sprintf("refund for order %d", o.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *service) publish(ctx context.Context, channel string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, channel, payload); err != nil {
		log.Printf("failed to publish %s event: %v", channel, err)
	}
}

func (s *service) snapshot(o *models.Order, txn *models.LedgerTransaction) Snapshot {
	snap := Snapshot{
		OrderID:             o.ID,
		Status:              o.Status,
		TrackingInfo:        o.TrackingInfo,
		CustomerID:          o.CustomerID,
		RestaurantID:        o.RestaurantID,
		DeliveryAddressID:   o.DeliveryAddressID,
		RestaurantAddressID: o.RestaurantAddressID,
		PaymentMethod:       o.PaymentMethod,
		TotalAmount:         o.TotalAmount,
		TipAmount:           o.TipAmount,
	}
	for _, item := range o.Items {
		snap.Items = append(snap.Items, SnapshotItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if txn != nil {
		snap.TransactionRef = txn.Reference
	}
	return snap
}

func validateDraft(draft OrderDraft) error {
	if draft.CustomerID == 0 || draft.RestaurantID == 0 || draft.DeliveryAddressID == 0 {
		return fmt.Errorf("%w: customer, restaurant and delivery address are required", ErrInvalidDraft)
	}
	if draft.PaymentMethod != models.PaymentMethodCOD && draft.PaymentMethod != models.PaymentMethodWallet {
		return fmt.Errorf("%w: unsupported payment method %q", ErrInvalidDraft, draft.PaymentMethod)
	}
	if len(draft.Items) == 0 {
		return fmt.Errorf("%w: order needs at least one item", ErrInvalidDraft)
	}
	for _, item := range draft.Items {
		if item.MenuItemID == 0 {
			return fmt.Errorf("%w: item without menu item reference", ErrInvalidDraft)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrInvalidDraft)
		}
	}
	return nil
}
