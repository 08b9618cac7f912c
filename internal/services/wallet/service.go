package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mesa/internal/models"
	"mesa/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	repo    repositories.WalletRepository
	cache   CacheOperator
	metrics MetricsCollector
}

// NewService creates a new wallet ledger service.
func NewService(repo repositories.WalletRepository, cache CacheOperator, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
	}
}

// Bind returns a copy of the ledger backed by the given repository. Used by
// the transaction processor to run legs against a transaction-bound store.
func (s *service) Bind(repo repositories.WalletRepository) Service {
	return &service{
		repo:    repo,
		cache:   s.cache,
		metrics: s.metrics,
	}
}

func (s *service) GetWallet(ctx context.Context, walletID uint) (*models.Wallet, error) {
	if w, found, err := s.cache.GetWallet(ctx, walletID); err == nil && found {
		return w, nil
	}

	w, err := s.repo.GetByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	// Best effort; a stale entry is invalidated on the next mutation anyway.
	_ = s.cache.SetWallet(ctx, w)
	return w, nil
}

func (s *service) GetByOwner(ctx context.Context, ownerID uint, role string) (*models.Wallet, error) {
	w, err := s.repo.GetByOwner(ctx, ownerID, role)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

func (s *service) EnsureWallet(ctx context.Context, ownerID uint, role string) (*models.Wallet, error) {
	if ownerID == 0 {
		return nil, ErrInvalidOwner
	}
	switch role {
	case models.WalletOwnerCustomer, models.WalletOwnerRestaurant, models.WalletOwnerDriver:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidOwner, role)
	}

	w, err := s.repo.GetByOwner(ctx, ownerID, role)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repositories.ErrWalletNotFound) {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	w = &models.Wallet{
		OwnerID:   ownerID,
		OwnerRole: role,
		Balance:   decimal.Zero,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return w, nil
}

// ApplyDelta performs one CAS attempt. A zero-row update is disambiguated by
// re-reading the row: enough balance means somebody else won the version
// race (retryable), not enough means the debit can never succeed (terminal).
func (s *service) ApplyDelta(ctx context.Context, walletID uint, delta decimal.Decimal, expectedVersion uint64) (*models.Wallet, error) {
	updated, ok, err := s.repo.ApplyDelta(ctx, walletID, delta, expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to apply delta: %w", err)
	}
	if ok {
		_ = s.cache.InvalidateWallet(ctx, walletID)
		return updated, nil
	}

	fresh, err := s.repo.GetByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to re-read wallet: %w", err)
	}

	if delta.Sign() < 0 && fresh.Balance.Add(delta).Sign() < 0 {
		return nil, ErrInsufficientBalance
	}
	return nil, ErrVersionConflict
}

func (s *service) Credit(ctx context.Context, walletID uint, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.applyWithRetry(ctx, "credit", walletID, amount)
}

func (s *service) Debit(ctx context.Context, walletID uint, amount decimal.Decimal) (*models.Wallet, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.applyWithRetry(ctx, "debit", walletID, amount.Neg())
}

// applyWithRetry is the CAS-with-retry combinator shared by both legs:
// read the current version, attempt the conditional update, and on a version
// conflict wait briefly and try again, up to MaxCASAttempts in total.
// ErrInsufficientBalance is terminal and returned as-is; exhausting the
// attempts surfaces ErrRetryExhausted, never ErrVersionConflict itself.
func (s *service) applyWithRetry(ctx context.Context, operation string, walletID uint, delta decimal.Decimal) (*models.Wallet, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(operation, time.Since(start))
	}()

	for attempt := 1; attempt <= MaxCASAttempts; attempt++ {
		current, err := s.repo.GetByID(ctx, walletID)
		if err != nil {
			s.metrics.RecordOperationResult(operation, "error")
			if errors.Is(err, repositories.ErrWalletNotFound) {
				return nil, ErrWalletNotFound
			}
			return nil, fmt.Errorf("failed to read wallet: %w", err)
		}

		updated, err := s.ApplyDelta(ctx, walletID, delta, current.Version)
		if err == nil {
			s.metrics.RecordOperationResult(operation, "ok")
			return updated, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			s.metrics.RecordOperationResult(operation, "failed")
			return nil, err
		}

		s.metrics.RecordRetry(operation)
		if attempt == MaxCASAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(CASRetryDelay):
		}
	}

	s.metrics.RecordOperationResult(operation, "exhausted")
	return nil, ErrRetryExhausted
}
