// internal/core/services/reservation.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

// ReservationService holds units for open carts. Reserving flips units to
// in-cart and records a reservation row in the same transaction, so the
// tag and the reservation can never disagree.
type ReservationService struct {
	repo      ports.UnitRepository
	audit     ports.AuditSink
	cache     ports.CacheRepository
	idleAfter time.Duration
	logger    *slog.Logger
}

// Statically assert that *ReservationService implements the ReservationService interface.
var _ ports.ReservationService = (*ReservationService)(nil)

// NewReservationService creates a new reservation service. idleAfter is the
// window after which a cart with no activity is eligible for sweeping.
func NewReservationService(repo ports.UnitRepository, audit ports.AuditSink, cache ports.CacheRepository, idleAfter time.Duration, logger *slog.Logger) *ReservationService {
	if idleAfter <= 0 {
		idleAfter = defaultCartIdleAfter
	}
	return &ReservationService{
		repo:      repo,
		audit:     audit,
		cache:     cache,
		idleAfter: idleAfter,
		logger:    logger.With(slog.String("service", "reservation")),
	}
}

// Reserve holds quantity units of the product for the cart, oldest units
// first. All-or-nothing: if fewer eligible units exist than requested,
// nothing is reserved and InsufficientStock is returned.
func (s *ReservationService) Reserve(ctx context.Context, cartID, productID uuid.UUID, quantity int, actor string) ([]domain.CartReservation, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	var reservations []domain.CartReservation
	var events []domain.AuditEvent

	err := s.repo.InTx(ctx, func(tx ports.StockTx) error {
		units, err := tx.LockOldestByTag(ctx, productID, domain.TagNew, quantity)
		if err != nil {
			return err
		}
		if len(units) < quantity {
			return &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Eligible: len(units)}
		}

		now := time.Now().UTC()
		ids := make([]uuid.UUID, 0, len(units))
		reservations = make([]domain.CartReservation, 0, len(units))
		events = make([]domain.AuditEvent, 0, len(units))
		for i := range units {
			ids = append(ids, units[i].ID)
			reservations = append(reservations, domain.CartReservation{
				CartID:     cartID,
				UnitID:     units[i].ID,
				ProductID:  productID,
				ReservedAt: now,
			})
			events = append(events, domain.AuditEvent{
				UnitID:    units[i].ID,
				Before:    domain.TagNew,
				After:     domain.TagInCart,
				Actor:     actor,
				Operation: domain.OpReserve,
				At:        now,
			})
		}

		if _, err := tx.UpdateTags(ctx, ids, domain.TagInCart, now); err != nil {
			return fmt.Errorf("failed to tag units in-cart: %w", err)
		}
		if err := tx.InsertReservations(ctx, reservations); err != nil {
			return fmt.Errorf("failed to insert reservations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	emitAudit(ctx, s.logger, s.audit, events)
	invalidateQuantities(ctx, s.logger, s.cache, productID)
	s.touchCart(ctx, cartID)

	s.logger.InfoContext(ctx, "reserved units",
		slog.String("cart_id", cartID.String()),
		slog.String("product_id", productID.String()),
		slog.Int("quantity", quantity))

	return reservations, nil
}

// Release returns every unit reserved by the cart to stock and drops the
// reservations. Releasing a cart with no reservations is a no-op.
func (s *ReservationService) Release(ctx context.Context, cartID uuid.UUID, actor string) (int, error) {
	var events []domain.AuditEvent
	var productIDs []uuid.UUID
	released := 0

	err := s.repo.InTx(ctx, func(tx ports.StockTx) error {
		reservations, err := tx.LockReservations(ctx, cartID)
		if err != nil {
			return err
		}
		if len(reservations) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(reservations))
		for i := range reservations {
			ids = append(ids, reservations[i].UnitID)
		}
		units, err := tx.LockUnits(ctx, ids)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		var inCart []uuid.UUID
		events = make([]domain.AuditEvent, 0, len(units))
		productIDs = make([]uuid.UUID, 0, len(units))
		for i := range units {
			productIDs = append(productIDs, units[i].ProductID)
			if units[i].Tag != domain.TagInCart {
				continue
			}
			inCart = append(inCart, units[i].ID)
			events = append(events, domain.AuditEvent{
				UnitID:    units[i].ID,
				Before:    domain.TagInCart,
				After:     domain.TagNew,
				Actor:     actor,
				Operation: domain.OpRelease,
				At:        now,
			})
		}

		if len(inCart) > 0 {
			if _, err := tx.UpdateTags(ctx, inCart, domain.TagNew, now); err != nil {
				return fmt.Errorf("failed to return units to stock: %w", err)
			}
		}
		if _, err := tx.DeleteReservations(ctx, cartID); err != nil {
			return fmt.Errorf("failed to delete reservations: %w", err)
		}
		released = len(inCart)
		return nil
	})
	if err != nil {
		return 0, err
	}

	emitAudit(ctx, s.logger, s.audit, events)
	invalidateQuantities(ctx, s.logger, s.cache, productIDs...)
	s.forgetCart(ctx, cartID)

	if released > 0 {
		s.logger.InfoContext(ctx, "released cart",
			slog.String("cart_id", cartID.String()),
			slog.Int("released", released))
	}
	return released, nil
}

// Commit finalizes checkout: every reserved unit flips to sold, is stamped
// with the invoice, and the reservations are consumed. A cart with no
// reservations commits as an empty no-op. If any reserved unit is no longer
// in-cart, the whole commit fails with ReservationStale.
func (s *ReservationService) Commit(ctx context.Context, cartID, invoiceID uuid.UUID, actor string) (int, error) {
	var events []domain.AuditEvent
	var productIDs []uuid.UUID
	committed := 0

	err := s.repo.InTx(ctx, func(tx ports.StockTx) error {
		reservations, err := tx.LockReservations(ctx, cartID)
		if err != nil {
			return err
		}
		if len(reservations) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(reservations))
		for i := range reservations {
			ids = append(ids, reservations[i].UnitID)
		}
		units, err := tx.LockUnits(ctx, ids)
		if err != nil {
			return err
		}

		var stale []uuid.UUID
		for i := range units {
			if units[i].Tag != domain.TagInCart || units[i].Disposed() {
				stale = append(stale, units[i].ID)
			}
		}
		if len(units) != len(ids) || len(stale) > 0 {
			return &domain.ReservationStaleError{CartID: cartID, UnitIDs: stale}
		}

		now := time.Now().UTC()
		if _, err := tx.UpdateTags(ctx, ids, domain.TagSold, now); err != nil {
			return fmt.Errorf("failed to tag units sold: %w", err)
		}
		if err := tx.SetInvoice(ctx, ids, invoiceID, now); err != nil {
			return fmt.Errorf("failed to stamp invoice: %w", err)
		}
		if _, err := tx.DeleteReservations(ctx, cartID); err != nil {
			return fmt.Errorf("failed to delete reservations: %w", err)
		}

		events = make([]domain.AuditEvent, 0, len(units))
		productIDs = make([]uuid.UUID, 0, len(units))
		for i := range units {
			productIDs = append(productIDs, units[i].ProductID)
			events = append(events, domain.AuditEvent{
				UnitID:    units[i].ID,
				Before:    domain.TagInCart,
				After:     domain.TagSold,
				Actor:     actor,
				Operation: domain.OpCommit,
				At:        now,
			})
		}
		committed = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	emitAudit(ctx, s.logger, s.audit, events)
	invalidateQuantities(ctx, s.logger, s.cache, productIDs...)
	s.forgetCart(ctx, cartID)

	s.logger.InfoContext(ctx, "committed cart",
		slog.String("cart_id", cartID.String()),
		slog.String("invoice_id", invoiceID.String()),
		slog.Int("committed", committed))

	return committed, nil
}

// touchCart refreshes the cart's activity marker so the sweeper's cheap
// pre-check sees the cart as live.
func (s *ReservationService) touchCart(ctx context.Context, cartID uuid.UUID) {
	if s.cache == nil {
		return
	}
	key := cartActivityKey(cartID)
	if err := s.cache.Touch(ctx, key, s.idleAfter); err == nil {
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, time.Now().UTC().Format(time.RFC3339), s.idleAfter); err != nil {
		s.logger.WarnContext(ctx, "cart activity touch failed",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *ReservationService) forgetCart(ctx context.Context, cartID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cartActivityKey(cartID)); err != nil {
		s.logger.WarnContext(ctx, "cart activity delete failed",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
	}
}
