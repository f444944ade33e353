package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/teksi-laju/service-booking/internal/domain"
	"github.com/teksi-laju/service-booking/internal/domain/booking"
)

// BookingStore persists the confirmed booking list, the in-progress draft
// and the selected-index handoff across their respective key/value stores.
type BookingStore struct {
	durable KeyValueStore
	session KeyValueStore
	logger  *zap.Logger
}

// NewBookingStore creates a BookingStore. durable holds the confirmed list;
// session holds the draft booking and the selected index.
func NewBookingStore(durable, session KeyValueStore, logger *zap.Logger) *BookingStore {
	return &BookingStore{durable: durable, session: session, logger: logger}
}

// LoadList restores the confirmed booking list. An unreachable store or a
// missing key fails open to an empty list with a logged warning; a stored
// payload that no longer matches the expected shape is a deserialization
// error for the caller.
func (s *BookingStore) LoadList(ctx context.Context) (*booking.BookingList, error) {
	raw, found, err := s.durable.Get(ctx, BookingDataKey)
	if err != nil {
		s.logger.Warn("booking list unreadable, starting empty", zap.Error(err))
		return booking.NewBookingList(), nil
	}
	if !found {
		return booking.NewBookingList(), nil
	}

	var snapshot booking.BookingListSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, domain.NewDeserializationError(fmt.Sprintf("booking list payload: %v", err))
	}
	return booking.ListFromSnapshot(snapshot)
}

// SaveList persists the whole booking list, replacing the stored value.
func (s *BookingStore) SaveList(ctx context.Context, list *booking.BookingList) error {
	raw, err := json.Marshal(list.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal booking list: %w", err)
	}
	return s.durable.Set(ctx, BookingDataKey, raw)
}

// LoadDraft restores the in-progress booking, reporting found=false when no
// draft exists or the store is unreachable.
func (s *BookingStore) LoadDraft(ctx context.Context) (*booking.Booking, bool, error) {
	raw, found, err := s.session.Get(ctx, SingleBookingKey)
	if err != nil {
		s.logger.Warn("draft booking unreadable, treating as absent", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	var snapshot booking.BookingSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, false, domain.NewDeserializationError(fmt.Sprintf("draft booking payload: %v", err))
	}
	b, err := booking.FromSnapshot(snapshot)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// SaveDraft persists the in-progress booking.
func (s *BookingStore) SaveDraft(ctx context.Context, b *booking.Booking) error {
	raw, err := json.Marshal(b.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal draft booking: %w", err)
	}
	return s.session.Set(ctx, SingleBookingKey, raw)
}

// ClearDraft removes the in-progress booking.
func (s *BookingStore) ClearDraft(ctx context.Context) error {
	return s.session.Delete(ctx, SingleBookingKey)
}

// SelectedIndex returns the index handed off to the details view.
func (s *BookingStore) SelectedIndex(ctx context.Context) (int, bool, error) {
	raw, found, err := s.session.Get(ctx, IndexKey)
	if err != nil {
		s.logger.Warn("selected index unreadable, treating as absent", zap.Error(err))
		return 0, false, nil
	}
	if !found {
		return 0, false, nil
	}

	var index int
	if err := json.Unmarshal(raw, &index); err != nil {
		return 0, false, domain.NewDeserializationError(fmt.Sprintf("selected index payload: %v", err))
	}
	return index, true, nil
}

// SetSelectedIndex records which booking the details view should show.
func (s *BookingStore) SetSelectedIndex(ctx context.Context, index int) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal selected index: %w", err)
	}
	return s.session.Set(ctx, IndexKey, raw)
}

// ClearSelectedIndex removes the details-view handoff.
func (s *BookingStore) ClearSelectedIndex(ctx context.Context) error {
	return s.session.Delete(ctx, IndexKey)
}
