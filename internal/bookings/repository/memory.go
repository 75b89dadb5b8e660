package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	bookingserrors "tablebot/internal/bookings/errors"
	"tablebot/pkg/model"
)

// memoryBookingRepository keeps bookings in process. Records are copied on
// the way in and out so callers never share state with the store.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	seq      int64
	bookings map[int64]*model.Booking
	now      func() time.Time
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[int64]*model.Booking),
		now:      time.Now,
	}
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *model.Booking) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	doc := booking.Clone()
	doc.ID = r.seq
	doc.Active = true
	doc.CreatedAt = r.now().UTC().Truncate(time.Millisecond)
	r.bookings[doc.ID] = doc

	booking.ID = doc.ID
	booking.Active = doc.Active
	booking.CreatedAt = doc.CreatedAt
	return doc.ID, nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *memoryBookingRepository) FindActiveByCustomer(ctx context.Context, customerName string) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*model.Booking{}
	for _, b := range r.bookings {
		if b.Active && b.CustomerName == customerName {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryBookingRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || !b.Active {
		return false, nil
	}
	b.Active = false
	return true, nil
}

func (r *memoryBookingRepository) UpdateField(ctx context.Context, id int64, field model.BookingField, value any) (bool, error) {
	if _, ok := field.Column(); !ok {
		return false, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidField, field)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok || !b.Active {
		return false, nil
	}
	updated := b.Clone()
	if err := field.Apply(updated, value); err != nil {
		return false, err
	}
	r.bookings[id] = updated
	return true, nil
}

func (r *memoryBookingRepository) DietaryPreference(ctx context.Context, customerName string) (model.Dietary, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[model.Dietary]int)
	for _, b := range r.bookings {
		if b.Active && b.CustomerName == customerName {
			counts[b.Dietary]++
		}
	}

	var best model.Dietary
	bestCount := 0
	for d, n := range counts {
		if n < 2 {
			continue
		}
		if n > bestCount || (n == bestCount && d < best) {
			best, bestCount = d, n
		}
	}
	return best, nil
}
