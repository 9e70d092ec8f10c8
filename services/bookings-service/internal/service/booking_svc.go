package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/timeslot"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/domain"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/repository"
)

var (
	// ErrDenied carries the RBAC reason; the transport maps it to 403.
	ErrDenied = errors.New("forbidden")
	// ErrInvalid marks malformed input; the transport maps it to 400.
	ErrInvalid = errors.New("invalid input")
)

type BookingRepo interface {
	CreateWithNoOverlap(ctx context.Context, b *domain.Booking) error
	UpdateWithNoOverlap(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	SetStatus(ctx context.Context, id, to string) (*domain.Booking, error)
	ActiveByRoom(ctx context.Context, roomID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingSvc struct {
	repo BookingRepo
	pub  EventPublisher
	log  *zap.Logger
}

func NewBookingSvc(r BookingRepo, pub EventPublisher, log *zap.Logger) *BookingSvc {
	return &BookingSvc{repo: r, pub: pub, log: log}
}

func denied(d authz.Decision) error {
	return fmt.Errorf("%w: %s", ErrDenied, d.Reason)
}

func parseSlot(startISO, endISO string) (timeslot.Slot, error) {
	st, err := time.Parse(time.RFC3339, startISO)
	if err != nil {
		return timeslot.Slot{}, fmt.Errorf("%w: bad start_time, use RFC3339", ErrInvalid)
	}
	et, err := time.Parse(time.RFC3339, endISO)
	if err != nil {
		return timeslot.Slot{}, fmt.Errorf("%w: bad end_time, use RFC3339", ErrInvalid)
	}
	s, err := timeslot.New(st, et)
	if err != nil {
		return timeslot.Slot{}, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return s, nil
}

func snapshot(rows []domain.Booking) []timeslot.Reservation {
	out := make([]timeslot.Reservation, 0, len(rows))
	for _, b := range rows {
		out = append(out, timeslot.Reservation{
			ID:   b.ID,
			Slot: timeslot.Slot{Start: b.StartTime, End: b.EndTime},
		})
	}
	return out
}

// hasConflict runs the pure checker against the room's confirmed bookings.
// The repository re-asserts the same predicate under a row lock at commit, so
// a concurrent creator slipping past this snapshot still cannot double-book.
func (s *BookingSvc) hasConflict(ctx context.Context, roomID string, slot timeslot.Slot, excludeID string) (bool, error) {
	rows, err := s.repo.ActiveByRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	return timeslot.HasConflict(slot, snapshot(rows), excludeID), nil
}

func (s *BookingSvc) ListAll(ctx context.Context, caller authz.Context) ([]domain.Booking, error) {
	if d := authz.Bookings.Decide(authz.BookingGetAll, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.ListAll(ctx)
}

func (s *BookingSvc) Create(ctx context.Context, caller authz.Context, userID, roomID, startISO, endISO string) (*domain.Booking, error) {
	caller.DeclaredOwnerID = userID
	if d := authz.Bookings.Decide(authz.BookingCreate, caller); !d.Allowed {
		return nil, denied(d)
	}

	slot, err := parseSlot(startISO, endISO)
	if err != nil {
		return nil, err
	}

	conflict, err := s.hasConflict(ctx, roomID, slot, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, repository.ErrOverlap
	}

	b := &domain.Booking{
		UserID:    userID,
		RoomID:    roomID,
		StartTime: slot.Start,
		EndTime:   slot.End,
		Status:    domain.StatusConfirmed,
	}
	if err := s.repo.CreateWithNoOverlap(ctx, b); err != nil {
		return nil, err
	}

	if err := s.pub.PublishJSON(ctx, "booking.created", map[string]any{
		"booking_id": b.ID, "user_id": b.UserID, "room_id": b.RoomID,
		"start": b.StartTime.Unix(), "end": b.EndTime.Unix(),
	}); err != nil {
		s.log.Warn("publish booking.created failed", zap.Error(err))
	}
	return b, nil
}

// UpdateParams carries the optional fields of a booking update; nil means
// keep the stored value.
type UpdateParams struct {
	RoomID   *string
	StartISO *string
	EndISO   *string
}

func (s *BookingSvc) Update(ctx context.Context, caller authz.Context, id string, p UpdateParams) (*domain.Booking, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caller.ResourceOwnerID = b.UserID
	if d := authz.Bookings.Decide(authz.BookingUpdate, caller); !d.Allowed {
		return nil, denied(d)
	}

	if p.RoomID != nil {
		b.RoomID = *p.RoomID
	}
	startISO := b.StartTime.Format(time.RFC3339)
	endISO := b.EndTime.Format(time.RFC3339)
	if p.StartISO != nil {
		startISO = *p.StartISO
	}
	if p.EndISO != nil {
		endISO = *p.EndISO
	}
	slot, err := parseSlot(startISO, endISO)
	if err != nil {
		return nil, err
	}
	b.StartTime = slot.Start
	b.EndTime = slot.End

	// the booking's own row is excluded so it never conflicts with itself
	conflict, err := s.hasConflict(ctx, b.RoomID, slot, b.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, repository.ErrOverlap
	}

	if err := s.repo.UpdateWithNoOverlap(ctx, b); err != nil {
		return nil, err
	}

	if err := s.pub.PublishJSON(ctx, "booking.updated", map[string]any{
		"booking_id": b.ID, "user_id": b.UserID, "room_id": b.RoomID,
		"start": b.StartTime.Unix(), "end": b.EndTime.Unix(),
	}); err != nil {
		s.log.Warn("publish booking.updated failed", zap.Error(err))
	}
	return b, nil
}

func (s *BookingSvc) Cancel(ctx context.Context, caller authz.Context, id string) (*domain.Booking, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caller.ResourceOwnerID = b.UserID
	if d := authz.Bookings.Decide(authz.BookingCancel, caller); !d.Allowed {
		return nil, denied(d)
	}

	b, err = s.repo.SetStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	if err := s.pub.PublishJSON(ctx, "booking.cancelled", map[string]any{
		"booking_id": b.ID, "user_id": b.UserID, "room_id": b.RoomID,
	}); err != nil {
		s.log.Warn("publish booking.cancelled failed", zap.Error(err))
	}
	return b, nil
}

// Availability reports whether a room is free over [start, end). Open to
// every role, including unauthenticated probes.
func (s *BookingSvc) Availability(ctx context.Context, caller authz.Context, roomID, startISO, endISO string) (bool, error) {
	if d := authz.Bookings.Decide(authz.BookingCheckAvailability, caller); !d.Allowed {
		return false, denied(d)
	}
	slot, err := parseSlot(startISO, endISO)
	if err != nil {
		return false, err
	}
	conflict, err := s.hasConflict(ctx, roomID, slot, "")
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (s *BookingSvc) UserHistory(ctx context.Context, caller authz.Context, targetUserID string) ([]domain.Booking, error) {
	caller.TargetUserID = targetUserID
	if d := authz.Bookings.Decide(authz.BookingUserHistory, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.ListByUser(ctx, targetUserID)
}
