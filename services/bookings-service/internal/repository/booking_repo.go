package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/bookings-service/internal/domain"
)

var ErrOverlap = errors.New("room not available in this time slot")

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// overlapScope selects the CONFIRMED rows of a room that collide with
// [start, end). Strict inequalities keep back-to-back bookings apart.
func overlapScope(tx *gorm.DB, b *domain.Booking) *gorm.DB {
	return tx.Model(&domain.Booking{}).
		Where("room_id = ? AND status = ?", b.RoomID, domain.StatusConfirmed).
		Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime)
}

// CreateWithNoOverlap inserts inside a transaction that locks any colliding
// row first. Two concurrent creators targeting the same slot serialize here;
// the second sees the first's row and gets ErrOverlap.
func (r *BookingRepo) CreateWithNoOverlap(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Booking
		err := overlapScope(tx, b).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&existing).Error
		if err == nil {
			return ErrOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		return tx.Create(b).Error
	})
}

// UpdateWithNoOverlap saves a re-slotted booking under the same lock, skipping
// the booking's own row in the collision scan.
func (r *BookingRepo) UpdateWithNoOverlap(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Booking
		err := overlapScope(tx, b).
			Where("id <> ?", b.ID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&existing).Error
		if err == nil {
			return ErrOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Save(b).Error
	})
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) SetStatus(ctx context.Context, id, to string) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	b.Status = to
	if err := tx.Save(&b).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &b, tx.Commit().Error
}

// ActiveByRoom returns the CONFIRMED bookings of one room, the snapshot the
// conflict checker runs against.
func (r *BookingRepo) ActiveByRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, domain.StatusConfirmed).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).Order("start_time ASC").Find(&out).Error
	return out, err
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&out).Error
	return out, err
}
