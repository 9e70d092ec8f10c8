package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/domain"
)

var ErrDuplicateName = errors.New("room already exists")

type RoomRepo struct{ db *gorm.DB }

func NewRoomRepo(db *gorm.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func (r *RoomRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Room{})
}

func (r *RoomRepo) Create(ctx context.Context, room *domain.Room) error {
	var existing domain.Room
	err := r.db.WithContext(ctx).First(&existing, "name = ?", room.Name).Error
	if err == nil {
		return ErrDuplicateName
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepo) ByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *RoomRepo) Save(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Room{}, "id = ?", id).Error
}
