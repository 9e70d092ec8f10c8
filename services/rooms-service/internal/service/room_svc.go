package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/domain"
)

var ErrDenied = errors.New("forbidden")

type RoomRepo interface {
	Create(ctx context.Context, room *domain.Room) error
	ByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Save(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id string) error
}

type RoomSvc struct{ repo RoomRepo }

func NewRoomSvc(r RoomRepo) *RoomSvc { return &RoomSvc{repo: r} }

func denied(d authz.Decision) error {
	return fmt.Errorf("%w: %s", ErrDenied, d.Reason)
}

func (s *RoomSvc) List(ctx context.Context, caller authz.Context) ([]domain.Room, error) {
	if d := authz.Rooms.Decide(authz.RoomList, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.List(ctx)
}

func (s *RoomSvc) Get(ctx context.Context, caller authz.Context, id string) (*domain.Room, error) {
	if d := authz.Rooms.Decide(authz.RoomGet, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.ByID(ctx, id)
}

func (s *RoomSvc) Create(ctx context.Context, caller authz.Context, room domain.Room) (*domain.Room, error) {
	if d := authz.Rooms.Decide(authz.RoomCreate, caller); !d.Allowed {
		return nil, denied(d)
	}
	room.Available = true
	if err := s.repo.Create(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateParams carries the optional room fields; nil keeps the stored value.
type UpdateParams struct {
	Name      *string
	Capacity  *int
	Equipment *string
	Location  *string
	Available *bool
}

func (s *RoomSvc) Update(ctx context.Context, caller authz.Context, id string, p UpdateParams) (*domain.Room, error) {
	if d := authz.Rooms.Decide(authz.RoomUpdate, caller); !d.Allowed {
		return nil, denied(d)
	}

	room, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		room.Name = *p.Name
	}
	if p.Capacity != nil {
		room.Capacity = *p.Capacity
	}
	if p.Equipment != nil {
		room.Equipment = *p.Equipment
	}
	if p.Location != nil {
		room.Location = *p.Location
	}
	if p.Available != nil {
		room.Available = *p.Available
	}

	if err := s.repo.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomSvc) Delete(ctx context.Context, caller authz.Context, id string) error {
	if d := authz.Rooms.Decide(authz.RoomDelete, caller); !d.Allowed {
		return denied(d)
	}
	if _, err := s.repo.ByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
