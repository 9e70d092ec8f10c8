package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/domain"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/rooms-service/internal/repository"
)

type fakeRoomRepo struct {
	rooms  map[string]*domain.Room
	nextID int
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[string]*domain.Room{}}
}

func (f *fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	for _, e := range f.rooms {
		if e.Name == room.Name {
			return repository.ErrDuplicateName
		}
	}
	f.nextID++
	room.ID = fmt.Sprintf("r%d", f.nextID)
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) ByID(_ context.Context, id string) (*domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) List(_ context.Context) ([]domain.Room, error) {
	out := make([]domain.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoomRepo) Save(_ context.Context, room *domain.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id string) error {
	delete(f.rooms, id)
	return nil
}

func asRole(role authz.Role, id string) authz.Context {
	return authz.Context{Role: role, CallerID: id}
}

func TestAnyoneCanBrowseRooms(t *testing.T) {
	svc := NewRoomSvc(newFakeRoomRepo())

	_, err := svc.Create(context.Background(), asRole(authz.RoleFacilityManager, "f1"),
		domain.Room{Name: "Boardroom", Capacity: 12})
	require.NoError(t, err)

	for _, caller := range []authz.Context{
		{}, // anonymous
		asRole(authz.RoleRegularUser, "u1"),
		asRole(authz.RoleAuditor, "au1"),
	} {
		rooms, err := svc.List(context.Background(), caller)
		require.NoError(t, err)
		assert.Len(t, rooms, 1)
	}
}

func TestOnlyFacilityManagerAndAdminMutateRooms(t *testing.T) {
	svc := NewRoomSvc(newFakeRoomRepo())

	_, err := svc.Create(context.Background(), asRole(authz.RoleRegularUser, "u1"),
		domain.Room{Name: "Huddle", Capacity: 4})
	assert.ErrorIs(t, err, ErrDenied)
	_, err = svc.Create(context.Background(), asRole(authz.RoleModerator, "m1"),
		domain.Room{Name: "Huddle", Capacity: 4})
	assert.ErrorIs(t, err, ErrDenied)

	r, err := svc.Create(context.Background(), asRole(authz.RoleAdmin, "a1"),
		domain.Room{Name: "Huddle", Capacity: 4})
	require.NoError(t, err)
	assert.True(t, r.Available)

	cap := 6
	updated, err := svc.Update(context.Background(), asRole(authz.RoleFacilityManager, "f1"), r.ID,
		UpdateParams{Capacity: &cap})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Capacity)

	err = svc.Delete(context.Background(), asRole(authz.RoleRegularUser, "u1"), r.ID)
	assert.ErrorIs(t, err, ErrDenied)
	require.NoError(t, svc.Delete(context.Background(), asRole(authz.RoleFacilityManager, "f1"), r.ID))
}

func TestDuplicateRoomName(t *testing.T) {
	svc := NewRoomSvc(newFakeRoomRepo())
	mgr := asRole(authz.RoleFacilityManager, "f1")

	_, err := svc.Create(context.Background(), mgr, domain.Room{Name: "Boardroom", Capacity: 12})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), mgr, domain.Room{Name: "Boardroom", Capacity: 8})
	assert.ErrorIs(t, err, repository.ErrDuplicateName)
}

func TestMarkRoomOutOfService(t *testing.T) {
	svc := NewRoomSvc(newFakeRoomRepo())
	mgr := asRole(authz.RoleFacilityManager, "f1")

	r, err := svc.Create(context.Background(), mgr, domain.Room{Name: "Boardroom", Capacity: 12})
	require.NoError(t, err)

	off := false
	updated, err := svc.Update(context.Background(), mgr, r.ID, UpdateParams{Available: &off})
	require.NoError(t, err)
	assert.False(t, updated.Available)
}

func TestRoomNotFound(t *testing.T) {
	svc := NewRoomSvc(newFakeRoomRepo())

	_, err := svc.Get(context.Background(), asRole(authz.RoleRegularUser, "u1"), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.Delete(context.Background(), asRole(authz.RoleAdmin, "a1"), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
