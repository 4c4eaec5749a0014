package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/otel/mocks"
	"hotelops/internal/domains/room/model"
	"hotelops/internal/domains/room/model/dto"
	"hotelops/internal/domains/room/service"
	"hotelops/shared/cache"
	"hotelops/shared/failure"
	gRepo "hotelops/shared/repository"
	repoMocks "hotelops/shared/repository/mocks"
)

func newService(seed ...model.Room) service.Room {
	otl := mocks.NewOtel()
	store := gRepo.NewMemory[model.Room](model.EntityName, 0, otl, seed...)

	return service.New(store, &config.Config{}, cache.NewRedisCache(nil, otl), otl)
}

func createRoom(t *testing.T, svc service.Room, number string) model.Room {
	t.Helper()

	room, err := svc.Create(context.Background(), dto.CreateRoomRequest{
		Number:    number,
		Type:      "Standard",
		Rate:      decimal.NewFromInt(100),
		Amenities: []string{"WiFi", "TV"},
	})
	require.NoError(t, err)

	return room
}

func TestRoomService_Create(t *testing.T) {
	svc := newService()

	room := createRoom(t, svc, "101")

	assert.Equal(t, int64(1), room.ID)
	assert.Equal(t, model.StatusAvailable, room.Status)
	assert.False(t, room.LastCleaned.IsZero())
	assert.True(t, room.Rate.Equal(decimal.NewFromInt(100)))

	got, err := svc.Get(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.Number, got.Number)
	assert.Equal(t, room.Amenities, got.Amenities)
}

func TestRoomService_GetAll(t *testing.T) {
	svc := newService(
		model.Room{Number: "101", Type: "Standard", Status: model.StatusAvailable},
		model.Room{Number: "102", Type: "Deluxe", Status: model.StatusDirty},
		model.Room{Number: "201", Type: "Deluxe", Status: model.StatusAvailable},
	)

	tests := []struct {
		name    string
		filter  dto.RoomFilter
		numbers []string
	}{
		{name: "no filter", filter: dto.RoomFilter{}, numbers: []string{"101", "102", "201"}},
		{name: "by status", filter: dto.RoomFilter{Status: model.StatusAvailable}, numbers: []string{"101", "201"}},
		{name: "by type ignores case", filter: dto.RoomFilter{Type: "deluxe"}, numbers: []string{"102", "201"}},
		{name: "status and type", filter: dto.RoomFilter{Status: model.StatusDirty, Type: "Deluxe"}, numbers: []string{"102"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, err := svc.GetAll(context.Background(), tt.filter)
			require.NoError(t, err)

			numbers := make([]string, 0, len(rooms))
			for _, room := range rooms {
				numbers = append(numbers, room.Number)
			}

			assert.Equal(t, tt.numbers, numbers)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	svc := newService()
	room := createRoom(t, svc, "101")

	t.Run("keeps fields absent from the patch", func(t *testing.T) {
		notes := "Ocean view"

		updated, err := svc.Update(context.Background(), room.ID, dto.UpdateRoomRequest{Notes: &notes})
		require.NoError(t, err)

		assert.Equal(t, "Ocean view", updated.Notes)
		assert.Equal(t, room.Number, updated.Number)
		assert.Equal(t, room.Type, updated.Type)
		assert.Equal(t, room.Amenities, updated.Amenities)
		assert.True(t, room.Rate.Equal(updated.Rate))
	})

	t.Run("empty request", func(t *testing.T) {
		_, err := svc.Update(context.Background(), room.ID, dto.UpdateRoomRequest{})
		assert.ErrorIs(t, err, failure.EmptyUpdateRequest)
	})

	t.Run("not found", func(t *testing.T) {
		notes := "x"

		_, err := svc.Update(context.Background(), 42, dto.UpdateRoomRequest{Notes: &notes})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_UpdateStatus(t *testing.T) {
	svc := newService()
	room := createRoom(t, svc, "101")

	dirty, err := svc.UpdateStatus(context.Background(), room.ID, model.StatusDirty)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDirty, dirty.Status)
	assert.Equal(t, room.LastCleaned, dirty.LastCleaned)

	clean, err := svc.UpdateStatus(context.Background(), room.ID, model.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, clean.Status)
	assert.False(t, clean.LastCleaned.Before(room.LastCleaned))
}

func TestRoomService_Delete(t *testing.T) {
	svc := newService()
	room := createRoom(t, svc, "101")

	deleted, err := svc.Delete(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, deleted.ID)

	_, err = svc.Get(context.Background(), room.ID)
	assert.True(t, failure.IsNotFound(err))

	_, err = svc.Delete(context.Background(), room.ID)
	assert.True(t, failure.IsNotFound(err))
}

func TestRoomService_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	otl := mocks.NewOtel()
	store := repoMocks.NewMockStore[model.Room](ctrl)
	svc := service.New(store, &config.Config{}, cache.NewRedisCache(nil, otl), otl)

	store.EXPECT().All(gomock.Any()).Return(nil, errors.New("connection refused"))
	store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(model.Room{}, errors.New("connection refused"))

	_, err := svc.GetAll(context.Background(), dto.RoomFilter{})
	assert.ErrorContains(t, err, "failed to get rooms")

	_, err = svc.Create(context.Background(), dto.CreateRoomRequest{Number: "101", Type: "Standard", Rate: decimal.NewFromInt(90)})
	assert.ErrorContains(t, err, "failed to create room")
}
