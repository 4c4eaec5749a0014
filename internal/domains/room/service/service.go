package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/room/model"
	"hotelops/internal/domains/room/model/dto"
	"hotelops/internal/domains/room/repository"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

type Room interface {
	GetAll(ctx context.Context, filter dto.RoomFilter) ([]model.Room, error)
	Get(ctx context.Context, id int64) (model.Room, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (model.Room, error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (model.Room, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) (model.Room, error)
	Delete(ctx context.Context, id int64) (model.Room, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.RoomFilter) (res []model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	res = make([]model.Room, 0, len(rooms))

	for _, room := range rooms {
		if filter.Match(room) {
			res = append(res, room)
		}
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Insert(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateReports(ctx)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateRoomRequest{}) {
		return res, failure.EmptyUpdateRequest
	}

	res, err = s.repo.Modify(ctx, id, func(current model.Room) (model.Room, error) {
		cleanedBefore := current.Status == model.StatusAvailable

		if _, err := shared.ApplyPatch(&current, req); err != nil {
			return current, err //nolint:wrapcheck
		}

		if current.Status == model.StatusAvailable && !cleanedBefore {
			current.LastCleaned = timezone.Now()
		}

		return current, nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateReports(ctx)

	return res, nil
}

// UpdateStatus is the housekeeping transition. Returning a room to Available marks it cleaned.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id int64, status model.Status) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room.status", string(status))

	res, err = s.repo.Modify(ctx, id, func(current model.Room) (model.Room, error) {
		current.Status = status
		if status == model.StatusAvailable {
			current.LastCleaned = timezone.Now()
		}

		return current, nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Str("status", string(status)).Msg("failed to update room status")

		return res, fmt.Errorf("failed to update room status: %w", err)
	}

	s.invalidateReports(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete room")

		return res, fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidateReports(ctx)

	return res, nil
}

func (s *serviceImpl) invalidateReports(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, constant.CacheKeyReportPrefix)
}
