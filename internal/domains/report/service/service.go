package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/s3"
	billingDto "hotelops/internal/domains/billing/model/dto"
	billingService "hotelops/internal/domains/billing/service"
	"hotelops/internal/domains/report/export"
	"hotelops/internal/domains/report/model"
	reservationDto "hotelops/internal/domains/reservation/model/dto"
	reservationService "hotelops/internal/domains/reservation/service"
	roomDto "hotelops/internal/domains/room/model/dto"
	roomService "hotelops/internal/domains/room/service"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/timezone"
)

const archiveDirectory = "reports"

type Report interface {
	Get(ctx context.Context, rng model.Range) (model.Report, error)
	GetDashboard(ctx context.Context) (model.Dashboard, error)
	Export(ctx context.Context, rng model.Range) (data []byte, fileName string, err error)
	Archive(ctx context.Context, rng model.Range) (url string, err error)
}

type serviceImpl struct {
	reservations reservationService.Reservation
	rooms        roomService.Room
	bills        billingService.Billing
	storage      s3.S3
	cache        cache.RedisCache
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	reservations reservationService.Reservation,
	rooms roomService.Room,
	bills billingService.Billing,
	storage s3.S3,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Report {
	return &serviceImpl{
		reservations: reservations,
		rooms:        rooms,
		bills:        bills,
		storage:      storage,
		cache:        cache,
		cfg:          cfg,
		otel:         otel,
	}
}

// Get serves the report for rng from cache, computing and caching it on a miss. Cache
// failures never fail the request.
func (s *serviceImpl) Get(ctx context.Context, rng model.Range) (res model.Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKey(constant.CacheKeyReportPrefix+"summary", rng)

	if err := s.cache.Get(ctx, key, &res); err == nil {
		return res, nil
	} else if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cached report")
	}

	reservations, err := s.reservations.GetAll(ctx, reservationDto.ReservationFilter{})
	if err != nil {
		return res, fmt.Errorf("failed to load reservations for report: %w", err)
	}

	rooms, err := s.rooms.GetAll(ctx, roomDto.RoomFilter{})
	if err != nil {
		return res, fmt.Errorf("failed to load rooms for report: %w", err)
	}

	bills, err := s.bills.GetAll(ctx, billingDto.BillFilter{})
	if err != nil {
		return res, fmt.Errorf("failed to load bills for report: %w", err)
	}

	res = model.Compute(rng, timezone.Now(), reservations, rooms, bills)

	s.save(ctx, key, res)

	return res, nil
}

func (s *serviceImpl) GetDashboard(ctx context.Context) (res model.Dashboard, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.GetDashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := constant.CacheKeyReportPrefix + "dashboard"

	if err := s.cache.Get(ctx, key, &res); err == nil {
		return res, nil
	} else if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cached dashboard")
	}

	reservations, err := s.reservations.GetAll(ctx, reservationDto.ReservationFilter{})
	if err != nil {
		return res, fmt.Errorf("failed to load reservations for dashboard: %w", err)
	}

	rooms, err := s.rooms.GetAll(ctx, roomDto.RoomFilter{})
	if err != nil {
		return res, fmt.Errorf("failed to load rooms for dashboard: %w", err)
	}

	res = model.NewDashboard(timezone.Now(), reservations, rooms)

	s.save(ctx, key, res)

	return res, nil
}

func (s *serviceImpl) Export(ctx context.Context, rng model.Range) (data []byte, fileName string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	report, err := s.Get(ctx, rng)
	if err != nil {
		return nil, "", err
	}

	data, err = export.Workbook(report)
	if err != nil {
		log.Error().Err(err).Str("range", string(rng)).Msg("failed to render report workbook")

		return nil, "", fmt.Errorf("failed to render report workbook: %w", err)
	}

	return data, export.FileName(report), nil
}

// Archive uploads the workbook for rng to object storage and returns its public URL.
func (s *serviceImpl) Archive(ctx context.Context, rng model.Range) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Archive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, fileName, err := s.Export(ctx, rng)
	if err != nil {
		return "", err
	}

	url, err = s.storage.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, archiveDirectory, fileName, constant.ContentTypeXLSX, data)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to archive report")

		return "", fmt.Errorf("failed to archive report: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache report")
	}
}
