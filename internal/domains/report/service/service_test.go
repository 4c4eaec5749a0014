package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/infras/otel/mocks"
	"hotelops/infras/s3"
	s3Mocks "hotelops/infras/s3/mocks"
	billingModel "hotelops/internal/domains/billing/model"
	billingService "hotelops/internal/domains/billing/service"
	"hotelops/internal/domains/report/model"
	"hotelops/internal/domains/report/service"
	reservationModel "hotelops/internal/domains/reservation/model"
	reservationService "hotelops/internal/domains/reservation/service"
	roomModel "hotelops/internal/domains/room/model"
	roomService "hotelops/internal/domains/room/service"
	"hotelops/shared/cache"
	cacheMocks "hotelops/shared/cache/mocks"
	"hotelops/shared/constant"
	gRepo "hotelops/shared/repository"
)

func newService(t *testing.T, c cache.RedisCache, storage s3.S3) service.Report {
	t.Helper()

	otl := mocks.NewOtel()
	noCache := cache.NewRedisCache(nil, otl)

	if c == nil {
		c = noCache
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.External.S3.BucketName = "hotel-reports"

	events := kafka.New(cfg)
	now := time.Now()

	rooms := roomService.New(gRepo.NewMemory[roomModel.Room](roomModel.EntityName, 0, otl,
		roomModel.Room{Number: "101", Status: roomModel.StatusOccupied},
		roomModel.Room{Number: "102", Status: roomModel.StatusAvailable},
	), cfg, noCache, otl)

	reservations := reservationService.New(gRepo.NewMemory[reservationModel.Reservation](reservationModel.EntityName, 0, otl,
		reservationModel.Reservation{CheckIn: now.Add(-24 * time.Hour), CheckOut: now.Add(24 * time.Hour), Status: reservationModel.StatusCheckedIn, TotalAmount: decimal.NewFromInt(200)},
		reservationModel.Reservation{CheckIn: now.Add(48 * time.Hour), CheckOut: now.Add(72 * time.Hour), Status: reservationModel.StatusCancelled, TotalAmount: decimal.NewFromInt(100)},
	), nil, nil, events, noCache, cfg, otl)

	bills := billingService.New(gRepo.NewMemory[billingModel.Bill](billingModel.EntityName, 0, otl,
		billingModel.Bill{PaymentStatus: billingModel.PaymentStatusPaid, Subtotal: decimal.NewFromInt(200), TaxAmount: decimal.NewFromInt(20), CreatedAt: now.Add(-time.Hour)},
	), reservations, events, noCache, cfg, otl)

	return service.New(reservations, rooms, bills, storage, c, cfg, otl)
}

func TestReportService_Get(t *testing.T) {
	svc := newService(t, nil, nil)

	report, err := svc.Get(context.Background(), model.Range30Days)

	require.NoError(t, err)
	assert.Equal(t, model.Range30Days, report.Range)
	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 50, report.OccupancyRate)
	assert.Equal(t, 2, report.TotalBookings)
	assert.Equal(t, 50, report.CancellationRate)
}

func TestReportService_GetServesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cacheMocks.NewMockRedisCache(ctrl)
	c.EXPECT().
		Get(gomock.Any(), constant.CacheKeyReportPrefix+"summary:7days", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			report, _ := value.(*model.Report)
			report.Range = model.Range7Days
			report.TotalBookings = 42

			return nil
		})

	svc := newService(t, c, nil)

	report, err := svc.Get(context.Background(), model.Range7Days)

	require.NoError(t, err)
	assert.Equal(t, 42, report.TotalBookings)
}

func TestReportService_GetCachesOnMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := cacheMocks.NewMockRedisCache(ctrl)
	c.EXPECT().Get(gomock.Any(), constant.CacheKeyReportPrefix+"dashboard", gomock.Any()).Return(cache.Nil)
	c.EXPECT().Save(gomock.Any(), constant.CacheKeyReportPrefix+"dashboard", gomock.Any(), 60).Return(errors.New("redis down"))

	svc := newService(t, c, nil)

	dashboard, err := svc.GetDashboard(context.Background())

	require.NoError(t, err, "cache failures never fail the request")
	assert.Equal(t, 2, dashboard.TotalRooms)
	assert.Equal(t, 1, dashboard.OccupiedRooms)
	assert.Equal(t, 50, dashboard.OccupancyRate)
}

func TestReportService_Export(t *testing.T) {
	svc := newService(t, nil, nil)

	data, fileName, err := svc.Export(context.Background(), model.Range7Days)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Regexp(t, `^report-7days-\d{8}-\d{6}\.xlsx$`, fileName)
}

func TestReportService_Archive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := s3Mocks.NewMockS3(ctrl)
	storage.EXPECT().
		UploadFileBytes(gomock.Any(), "hotel-reports", "reports", gomock.Any(), constant.ContentTypeXLSX, gomock.Any()).
		Return("https://cdn.example.com/reports/report.xlsx", nil)

	svc := newService(t, nil, storage)

	url, err := svc.Archive(context.Background(), model.Range30Days)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/reports/report.xlsx", url)
}

func TestReportService_ArchiveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := s3Mocks.NewMockS3(ctrl)
	storage.EXPECT().
		UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", assert.AnError)

	svc := newService(t, nil, storage)

	_, err := svc.Archive(context.Background(), model.Range30Days)

	assert.ErrorIs(t, err, assert.AnError)
}
