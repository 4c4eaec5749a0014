package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/guest/model"
	"hotelops/internal/domains/guest/model/dto"
	"hotelops/internal/domains/guest/repository"
	"hotelops/shared"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

type Guest interface {
	GetAll(ctx context.Context) ([]model.Guest, error)
	Get(ctx context.Context, id int64) (model.Guest, error)
	Create(ctx context.Context, req dto.CreateGuestRequest) (model.Guest, error)
	Update(ctx context.Context, id int64, req dto.UpdateGuestRequest) (model.Guest, error)
	Delete(ctx context.Context, id int64) (model.Guest, error)
	GetCorporateAccounts(ctx context.Context) ([]model.Guest, error)
	GetCorporateAccount(ctx context.Context, id int64) (model.Guest, error)
	AddStay(ctx context.Context, id int64, stay model.Stay) (model.Guest, error)
}

type serviceImpl struct {
	repo repository.Guest
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Guest, cfg *config.Config, otel otel.Otel) Guest {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return nil, fmt.Errorf("failed to get guests: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Insert(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateGuestRequest) (res model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.EmptyUpdateRequest
	}

	res, err = s.repo.Modify(ctx, id, func(current model.Guest) (model.Guest, error) {
		if _, err := shared.ApplyPatch(&current, req); err != nil {
			return current, err //nolint:wrapcheck
		}

		return current, nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update guest")

		return res, fmt.Errorf("failed to update guest: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete guest")

		return res, fmt.Errorf("failed to delete guest: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) GetCorporateAccounts(ctx context.Context) (res []model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetCorporateAccounts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guests, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get corporate accounts")

		return nil, fmt.Errorf("failed to get corporate accounts: %w", err)
	}

	res = []model.Guest{}

	for _, guest := range guests {
		if guest.IsCorporate() {
			res = append(res, guest)
		}
	}

	return res, nil
}

// GetCorporateAccount treats an individual guest the same as a missing one.
func (s *serviceImpl) GetCorporateAccount(ctx context.Context, id int64) (res model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.GetCorporateAccount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get corporate account")

		return res, fmt.Errorf("failed to get corporate account: %w", err)
	}

	if !res.IsCorporate() {
		return model.Guest{}, failure.NotFound(fmt.Sprintf("corporate account %d not found", id))
	}

	return res, nil
}

func (s *serviceImpl) AddStay(ctx context.Context, id int64, stay model.Stay) (res model.Guest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.AddStay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Modify(ctx, id, func(current model.Guest) (model.Guest, error) {
		current.StayHistory = append(current.StayHistory, stay)

		return current, nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to add guest stay")

		return res, fmt.Errorf("failed to add guest stay: %w", err)
	}

	return res, nil
}
