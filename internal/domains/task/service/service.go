package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/task/model"
	"hotelops/internal/domains/task/model/dto"
	"hotelops/internal/domains/task/repository"
	"hotelops/shared"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

type Task interface {
	GetAll(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	Create(ctx context.Context, req dto.CreateTaskRequest) (model.Task, error)
	Update(ctx context.Context, id int64, req dto.UpdateTaskRequest) (model.Task, error)
	Delete(ctx context.Context, id int64) (model.Task, error)
	GetByRoom(ctx context.Context, roomID int64) ([]model.Task, error)
	GetByStatus(ctx context.Context, status string) ([]model.Task, error)
	GetByAssignee(ctx context.Context, assignee string) ([]model.Task, error)
	GetByPriority(ctx context.Context, priority string) ([]model.Task, error)
}

type serviceImpl struct {
	repo repository.Task
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Task, cfg *config.Config, otel otel.Otel) Task {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// GetAll lists matching tasks, newest first.
func (s *serviceImpl) GetAll(ctx context.Context, filter dto.TaskFilter) (res []model.Task, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tasks, err := s.repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tasks")

		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	res = make([]model.Task, 0, len(tasks))

	for _, task := range tasks {
		if filter.Match(task) {
			res = append(res, task)
		}
	}

	slices.SortStableFunc(res, func(a, b model.Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res model.Task, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get task")

		return res, fmt.Errorf("failed to get task: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTaskRequest) (res model.Task, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Insert(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create task")

		return res, fmt.Errorf("failed to create task: %w", err)
	}

	return res, nil
}

// Update stamps updatedAt, and completedAt the first time a task reaches Completed.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateTaskRequest) (res model.Task, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateTaskRequest{}) {
		return res, failure.EmptyUpdateRequest
	}

	res, err = s.repo.Modify(ctx, id, func(current model.Task) (model.Task, error) {
		if _, err := shared.ApplyPatch(&current, req); err != nil {
			return current, err //nolint:wrapcheck
		}

		now := timezone.Now()
		current.UpdatedAt = now

		switch {
		case current.Status == model.StatusCompleted && current.CompletedAt == nil:
			current.CompletedAt = &now
		case current.Status != model.StatusCompleted:
			current.CompletedAt = nil
		}

		return current, nil
	})
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update task")

		return res, fmt.Errorf("failed to update task: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res model.Task, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".task.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete task")

		return res, fmt.Errorf("failed to delete task: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) GetByRoom(ctx context.Context, roomID int64) ([]model.Task, error) {
	return s.GetAll(ctx, dto.TaskFilter{RoomID: roomID})
}

func (s *serviceImpl) GetByStatus(ctx context.Context, status string) ([]model.Task, error) {
	return s.GetAll(ctx, dto.TaskFilter{Status: status})
}

func (s *serviceImpl) GetByAssignee(ctx context.Context, assignee string) ([]model.Task, error) {
	return s.GetAll(ctx, dto.TaskFilter{AssignedTo: assignee})
}

func (s *serviceImpl) GetByPriority(ctx context.Context, priority string) ([]model.Task, error) {
	return s.GetAll(ctx, dto.TaskFilter{Priority: priority})
}
