package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/task/model/dto"
	"hotelops/internal/domains/task/service"
	"hotelops/shared"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Task
	otel    otel.Otel
}

func New(service service.Task, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tasks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTask)
		routerGroup.Get("/", handler.GetTasks)
		routerGroup.Get("/{id}", handler.GetTaskByID)
		routerGroup.Patch("/{id}", handler.UpdateTask)
		routerGroup.Delete("/{id}", handler.DeleteTask)
	})
}

// @Summary Create a housekeeping task
// @Tags Task
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Create Task Request"
// @Success 201 {object} response.Data[model.Task]
// @Failure 400 {object} response.Error
// @Router /v1/tasks [post]
func (handler *Handler) CreateTask(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTask")
	defer scope.End()

	req := dto.CreateTaskRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	task, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create task")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, task)
}

// GetTasks lists tasks newest first. Filters combine; status and priority match case
// insensitively and assigned_to matches any part of the assignee.
// @Summary Get all tasks
// @Tags Task
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query int false "Filter by room"
// @Param status query string false "Filter by status"
// @Param assigned_to query string false "Filter by assignee"
// @Param priority query string false "Filter by priority"
// @Success 200 {object} response.Data[gDto.List[model.Task]]
// @Failure 400 {object} response.Error
// @Router /v1/tasks [get]
func (handler *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTasks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	query := r.URL.Query()
	filter := dto.TaskFilter{
		Status:     query.Get(constant.RequestParamStatus),
		AssignedTo: query.Get(constant.RequestParamAssignedTo),
		Priority:   query.Get(constant.RequestParamPriority),
	}

	if roomID := query.Get(constant.RequestParamRoomID); roomID != "" {
		id, err := shared.ParseID(roomID)
		if err != nil {
			response.WithError(w, err)

			return
		}

		filter.RoomID = id
	}

	if err := filter.Validate(); err != nil {
		response.WithError(w, err)

		return
	}

	tasks, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tasks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.NewList(tasks, queryParams))
}

// @Summary Get a task by ID
// @Tags Task
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.Data[model.Task]
// @Failure 404 {object} response.Error
// @Router /v1/tasks/{id} [get]
func (handler *Handler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTaskByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	task, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get task by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, task)
}

// @Summary Update a task by ID
// @Tags Task
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Update Task Request"
// @Success 200 {object} response.Data[model.Task]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tasks/{id} [patch]
func (handler *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTask")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateTaskRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	task, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update task")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, task)
}

// @Summary Delete a task by ID
// @Tags Task
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} response.Data[model.Task]
// @Failure 404 {object} response.Error
// @Router /v1/tasks/{id} [delete]
func (handler *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTask")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	task, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete task")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, task)
}
