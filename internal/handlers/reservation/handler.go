package reservation

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/reservation/model"
	"hotelops/internal/domains/reservation/model/dto"
	"hotelops/internal/domains/reservation/service"
	"hotelops/shared"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/group", handler.CreateGroupReservation)
		routerGroup.Get("/groups/{groupID}", handler.GetGroupReservations)
		routerGroup.Get("/groups/{groupID}/summary", handler.GetGroupSummary)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
		routerGroup.Post("/{id}/confirm", handler.transition("ConfirmReservation", handler.service.Confirm))
		routerGroup.Post("/{id}/check-in", handler.transition("CheckIn", handler.service.CheckIn))
		routerGroup.Post("/{id}/check-out", handler.transition("CheckOut", handler.service.CheckOut))
		routerGroup.Post("/{id}/cancel", handler.CancelReservation)
	})
}

// CreateReservation books one room for one guest.
// @Summary Create a new reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[model.Reservation]
// @Failure 400 {object} response.Error
// @Router /v1/reservations [post]
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation created successfully by " + shared.Operator(ctx))

	response.WithJSON(writer, http.StatusCreated, reservation)
}

// CreateGroupReservation books several rooms that share stay dates. Either every room is
// booked or none is.
// @Summary Create a group reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupReservationRequest true "Create Group Reservation Request"
// @Success 201 {object} response.Data[[]model.Reservation]
// @Failure 400 {object} response.Error
// @Router /v1/reservations/group [post]
func (handler *Handler) CreateGroupReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGroupReservation")
	defer scope.End()

	req := dto.CreateGroupReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reservations, err := handler.service.CreateGroup(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create group reservation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, reservations)
}

// @Summary Get all reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param guest_id query int false "Filter by guest"
// @Param room_id query int false "Filter by room"
// @Success 200 {object} response.Data[gDto.List[model.Reservation]]
// @Failure 400 {object} response.Error
// @Router /v1/reservations [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	query := r.URL.Query()
	filter := dto.ReservationFilter{Status: query.Get(constant.RequestParamStatus)}

	for param, target := range map[string]*int64{
		constant.RequestParamGuestID: &filter.GuestID,
		constant.RequestParamRoomID:  &filter.RoomID,
	} {
		value := query.Get(param)
		if value == "" {
			continue
		}

		id, err := shared.ParseID(value)
		if err != nil {
			response.WithError(w, err)

			return
		}

		*target = id
	}

	reservations, err := handler.service.GetAll(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.NewList(reservations, queryParams))
}

// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Data[model.Reservation]
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id} [get]
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation edits a reservation and records the change in its history.
// @Summary Update a reservation by ID
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Update Reservation Request"
// @Success 200 {object} response.Data[model.Reservation]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id} [patch]
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation updated successfully by " + shared.Operator(ctx))

	response.WithJSON(w, http.StatusOK, reservation)
}

// @Summary Delete a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} response.Data[model.Reservation]
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id} [delete]
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// transition serves the confirm, check-in and check-out endpoints. The body is optional.
// @Summary Move a reservation through its lifecycle
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.TransitionRequest false "Transition Request"
// @Success 200 {object} response.Data[model.Reservation]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/confirm [post]
// @Router /v1/reservations/{id}/check-in [post]
// @Router /v1/reservations/{id}/check-out [post]
func (handler *Handler) transition(
	name string,
	move func(ctx context.Context, id int64, req dto.TransitionRequest) (model.Reservation, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
		defer scope.End()

		id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
		if err != nil {
			response.WithError(w, err)

			return
		}

		req := dto.TransitionRequest{}

		if err := decodeOptional(r, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}

		reservation, err := move(ctx, id, req)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Int64("id", id).Str("transition", name).Msg("failed to move reservation")

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusOK, reservation)
	}
}

// CancelReservation cancels a reservation and computes its refund.
// @Summary Cancel a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body dto.CancelRequest true "Cancel Request"
// @Success 200 {object} response.Data[model.Reservation]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CancelRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.CancelWithRefund(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled by " + shared.Operator(ctx))

	response.WithJSON(w, http.StatusOK, reservation)
}

// @Summary Get the reservations of a group
// @Tags Reservation
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} response.Data[gDto.List[model.Reservation]]
// @Router /v1/reservations/groups/{groupID} [get]
func (handler *Handler) GetGroupReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGroupReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	groupID := chi.URLParam(r, constant.RequestParamGroupID)

	reservations, err := handler.service.GetGroupReservations(ctx, groupID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("groupId", groupID).Msg("failed to get group reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.NewList(reservations, queryParams))
}

// @Summary Summarize a group booking
// @Tags Reservation
// @Produce json
// @Param groupID path string true "Group ID"
// @Success 200 {object} response.Data[model.GroupSummary]
// @Failure 404 {object} response.Error
// @Router /v1/reservations/groups/{groupID}/summary [get]
func (handler *Handler) GetGroupSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGroupSummary")
	defer scope.End()

	groupID := chi.URLParam(r, constant.RequestParamGroupID)

	summary, err := handler.service.GetGroupSummary(ctx, groupID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("groupId", groupID).Msg("failed to get group summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// decodeOptional validates an optional JSON body. An empty body validates the zero value.
func decodeOptional[T any](r *http.Request, req *T) error {
	if r.Body == nil || r.ContentLength == 0 {
		return validator.ValidateStruct(req) //nolint:wrapcheck
	}

	return validator.Validate(r.Body, req) //nolint:wrapcheck
}
