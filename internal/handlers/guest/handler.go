package guest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/guest/model/dto"
	"hotelops/internal/domains/guest/service"
	"hotelops/shared"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGuest)
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/corporate", handler.GetCorporateAccounts)
		routerGroup.Get("/corporate/{id}", handler.GetCorporateAccount)
		routerGroup.Get("/{id}", handler.GetGuestByID)
		routerGroup.Patch("/{id}", handler.UpdateGuest)
		routerGroup.Delete("/{id}", handler.DeleteGuest)
		routerGroup.Post("/{id}/stays", handler.AddStay)
	})
}

// CreateGuest registers a guest or corporate account.
// @Summary Create a new guest
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.CreateGuestRequest true "Create Guest Request"
// @Success 201 {object} response.Data[model.Guest]
// @Failure 400 {object} response.Error
// @Router /v1/guests [post]
func (handler *Handler) CreateGuest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGuest")
	defer scope.End()

	req := dto.CreateGuestRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	guest, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Guest created successfully by " + shared.Operator(ctx))

	response.WithJSON(writer, http.StatusCreated, guest)
}

// GetGuests lists every guest.
// @Summary Get all guests
// @Tags Guest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[gDto.List[model.Guest]]
// @Router /v1/guests [get]
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	guests, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.NewList(guests, queryParams))
}

// GetCorporateAccounts lists the guests that represent companies.
// @Summary Get corporate accounts
// @Tags Guest
// @Produce json
// @Success 200 {object} response.Data[gDto.List[model.Guest]]
// @Router /v1/guests/corporate [get]
func (handler *Handler) GetCorporateAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCorporateAccounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	accounts, err := handler.service.GetCorporateAccounts(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get corporate accounts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, gDto.NewList(accounts, queryParams))
}

// @Summary Get a corporate account by ID
// @Tags Guest
// @Produce json
// @Param id path int true "Guest ID"
// @Success 200 {object} response.Data[model.Guest]
// @Failure 404 {object} response.Error
// @Router /v1/guests/corporate/{id} [get]
func (handler *Handler) GetCorporateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCorporateAccount")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	account, err := handler.service.GetCorporateAccount(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get corporate account")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, account)
}

// @Summary Get a guest by ID
// @Tags Guest
// @Produce json
// @Param id path int true "Guest ID"
// @Success 200 {object} response.Data[model.Guest]
// @Failure 404 {object} response.Error
// @Router /v1/guests/{id} [get]
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get guest by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guest)
}

// UpdateGuest applies a profile edit. Address and loyalty fields merge into the stored
// values instead of replacing them.
// @Summary Update a guest by ID
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path int true "Guest ID"
// @Param request body dto.UpdateGuestRequest true "Update Guest Request"
// @Success 200 {object} response.Data[model.Guest]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/guests/{id} [patch]
func (handler *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGuest")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest updated successfully by " + shared.Operator(ctx))

	response.WithJSON(w, http.StatusOK, guest)
}

// @Summary Delete a guest by ID
// @Tags Guest
// @Produce json
// @Param id path int true "Guest ID"
// @Success 200 {object} response.Data[model.Guest]
// @Failure 404 {object} response.Error
// @Router /v1/guests/{id} [delete]
func (handler *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGuest")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	guest, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest deleted successfully by " + shared.Operator(ctx))

	response.WithJSON(w, http.StatusOK, guest)
}

// AddStay appends a completed stay to the guest's history.
// @Summary Record a stay
// @Tags Guest
// @Accept json
// @Produce json
// @Param id path int true "Guest ID"
// @Param request body dto.AddStayRequest true "Add Stay Request"
// @Success 201 {object} response.Data[model.Guest]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/guests/{id}/stays [post]
func (handler *Handler) AddStay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddStay")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.AddStayRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	guest, err := handler.service.AddStay(ctx, id, req.ToModel())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to add stay")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, guest)
}
