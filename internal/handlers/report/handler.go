package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/report/model"
	"hotelops/internal/domains/report/service"
	"hotelops/shared/constant"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

type ArchiveResponse struct {
	URL string `json:"url"`
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReport)
		routerGroup.Get("/dashboard", handler.GetDashboard)
		routerGroup.Get("/export", handler.ExportReport)
		routerGroup.Post("/export/archive", handler.ArchiveReport)
	})
}

// @Summary Operational report
// @Tags Reports
// @Produce json
// @Param range query string false "7days, 30days, 90days or thismonth"
// @Success 200 {object} response.Data[model.Report]
// @Failure 400 {object} response.Error
// @Router /v1/reports [get]
func (handler *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReport")
	defer scope.End()

	rng, err := model.ParseRange(r.URL.Query().Get(constant.RequestParamRange))
	if err != nil {
		response.WithError(w, err)

		return
	}

	report, err := handler.service.Get(ctx, rng)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("range", string(rng)).Msg("failed to get report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}

// @Summary Front desk dashboard
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Data[model.Dashboard]
// @Router /v1/reports/dashboard [get]
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	dashboard, err := handler.service.GetDashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dashboard)
}

// ExportReport streams the report as an xlsx attachment.
// @Summary Export report workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param range query string false "7days, 30days, 90days or thismonth"
// @Success 200 {file} file
// @Failure 400 {object} response.Error
// @Router /v1/reports/export [get]
func (handler *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportReport")
	defer scope.End()

	rng, err := model.ParseRange(r.URL.Query().Get(constant.RequestParamRange))
	if err != nil {
		response.WithError(w, err)

		return
	}

	data, fileName, err := handler.service.Export(ctx, rng)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("range", string(rng)).Msg("failed to export report")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypeXLSX, fileName, data)
}

// ArchiveReport uploads the workbook to object storage and returns its location.
// @Summary Archive report workbook
// @Tags Reports
// @Produce json
// @Param range query string false "7days, 30days, 90days or thismonth"
// @Success 201 {object} response.Data[ArchiveResponse]
// @Failure 400 {object} response.Error
// @Router /v1/reports/export/archive [post]
func (handler *Handler) ArchiveReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ArchiveReport")
	defer scope.End()

	rng, err := model.ParseRange(r.URL.Query().Get(constant.RequestParamRange))
	if err != nil {
		response.WithError(w, err)

		return
	}

	url, err := handler.service.Archive(ctx, rng)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("range", string(rng)).Msg("failed to archive report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, ArchiveResponse{URL: url})
}
