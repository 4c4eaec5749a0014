package task_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/config"
	"hotelops/infras/otel/mocks"
	"hotelops/internal/domains/task/model"
	"hotelops/internal/domains/task/service"
	"hotelops/internal/handlers/task"
	gDto "hotelops/shared/dto"
	gRepo "hotelops/shared/repository"
)

func newRouter() http.Handler {
	otl := mocks.NewOtel()

	svc := service.New(gRepo.NewMemory[model.Task](model.EntityName, 0, otl), &config.Config{}, otl)

	handler := task.New(svc, otl)
	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Data T `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope.Data
}

func TestTaskHandler_Lifecycle(t *testing.T) {
	router := newRouter()

	rec := do(router, http.MethodPost, "/tasks", `{"title":"Fix AC","roomId":101,"priority":"High","type":"maintenance"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[model.Task](t, rec)
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Nil(t, created.CompletedAt)

	rec = do(router, http.MethodPost, "/tasks", `{"title":"Turn down 102","assignedTo":"Maria Lopes"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.PriorityMedium, decode[model.Task](t, rec).Priority)

	filters := map[string]int{
		"/tasks":                   2,
		"/tasks?priority=high":     1,
		"/tasks?assigned_to=maria": 1,
		"/tasks?room_id=101":       1,
		"/tasks?status=completed":  0,
	}

	for target, count := range filters {
		rec = do(router, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, count, decode[gDto.List[model.Task]](t, rec).TotalData, target)
	}

	rec = do(router, http.MethodPatch, "/tasks/1", `{"status":"Completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decode[model.Task](t, rec).CompletedAt)

	rec = do(router, http.MethodPatch, "/tasks/1", `{"status":"In Progress"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode[model.Task](t, rec).CompletedAt)

	rec = do(router, http.MethodDelete, "/tasks/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskHandler_Errors(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		code   int
	}{
		{name: "missing title", method: http.MethodPost, target: "/tasks", body: `{}`, code: http.StatusBadRequest},
		{name: "unknown priority", method: http.MethodPost, target: "/tasks", body: `{"title":"x","priority":"Someday"}`, code: http.StatusBadRequest},
		{name: "bad priority filter", method: http.MethodGet, target: "/tasks?priority=someday", code: http.StatusBadRequest},
		{name: "bad status filter", method: http.MethodGet, target: "/tasks?status=done", code: http.StatusBadRequest},
		{name: "bad room filter", method: http.MethodGet, target: "/tasks?room_id=abc", code: http.StatusBadRequest},
		{name: "invalid id", method: http.MethodGet, target: "/tasks/0", code: http.StatusBadRequest},
		{name: "empty update", method: http.MethodPatch, target: "/tasks/1", body: `{}`, code: http.StatusBadRequest},
		{name: "unknown task", method: http.MethodDelete, target: "/tasks/9", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}
