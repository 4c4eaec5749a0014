package recordapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
)

const (
	headerProjectID = "X-Project-Id"
	headerPublicKey = "X-Public-Key"

	OperatorEqualTo = "EqualTo"

	otelAttrTable = "record.table"
)

var errRecordRejected = errors.New("record rejected")

// Record is a row of the hosted table keyed by its remote field names.
type Record map[string]any

type Condition struct {
	FieldName string `json:"FieldName"`
	Operator  string `json:"Operator"`
	Values    []any  `json:"Values"`
}

type field struct {
	Field struct {
		Name string `json:"Name"`
	} `json:"field"`
}

type Query struct {
	Fields []string
	Where  []Condition
}

func (q Query) MarshalJSON() ([]byte, error) {
	fields := make([]field, len(q.Fields))
	for i, name := range q.Fields {
		fields[i].Field.Name = name
	}

	body := struct {
		Fields []field     `json:"fields"`
		Where  []Condition `json:"where,omitempty"`
	}{Fields: fields, Where: q.Where}

	return json.Marshal(body) //nolint:wrapcheck
}

type result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Results []result        `json:"results"`
}

// Client talks to the hosted record API. Every method is one request; retries are
// handled by the transport for idempotent failures only.
type Client interface {
	Fetch(ctx context.Context, table string, query Query) ([]Record, error)
	GetByID(ctx context.Context, table string, id int64, fields []string) (Record, error)
	Create(ctx context.Context, table string, records ...Record) ([]Record, error)
	Update(ctx context.Context, table string, records ...Record) ([]Record, error)
	Delete(ctx context.Context, table string, ids ...int64) error
}

type clientImpl struct {
	http      *resty.Client
	projectID string
	otel      otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	api := cfg.External.RecordAPI

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(api.BaseURL, "/")).
		SetTimeout(time.Duration(api.TimeoutSeconds)*time.Second).
		SetRetryCount(api.RetryCount).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader(constant.RequestHeaderContentType, constant.ContentTypeJSON).
		SetHeader("Accept", constant.ContentTypeJSON).
		SetHeader(headerProjectID, api.ProjectID).
		SetHeader(headerPublicKey, api.PublicKey)

	client.AddRetryCondition(func(resp *resty.Response, err error) bool {
		return err != nil || resp.StatusCode() >= http.StatusInternalServerError
	})

	return &clientImpl{
		http:      client,
		projectID: api.ProjectID,
		otel:      otl,
	}
}

func (c *clientImpl) path(table string, suffix ...string) string {
	return "/" + strings.Join(append([]string{"projects", c.projectID, "tables", table, "records"}, suffix...), "/")
}

func (c *clientImpl) do(ctx context.Context, method, url string, body any) (envelope, error) {
	var out envelope

	req := c.http.R().SetContext(ctx).SetResult(&out).SetError(&out).ForceContentType(constant.ContentTypeJSON)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", url).Msg("record API call failed")

		return out, fmt.Errorf("failed to call record API: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return out, failure.NotFound(fmt.Sprintf("record not found: %s", url))
	}

	if resp.IsError() || !out.Success {
		log.Error().Int("status", resp.StatusCode()).Str("message", out.Message).Str("url", url).Msg("record API returned error")

		return out, fmt.Errorf("record API error: %s (status: %d)", out.Message, resp.StatusCode())
	}

	return out, nil
}

func (c *clientImpl) Fetch(ctx context.Context, table string, query Query) (res []Record, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".recordapi.Fetch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrTable, table)

	out, err := c.do(ctx, http.MethodPost, c.path(table, "fetch"), query)
	if err != nil {
		return nil, err
	}

	res = []Record{}
	if len(out.Data) == 0 || string(out.Data) == "null" {
		return res, nil
	}

	if err = json.Unmarshal(out.Data, &res); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	return res, nil
}

func (c *clientImpl) GetByID(ctx context.Context, table string, id int64, fields []string) (res Record, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".recordapi.GetByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrTable, table)

	out, err := c.do(ctx, http.MethodPost, c.path(table, fmt.Sprint(id)), Query{Fields: fields})
	if err != nil {
		return nil, err
	}

	if len(out.Data) == 0 || string(out.Data) == "null" {
		return nil, failure.NotFound(fmt.Sprintf("%s %d not found", table, id))
	}

	if err = json.Unmarshal(out.Data, &res); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	return res, nil
}

func (c *clientImpl) Create(ctx context.Context, table string, records ...Record) (res []Record, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".recordapi.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrTable, table)

	out, err := c.do(ctx, http.MethodPost, c.path(table), map[string]any{"records": records})
	if err != nil {
		return nil, err
	}

	return collect(out)
}

func (c *clientImpl) Update(ctx context.Context, table string, records ...Record) (res []Record, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".recordapi.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrTable, table)

	out, err := c.do(ctx, http.MethodPut, c.path(table), map[string]any{"records": records})
	if err != nil {
		return nil, err
	}

	return collect(out)
}

func (c *clientImpl) Delete(ctx context.Context, table string, ids ...int64) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".recordapi.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrTable, table)

	out, err := c.do(ctx, http.MethodDelete, c.path(table), map[string]any{"RecordIds": ids})
	if err != nil {
		return err
	}

	_, err = collect(out)

	return err
}

// collect returns the data of every successful per-record result and fails on the first
// rejected one.
func collect(out envelope) ([]Record, error) {
	records := []Record{}

	for _, r := range out.Results {
		if !r.Success {
			return nil, fmt.Errorf("%w: %s", errRecordRejected, r.Message)
		}

		if len(r.Data) == 0 || string(r.Data) == "null" {
			continue
		}

		var record Record
		if err := json.Unmarshal(r.Data, &record); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}

		records = append(records, record)
	}

	return records, nil
}
