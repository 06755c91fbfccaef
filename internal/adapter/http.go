package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/utils"
	"github.com/MKhiriev/go-diary/models"
)

const (
	queryPath  = "/api/records/query"
	modifyPath = "/api/records/modify"
)

type httpRemoteService struct {
	client *utils.HTTPClient
	token  string
	logger *logger.Logger
}

// NewHTTPRemoteService constructs the HTTP/JSON implementation of
// [RemoteService]. It normalises the base URL from adapterCfg.HTTPAddress and
// attaches appCfg.Token as a bearer token to every request.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteService(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteService, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpRemoteService{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		token:  strings.TrimSpace(appCfg.Token),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Query implements [RemoteService]. It POSTs q to POST /api/records/query.
func (h *httpRemoteService) Query(ctx context.Context, q models.Query) (models.QueryPage, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(q).
		Post(queryPath)
	if err != nil {
		return models.QueryPage{}, fmt.Errorf("query request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.QueryPage{}, err
	}

	var page models.QueryPage
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return models.QueryPage{}, fmt.Errorf("decode query response: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "httpRemoteService.Query").
		Str("record_type", q.RecordType).
		Int("records", len(page.Records)).
		Bool("has_more", page.HasMore()).
		Msg("query page received")

	return page, nil
}

// Modify implements [RemoteService]. It POSTs req to POST /api/records/modify.
func (h *httpRemoteService) Modify(ctx context.Context, req models.ModifyRequest) (models.ModifyResult, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(modifyPath)
	if err != nil {
		return models.ModifyResult{}, fmt.Errorf("modify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ModifyResult{}, err
	}

	var result models.ModifyResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.ModifyResult{}, fmt.Errorf("decode modify response: %w", err)
	}
	return result, nil
}

func (h *httpRemoteService) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}
