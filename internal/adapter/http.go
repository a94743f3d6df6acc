package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/utils"
	"github.com/MKhiriev/go-seed-api/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises the base URL from cfg.HTTPAddress and applies
// cfg.RequestTimeout to every request.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg *config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
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

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login posts the OAuth2 password form to POST /auth/token and stores the
// returned access token.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.TokenResponse, error) {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetResult(&token).
		Post("/auth/token")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}

	h.SetToken(token.AccessToken)
	h.logger.Debug().Str("func", "*httpServerAdapter.Login").Msg("token stored")
	return token, nil
}

func (h *httpServerAdapter) CreateUser(ctx context.Context, registration models.UserRegistration) (models.UserPublic, error) {
	var user models.UserPublic
	err := h.do(h.jsonRequest(ctx, registration).SetResult(&user), resty.MethodPost, "/users", "create user")
	return user, err
}

func (h *httpServerAdapter) GetUser(ctx context.Context, id string) (models.UserPublic, error) {
	var user models.UserPublic
	err := h.do(h.request(ctx).SetPathParam("id", id).SetResult(&user), resty.MethodGet, "/users/{id}", "get user")
	return user, err
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.UserPublic, error) {
	var users []models.UserPublic
	err := h.do(h.request(ctx).SetResult(&users), resty.MethodGet, "/users", "list users")
	return users, err
}

func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.UserPublic, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserPublic{}, err
	}

	var user models.UserPublic
	err = h.do(req.SetResult(&user), resty.MethodGet, "/users/me", "current user")
	return user, err
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.UserPublic, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.UserPublic{}, err
	}

	var user models.UserPublic
	err = h.do(
		req.SetHeader("Content-Type", "application/json").SetBody(patch).SetPathParam("id", id).SetResult(&user),
		resty.MethodPut, "/users/{id}", "update user",
	)
	return user, err
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, id string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	return h.do(req.SetPathParam("id", id), resty.MethodDelete, "/users/{id}", "delete user")
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	var created models.Item
	err := h.do(h.jsonRequest(ctx, item).SetResult(&created), resty.MethodPost, "/item", "create item")
	return created, err
}

func (h *httpServerAdapter) GetItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	err := h.do(h.request(ctx).SetPathParam("id", id).SetResult(&item), resty.MethodGet, "/item/{id}", "get item")
	return item, err
}

func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := h.do(h.request(ctx).SetResult(&items), resty.MethodGet, "/item", "list items")
	return items, err
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	var item models.Item
	err := h.do(h.jsonRequest(ctx, patch).SetPathParam("id", id).SetResult(&item), resty.MethodPut, "/item/{id}", "update item")
	return item, err
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, id string) error {
	return h.do(h.request(ctx).SetPathParam("id", id), resty.MethodDelete, "/item/{id}", "delete item")
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).SetHeader("Accept", "text/plain").Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func (h *httpServerAdapter) jsonRequest(ctx context.Context, body any) *resty.Request {
	return h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.request(ctx).SetAuthToken(token), nil
}

// do executes req and maps non-2xx responses. op names the call in errors.
func (h *httpServerAdapter) do(req *resty.Request, method, path, op string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}

	return mapHTTPError(resp)
}
