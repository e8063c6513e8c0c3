package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AkshayGangurde12/farm-management-system/internal/middleware"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"
)

const apiPrefix = "/api/v1"

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the marketplace JSON API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(server, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(server, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Products(ctx context.Context, mine bool) ([]models.Product, error) {
	path := "/products"
	if mine {
		path = "/products/mine"
	}
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Farmers(ctx context.Context) ([]models.FarmerRecord, error) {
	var farmers []models.FarmerRecord
	if err := c.do(ctx, http.MethodGet, "/farmers", nil, &farmers); err != nil {
		return nil, err
	}
	return farmers, nil
}

func (c *Client) DeleteFarmer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/farmers/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) FarmingTypes(ctx context.Context) ([]models.FarmingType, error) {
	var types []models.FarmingType
	if err := c.do(ctx, http.MethodGet, "/farming-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *Client) AddFarmingType(ctx context.Context, name string) (*models.FarmingType, error) {
	var ft models.FarmingType
	if err := c.do(ctx, http.MethodPost, "/farming-types", models.FarmingTypeRequest{Name: name}, &ft); err != nil {
		return nil, err
	}
	return &ft, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp middleware.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil {
			apiErr.Code = errResp.Error
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
