package duffel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/JuniaFaith/duffel-backend/pkg/logger"
)

const DefaultCabinClass = "economy"

// Client talks to the Duffel air API. All operations share the same
// authentication (static bearer key) and API-version header.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiVersion string
	logger     logger.Client
}

func NewClient(httpClient *http.Client, baseURL, apiKey, apiVersion string, logger logger.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiVersion: apiVersion,
		logger:     logger,
	}
}

// CreateOfferRequest issues one search for a single origin/destination/date
// triple. When the provider inlines offers in the create response the
// returned OfferRequest carries them; otherwise Offers is nil and the
// caller follows up with ListOffers using the returned id.
func (c *Client) CreateOfferRequest(ctx context.Context, q OfferQuery) (*OfferRequest, error) {
	cabinClass := q.CabinClass
	if cabinClass == "" {
		cabinClass = DefaultCabinClass
	}

	body := map[string]any{
		"data": map[string]any{
			"slices": []map[string]string{
				{
					"origin":         q.Origin,
					"destination":    q.Destination,
					"departure_date": q.DepartureDate,
				},
			},
			"passengers":  []map[string]string{{"type": "adult"}},
			"cabin_class": cabinClass,
		},
	}

	var offerReq OfferRequest
	if err := c.do(ctx, http.MethodPost, "/air/offer_requests?return_offers=true", body, &offerReq, nil); err != nil {
		return nil, err
	}

	return &offerReq, nil
}

// ListOffers fetches the offers derived from a previously created offer
// request, cheapest first. No offers for the route/date is an empty
// slice, not an error.
func (c *Client) ListOffers(ctx context.Context, offerRequestID string) ([]Offer, error) {
	path := "/air/offers?offer_request_id=" + url.QueryEscape(offerRequestID) + "&sort=total_amount"

	offers := []Offer{}
	if err := c.do(ctx, http.MethodGet, path, nil, &offers, nil); err != nil {
		return nil, err
	}

	return offers, nil
}

// GetOffer fetches a single previously created offer, used to recover
// provider-assigned passenger ids.
func (c *Client) GetOffer(ctx context.Context, offerID string) (*Offer, error) {
	var offer Offer
	if err := c.do(ctx, http.MethodGet, "/air/offers/"+url.PathEscape(offerID), nil, &offer, nil); err != nil {
		return nil, err
	}

	return &offer, nil
}

// CreateOrder books the selected offer. When params.Payment is nil the
// request body omits the payments block entirely, which is the
// provider's contract for a reservation without charging.
func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (*Order, error) {
	data := map[string]any{
		"selected_offers": []string{params.OfferID},
		"passengers":      params.Passengers,
	}
	if params.Payment != nil {
		data["payments"] = []Payment{*params.Payment}
	}

	// Order creation is not safely repeatable upstream.
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/air/orders", map[string]any{"data": data}, &order, headers); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, headers map[string]string) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("duffel: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("duffel: failed to build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Duffel-Version", c.apiVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("duffel: api call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("duffel: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		c.logger.Warn("duffel api returned non-success status",
			logger.Field{Key: "method", Value: method},
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "status", Value: resp.StatusCode},
			logger.Field{Key: "request_id", Value: apiErr.RequestID},
		)
		return apiErr
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("duffel: failed to decode response envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("duffel: failed to decode response data: %w", err)
	}

	return nil
}
