package flora

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// OrderClient talks to the action endpoint of the order service. The
// service is a single script URL that dispatches on an "action" field
// in the POST body and always answers with a status-discriminated JSON
// document.
type OrderClient struct {
	client *Client
}

// NewOrderClient creates a client for the order-service actions.
func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

// actionEnvelope wraps a request payload with its action name.
type actionEnvelope struct {
	Action string `json:"action"`
	Order  *OrderRequest   `json:"order,omitempty"`
	Prompt *SuggestRequest `json:"prompt,omitempty"`
}

// ============================================
// Order Operations
// ============================================

// SubmitOrder sends a composed order for persistence. A transport
// failure or an error status both come back as errors; the caller's
// entered contact fields are its own to retain for a retry.
func (o *OrderClient) SubmitOrder(ctx context.Context, order OrderRequest) (*SubmitResponse, error) {
	var resp SubmitResponse
	env := actionEnvelope{Action: "submitOrder", Order: &order}
	if err := o.doAction(ctx, env, &resp); err != nil {
		return nil, fmt.Errorf("submitting order: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("submitting order: %s", orDefault(resp.Message, "rejected by order service"))
	}
	return &resp, nil
}

// ListRequests retrieves previously submitted orders for the requests
// view.
func (o *OrderClient) ListRequests(ctx context.Context) ([]OrderRecord, error) {
	var resp ListResponse
	env := actionEnvelope{Action: "getSolicitudes"}
	if err := o.doAction(ctx, env, &resp); err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("listing requests: %s", orDefault(resp.Message, "rejected by order service"))
	}
	return resp.Records, nil
}

// ============================================
// Dedication Suggestions
// ============================================

// SuggestDedications asks for short dedication texts matching the
// selection summary. Errors here are expected to degrade gracefully in
// the UI; manual entry never depends on this call.
func (o *OrderClient) SuggestDedications(ctx context.Context, req SuggestRequest) ([]string, error) {
	var resp SuggestResponse
	env := actionEnvelope{Action: "suggestDedications", Prompt: &req}
	if err := o.doAction(ctx, env, &resp); err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("generating suggestions: %s", orDefault(resp.Message, "no suggestions available"))
	}
	// The service occasionally returns more than asked for; cap at 3.
	if len(resp.Suggestions) > 3 {
		resp.Suggestions = resp.Suggestions[:3]
	}
	return resp.Suggestions, nil
}

// ============================================
// Internal HTTP Methods
// ============================================

// doAction performs a POST against the script endpoint. The body is
// sent as text/plain, which is what keeps the Apps-Script-style
// backend from preflighting the request.
func (o *OrderClient) doAction(ctx context.Context, body interface{}, result interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	reqURL := o.client.baseURL + "/api/exec"
	query := url.Values{}
	if o.client.apiToken != "" {
		query.Set("token", o.client.apiToken)
	}
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "text/plain;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr APIError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Code != "" {
			apiErr.Status = resp.StatusCode
			return apiErr
		}
		return fmt.Errorf("order service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
