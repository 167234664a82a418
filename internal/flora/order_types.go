package flora

import (
	"encoding/json"
	"fmt"
	"time"
)

// NotApplicable is the sentinel the order service stores when a field
// has no value on an axis, e.g. the color of a foliage line.
const NotApplicable = "N/A"

// ============================================
// Submission Types
// ============================================

// OrderRequest is the submission payload. Field names match the
// columns of the spreadsheet behind the order service.
type OrderRequest struct {
	CustomerName string `json:"name_cliente"`
	Phone        string `json:"telefono"`
	DeliveryDate string `json:"fecha_entrega"` // ISO calendar date, 2006-01-02
	BouquetName  string `json:"ramo_seleccionado"`
	FlowerLines  string `json:"flores_seleccionadas"` // embedded JSON, see OrderLine
	FoliageLines string `json:"follaje_seleccionado"` // embedded JSON, see OrderLine
	Dedication   string `json:"dedicatoria"`
	SongLink     string `json:"spotify_link"`
	TotalPrice   Cents  `json:"precio_total"`
}

// OrderLine is one line item as embedded in the submission payload.
// Foliage lines carry Quantity 1 and Color "N/A" since foliage has
// neither axis.
type OrderLine struct {
	Quantity  int    `json:"cantidad"`
	Name      string `json:"numero"`
	Color     string `json:"color"`
	UnitPrice Cents  `json:"precio_unitario"`
}

// EncodeOrderLines serializes line items into the embedded JSON string
// the order service stores in a single sheet cell. An empty slice
// encodes as "[]", never as the N/A sentinel.
func EncodeOrderLines(lines []OrderLine) (string, error) {
	if lines == nil {
		lines = []OrderLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encoding order lines: %w", err)
	}
	return string(data), nil
}

// DecodeOrderLines parses an embedded line-item string back into line
// items. The sentinel "N/A" and the empty string decode as no lines;
// rows written by hand into the sheet sometimes carry them.
func DecodeOrderLines(s string) ([]OrderLine, error) {
	if s == "" || s == NotApplicable || s == "[]" {
		return nil, nil
	}
	var lines []OrderLine
	if err := json.Unmarshal([]byte(s), &lines); err != nil {
		return nil, fmt.Errorf("decoding order lines: %w", err)
	}
	return lines, nil
}

// SubmitResponse is the discriminated result of an order submission.
type SubmitResponse struct {
	Status  string `json:"status"` // "success" or "error"
	Message string `json:"message,omitempty"`
}

// OK reports whether the submission was accepted.
func (r *SubmitResponse) OK() bool {
	return r.Status == "success"
}

// ============================================
// Reporting Types
// ============================================

// OrderRecord is a stored submission as returned by the order service
// for the requests view. Line items come back as the embedded JSON
// strings they were submitted with.
type OrderRecord struct {
	Timestamp    string `json:"timestamp"`
	CustomerName string `json:"name_cliente"`
	Phone        string `json:"telefono"`
	DeliveryDate string `json:"fecha_entrega"`
	BouquetName  string `json:"ramo_seleccionado"`
	FlowerLines  string `json:"flores_seleccionadas"`
	FoliageLines string `json:"follaje_seleccionado"`
	Dedication   string `json:"dedicatoria"`
	SongLink     string `json:"spotify_link"`
	TotalPrice   Cents  `json:"precio_total"`
}

// SubmittedAt parses the record timestamp; the zero time is returned
// for rows without one.
func (r *OrderRecord) SubmittedAt() time.Time {
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ListResponse is the response to the getSolicitudes action.
type ListResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Records []OrderRecord `json:"solicitudes"`
}

// ============================================
// Dedication Suggestion Types
// ============================================

// SuggestRequest asks the service for short dedication texts matching
// the current selection.
type SuggestRequest struct {
	BouquetName string   `json:"ramo"`
	Flowers     []string `json:"flores,omitempty"`  // e.g. "3x Rosa Rojo"
	Foliage     []string `json:"follaje,omitempty"` // display names
}

// SuggestResponse carries the generated dedication suggestions.
type SuggestResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"dedicatorias"`
}

// ============================================
// API Error Types
// ============================================

// APIError is a structured error response from the order service.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	return e.Message
}
