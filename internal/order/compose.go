package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/florista/ramo-terminal-go/internal/flora"
)

// Composition errors. ErrNoBouquet enforces the submit contract: a
// bouquet style is required, flower lines are optional.
var (
	ErrNoBouquet      = errors.New("no bouquet style selected")
	ErrMissingName    = errors.New("customer name is required")
	ErrMissingPhone   = errors.New("phone number is required")
	ErrMissingDate    = errors.New("delivery date is required")
	ErrInvalidDate    = errors.New("delivery date is not a valid calendar date")
	ErrPastDate       = errors.New("delivery date is in the past")
	ErrUnknownBouquet = errors.New("selected bouquet is not in the catalog")
)

// Contact holds the customer fields entered at submission time.
type Contact struct {
	Name         string
	Phone        string
	DeliveryDate string // 2006-01-02
}

// nowFunc is replaced in tests to pin the past-date check.
var nowFunc = time.Now

// Validate checks the contact fields. The delivery date must be a
// valid calendar date and not before today.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrMissingPhone
	}
	return ValidateDeliveryDate(c.DeliveryDate)
}

// ValidateDeliveryDate checks a 2006-01-02 delivery date on its own,
// so entry forms can validate the field before full composition.
func ValidateDeliveryDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrMissingDate
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return ErrInvalidDate
	}
	// Compare against the local calendar day, not the UTC instant,
	// so same-day delivery stays valid near midnight in other zones
	y, mo, d := nowFunc().Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return ErrPastDate
	}
	return nil
}

// Compose builds the submission payload from the selection and contact
// fields. It never mutates the selection; success or failure handling
// of the submission itself belongs to the caller.
func Compose(sel *Selection, catalog *flora.Catalog, contact Contact) (flora.OrderRequest, error) {
	var req flora.OrderRequest

	if err := contact.Validate(); err != nil {
		return req, err
	}
	if !sel.HasBouquet() {
		return req, ErrNoBouquet
	}
	bouquet := catalog.BouquetByID(sel.BouquetID())
	if bouquet == nil {
		return req, ErrUnknownBouquet
	}

	var flowerLines []flora.OrderLine
	for _, line := range sel.FlowerLines() {
		v := catalog.VarietyByID(line.VarietyID)
		if v == nil {
			continue
		}
		flowerLines = append(flowerLines, flora.OrderLine{
			Quantity:  line.Quantity,
			Name:      v.Name,
			Color:     v.Color,
			UnitPrice: v.Price,
		})
	}

	var foliageLines []flora.OrderLine
	for _, id := range sel.FoliageIDs() {
		f := catalog.FoliageByID(id)
		if f == nil {
			continue
		}
		// Foliage has no color or quantity axis; the sheet wants
		// explicit sentinels instead of empty cells.
		foliageLines = append(foliageLines, flora.OrderLine{
			Quantity:  1,
			Name:      f.Name,
			Color:     flora.NotApplicable,
			UnitPrice: f.Price,
		})
	}

	flowersJSON, err := flora.EncodeOrderLines(flowerLines)
	if err != nil {
		return req, fmt.Errorf("composing flower lines: %w", err)
	}
	foliageJSON, err := flora.EncodeOrderLines(foliageLines)
	if err != nil {
		return req, fmt.Errorf("composing foliage lines: %w", err)
	}

	priced := Price(sel, catalog)

	req = flora.OrderRequest{
		CustomerName: strings.TrimSpace(contact.Name),
		Phone:        strings.TrimSpace(contact.Phone),
		DeliveryDate: strings.TrimSpace(contact.DeliveryDate),
		BouquetName:  bouquet.Name,
		FlowerLines:  flowersJSON,
		FoliageLines: foliageJSON,
		Dedication:   sel.Dedication(),
		SongLink:     sel.SongLink(),
		TotalPrice:   priced.Total,
	}
	return req, nil
}

// BuildSuggestRequest summarizes the selection for the dedication
// generator, mirroring what the composer would submit.
func BuildSuggestRequest(sel *Selection, catalog *flora.Catalog) flora.SuggestRequest {
	req := flora.SuggestRequest{}

	if b := catalog.BouquetByID(sel.BouquetID()); b != nil {
		req.BouquetName = b.Name
	}
	for _, line := range sel.FlowerLines() {
		if v := catalog.VarietyByID(line.VarietyID); v != nil {
			req.Flowers = append(req.Flowers, fmt.Sprintf("%dx %s %s", line.Quantity, v.Name, v.Color))
		}
	}
	for _, id := range sel.FoliageIDs() {
		if f := catalog.FoliageByID(id); f != nil {
			req.Foliage = append(req.Foliage, f.Name)
		}
	}
	return req
}
