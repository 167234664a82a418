// Package order implements the configurator core: the in-progress
// selection, the per-species accordion controller, the pricing engine
// and the submission composer.
package order

import (
	"errors"

	"github.com/florista/ramo-terminal-go/internal/flora"
)

// ErrFoliageCapReached is returned when a foliage toggle would exceed
// the configured cap. The selection is left unchanged; callers surface
// it as a transient notice, not a fatal error.
var ErrFoliageCapReached = errors.New("foliage cap reached")

// DefaultFoliageCap is the default maximum number of foliage add-ons.
const DefaultFoliageCap = 2

// FlowerLine is one selected flower variety with its quantity.
// Quantity is always >= 1; removed lines are absent, never zero.
type FlowerLine struct {
	VarietyID string
	Quantity  int
}

// Selection holds the user's in-progress order for one configurator
// session. It stores catalog references (IDs), not copies; prices are
// resolved against the catalog at pricing and composition time. All
// mutation goes through its methods.
type Selection struct {
	bouquetID  string
	quantities map[string]int
	flowerIDs  []string // insertion order of flower lines
	foliageIDs []string // toggle order
	foliageCap int
	dedication string
	songLink   string

	// revision increments on every effective mutation; derived values
	// computed at an older revision are stale.
	revision int
}

// NewSelection creates an empty selection. A cap <= 0 disables the
// foliage limit.
func NewSelection(foliageCap int) *Selection {
	return &Selection{
		quantities: make(map[string]int),
		foliageCap: foliageCap,
	}
}

// ============================================
// Mutators
// ============================================

// SelectBouquet sets the bouquet style, replacing any previous choice.
func (s *Selection) SelectBouquet(id string) {
	if s.bouquetID == id {
		return
	}
	s.bouquetID = id
	s.revision++
}

// SetFlowerQuantity inserts or overwrites the line for a variety. A
// quantity <= 0 removes the line entirely; removing an absent line is
// a no-op.
func (s *Selection) SetFlowerQuantity(varietyID string, qty int) {
	if qty <= 0 {
		if _, ok := s.quantities[varietyID]; !ok {
			return
		}
		delete(s.quantities, varietyID)
		for i, id := range s.flowerIDs {
			if id == varietyID {
				s.flowerIDs = append(s.flowerIDs[:i], s.flowerIDs[i+1:]...)
				break
			}
		}
		s.revision++
		return
	}

	if _, ok := s.quantities[varietyID]; !ok {
		s.flowerIDs = append(s.flowerIDs, varietyID)
	}
	s.quantities[varietyID] = qty
	s.revision++
}

// ToggleFoliage adds or removes a foliage item. Adding past the cap
// returns ErrFoliageCapReached and leaves the selection unchanged.
func (s *Selection) ToggleFoliage(id string) error {
	for i, existing := range s.foliageIDs {
		if existing == id {
			s.foliageIDs = append(s.foliageIDs[:i], s.foliageIDs[i+1:]...)
			s.revision++
			return nil
		}
	}

	if s.foliageCap > 0 && len(s.foliageIDs) >= s.foliageCap {
		return ErrFoliageCapReached
	}
	s.foliageIDs = append(s.foliageIDs, id)
	s.revision++
	return nil
}

// SetDedication replaces the dedication text. Free text, may be empty.
func (s *Selection) SetDedication(text string) {
	if s.dedication == text {
		return
	}
	s.dedication = text
	s.revision++
}

// SetSongLink replaces the dedicated song reference.
func (s *Selection) SetSongLink(link string) {
	if s.songLink == link {
		return
	}
	s.songLink = link
	s.revision++
}

// Reset returns the selection to its empty session-start state.
func (s *Selection) Reset() {
	s.bouquetID = ""
	s.quantities = make(map[string]int)
	s.flowerIDs = nil
	s.foliageIDs = nil
	s.dedication = ""
	s.songLink = ""
	s.revision++
}

// ============================================
// Queries
// ============================================

// BouquetID returns the selected bouquet style ID, or "".
func (s *Selection) BouquetID() string {
	return s.bouquetID
}

// HasBouquet reports whether a bouquet style is selected.
func (s *Selection) HasBouquet() bool {
	return s.bouquetID != ""
}

// FlowerQuantity returns the quantity for a variety, 0 if absent.
func (s *Selection) FlowerQuantity(varietyID string) int {
	return s.quantities[varietyID]
}

// HasFlowerLine reports whether a line exists for the variety.
func (s *Selection) HasFlowerLine(varietyID string) bool {
	_, ok := s.quantities[varietyID]
	return ok
}

// FlowerLines returns the selected flower lines in insertion order.
func (s *Selection) FlowerLines() []FlowerLine {
	lines := make([]FlowerLine, 0, len(s.flowerIDs))
	for _, id := range s.flowerIDs {
		lines = append(lines, FlowerLine{VarietyID: id, Quantity: s.quantities[id]})
	}
	return lines
}

// FoliageIDs returns the selected foliage items in toggle order.
func (s *Selection) FoliageIDs() []string {
	out := make([]string, len(s.foliageIDs))
	copy(out, s.foliageIDs)
	return out
}

// HasFoliage reports whether the foliage item is selected.
func (s *Selection) HasFoliage(id string) bool {
	for _, existing := range s.foliageIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// FoliageCap returns the configured cap, 0 meaning unlimited.
func (s *Selection) FoliageCap() int {
	if s.foliageCap < 0 {
		return 0
	}
	return s.foliageCap
}

// Dedication returns the dedication text.
func (s *Selection) Dedication() string {
	return s.dedication
}

// SongLink returns the dedicated song reference.
func (s *Selection) SongLink() string {
	return s.songLink
}

// FlowerCount returns the total stem count across all flower lines.
func (s *Selection) FlowerCount() int {
	count := 0
	for _, q := range s.quantities {
		count += q
	}
	return count
}

// GroupQuantity returns the stem count for one species group; this is
// the accordion badge value, always derived, never stored.
func (s *Selection) GroupQuantity(group flora.SpeciesGroup) int {
	count := 0
	for _, v := range group.Varieties {
		count += s.quantities[v.ID]
	}
	return count
}

// ItemCount returns flowers + foliage + bouquet, the value shown in
// the header badge.
func (s *Selection) ItemCount() int {
	count := s.FlowerCount() + len(s.foliageIDs)
	if s.HasBouquet() {
		count++
	}
	return count
}

// Revision returns the mutation counter. Ineffective operations (a
// rejected foliage add, removing an absent line) do not advance it.
func (s *Selection) Revision() int {
	return s.revision
}
