// Package flora provides the client and wire types for the bouquet
// order service.
package flora

// BouquetStyle represents a base arrangement template. Exactly one
// style is chosen per order.
type BouquetStyle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Cents  `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// FlowerVariety represents one color variant of a flower species.
// Varieties sharing a Name form a species group.
type FlowerVariety struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Color           string `json:"color"`
	Price           Cents  `json:"price"`
	Image           string `json:"image"`
	HexColor        string `json:"hex_color"`
	BackgroundImage string `json:"background_image,omitempty"`
}

// FoliageItem represents a greenery add-on. Foliage has no color or
// quantity axis; it is selected as a discrete toggle.
type FoliageItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price Cents  `json:"price"`
	Image string `json:"image"`
}

// Catalog holds the reference data fetched from the order service.
type Catalog struct {
	Bouquets []BouquetStyle  `json:"bouquets"`
	Flowers  []FlowerVariety `json:"flowers"`
	Foliage  []FoliageItem   `json:"foliage"`
}

// SpeciesGroup is a species name with its varieties in catalog order.
type SpeciesGroup struct {
	Name      string
	Varieties []FlowerVariety
}

// SpeciesGroups groups flower varieties by species name. Species keep
// their first-appearance order and varieties keep catalog order, so
// the grouping is deterministic across calls.
func (c *Catalog) SpeciesGroups() []SpeciesGroup {
	index := make(map[string]int)
	var groups []SpeciesGroup

	for _, v := range c.Flowers {
		i, ok := index[v.Name]
		if !ok {
			i = len(groups)
			index[v.Name] = i
			groups = append(groups, SpeciesGroup{Name: v.Name})
		}
		groups[i].Varieties = append(groups[i].Varieties, v)
	}
	return groups
}

// BouquetByID returns the bouquet style with the given ID, or nil.
func (c *Catalog) BouquetByID(id string) *BouquetStyle {
	for i := range c.Bouquets {
		if c.Bouquets[i].ID == id {
			return &c.Bouquets[i]
		}
	}
	return nil
}

// VarietyByID returns the flower variety with the given ID, or nil.
func (c *Catalog) VarietyByID(id string) *FlowerVariety {
	for i := range c.Flowers {
		if c.Flowers[i].ID == id {
			return &c.Flowers[i]
		}
	}
	return nil
}

// FoliageByID returns the foliage item with the given ID, or nil.
func (c *Catalog) FoliageByID(id string) *FoliageItem {
	for i := range c.Foliage {
		if c.Foliage[i].ID == id {
			return &c.Foliage[i]
		}
	}
	return nil
}

// IsEmpty reports whether the catalog carries no usable data. A
// response with no bouquets and no flowers is treated as malformed by
// callers.
func (c *Catalog) IsEmpty() bool {
	return len(c.Bouquets) == 0 && len(c.Flowers) == 0 && len(c.Foliage) == 0
}
