package order

import "github.com/florista/ramo-terminal-go/internal/flora"

// LineKind distinguishes the three sources of a priced line.
type LineKind int

const (
	LineBouquet LineKind = iota
	LineFlower
	LineFoliage
)

// PricedLine is one itemized entry of a priced order.
type PricedLine struct {
	Kind      LineKind
	Label     string
	Color     string // "" for bouquet and foliage lines
	Quantity  int
	UnitPrice flora.Cents
	Total     flora.Cents
}

// PricedOrder is the derived total with its itemized lines. It is
// always recomputed from the selection; nothing here is cached.
type PricedOrder struct {
	Lines []PricedLine
	Total flora.Cents
}

// Price computes the order total: bouquet price (0 if none) plus
// variety price times quantity over the flower lines plus the foliage
// prices. Pure function of selection and catalog; line order is
// deterministic (bouquet, flowers in insertion order, foliage in
// toggle order). Selections referencing IDs absent from the catalog
// contribute nothing; catalog integrity is not this layer's concern.
func Price(sel *Selection, catalog *flora.Catalog) PricedOrder {
	var order PricedOrder

	if sel.HasBouquet() {
		if b := catalog.BouquetByID(sel.BouquetID()); b != nil {
			order.Lines = append(order.Lines, PricedLine{
				Kind:      LineBouquet,
				Label:     b.Name,
				Quantity:  1,
				UnitPrice: b.Price,
				Total:     b.Price,
			})
			order.Total += b.Price
		}
	}

	for _, line := range sel.FlowerLines() {
		v := catalog.VarietyByID(line.VarietyID)
		if v == nil {
			continue
		}
		lineTotal := v.Price * flora.Cents(line.Quantity)
		order.Lines = append(order.Lines, PricedLine{
			Kind:      LineFlower,
			Label:     v.Name,
			Color:     v.Color,
			Quantity:  line.Quantity,
			UnitPrice: v.Price,
			Total:     lineTotal,
		})
		order.Total += lineTotal
	}

	for _, id := range sel.FoliageIDs() {
		f := catalog.FoliageByID(id)
		if f == nil {
			continue
		}
		order.Lines = append(order.Lines, PricedLine{
			Kind:      LineFoliage,
			Label:     f.Name,
			Quantity:  1,
			UnitPrice: f.Price,
			Total:     f.Price,
		})
		order.Total += f.Price
	}

	return order
}
