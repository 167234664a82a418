package order

import "github.com/florista/ramo-terminal-go/internal/flora"

// Accordion manages the per-species flower pickers: which single group
// is expanded and, within each group, which color variant the quantity
// stepper targets.
type Accordion struct {
	sel    *Selection
	groups []flora.SpeciesGroup
	active map[string]string // species name -> active variety ID
	open   string            // species name of the expanded group, "" if none
}

// NewAccordion creates an accordion over the catalog's species groups.
func NewAccordion(sel *Selection, groups []flora.SpeciesGroup) *Accordion {
	return &Accordion{
		sel:    sel,
		groups: groups,
		active: make(map[string]string),
	}
}

// Groups returns the species groups in catalog order.
func (a *Accordion) Groups() []flora.SpeciesGroup {
	return a.groups
}

// Open returns the name of the expanded group, "" if none.
func (a *Accordion) Open() string {
	return a.open
}

// IsOpen reports whether the named group is expanded.
func (a *Accordion) IsOpen(name string) bool {
	return a.open == name
}

// Toggle expands the named group, collapsing whichever group was open;
// toggling the open group collapses it so that no group is expanded.
// The group's active variety is recomputed only here, on the
// collapsed-to-expanded transition: the first variety in catalog order
// with a positive quantity, else the group's first variety. Recomputing
// anywhere else would snap the user's color focus back mid-interaction.
func (a *Accordion) Toggle(name string) {
	if a.open == name {
		a.open = ""
		return
	}

	group := a.group(name)
	if group == nil {
		return
	}

	a.open = name
	a.active[name] = a.initialActive(group)
}

// SetActive changes the stepper target within a group. Pure focus
// change; quantities are untouched.
func (a *Accordion) SetActive(name, varietyID string) {
	group := a.group(name)
	if group == nil {
		return
	}
	for _, v := range group.Varieties {
		if v.ID == varietyID {
			a.active[name] = varietyID
			return
		}
	}
}

// ActiveVariety returns the variety the stepper targets for a group.
// Groups that were never expanded default to their first variety.
func (a *Accordion) ActiveVariety(name string) string {
	if id, ok := a.active[name]; ok {
		return id
	}
	if group := a.group(name); group != nil && len(group.Varieties) > 0 {
		return group.Varieties[0].ID
	}
	return ""
}

// Increment raises the open group's active variety quantity by one.
func (a *Accordion) Increment() {
	id := a.openActive()
	if id == "" {
		return
	}
	a.sel.SetFlowerQuantity(id, a.sel.FlowerQuantity(id)+1)
}

// Decrement lowers the open group's active variety quantity by one.
// At zero it is a no-op, not an error.
func (a *Accordion) Decrement() {
	id := a.openActive()
	if id == "" {
		return
	}
	qty := a.sel.FlowerQuantity(id)
	if qty == 0 {
		return
	}
	a.sel.SetFlowerQuantity(id, qty-1)
}

func (a *Accordion) openActive() string {
	if a.open == "" {
		return ""
	}
	return a.ActiveVariety(a.open)
}

func (a *Accordion) group(name string) *flora.SpeciesGroup {
	for i := range a.groups {
		if a.groups[i].Name == name {
			return &a.groups[i]
		}
	}
	return nil
}

func (a *Accordion) initialActive(group *flora.SpeciesGroup) string {
	for _, v := range group.Varieties {
		if a.sel.FlowerQuantity(v.ID) > 0 {
			return v.ID
		}
	}
	if len(group.Varieties) > 0 {
		return group.Varieties[0].ID
	}
	return ""
}
