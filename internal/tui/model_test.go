package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/florista/ramo-terminal-go/internal/cache"
	"github.com/florista/ramo-terminal-go/internal/flora"
)

func testCatalog() *flora.Catalog {
	return &flora.Catalog{
		Bouquets: []flora.BouquetStyle{
			{ID: "simple", Name: "Ramo Simple", Price: 500, Description: "<p>Envoltura kraft</p>"},
			{ID: "coreano", Name: "Estilo Coreano", Price: 1500},
		},
		Flowers: []flora.FlowerVariety{
			{ID: "rosa-roja", Name: "Rosa", Color: "Rojo", Price: 250, HexColor: "#C0392B"},
			{ID: "rosa-blanca", Name: "Rosa", Color: "Blanco", Price: 225, HexColor: "#FFFFFF"},
			{ID: "tulipan-rojo", Name: "Tulipán", Color: "Rojo", Price: 300, HexColor: "#E74C3C"},
		},
		Foliage: []flora.FoliageItem{
			{ID: "gipsofilia", Name: "Gipsofilia", Price: 300},
			{ID: "eucalipto", Name: "Eucalipto Chino", Price: 350},
			{ID: "limonillo", Name: "Limonillo", Price: 250},
		},
	}
}

// setupTestModel creates a model against a mock order service.
func setupTestModel(t *testing.T) (Model, *httptest.Server) {
	t.Helper()
	catalog := testCatalog()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/catalog":
			json.NewEncoder(w).Encode(catalog)
		case "/api/exec":
			json.NewEncoder(w).Encode(flora.SubmitResponse{Status: "success"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client := flora.NewClient(server.URL)
	catalogCache := cache.New[string, *flora.Catalog](time.Minute)

	return NewModel(client, catalogCache, 2), server
}

// loadedModel returns a model with the catalog applied and a window size.
func loadedModel(t *testing.T) Model {
	t.Helper()
	m, _ := setupTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	updated, _ = m.Update(catalogLoadedMsg{gen: 0, catalog: testCatalog()})
	return updated.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	m, _ := setupTestModel(t)

	if m.GetViewState() != ViewBouquetList {
		t.Errorf("expected initial view BouquetList, got %v", m.GetViewState())
	}
	if m.Selection().HasBouquet() {
		t.Error("expected empty selection initially")
	}
	if !m.loadingCatalog {
		t.Error("expected model to start loading the catalog")
	}
}

func TestCatalogLoadedBuildsGroups(t *testing.T) {
	m := loadedModel(t)

	if m.loadingCatalog {
		t.Error("expected loading flag cleared")
	}
	if len(m.groups) != 2 {
		t.Fatalf("expected 2 species groups, got %d", len(m.groups))
	}
	if m.groups[0].Name != "Rosa" || m.groups[1].Name != "Tulipán" {
		t.Errorf("unexpected group order: %s, %s", m.groups[0].Name, m.groups[1].Name)
	}
	if len(m.bouquetList.Items()) != 2 {
		t.Errorf("expected 2 bouquet list items, got %d", len(m.bouquetList.Items()))
	}
}

func TestStaleCatalogDiscarded(t *testing.T) {
	m, _ := setupTestModel(t)
	m.generation = 1

	updated, _ := m.Update(catalogLoadedMsg{gen: 0, catalog: testCatalog()})
	m = updated.(Model)

	if m.catalog != nil {
		t.Error("expected result from an old generation to be dropped")
	}
}

func TestBouquetSelectionAdvances(t *testing.T) {
	m := loadedModel(t)

	m.bouquetList.Select(0)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.GetViewState() != ViewFlowers {
		t.Errorf("expected Flowers view after selecting a bouquet, got %v", m.GetViewState())
	}
	if m.Selection().BouquetID() != "simple" {
		t.Errorf("expected simple bouquet selected, got %q", m.Selection().BouquetID())
	}
}

func TestFlowerKeysDriveAccordion(t *testing.T) {
	m := loadedModel(t)
	m.viewState = ViewFlowers

	// Open the first species group
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.acc.IsOpen("Rosa") {
		t.Fatal("expected Rosa expanded")
	}

	// Add two of the active variety
	updated, _ = m.Update(keyRune('+'))
	m = updated.(Model)
	updated, _ = m.Update(keyRune('+'))
	m = updated.(Model)
	if got := m.Selection().FlowerQuantity("rosa-roja"); got != 2 {
		t.Errorf("expected rosa-roja quantity 2, got %d", got)
	}

	// Cycle to the white variety and add one
	updated, _ = m.Update(keyRune('l'))
	m = updated.(Model)
	updated, _ = m.Update(keyRune('+'))
	m = updated.(Model)
	if got := m.Selection().FlowerQuantity("rosa-blanca"); got != 1 {
		t.Errorf("expected rosa-blanca quantity 1, got %d", got)
	}

	// Opening another group collapses the first
	updated, _ = m.Update(keyRune('j'))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.acc.IsOpen("Rosa") {
		t.Error("expected Rosa collapsed after opening Tulipán")
	}
	if !m.acc.IsOpen("Tulipán") {
		t.Error("expected Tulipán expanded")
	}
}

func TestFoliageCapShowsNotice(t *testing.T) {
	m := loadedModel(t)
	m.viewState = ViewFoliage

	toggle := func() {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(Model)
	}
	down := func() {
		updated, _ := m.Update(keyRune('j'))
		m = updated.(Model)
	}

	toggle()
	down()
	toggle()
	if m.notice != "" {
		t.Errorf("unexpected notice before cap: %q", m.notice)
	}

	down()
	toggle()
	if m.notice == "" {
		t.Error("expected cap notice after third foliage")
	}
	if got := len(m.Selection().FoliageIDs()); got != 2 {
		t.Errorf("expected 2 foliage selected, got %d", got)
	}

	// Removing one succeeds and clears the notice
	updated, _ := m.Update(keyRune('k'))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.notice != "" {
		t.Errorf("expected notice cleared after successful toggle, got %q", m.notice)
	}
}

func TestSuggestionPickerApplies(t *testing.T) {
	m := loadedModel(t)
	m.viewState = ViewDedication

	updated, _ := m.Update(suggestionsMsg{gen: 0, suggestions: []string{"primera", "segunda"}})
	m = updated.(Model)
	if len(m.suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(m.suggestions))
	}

	updated, _ = m.Update(keyRune('j'))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.dedication.Value() != "segunda" {
		t.Errorf("expected picked suggestion in textarea, got %q", m.dedication.Value())
	}
	if m.suggestions != nil {
		t.Error("expected picker dismissed after applying")
	}
}

func TestStaleSuggestionsDiscarded(t *testing.T) {
	m := loadedModel(t)
	m.viewState = ViewDedication
	m.generation = 3

	updated, _ := m.Update(suggestionsMsg{gen: 2, suggestions: []string{"vieja"}})
	m = updated.(Model)

	if m.suggestions != nil {
		t.Error("expected stale suggestions dropped")
	}
}

func TestOrderSubmittedAndReset(t *testing.T) {
	m := loadedModel(t)
	m.Selection().SelectBouquet("simple")
	m.Selection().SetFlowerQuantity("rosa-roja", 3)
	m.viewState = ViewSummary
	gen := m.generation

	req := flora.OrderRequest{BouquetName: "Ramo Simple", TotalPrice: 1250, DeliveryDate: "2026-09-01"}
	updated, _ := m.Update(orderSubmittedMsg{gen: gen, order: req})
	m = updated.(Model)

	if m.GetViewState() != ViewConfirmation {
		t.Fatalf("expected Confirmation view, got %v", m.GetViewState())
	}
	if m.submitted == nil || m.submitted.TotalPrice != 1250 {
		t.Errorf("expected submitted order retained, got %+v", m.submitted)
	}

	// Enter starts a fresh order
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.GetViewState() != ViewBouquetList {
		t.Errorf("expected BouquetList after reset, got %v", m.GetViewState())
	}
	if m.Selection().HasBouquet() || len(m.Selection().FlowerLines()) != 0 {
		t.Error("expected selection cleared after reset")
	}
	if m.generation != gen+1 {
		t.Errorf("expected generation bump on reset, got %d", m.generation)
	}
}

func TestSubmitErrorKeepsSummary(t *testing.T) {
	m := loadedModel(t)
	m.viewState = ViewSummary
	m.submitting = true

	updated, _ := m.Update(errMsg{gen: 0, err: flora.APIError{Code: "storage", Message: "fila no escrita"}})
	m = updated.(Model)

	if m.GetViewState() != ViewSummary {
		t.Errorf("expected to stay on Summary after submit error, got %v", m.GetViewState())
	}
	if m.submitting {
		t.Error("expected submitting flag cleared")
	}
	if m.err == nil {
		t.Error("expected error retained for display")
	}
}

func TestBouquetItemInterface(t *testing.T) {
	item := bouquetItem{bouquet: flora.BouquetStyle{
		Name:        "Ramo Simple",
		Price:       1500,
		Description: "<p>Envoltura kraft</p><p>Segunda línea</p>",
	}}

	if item.Title() != "Ramo Simple" {
		t.Errorf("unexpected title %q", item.Title())
	}
	if item.FilterValue() != "Ramo Simple" {
		t.Errorf("unexpected filter value %q", item.FilterValue())
	}
	desc := item.Description()
	if desc != "S/15.00 • Envoltura kraft" {
		t.Errorf("unexpected description %q", desc)
	}
}

func TestViewRendering(t *testing.T) {
	m := loadedModel(t)

	states := []ViewState{
		ViewBouquetList, ViewFlowers, ViewFoliage,
		ViewDedication, ViewSong, ViewConfirmation, ViewRequests,
	}
	for _, state := range states {
		m.viewState = state
		if m.View() == "" {
			t.Errorf("expected non-empty view output for state %v", state)
		}
	}
}

func TestFlowersViewShowsSwatches(t *testing.T) {
	m := loadedModel(t)
	m.viewState = ViewFlowers

	// Open the Rosa group so the variety row renders
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "●") {
		t.Error("expected color swatches in the expanded group")
	}
	if !strings.Contains(view, "Rojo") || !strings.Contains(view, "Blanco") {
		t.Errorf("expected variety colors listed, got:\n%s", view)
	}
}

func TestSummaryViewShowsPricedLines(t *testing.T) {
	m := loadedModel(t)
	m.Selection().SelectBouquet("simple")
	m.Selection().SetFlowerQuantity("rosa-roja", 2)
	m.viewState = ViewSummary

	view := m.View()
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	// 5.00 + 2 x 2.50 = 10.00
	if want := "S/10.00"; !strings.Contains(view, want) {
		t.Errorf("expected summary to show total %s", want)
	}
}
