package flora

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testCatalog() Catalog {
	return Catalog{
		Bouquets: []BouquetStyle{
			{ID: "simple", Name: "Ramo Simple", Price: 500},
			{ID: "box", Name: "Flower Box", Price: 2000},
		},
		Flowers: []FlowerVariety{
			{ID: "rosa-roja", Name: "Rosa", Color: "Rojo", Price: 250, HexColor: "#C0392B"},
			{ID: "rosa-blanca", Name: "Rosa", Color: "Blanco", Price: 225, HexColor: "#FFFFFF"},
			{ID: "tulipan-rojo", Name: "Tulipán", Color: "Rojo", Price: 300, HexColor: "#E74C3C"},
		},
		Foliage: []FoliageItem{
			{ID: "gipsofilia", Name: "Gipsofilia", Price: 300},
		},
	}
}

func TestGetCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/catalog" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("token"); got != "sekrit" {
			t.Errorf("expected token query param, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testCatalog())
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("sekrit"))
	catalog, err := client.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}

	if len(catalog.Bouquets) != 2 || len(catalog.Flowers) != 3 || len(catalog.Foliage) != 1 {
		t.Errorf("unexpected catalog sizes: %d/%d/%d",
			len(catalog.Bouquets), len(catalog.Flowers), len(catalog.Foliage))
	}
	if catalog.Flowers[0].Price != 250 {
		t.Errorf("expected first flower price 250, got %d", catalog.Flowers[0].Price)
	}
}

func TestGetCatalogErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		if _, err := NewClient(server.URL).GetCatalog(context.Background()); err == nil {
			t.Error("expected error for 500 response")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{broken"))
		}))
		defer server.Close()

		if _, err := NewClient(server.URL).GetCatalog(context.Background()); err == nil {
			t.Error("expected error for malformed body")
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(Catalog{})
		}))
		defer server.Close()

		if _, err := NewClient(server.URL).GetCatalog(context.Background()); err == nil {
			t.Error("expected error for empty catalog")
		}
	})
}

func TestSpeciesGroups(t *testing.T) {
	catalog := testCatalog()
	groups := catalog.SpeciesGroups()

	if len(groups) != 2 {
		t.Fatalf("expected 2 species groups, got %d", len(groups))
	}
	if groups[0].Name != "Rosa" || groups[1].Name != "Tulipán" {
		t.Errorf("unexpected group order: %s, %s", groups[0].Name, groups[1].Name)
	}
	if len(groups[0].Varieties) != 2 {
		t.Errorf("expected 2 Rosa varieties, got %d", len(groups[0].Varieties))
	}
	if groups[0].Varieties[0].ID != "rosa-roja" {
		t.Errorf("expected catalog order within group, got %s first", groups[0].Varieties[0].ID)
	}
}

func TestSubmitOrder(t *testing.T) {
	var received actionEnvelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/exec" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding envelope: %v", err)
		}
		json.NewEncoder(w).Encode(SubmitResponse{Status: "success"})
	}))
	defer server.Close()

	orders := NewOrderClient(NewClient(server.URL))
	resp, err := orders.SubmitOrder(context.Background(), OrderRequest{
		CustomerName: "Ana",
		Phone:        "999111222",
		DeliveryDate: "2026-09-01",
		BouquetName:  "Ramo Simple",
		TotalPrice:   1550,
	})
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if !resp.OK() {
		t.Error("expected OK response")
	}
	if received.Action != "submitOrder" {
		t.Errorf("expected submitOrder action, got %q", received.Action)
	}
	if received.Order == nil || received.Order.CustomerName != "Ana" {
		t.Errorf("order payload not forwarded: %+v", received.Order)
	}
}

func TestSubmitOrderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SubmitResponse{Status: "error", Message: "sheet unavailable"})
	}))
	defer server.Close()

	orders := NewOrderClient(NewClient(server.URL))
	if _, err := orders.SubmitOrder(context.Background(), OrderRequest{}); err == nil {
		t.Error("expected error for error status")
	}
}

func TestListRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var env actionEnvelope
		json.NewDecoder(r.Body).Decode(&env)
		if env.Action != "getSolicitudes" {
			t.Errorf("expected getSolicitudes action, got %q", env.Action)
		}
		json.NewEncoder(w).Encode(ListResponse{
			Status: "success",
			Records: []OrderRecord{
				{CustomerName: "Ana", BouquetName: "Ramo Simple", TotalPrice: 1550,
					FlowerLines: `[{"cantidad":3,"numero":"Rosa","color":"Rojo","precio_unitario":2.50}]`},
			},
		})
	}))
	defer server.Close()

	orders := NewOrderClient(NewClient(server.URL))
	records, err := orders.ListRequests(context.Background())
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	lines, err := DecodeOrderLines(records[0].FlowerLines)
	if err != nil {
		t.Fatalf("DecodeOrderLines: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 3 || lines[0].UnitPrice != 250 {
		t.Errorf("unexpected decoded lines: %+v", lines)
	}
}

func TestSuggestDedications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SuggestResponse{
			Status:      "success",
			Suggestions: []string{"uno", "dos", "tres", "cuatro"},
		})
	}))
	defer server.Close()

	orders := NewOrderClient(NewClient(server.URL))
	got, err := orders.SuggestDedications(context.Background(), SuggestRequest{BouquetName: "Ramo Simple"})
	if err != nil {
		t.Fatalf("SuggestDedications: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected suggestions capped at 3, got %d", len(got))
	}
}

func TestSuggestDedicationsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(APIError{Code: "upstream", Message: "generator offline"})
	}))
	defer server.Close()

	orders := NewOrderClient(NewClient(server.URL))
	if _, err := orders.SuggestDedications(context.Background(), SuggestRequest{}); err == nil {
		t.Error("expected error when generator is offline")
	}
}
