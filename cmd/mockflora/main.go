// Package main implements a mock bouquet order service for local
// development. It mimics the catalog endpoint and the action-dispatch
// script endpoint the TUI talks to.
package main

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/florista/ramo-terminal-go/internal/flora"
)

//go:embed testdata/*
var testdataFS embed.FS

var catalog flora.Catalog

// store holds submitted orders in memory for the session.
var store struct {
	mu      sync.Mutex
	records []flora.OrderRecord
}

func init() {
	data, err := testdataFS.ReadFile("testdata/catalog.json")
	if err != nil {
		log.Fatalf("Failed to load catalog.json: %v", err)
	}
	if err := json.Unmarshal(data, &catalog); err != nil {
		log.Fatalf("Failed to parse catalog.json: %v", err)
	}
}

func main() {
	addr := getEnv("MOCKFLORA_ADDR", ":18090")

	http.HandleFunc("/api/catalog", handleCatalog)
	http.HandleFunc("/api/exec", handleExec)

	log.Printf("Mock order service listening on %s", addr)
	log.Printf("Loaded %d bouquets, %d flowers, %d foliage items",
		len(catalog.Bouquets), len(catalog.Flowers), len(catalog.Foliage))
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalog)
}

// handleExec dispatches on the "action" field of the POST body, like
// the script backend it stands in for.
func handleExec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var env struct {
		Action string               `json:"action"`
		Order  *flora.OrderRequest  `json:"order"`
		Prompt *flora.SuggestRequest `json:"prompt"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		writeError(w, "invalid JSON body")
		return
	}

	switch env.Action {
	case "submitOrder":
		handleSubmitOrder(w, env.Order)
	case "getSolicitudes":
		handleListRequests(w)
	case "suggestDedications":
		handleSuggest(w, env.Prompt)
	default:
		writeError(w, fmt.Sprintf("unknown action %q", env.Action))
	}
}

func handleSubmitOrder(w http.ResponseWriter, order *flora.OrderRequest) {
	if order == nil {
		writeError(w, "missing order payload")
		return
	}
	if order.CustomerName == "" || order.Phone == "" || order.DeliveryDate == "" {
		writeError(w, "missing contact fields")
		return
	}
	if order.BouquetName == "" {
		writeError(w, "missing bouquet")
		return
	}

	record := flora.OrderRecord{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		DeliveryDate: order.DeliveryDate,
		BouquetName:  order.BouquetName,
		FlowerLines:  order.FlowerLines,
		FoliageLines: order.FoliageLines,
		Dedication:   orNA(order.Dedication),
		SongLink:     orNA(order.SongLink),
		TotalPrice:   order.TotalPrice,
	}

	store.mu.Lock()
	store.records = append(store.records, record)
	store.mu.Unlock()

	log.Printf("Order from %s: %s, total %s", order.CustomerName, order.BouquetName, order.TotalPrice.Format())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flora.SubmitResponse{Status: "success", Message: "pedido registrado"})
}

func handleListRequests(w http.ResponseWriter) {
	store.mu.Lock()
	records := make([]flora.OrderRecord, len(store.records))
	copy(records, store.records)
	store.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flora.ListResponse{Status: "success", Records: records})
}

func handleSuggest(w http.ResponseWriter, prompt *flora.SuggestRequest) {
	bouquet := "tu ramo"
	if prompt != nil && prompt.BouquetName != "" {
		bouquet = prompt.BouquetName
	}

	suggestions := []string{
		fmt.Sprintf("Que este %s te recuerde lo mucho que significas para mí.", bouquet),
		"Cada flor lleva un pensamiento dedicado a ti.",
		"Para alguien que hace florecer hasta los días grises.",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flora.SuggestResponse{Status: "success", Suggestions: suggestions})
}

func writeError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(flora.SubmitResponse{Status: "error", Message: msg})
}

func orNA(s string) string {
	if s == "" {
		return flora.NotApplicable
	}
	return s
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
