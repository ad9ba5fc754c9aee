package receipt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// serviceError maps a service error to an HTTP response. NotFound maps
// to 404, validation and argument errors to 400, anything else is an
// internal error. InvalidInput from the engines lands in the 500 branch
// since it signals a programming error, not bad client data.
func serviceError(w http.ResponseWriter, err error) {
	var notFound *NotFoundError
	var validation *ValidationError
	var invalidArg *InvalidArgumentError

	switch {
	case errors.As(err, &notFound):
		jsonError(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &validation):
		jsonError(w, validation.Error(), http.StatusBadRequest)
	case errors.As(err, &invalidArg):
		jsonError(w, invalidArg.Error(), http.StatusBadRequest)
	default:
		slog.Error("Internal error", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response body
func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleSubmitReceipt validates and stores a submitted receipt
func (s *Server) handleSubmitReceipt(w http.ResponseWriter, r *http.Request) {
	var receipt *Receipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := s.service.SubmitReceipt(receipt)
	if err != nil {
		slog.Error("Error submitting receipt", "error", err)
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleGetReceipt returns a single receipt
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	receipt, err := s.service.GetReceipt(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

// handleListReceipts returns all stored receipts with their ids
func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListReceipts()
	if err != nil {
		slog.Error("Error listing receipts", "error", err)
		serviceError(w, err)
		return
	}

	// Ensure we always return an array, not nil
	if entries == nil {
		entries = []Entry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

// handleReceiptPoints returns the recomputed points for a receipt
func (s *Server) handleReceiptPoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	points, err := s.service.ReceiptPoints(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}

// handleTagReceipt classifies a receipt and merges the tags into it
func (s *Server) handleTagReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, err := s.service.TagReceipt(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSortedReceipts returns all receipts ordered by the criteria
// query parameter
func (s *Server) handleSortedReceipts(w http.ResponseWriter, r *http.Request) {
	criteria := SortCriteria(r.URL.Query().Get("criteria"))
	rows, err := s.service.SortedReceipts(criteria)
	if err != nil {
		serviceError(w, err)
		return
	}

	if rows == nil {
		rows = []SortedReceipt{}
	}

	writeJSON(w, http.StatusOK, rows)
}

// handleUpdateInventory replaces a receipt's item list and returns the
// recomputed points
func (s *Server) handleUpdateInventory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var items []Item
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.service.UpdateInventory(id, items)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAnalytics returns aggregate analytics over all receipts
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.service.Analytics()
	if err != nil {
		slog.Error("Error computing analytics", "error", err)
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}
