package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/sales-manager/internal/core/domain"
	"github.com/rl1809/sales-manager/internal/core/service"
)

type HTTPHandler struct {
	salesService *service.SalesService
}

type AddItemHTTPRequest struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	CostBasis int64  `json:"cost_basis"`
}

type UpdateItemHTTPRequest struct {
	Old domain.InventoryRecord `json:"old"`
	New domain.InventoryRecord `json:"new"`
}

type SellHTTPRequest struct {
	RequestID string                 `json:"request_id"`
	Record    domain.InventoryRecord `json:"record"`
	Method    string                 `json:"method"`
}

type HTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func NewHTTPHandler(salesService *service.SalesService) *HTTPHandler {
	return &HTTPHandler{salesService: salesService}
}

// Register mounts every route on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/inventory", h.Inventory)
	mux.HandleFunc("/api/sell", h.Sell)
	mux.HandleFunc("/api/transactions", h.Transactions)
	mux.HandleFunc("/api/summary", h.Summary)
}

func (h *HTTPHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listInventory(w, r)
	case http.MethodPost:
		h.addItem(w, r)
	case http.MethodPut:
		h.updateItem(w, r)
	case http.MethodDelete:
		h.deleteItem(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *HTTPHandler) listInventory(w http.ResponseWriter, r *http.Request) {
	var (
		records []domain.InventoryRecord
		err     error
	)
	if column := r.URL.Query().Get("sort"); column != "" {
		records, err = h.salesService.SortedInventory(r.Context(), column, r.URL.Query().Get("order"))
	} else {
		records, err = h.salesService.Inventory(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.InventoryRecord{}
	}

	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Message: "ok", Data: records})
}

func (h *HTTPHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.salesService.AddItem(r.Context(), domain.InventoryRecord{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		CostBasis: req.CostBasis,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, HTTPResponse{Success: true, Message: "item added", Data: rec})
}

func (h *HTTPHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.salesService.UpdateItem(r.Context(), req.Old, req.New); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Message: "item updated"})
}

func (h *HTTPHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	var rec domain.InventoryRecord
	if !decodeBody(w, r, &rec) {
		return
	}

	if err := h.salesService.DeleteItem(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Message: "item deleted"})
}

func (h *HTTPHandler) Sell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SellHTTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	res, err := h.salesService.Sell(r.Context(), req.RequestID, req.Record, req.Method)
	if err != nil {
		log.Printf("sale %s of %q failed: %v", req.RequestID, req.Record.Name, err)
		writeError(w, err)
		return
	}

	log.Printf("sale %s: %q charged %d", req.RequestID, res.Transaction.Name, res.Charged)
	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Message: "item sold", Data: res})
}

func (h *HTTPHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, to, ranged, ok := parseRange(w, r)
	if !ok {
		return
	}

	var (
		txs []domain.TransactionRecord
		err error
	)
	if ranged {
		txs, err = h.salesService.TransactionsBetween(r.Context(), from, to)
	} else {
		txs, err = h.salesService.Transactions(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if txs == nil {
		txs = []domain.TransactionRecord{}
	}

	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Message: "ok", Data: txs})
}

func (h *HTTPHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, to, ranged, ok := parseRange(w, r)
	if !ok {
		return
	}

	var (
		summary domain.SalesSummary
		err     error
	)
	if ranged {
		summary, err = h.salesService.SummaryBetween(r.Context(), from, to)
	} else {
		summary, err = h.salesService.Summary(r.Context())
	}
	if errors.Is(err, domain.ErrNoTransactions) {
		writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Message: domain.Reason(err)})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Message: "ok", Data: summary})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.salesService.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseRange reads optional from/to query dates. Both or neither must be set.
func parseRange(w http.ResponseWriter, r *http.Request) (from, to time.Time, ranged, ok bool) {
	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr == "" && toStr == "" {
		return from, to, false, true
	}
	if fromStr == "" || toStr == "" {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{Message: "both from and to are required"})
		return from, to, false, false
	}

	var err error
	if from, err = domain.ParseDay(fromStr); err != nil {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{Message: "invalid from date, want YYYY-MM-DD"})
		return from, to, false, false
	}
	if to, err = domain.ParseDay(toStr); err != nil {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{Message: "invalid to date, want YYYY-MM-DD"})
		return from, to, false, false
	}
	return from, to, true, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var verr *domain.ValidationError
	var perr *domain.InvalidPaymentMethodError
	switch {
	case errors.As(err, &verr), errors.As(err, &perr),
		errors.Is(err, domain.ErrUnknownSortField), errors.Is(err, domain.ErrUnknownSortOrder):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateSale):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrOutOfStock):
		status = http.StatusGone
	}

	writeJSON(w, status, HTTPResponse{
		Success: false,
		Message: domain.Reason(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
