package api

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/arsenal/internal/model"
	"github.com/erazemk/arsenal/internal/report"
	"github.com/erazemk/arsenal/internal/service"
)

// TransactionsHandler handles ledger endpoints.
type TransactionsHandler struct {
	Service *service.Service
	Log     *zap.Logger
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := transactionQuery(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	txs, err := h.Service.ListTransactions(r.Context(), q)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusOK, txs)
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.TransactionInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	tx, err := h.Service.CreateTransaction(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}
	jsonResponse(w, h.Log, http.StatusCreated, tx)
}

// Export handles GET /api/transactions/export.
func (h *TransactionsHandler) Export(w http.ResponseWriter, r *http.Request) {
	q, err := transactionQuery(r.URL.Query())
	if err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	// Buffer the workbook so a failure can still produce an error response.
	var buf bytes.Buffer
	if err := h.Service.ExportTransactions(r.Context(), &buf, q); err != nil {
		writeError(w, h.Log, r, err)
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+report.Filename(time.Now()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func transactionQuery(v url.Values) (service.TransactionQuery, error) {
	q := service.TransactionQuery{
		Type:         model.TransactionType(v.Get("type")),
		WeaponID:     v.Get("weapon_id"),
		GovernmentID: v.Get("gov_id"),
	}
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return q, badQuery("limit", s)
		}
		q.Limit = n
	}
	return q, nil
}
