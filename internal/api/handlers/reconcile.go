package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cleared-dev/payrecon/internal/api/dto"
	"github.com/cleared-dev/payrecon/internal/dataset"
	"github.com/cleared-dev/payrecon/internal/model"
	"github.com/cleared-dev/payrecon/internal/report"
	"github.com/cleared-dev/payrecon/internal/service"
)

// MaxBodyBytes caps POST /api/reconcile payloads.
const MaxBodyBytes = 10 << 20

// RequestSource names reports built from a request body.
const RequestSource = "request"

// ReconcileHandler serves reconciliation runs.
type ReconcileHandler struct {
	Base
	svc *service.Service
}

// NewReconcileHandler creates a handler backed by svc.
func NewReconcileHandler(svc *service.Service, logger *slog.Logger) *ReconcileHandler {
	return &ReconcileHandler{Base: Base{logger: logger}, svc: svc}
}

// Report handles GET /api/reconciliation.
func (h *ReconcileHandler) Report(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, rep)
}

// Results handles GET /api/results with optional status, customer and
// method query filters.
func (h *ReconcileHandler) Results(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	results := filter.Apply(rep.Results)
	h.WriteJSON(w, http.StatusOK, dto.ResultsResponse{
		RunID:   rep.ID,
		Count:   len(results),
		Results: results,
	})
}

// Summary handles GET /api/summary.
func (h *ReconcileHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, rep.Summary)
}

// Reconcile handles POST /api/reconcile with a Dataset body.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var ds dataset.Dataset
	if err := dec.Decode(&ds); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.WriteError(w, http.StatusRequestEntityTooLarge, dto.BadRequestError("request body too large"))
			return
		}
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(fmt.Sprintf("invalid dataset: %v", err)))
		return
	}

	h.WriteJSON(w, http.StatusOK, h.svc.ReconcileDataset(RequestSource, &ds))
}

func (h *ReconcileHandler) run(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	rep, err := h.svc.Run(r.Context())
	if err != nil {
		h.logger.Error("reconciliation failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return nil, false
	}
	return rep, true
}

func parseFilter(r *http.Request) (report.Filter, error) {
	q := r.URL.Query()
	f := report.Filter{Customer: q.Get("customer")}

	if s := q.Get("status"); s != "" {
		status, err := model.ParseStatus(s)
		if err != nil {
			return report.Filter{}, err
		}
		f.Status = status
	}
	if m := q.Get("method"); m != "" {
		method, err := model.ParsePaymentMethod(m)
		if err != nil {
			return report.Filter{}, err
		}
		f.Method = method
	}
	return f, nil
}
