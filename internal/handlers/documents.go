package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/azuldeco/azul-admin/httpx"
	"github.com/azuldeco/azul-admin/internal/models"
	"github.com/azuldeco/azul-admin/internal/services"
	"github.com/azuldeco/azul-admin/validation"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DocumentHandler struct {
	svc *services.DocumentService
	log *log.Logger
}

func NewDocumentHandler(svc *services.DocumentService, l *log.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: l}
}

func (h *DocumentHandler) Register(r *mux.Router) {
	r.HandleFunc("/documents", h.List).Methods(http.MethodGet)
	r.HandleFunc("/documents", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/documents/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id:[0-9]+}/status", h.UpdateStatus).Methods(http.MethodPatch)
	r.HandleFunc("/documents/{id:[0-9]+}/production-status", h.UpdateProductionStatus).Methods(http.MethodPatch)
	r.HandleFunc("/documents/{id:[0-9]+}/whatsapp", h.WhatsApp).Methods(http.MethodGet)
	r.HandleFunc("/production", h.Production).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateDocumentInput
	if !decodeOr400(w, r, &in) {
		return
	}
	doc, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

// parseFilter reads the list query. Dates are YYYY-MM-DD; dateTo includes the whole day.
func parseFilter(r *http.Request) (services.DocumentFilter, validation.Violations) {
	q := r.URL.Query()
	vs := validation.Violations{}
	f := services.DocumentFilter{
		Type:       models.DocumentType(q.Get("type")),
		Status:     models.DocumentStatus(q.Get("status")),
		Production: models.ProductionStatus(q.Get("production")),
		Search:     q.Get("search"),
	}
	if f.Type != "" && !f.Type.Valid() {
		vs["type"] = "invalid_value"
	}
	if f.Status != "" && !f.Status.Valid() {
		vs["status"] = "invalid_value"
	}
	if f.Production != "" && !f.Production.Valid() {
		vs["production"] = "invalid_value"
	}
	if v := q.Get("dateFrom"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			f.DateFrom = &t
		} else {
			vs["dateFrom"] = "invalid_date"
		}
	}
	if v := q.Get("dateTo"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			end := t.AddDate(0, 0, 1)
			f.DateTo = &end
		} else {
			vs["dateTo"] = "invalid_date"
		}
	}
	for name, dst := range map[string]*int{"page": &f.Page, "limit": &f.Limit} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				vs[name] = "must_be_positive"
				continue
			}
			*dst = n
		}
	}
	return f, vs
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	f, vs := parseFilter(r)
	if !vs.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", vs)
		return
	}
	page, err := h.svc.List(r.Context(), f)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *DocumentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *DocumentHandler) Production(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.ProductionBoard(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"groups": board})
}

func (h *DocumentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	var body struct {
		Status models.DocumentStatus `json:"status"`
	}
	if !decodeOr400(w, r, &body) {
		return
	}
	doc, err := h.svc.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) UpdateProductionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	var body struct {
		ProductionStatus models.ProductionStatus `json:"productionStatus"`
	}
	if !decodeOr400(w, r, &body) {
		return
	}
	doc, err := h.svc.UpdateProductionStatus(r.Context(), id, body.ProductionStatus)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	msg, err := h.svc.WhatsApp(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, msg)
}

func (h *DocumentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Dashboard(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dash)
}
