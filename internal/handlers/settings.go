package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/azuldeco/azul-admin/httpx"
	"github.com/azuldeco/azul-admin/internal/settings"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	svc *settings.Service
	log *log.Logger
}

func NewSettingsHandler(svc *settings.Service, l *log.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: l}
}

func (h *SettingsHandler) Register(r *mux.Router) {
	r.HandleFunc("/settings", h.List).Methods(http.MethodGet)
	r.HandleFunc("/settings/{key}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/settings/{key}", h.Put).Methods(http.MethodPut)
}

// List returns every known setting, defaults included.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	out := make([]settings.Value, 0, len(settings.Keys))
	for _, k := range settings.Keys {
		v, err := h.svc.Raw(r.Context(), k)
		if err != nil {
			respondError(w, r, h.log, err)
			return
		}
		out = append(out, v)
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Raw(r.Context(), settings.Key(mux.Vars(r)["key"]))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

// Put takes the bare value as body, e.g. {"name":"Azul Deco",...} or 7.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decodeOr400(w, r, &raw) {
		return
	}
	v, err := h.svc.Put(r.Context(), settings.Key(mux.Vars(r)["key"]), raw)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}
