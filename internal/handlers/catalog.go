package handlers

import (
	"net/http"

	"github.com/azuldeco/azul-admin/httpx"
	"github.com/azuldeco/azul-admin/internal/services"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ClientHandler struct {
	svc *services.ClientService
	log *log.Logger
}

func NewClientHandler(svc *services.ClientService, l *log.Logger) *ClientHandler {
	return &ClientHandler{svc: svc, log: l}
}

func (h *ClientHandler) Register(r *mux.Router) {
	r.HandleFunc("/clients", h.List).Methods(http.MethodGet)
	r.HandleFunc("/clients", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/clients/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ClientInput
	if !decodeOr400(w, r, &in) {
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

type FabricHandler struct {
	svc *services.FabricService
	log *log.Logger
}

func NewFabricHandler(svc *services.FabricService, l *log.Logger) *FabricHandler {
	return &FabricHandler{svc: svc, log: l}
}

func (h *FabricHandler) Register(r *mux.Router) {
	r.HandleFunc("/fabric-types", h.List).Methods(http.MethodGet)
	r.HandleFunc("/fabric-types", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/fabric-types/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/fabric-types/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/fabric-types/{id:[0-9]+}", h.Patch).Methods(http.MethodPatch)
	r.HandleFunc("/fabric-types/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}

func (h *FabricHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *FabricHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	ft, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ft)
}

func (h *FabricHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.FabricInput
	if !decodeOr400(w, r, &in) {
		return
	}
	ft, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ft)
}

func (h *FabricHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	var in services.FabricInput
	if !decodeOr400(w, r, &in) {
		return
	}
	ft, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ft)
}

func (h *FabricHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	var p services.FabricPatch
	if !decodeOr400(w, r, &p) {
		return
	}
	ft, err := h.svc.Patch(r.Context(), id, p)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ft)
}

func (h *FabricHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathIDOr400(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type SystemColorHandler struct {
	svc *services.SystemColorService
	log *log.Logger
}

func NewSystemColorHandler(svc *services.SystemColorService, l *log.Logger) *SystemColorHandler {
	return &SystemColorHandler{svc: svc, log: l}
}

func (h *SystemColorHandler) Register(r *mux.Router) {
	r.HandleFunc("/system-colors", h.List).Methods(http.MethodGet)
	r.HandleFunc("/system-colors", h.Sync).Methods(http.MethodPut)
}

func (h *SystemColorHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

// Sync accepts {"colors":[...]} and replaces the list.
func (h *SystemColorHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Colors []services.SystemColorInput `json:"colors"`
	}
	if !decodeOr400(w, r, &body) {
		return
	}
	list, err := h.svc.Sync(r.Context(), body.Colors)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}
