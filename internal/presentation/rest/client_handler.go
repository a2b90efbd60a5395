package rest

import (
	"log/slog"
	"net/http"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/application/usecase"
)

// ClientHandler serves the client resource.
type ClientHandler struct {
	register *usecase.RegisterClientUseCase
	get      *usecase.GetClientUseCase
	update   *usecase.UpdateClientUseCase
	remove   *usecase.DeleteClientUseCase
	logger   *slog.Logger
}

// NewClientHandler wires the client use cases into an HTTP handler.
func NewClientHandler(
	register *usecase.RegisterClientUseCase,
	get *usecase.GetClientUseCase,
	update *usecase.UpdateClientUseCase,
	remove *usecase.DeleteClientUseCase,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{
		register: register,
		get:      get,
		update:   update,
		remove:   remove,
		logger:   logger,
	}
}

// RegisterRoutes attaches client routes to the given mux. Clients are
// addressed by cédula, not by surrogate ID.
func (h *ClientHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/clients", h.registerClient)
	mux.HandleFunc("GET /api/v1/clients", h.listClients)
	mux.HandleFunc("GET /api/v1/clients/{nationalID}", h.getClient)
	mux.HandleFunc("PUT /api/v1/clients/{nationalID}", h.updateClient)
	mux.HandleFunc("DELETE /api/v1/clients/{nationalID}", h.deleteClient)
}

func (h *ClientHandler) registerClient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterClientRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ClientHandler) listClients(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ClientHandler) getClient(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), r.PathValue("nationalID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ClientHandler) updateClient(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateClientRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.NationalID = r.PathValue("nationalID")

	resp, err := h.update.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ClientHandler) deleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.remove.Execute(r.Context(), r.PathValue("nationalID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
