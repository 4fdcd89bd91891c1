package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/netaccess"
	"github.com/staffsync/attendance-backend-go/internal/handler/http/response"
)

type NetAccessHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type netAccessHandlerImpl struct {
	netAccessService netaccess.NetAccessService
}

func NewNetAccessHandler(netAccessService netaccess.NetAccessService) NetAccessHandler {
	return &netAccessHandlerImpl{
		netAccessService: netAccessService,
	}
}

// Create implements NetAccessHandler.
func (h *netAccessHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req netaccess.CreateIPRangeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create IP range decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.netAccessService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create IP range service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "IP range created successfully", result)
}

// List implements NetAccessHandler.
func (h *netAccessHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.netAccessService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update implements NetAccessHandler.
func (h *netAccessHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req netaccess.UpdateIPRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update IP range decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.netAccessService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update IP range service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "IP range updated successfully", result)
}

// Delete implements NetAccessHandler.
func (h *netAccessHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.netAccessService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "IP range deleted successfully", nil)
}
