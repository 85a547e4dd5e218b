package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scholarmarket/internal/domain"
)

func (a *App) OrdersMine(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Orders.ListByStudent(r.Context(), email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list student orders failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load orders")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toOrderDTOs(items)})
}

func (a *App) OrdersModerated(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	items, err := a.Orders.ListByModerator(r.Context(), email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list moderated orders failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load orders")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": toOrderDTOs(items)})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// OrderStatusUpdate moves a pending order to completed or cancelled. The
// store runs the ownership check and the update as one statement; a caller
// who is not the order's moderator gets Forbidden, whether or not the order
// exists.
func (a *App) OrderStatusUpdate(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	status := domain.OrderStatus(req.Status)
	if !status.ValidTransition() {
		a.error(w, http.StatusBadRequest, "bad_request", "status must be completed or cancelled")
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := a.Orders.UpdateStatusOwned(r.Context(), id, email, status)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			a.error(w, http.StatusForbidden, "forbidden", "not the order's moderator")
			return
		}
		a.Logger.Error().Err(err).Str("order_id", id).Msg("update order status failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update order")
		return
	}
	a.json(w, http.StatusOK, toOrderDTO(updated))
}

func (a *App) OrderDelete(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	id := chi.URLParam(r, "id")
	if err := a.Orders.DeleteOwned(r.Context(), id, email); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			a.error(w, http.StatusForbidden, "forbidden", "not the order's moderator")
			return
		}
		a.Logger.Error().Err(err).Str("order_id", id).Msg("delete order failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toOrderDTOs(items []domain.Order) []orderDTO {
	dtos := make([]orderDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toOrderDTO(&items[i]))
	}
	return dtos
}
