package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-seed-api/internal/app"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/utils"
	"github.com/MKhiriev/go-seed-api/models"
)

const itemIDParam = "item_id"

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.services.ItemService.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err, app.MsgItemNotFound)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.services.ItemService.GetByID(r.Context(), chi.URLParam(r, itemIDParam))
	if err != nil {
		writeError(w, r, err, app.MsgItemNotFound)
		return
	}

	utils.WriteJSON(w, item, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := utils.DecodeJSON(w, r, &item); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.createItem").Msg(app.MsgInvalidJSON)
		writeDetail(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	created, err := h.services.ItemService.Create(r.Context(), item)
	if err != nil {
		writeError(w, r, err, app.MsgItemNotFound)
		return
	}

	utils.WriteJSON(w, created, http.StatusOK)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var patch models.ItemPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.updateItem").Msg(app.MsgInvalidJSON)
		writeDetail(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := h.services.ItemService.Update(r.Context(), chi.URLParam(r, itemIDParam), patch)
	if err != nil {
		writeError(w, r, err, app.MsgItemNotFound)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ItemService.Delete(r.Context(), chi.URLParam(r, itemIDParam)); err != nil {
		writeError(w, r, err, app.MsgItemNotFound)
		return
	}

	utils.WriteJSON(w, true, http.StatusOK)
}
