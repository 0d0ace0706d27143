package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/service"
	"github.com/social-memo/social-memo/internal/store"
	"github.com/social-memo/social-memo/models"
)

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	contacts, err := h.services.ContactService.ListContacts(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during listing contacts")
		h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, contacts, http.StatusOK)
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	contact, err := h.services.ContactService.CreateContact(ctx, request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid contact data provided")
			h.writeError(w, service.ErrInvalidDataProvided.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during contact creation")
			h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", contact.ID).Msg("contact created")

	h.writeJSON(w, contact, http.StatusCreated)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	contactID, err := getContactIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid contact id")
		h.writeError(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	var request models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	contact, err := h.services.ContactService.UpdateContact(ctx, contactID, request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid contact data provided")
			h.writeError(w, service.ErrInvalidDataProvided.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrContactNotFound):
			log.Err(err).Int64("id", contactID).Msg("contact was not found")
			h.writeError(w, store.ErrContactNotFound.Error(), http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during contact update")
			h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.writeJSON(w, contact, http.StatusOK)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	contactID, err := getContactIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid contact id")
		h.writeError(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	if err := h.services.ContactService.DeleteContact(ctx, contactID); err != nil {
		switch {
		case errors.Is(err, store.ErrContactNotFound):
			log.Err(err).Int64("id", contactID).Msg("contact was not found")
			h.writeError(w, store.ErrContactNotFound.Error(), http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during contact deletion")
			h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", contactID).Msg("contact moved to trash")

	h.writeJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) listTrash(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	contacts, err := h.services.ContactService.ListTrash(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during listing trash")
		h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, contacts, http.StatusOK)
}

func (h *Handler) restoreContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	contactID, err := getContactIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid contact id")
		h.writeError(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	if err := h.services.ContactService.RestoreContact(ctx, contactID); err != nil {
		switch {
		case errors.Is(err, store.ErrContactNotFound):
			log.Err(err).Int64("id", contactID).Msg("contact was not found in trash")
			h.writeError(w, store.ErrContactNotFound.Error(), http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during contact restore")
			h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", contactID).Msg("contact restored from trash")

	h.writeJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) purgeContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	contactID, err := getContactIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid contact id")
		h.writeError(w, "invalid contact id", http.StatusBadRequest)
		return
	}

	if err := h.services.ContactService.PurgeContact(ctx, contactID); err != nil {
		switch {
		case errors.Is(err, store.ErrContactNotFound):
			log.Err(err).Int64("id", contactID).Msg("contact was not found in trash")
			h.writeError(w, store.ErrContactNotFound.Error(), http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during contact purge")
			h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Info().Int64("id", contactID).Msg("contact permanently deleted")

	h.writeJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

// getContactIDFromURL parses the {id} route parameter as a positive integer.
func getContactIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
