package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/wesworld/site/internal/repository"
	"github.com/wesworld/site/internal/service"
)

// MessageHandler serves the admin view of stored contact messages.
// Routes using it must sit behind the admin allowlist.
type MessageHandler struct {
	contactService service.ContactService
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(contactService service.ContactService) *MessageHandler {
	return &MessageHandler{contactService: contactService}
}

// List handles GET /api/messages. The body is a JSON array, newest first,
// and is [] when the store is empty or unreadable.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.contactService.List(r.Context()))
}

// Delete handles DELETE /api/messages/{id}.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, r.PathValue("id"))
}

// DeleteFromBody handles POST /api/messages/delete with the id in the body.
func (h *MessageHandler) DeleteFromBody(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Message: "Invalid request body."})
		return
	}
	id := fields["id"]
	if id == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Message: "Missing message id."})
		return
	}
	h.delete(w, r, id)
}

func (h *MessageHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.contactService.Delete(r.Context(), id)
	switch {
	case err == nil:
		slog.Info("message deleted", "id", id)
		writeJSON(w, http.StatusOK, apiResponse{OK: true})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, apiResponse{OK: false, Message: "Message not found."})
	default:
		slog.Error("delete message failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Message: InternalErrorMessage})
	}
}
