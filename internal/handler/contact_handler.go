package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/wesworld/site/internal/service"
)

// SubmitSuccessMessage is shown to visitors after an accepted submission.
const SubmitSuccessMessage = "Thanks for reaching out! Wes will reply within 24 hours."

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitResponse is the JSON body for a successful POST /contact.
type submitResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

// Submit handles POST /contact.
// name, email and message are required; phone and service are optional.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Message: "Invalid request body."})
		return
	}

	res, err := h.contactService.Submit(r.Context(), service.ContactInput{
		Name:    fields["name"],
		Email:   fields["email"],
		Phone:   fields["phone"],
		Message: fields["message"],
		Service: fields["service"],
	})
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, apiResponse{OK: false, Message: ve.Error()})
			return
		}
		slog.Error("contact submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{OK: false, Message: InternalErrorMessage})
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		OK:        true,
		Message:   SubmitSuccessMessage,
		EmailSent: res.EmailSent,
	})
}
