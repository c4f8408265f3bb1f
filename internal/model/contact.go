package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultService is recorded when a submission does not name a service.
const DefaultService = "General Inquiry"

// MessageID identifies a stored contact message.
// Older stores wrote millisecond timestamps as JSON numbers, so both numbers
// and strings are accepted on decode. It always encodes as a string.
type MessageID string

func (id *MessageID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MessageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("model: message id must be a string or number: %w", err)
	}
	*id = MessageID(n.String())
	return nil
}

func (id MessageID) String() string { return string(id) }

// ContactSubmission is a normalized contact form payload.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Service string `json:"service"`
}

// ContactMessage is a stored submission. Fields never change after creation.
type ContactMessage struct {
	ID        MessageID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Service   string    `json:"service"`
}

// NewContactMessage builds a stored message from a normalized submission.
func NewContactMessage(id MessageID, createdAt time.Time, s ContactSubmission) *ContactMessage {
	return &ContactMessage{
		ID:        id,
		CreatedAt: createdAt,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Message:   s.Message,
		Service:   s.Service,
	}
}
