package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muurk/cupcraft/internal/order"
)

// MaxMessageSize bounds a single envelope on the wire.
const MaxMessageSize = 64 * 1024

// MessageType discriminates envelopes.
type MessageType string

const (
	TypeOrder MessageType = "order"
	TypeAck   MessageType = "ack"
	TypeError MessageType = "error"
)

// AckStatus is the verdict carried by an ack.
type AckStatus string

const (
	StatusAccepted AckStatus = "accepted"
	StatusRejected AckStatus = "rejected"
)

var (
	// ErrMalformed is returned for payloads that are not a JSON envelope.
	ErrMalformed = errors.New("malformed envelope")
	// ErrUnknownType is returned for envelopes with an unrecognized type.
	ErrUnknownType = errors.New("unknown envelope type")
	// ErrInvalid is returned for envelopes missing required fields.
	ErrInvalid = errors.New("invalid envelope")
)

// Envelope is one protocol message.
type Envelope struct {
	Type    MessageType   `json:"type"`
	OrderID string        `json:"order_id,omitempty"`
	Ticket  *order.Ticket `json:"ticket,omitempty"`
	Status  AckStatus     `json:"status,omitempty"`
	Message string        `json:"message,omitempty"`
}

// NewOrder wraps a ticket for submission.
func NewOrder(t order.Ticket) Envelope {
	return Envelope{Type: TypeOrder, OrderID: t.ID, Ticket: &t}
}

// NewAck builds an ack for orderID.
func NewAck(orderID string, status AckStatus, message string) Envelope {
	return Envelope{Type: TypeAck, OrderID: orderID, Status: status, Message: message}
}

// NewError builds an error reply. orderID may be empty when the request
// could not be decoded.
func NewError(orderID, message string) Envelope {
	return Envelope{Type: TypeError, OrderID: orderID, Message: message}
}

// Validate checks that e carries the fields its type requires.
func (e Envelope) Validate() error {
	switch e.Type {
	case TypeOrder:
		if e.Ticket == nil {
			return fmt.Errorf("%w: order without ticket", ErrInvalid)
		}
		if e.OrderID == "" || e.OrderID != e.Ticket.ID {
			return fmt.Errorf("%w: order_id %q does not match ticket id %q", ErrInvalid, e.OrderID, e.Ticket.ID)
		}
	case TypeAck:
		if e.OrderID == "" {
			return fmt.Errorf("%w: ack without order_id", ErrInvalid)
		}
		if e.Status != StatusAccepted && e.Status != StatusRejected {
			return fmt.Errorf("%w: ack status %q", ErrInvalid, e.Status)
		}
	case TypeError:
		if e.Message == "" {
			return fmt.Errorf("%w: error without message", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownType, e.Type)
	}
	return nil
}

// Encode validates and marshals e.
func Encode(e Envelope) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", e.Type, err)
	}
	return data, nil
}

// Decode unmarshals and validates an envelope. Unknown fields are rejected.
func Decode(data []byte) (Envelope, error) {
	if len(data) > MaxMessageSize {
		return Envelope{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrMalformed, len(data), MaxMessageSize)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var e Envelope
	if err := dec.Decode(&e); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return Envelope{}, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if err := e.Validate(); err != nil {
		return e, err
	}
	return e, nil
}
