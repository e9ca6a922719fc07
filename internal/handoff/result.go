package handoff

import (
	"context"
	"errors"
	"fmt"

	"github.com/muurk/cupcraft/internal/order"
)

// Status is the outcome of an order hand-off.
type Status int

const (
	StatusAccepted Status = iota + 1
	StatusRejected
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports what happened to a placed order.
type Result struct {
	Status  Status
	OrderID string
	Message string
	Err     error
}

// Accepted reports whether the collaborator took the order.
func (r Result) Accepted() bool {
	return r.Status == StatusAccepted
}

// Processor is the order-processing collaborator.
type Processor interface {
	PlaceOrder(ctx context.Context, t order.Ticket) Result
}

// ErrorKind classifies hand-off failures.
type ErrorKind int

const (
	KindDial ErrorKind = iota + 1
	KindTimeout
	KindProtocol
	KindRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindDial:
		return "dial"
	case KindTimeout:
		return "timeout"
	case KindProtocol:
		return "protocol"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error describes a hand-off that did not end in acceptance.
type Error struct {
	Kind    ErrorKind
	OrderID string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Kind)
	if e.OrderID != "" {
		msg += fmt.Sprintf(" for order %s", e.OrderID)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (%v)", e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a hand-off Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var he *Error
	return errors.As(err, &he) && he.Kind == k
}

func accepted(orderID, message string) Result {
	return Result{Status: StatusAccepted, OrderID: orderID, Message: message}
}

func rejected(orderID, message string) Result {
	return Result{
		Status:  StatusRejected,
		OrderID: orderID,
		Message: message,
		Err:     &Error{Kind: KindRejected, OrderID: orderID, Message: message},
	}
}

func failed(orderID string, kind ErrorKind, message string, cause error) Result {
	return Result{
		Status:  StatusFailed,
		OrderID: orderID,
		Message: message,
		Err:     &Error{Kind: kind, OrderID: orderID, Message: message, Cause: cause},
	}
}
