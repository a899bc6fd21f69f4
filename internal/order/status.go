package order

import (
	"fmt"
	"strings"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", apperr.ErrConflict)

// transitions lists the forward edges; a non-terminal status may also be
// re-applied to itself.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", apperr.Validation("unknown order status %q", s)
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func CanTransition(from, to Status) bool {
	if from == to {
		return !from.Terminal()
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// apply moves o to u.Status. The order is left untouched on error.
func apply(o *Order, u StatusUpdate) error {
	to, err := ParseStatus(string(u.Status))
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}

	shippedAt, deliveredAt := o.ShippedAt, o.DeliveredAt
	switch to {
	case StatusShipped:
		if u.ShippedAt == nil && (o.Status != StatusShipped || shippedAt == nil) {
			return apperr.Validation("shipped_at is required for status %s", to)
		}
	case StatusDelivered:
		if u.DeliveredAt == nil {
			return apperr.Validation("delivered_at is required for status %s", to)
		}
	}
	if u.ShippedAt != nil {
		if to != StatusShipped && to != StatusDelivered {
			return apperr.Validation("shipped_at is not accepted for status %s", to)
		}
		shippedAt = u.ShippedAt
	}
	if u.DeliveredAt != nil {
		if to != StatusDelivered {
			return apperr.Validation("delivered_at is not accepted for status %s", to)
		}
		deliveredAt = u.DeliveredAt
	}
	if shippedAt != nil && deliveredAt != nil && deliveredAt.Before(*shippedAt) {
		return apperr.Validation("delivered_at precedes shipped_at")
	}

	o.Status = to
	o.ShippedAt, o.DeliveredAt = shippedAt, deliveredAt
	if u.Notes != "" {
		o.Notes = u.Notes
	}
	return nil
}
