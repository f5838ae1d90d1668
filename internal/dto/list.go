package dto

import "github.com/finhr/backoffice/internal/core/ports"

// PageEnvelope is the collaborator's paginated list response shape.
type PageEnvelope[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// ToPage converts a wire envelope to the ports page shape.
func ToPage[T any](e PageEnvelope[T]) ports.Page[T] {
	return ports.Page[T]{
		Items:       e.Data,
		CurrentPage: e.CurrentPage,
		LastPage:    e.LastPage,
		PerPage:     e.PerPage,
		Total:       e.Total,
	}
}

// MessageResponse is the collaborator's mutation response: exactly one of
// Message (success) or Error is set. The client treats both as opaque
// display strings.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
