package core

import "context"

type (
	// Notifier shows transient success/error notices to the operator.
	Notifier interface {
		Success(msg string)
		Error(msg string)
	}

	// Confirmer asks the operator to confirm a destructive action.
	Confirmer interface {
		Confirm(ctx context.Context, prompt string) bool
	}

	// Navigator switches the shell to the page registered for a route.
	Navigator interface {
		Navigate(route string)
	}
)

// ConfirmFunc adapts a plain func to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// NavigateFunc adapts a plain func to the Navigator interface.
type NavigateFunc func(route string)

func (f NavigateFunc) Navigate(route string) {
	f(route)
}
