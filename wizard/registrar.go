package wizard

import "context"

// Result is what a successful registration hands back to the flow.
type Result struct {
	UserID      string
	Role        string
	Token       string
	Destination string
}

// Registrar receives the accumulated form once the final step passes validation.
type Registrar interface {
	Register(ctx context.Context, form *FormState) (Result, error)
}

// RegistrarFunc adapts a function into a Registrar.
type RegistrarFunc func(ctx context.Context, form *FormState) (Result, error)

// Register implements Registrar.
func (f RegistrarFunc) Register(ctx context.Context, form *FormState) (Result, error) {
	return f(ctx, form)
}
