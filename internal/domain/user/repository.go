package user

import "context"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	// ListNotifiable returns the users eligible to receive push
	// notifications. Per-event preference filtering stays with the
	// dispatch provider.
	ListNotifiable(ctx context.Context) ([]User, error)
}
