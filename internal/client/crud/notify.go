package crud

import "context"

// Notifier surfaces operation outcomes to the operator.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Failure(ctx context.Context, msg string, err error)
}

type nopNotifier struct{}

func (nopNotifier) Success(context.Context, string)        {}
func (nopNotifier) Failure(context.Context, string, error) {}
