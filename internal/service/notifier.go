package service

import "context"

// Notifier is the fire-and-forget notification sink consumed by the
// workflows. Implementations must never return an error to the caller:
// notification failure is logged, not propagated, and dispatch happens
// only after the triggering transaction has committed.
// *worker.Dispatcher is the production implementation.
type Notifier interface {
	Notify(ctx context.Context, userID, notifType, message string)
}
