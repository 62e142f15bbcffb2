package ports

import "context"

// UIBlocker suspends (or resumes) general interaction with the host UI.
type UIBlocker interface {
	SetBlocked(ctx context.Context, blocked bool) error
}
