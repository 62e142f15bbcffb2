package ports

import "context"

// ClickHandler is invoked for every click delivered by a ClickSource.
type ClickHandler func(ctx context.Context)

// UnsubscribeFunc detaches a handler. Calling it more than once is safe.
type UnsubscribeFunc func()

// ClickSource delivers clicks on the host document.
type ClickSource interface {
	Subscribe(handler ClickHandler) UnsubscribeFunc
}
