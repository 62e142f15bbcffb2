package domain

import "errors"

// ErrUnknownMode is returned when an annotation mode has no message variants.
var ErrUnknownMode = errors.New("unknown annotation mode")

// ErrMissingVariant is returned when a mode lacks the text for a mode-dependent step.
var ErrMissingVariant = errors.New("missing mode variant")

// ErrEmptyTour is returned when a tour is built without steps.
var ErrEmptyTour = errors.New("tour has no steps")

// ErrAlreadyStarted is returned when Start is called on a tour that is running or finished.
var ErrAlreadyStarted = errors.New("tour already started")

// ErrNotStarted is returned when a tour is advanced before Start.
var ErrNotStarted = errors.New("tour not started")

// ErrTourNotFound is returned when a tour ID cannot be found in a registry.
var ErrTourNotFound = errors.New("tour not found")
