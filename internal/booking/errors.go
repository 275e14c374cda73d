package booking

import (
	"fmt"
)

const defaultRejection = "Could not create booking"

// RemoteRejection is the API refusing a submission. Message is the API's
// own wording when it gave one.
type RemoteRejection struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteRejection) Error() string { return e.Message }

func (e *RemoteRejection) Unwrap() error { return e.Err }

// FetchFailure means the venue or its bookings could not be loaded, so
// nothing was validated or submitted.
type FetchFailure struct {
	What string
	Err  error
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.What, e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// UserMessage is what to show a person; the underlying error is for logs.
func (e *FetchFailure) UserMessage() string {
	return "Could not load availability right now. Please try again."
}
