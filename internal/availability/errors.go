package availability

import (
	"errors"
	"fmt"
)

// Code identifies a local validation failure.
type Code string

const (
	CodeMissingDates       Code = "MissingDates"
	CodeInvalidRange       Code = "InvalidRange"
	CodeInvalidGuestCount  Code = "InvalidGuestCount"
	CodeGuestLimitExceeded Code = "GuestLimitExceeded"
	CodeDateConflict       Code = "DateConflict"
	CodeDayUnavailable     Code = "DayUnavailable"
)

// Error is a user-facing validation failure. Two errors match under
// errors.Is when their codes are equal, so the sentinels below can be used
// as targets regardless of the message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrMissingDates       = &Error{Code: CodeMissingDates, Message: "Choose both dates."}
	ErrInvalidRange       = &Error{Code: CodeInvalidRange, Message: "End date must be after start date."}
	ErrInvalidGuestCount  = &Error{Code: CodeInvalidGuestCount, Message: "Number of guests must be at least 1."}
	ErrGuestLimitExceeded = &Error{Code: CodeGuestLimitExceeded, Message: "Too many guests."}
	ErrDateConflict       = &Error{Code: CodeDateConflict, Message: "Selected dates include blocked days."}
	ErrDayUnavailable     = &Error{Code: CodeDayUnavailable, Message: "That day is not available."}
)

func guestLimitExceeded(max int) error {
	plural := "s"
	if max == 1 {
		plural = ""
	}
	return &Error{
		Code:    CodeGuestLimitExceeded,
		Message: fmt.Sprintf("Maximum %d guest%s allowed.", max, plural),
	}
}

func dateConflict(d Date) error {
	return &Error{
		Code:    CodeDateConflict,
		Message: fmt.Sprintf("Selected dates include blocked days (%s).", d),
	}
}

func dayUnavailable(d Date, reason string) error {
	return &Error{
		Code:    CodeDayUnavailable,
		Message: fmt.Sprintf("%s is not available: %s.", d, reason),
	}
}

// CodeOf extracts the validation code from err, if it carries one.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
