package apperrors

import "errors"

// ErrNotFound indicates that a requested record could not be found.
var ErrNotFound = errors.New("record not found")

// ErrValidation indicates that input data failed client-side validation checks.
var ErrValidation = errors.New("validation error")

// ErrFetchFailed indicates that a list or detail retrieval from the collaborator failed.
var ErrFetchFailed = errors.New("fetch failed")

// ErrMutationRejected indicates that the collaborator rejected a create/update/delete/action request.
var ErrMutationRejected = errors.New("mutation rejected")

// ErrClosed indicates an operation was attempted on a controller that has been torn down.
var ErrClosed = errors.New("controller closed")

// ErrNoPendingAction indicates Confirm or Cancel was called on an idle action gate.
var ErrNoPendingAction = errors.New("no action pending confirmation")

// ErrPageOutOfRange indicates a page number outside [1, lastPage] was requested.
var ErrPageOutOfRange = errors.New("page out of range")
