/*
Package errors provides the error taxonomy shared by every table store.

Callers tell "not found" from "conflict" from "transient failure" with
errors.Is or the helpers below, never by inspecting message text:

	var (
	    ErrNotFound           = errors.New("entity not found")
	    ErrAlreadyExists      = errors.New("entity already exists")
	    ErrInvalidInput       = errors.New("invalid input")
	    ErrPreconditionFailed = errors.New("precondition failed")
	    ErrStorage            = errors.New("storage request failed")
	)

Usage:

	err := table.Merge(ctx, team)
	switch {
	case errors.IsPreconditionFailed(err):
	    // somebody else won the race; reload and retry
	case errors.IsNotFound(err):
	    // row is gone
	case errors.IsStorageError(err):
	    log.Printf("store returned %d", errors.StatusCode(err))
	}

StorageError carries the provider's numeric status and error code and
unwraps to the original SDK error.
*/
package errors
