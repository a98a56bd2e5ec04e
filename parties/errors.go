package parties

import "errors"

var (
	// ErrForbidden means the actor fails the authorization predicate for the
	// attempted operation. Distinct from ErrNotFound so a caller who already
	// knows a party exists is not told otherwise.
	ErrForbidden = errors.New("actor is not allowed to perform this operation")
	// ErrNotFound means a referenced party or invitation id does not resolve.
	ErrNotFound = errors.New("record does not exist")
	// ErrValidation means the request is malformed or missing required fields.
	ErrValidation = errors.New("invalid request")
	// ErrConflict means a concurrent or earlier mutation invalidated the
	// operation's precondition.
	ErrConflict = errors.New("conflicting pending state")
)
