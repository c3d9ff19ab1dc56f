package domain

import "errors"

var (
	// requested parameters are not acceptable.
	ErrInvalid = errors.New("invalid parameter")

	// the requester is known, but not permitted to do that.
	ErrForbidden = errors.New("forbidden")

	// the requester is not known, or the credential is not valid.
	ErrUnauthenticated = errors.New("unauthenticated")
)
