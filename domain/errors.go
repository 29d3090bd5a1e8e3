package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("requested item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")

	// validation failures, always terminal
	ErrMissingFields    = errors.New("missing required fields")
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrInvalidEnsName   = errors.New("invalid ens name")

	// cryptographic failures, never escape the verifier boundary as panics
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidNonce     = errors.New("invalid or expired nonce")

	// registry write guards
	ErrEmptyAddress = errors.New("address must not be empty")
	ErrEmptyChainId = errors.New("chain id must not be empty")
)
