package progress

import "errors"

// Engine error taxonomy. Handlers map these to HTTP statuses; callers may
// safely retry ErrStorageUnavailable because the ledger merge is idempotent.
var (
	// ErrInvalidInput rejects malformed or out-of-bound event data. Never
	// retried automatically.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownContentUnit rejects ids that are not present in the current
	// hierarchy snapshot.
	ErrUnknownContentUnit = errors.New("unknown content unit")

	// ErrStorageUnavailable marks transient storage failures.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCertificateConflict marks a duplicate issuance attempt. It never
	// escapes the issuer: the conflicting attempt resolves to the existing
	// certificate.
	ErrCertificateConflict = errors.New("certificate already issued")
)
