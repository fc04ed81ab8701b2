package status

import "errors"

var (
	ErrValidationFailed  = errors.New("publish: draft failed validation")
	ErrCriticalWarning   = errors.New("publish: media carries a critical content warning")
	ErrDraftNotFound     = errors.New("draft: no persisted draft found")
	ErrEmptyImageBatch   = errors.New("media: image batch is empty")
	ErrRateLimitExceeded = errors.New("rate limit: too many generation requests")
)
