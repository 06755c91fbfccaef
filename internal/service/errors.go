package service

import "errors"

var (
	// ErrSyncInProgress is returned by Coordinator.Sync while another run is
	// active.
	ErrSyncInProgress = errors.New("sync run already in progress")

	// ErrInvalidSyncState is returned when a session phase is started out of
	// order.
	ErrInvalidSyncState = errors.New("invalid sync session state")

	// ErrRetryBudgetExceeded wraps a retry-after failure that was still
	// failing when the retry count or the backoff ceiling ran out.
	ErrRetryBudgetExceeded = errors.New("retry budget exceeded")

	ErrDownloadFailed = errors.New("download failed")
	ErrUploadFailed   = errors.New("upload failed")

	// ErrRecordsNotApplied reports a run whose remote changes were not all
	// written locally; the watermark stays where it was.
	ErrRecordsNotApplied = errors.New("some downloaded records were not applied")

	// ErrRecordsNotSent reports a run that left local changes out of the
	// upload; the watermark stays where it was so they are offered again.
	ErrRecordsNotSent = errors.New("some local changes were not uploaded")

	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)
