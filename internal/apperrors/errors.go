package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPitchNotFound indicates that a pitch with the given ID does not exist.
	ErrPitchNotFound = errors.New("pitch not found")

	// ErrRoundNotFound indicates that a funding round does not exist for the pitch.
	ErrRoundNotFound = errors.New("funding round not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrProfileNotFound indicates that a profile with the given ID or user ID does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNotificationNotFound indicates that a notification with the given ID does not exist.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrCategoryNotFound indicates that a category with the given ID does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSessionNotFound indicates that no investment references the checkout session.
	ErrSessionNotFound = errors.New("checkout session not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrAmountOutOfRange indicates that an investment amount falls outside the
	// round's minimum/maximum ticket bounds.
	ErrAmountOutOfRange = errors.New("amount outside ticket range")

	// ErrRoundFullySubscribed indicates that the round has already reached its target.
	ErrRoundFullySubscribed = errors.New("round fully subscribed")

	// ErrRoundCapacityExceeded indicates that accepting the investment would push
	// the round past its target amount.
	ErrRoundCapacityExceeded = errors.New("investment exceeds remaining round capacity")

	// ErrRoundNotOpen indicates that the pitch has no open funding round.
	ErrRoundNotOpen = errors.New("funding round is not open")

	// ErrPitchNotActive indicates that the pitch is not accepting investments.
	ErrPitchNotActive = errors.New("pitch is not active")

	// ErrEquityRequired indicates an equity investment without a positive equity stake.
	ErrEquityRequired = errors.New("equity investments require a positive equity stake")

	// ErrEquityNotAllowed indicates a non-equity investment carrying an equity stake.
	ErrEquityNotAllowed = errors.New("equity stake only applies to equity investments")

	// ErrInvalidTransition indicates that the requested action is not valid
	// for the investment's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidPitchStatus indicates an unknown pitch status value.
	ErrInvalidPitchStatus = errors.New("invalid pitch status")

	// ErrDuplicateProfile indicates a profile already exists for the user or email.
	ErrDuplicateProfile = errors.New("profile already exists")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrOpenRoundExists indicates that the pitch already has an open round.
	ErrOpenRoundExists = errors.New("pitch already has an open funding round")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Pitch operation errors
	ErrFailedToRetrievePitches   = errors.New("failed to retrieve pitches")
	ErrFailedToRetrievePitch     = errors.New("failed to retrieve pitch")
	ErrFailedToCreatePitch       = errors.New("failed to create pitch")
	ErrFailedToUpdatePitch       = errors.New("failed to update pitch")
	ErrFailedToDeletePitch       = errors.New("failed to delete pitch")
	ErrFailedToReviewPitch       = errors.New("failed to review pitch")

	// Investment operation errors
	ErrFailedToRetrieveInvestments = errors.New("failed to retrieve investments")
	ErrFailedToRetrieveInvestment  = errors.New("failed to retrieve investment")
	ErrFailedToCreateInvestment    = errors.New("failed to create investment")
	ErrFailedToUpdateInvestment    = errors.New("failed to update investment")

	// Round operation errors
	ErrFailedToOpenRound  = errors.New("failed to open funding round")
	ErrFailedToCloseRound = errors.New("failed to close funding round")

	// Payment operation errors
	ErrFailedToCreateSession  = errors.New("failed to create checkout session")
	ErrFailedToProcessWebhook = errors.New("failed to process payment webhook")

	// Profile operation errors
	ErrFailedToRetrieveProfile = errors.New("failed to retrieve profile")
	ErrFailedToCreateProfile   = errors.New("failed to create profile")
	ErrFailedToUpdateProfile   = errors.New("failed to update profile")

	// Notification operation errors
	ErrFailedToRetrieveNotifications = errors.New("failed to retrieve notifications")
	ErrFailedToUpdateNotification    = errors.New("failed to update notification")

	// Category operation errors
	ErrFailedToRetrieveCategories = errors.New("failed to retrieve categories")
	ErrFailedToSaveCategory       = errors.New("failed to save category")
	ErrFailedToDeleteCategory     = errors.New("failed to delete category")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., an investment references a round that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
