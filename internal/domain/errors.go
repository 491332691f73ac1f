// internal/domain/errors.go
package domain

import "errors"

// Kind classifies a domain failure for the transport boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnauthorized
	KindConflict
	KindInvalid
	KindDependency
)

// Error is a domain failure with a stable kind and user-facing message.
type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Kind() Kind    { return e.kind }

func newError(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// KindOf returns the kind of err, or KindUnknown when err is not a
// domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return KindUnknown
}

var (
	// General
	ErrNotFound     = newError(KindNotFound, "not found")
	ErrUnauthorized = newError(KindUnauthorized, "unauthorized")
	ErrInvalidInput = newError(KindInvalid, "invalid input")

	// Accounts
	ErrAccountNotFound    = newError(KindNotFound, "account not found")
	ErrEmailAlreadyExists = newError(KindConflict, "email already registered")
	ErrInvalidCredentials = newError(KindUnauthorized, "invalid email or password")
	ErrInvalidToken       = newError(KindUnauthorized, "invalid or expired token")
	ErrAlreadyVerified    = newError(KindConflict, "account already verified")

	// Profiles
	ErrProfileNotFound      = newError(KindNotFound, "profile not found")
	ErrProfileAlreadyExists = newError(KindConflict, "account already has a profile")
	ErrInvalidProfileType   = newError(KindInvalid, "operation not valid for this profile type")
	ErrInvalidRole          = newError(KindInvalid, "invalid organizational role")

	// Organizations
	ErrOrganizationNotFound  = newError(KindNotFound, "organization not found")
	ErrOrganizationNameTaken = newError(KindConflict, "organization name already in use")

	// Adoption animals and applications
	ErrAnimalNotFound                   = newError(KindNotFound, "animal not found")
	ErrAnimalAlreadyAdopted             = newError(KindConflict, "animal already adopted")
	ErrApplicationNotFound              = newError(KindNotFound, "adoption application not found")
	ErrApplicationAlreadyClosed         = newError(KindConflict, "adoption application already closed")
	ErrProfileAlreadyApplied            = newError(KindConflict, "profile already applied for this animal")
	ErrApplicationByOrganizationInvalid = newError(KindInvalid, "organizations cannot apply for adoption")
	ErrApplicationForOwnAnimal          = newError(KindInvalid, "cannot apply for your own animal")

	// Pets and sightings
	ErrPetNotFound   = newError(KindNotFound, "pet not found")
	ErrPetNotLost    = newError(KindConflict, "pet is not reported as lost")
	ErrSightNotFound = newError(KindNotFound, "sighting not found")

	// Files
	ErrFileStorage = newError(KindDependency, "file storage unavailable")

	// Donations
	ErrCampaignNotFound        = newError(KindNotFound, "donation campaign not found")
	ErrCampaignAlreadyFinished = newError(KindConflict, "donation campaign already finished")
	ErrInvalidAmount           = newError(KindInvalid, "amount must be greater than zero")
	ErrTransactionNotApproved  = newError(KindDependency, "payment was not approved")
	ErrPreferenceNotGenerated  = newError(KindDependency, "payment preference could not be generated")
	ErrMerchantNotLinked       = newError(KindConflict, "organization has no linked merchant account")
	ErrMerchantLinkFailed      = newError(KindDependency, "merchant account could not be linked")
)
