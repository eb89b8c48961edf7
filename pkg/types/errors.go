package types

import (
	"errors"
	"fmt"
)

var (
	ErrDistrictNotFound      = errors.New("district not found")
	ErrVillageNotFound       = errors.New("village not found")
	ErrVillageMismatch       = errors.New("village does not belong to the supplied district")
	ErrHousingRecordNotFound = errors.New("housing record not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrBacklogNotFound       = errors.New("backlog entry not found")
	ErrUserNotFound          = errors.New("user not found")

	ErrDuplicateNIK         = errors.New("a housing record with this nik already exists")
	ErrDuplicateBacklog     = errors.New("a backlog entry for this location, type and period already exists")
	ErrDuplicateVillageCode = errors.New("a village with this code already exists in the district")
	ErrDuplicateUser        = errors.New("a user with this username or email already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient role for this operation")
)

// ValidationError reports malformed input caught before it reaches storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound reports whether err is one of the referenced-entity-absent
// sentinels.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrDistrictNotFound,
		ErrVillageNotFound,
		ErrHousingRecordNotFound,
		ErrDocumentNotFound,
		ErrBacklogNotFound,
		ErrUserNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrDuplicateNIK,
		ErrDuplicateBacklog,
		ErrDuplicateVillageCode,
		ErrDuplicateUser,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidation reports whether err was raised by input validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
