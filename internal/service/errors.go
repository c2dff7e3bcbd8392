package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrLoginUserNotFound         = errors.New("user not found")
	ErrLoginPasswordDoesNotMatch = errors.New("password does not match")
	ErrUserInactive              = errors.New("user is deactivated")
	ErrUserNotFound              = errors.New("user not found")
	ErrEmailTaken                = errors.New("user already exists with this email")

	ErrContactNotFound = errors.New("contact not found")

	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag with this name already exists")
	ErrTagShared   = errors.New("tag is used by other users' contacts")

	// ErrConflict covers constraint violations nobody translated into something more specific.
	ErrConflict = errors.New("conflicting change")
)

// IsNotFound reports whether err means the requested resource is absent or not visible to the caller.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrContactNotFound) ||
		errors.Is(err, ErrTagNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflict reports whether err is a uniqueness or reference violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrTagExists) ||
		errors.Is(err, ErrTagShared) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated)
}
