package domain

import (
	"errors"
	"fmt"
)

// Identity errors
var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrNoSuchUser        = errors.New("user not found")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrAccountBanned     = errors.New("account is banned")
	ErrWeakPassword      = errors.New("password does not meet requirements")
)

// Session errors
var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenInvalid = errors.New("invalid session token")
)

// Listing errors
var (
	ErrNotFound        = errors.New("listing not found")
	ErrInvalidImage    = errors.New("invalid image")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidForm     = errors.New("invalid form")
	ErrAlreadyApproved = errors.New("listing already approved")
	ErrAlreadyRejected = errors.New("listing already rejected")
)

// ErrStorageFailure marks any failed read or write against a backing store
var ErrStorageFailure = errors.New("storage failure")

// StorageError wraps a store error so it matches ErrStorageFailure while keeping the cause
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
}

// Error codes exposed at the HTTP boundary
const (
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountBanned      = "ACCOUNT_BANNED"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeNotLoggedIn        = "NOT_LOGGED_IN"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidImage       = "INVALID_IMAGE"
	CodeInvalidCategory    = "INVALID_CATEGORY"
	CodeInvalidPrice       = "INVALID_PRICE"
	CodeInvalidForm        = "INVALID_FORM"
	CodeAlreadyApproved    = "ALREADY_APPROVED"
	CodeAlreadyRejected    = "ALREADY_REJECTED"
	CodeStorageFailure     = "STORAGE_FAILURE"
	CodeInternal           = "INTERNAL"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrDuplicateEmail, CodeDuplicateEmail},
	// NoSuchUser and InvalidCredential are not told apart to clients
	{ErrNoSuchUser, CodeInvalidCredentials},
	{ErrInvalidCredential, CodeInvalidCredentials},
	{ErrAccountBanned, CodeAccountBanned},
	{ErrWeakPassword, CodeWeakPassword},
	{ErrNotLoggedIn, CodeNotLoggedIn},
	{ErrTokenInvalid, CodeNotLoggedIn},
	{ErrForbidden, CodeForbidden},
	{ErrNotFound, CodeNotFound},
	{ErrInvalidImage, CodeInvalidImage},
	{ErrInvalidCategory, CodeInvalidCategory},
	{ErrInvalidPrice, CodeInvalidPrice},
	{ErrInvalidForm, CodeInvalidForm},
	{ErrAlreadyApproved, CodeAlreadyApproved},
	{ErrAlreadyRejected, CodeAlreadyRejected},
	{ErrStorageFailure, CodeStorageFailure},
}

// Code returns the structured error code for err
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// IsValidation reports whether err is a recoverable input validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidImage) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidForm) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrWeakPassword)
}
