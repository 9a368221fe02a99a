package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode string
	}{
		{name: "duplicate email", err: ErrDuplicateEmail, expectedCode: CodeDuplicateEmail},
		{name: "no such user hidden as invalid credentials", err: ErrNoSuchUser, expectedCode: CodeInvalidCredentials},
		{name: "invalid credential", err: ErrInvalidCredential, expectedCode: CodeInvalidCredentials},
		{name: "banned", err: ErrAccountBanned, expectedCode: CodeAccountBanned},
		{name: "not logged in", err: ErrNotLoggedIn, expectedCode: CodeNotLoggedIn},
		{name: "bad token", err: ErrTokenInvalid, expectedCode: CodeNotLoggedIn},
		{name: "forbidden", err: ErrForbidden, expectedCode: CodeForbidden},
		{name: "not found", err: ErrNotFound, expectedCode: CodeNotFound},
		{name: "invalid image", err: ErrInvalidImage, expectedCode: CodeInvalidImage},
		{name: "invalid category", err: ErrInvalidCategory, expectedCode: CodeInvalidCategory},
		{name: "invalid price", err: ErrInvalidPrice, expectedCode: CodeInvalidPrice},
		{name: "already approved", err: ErrAlreadyApproved, expectedCode: CodeAlreadyApproved},
		{name: "already rejected", err: ErrAlreadyRejected, expectedCode: CodeAlreadyRejected},
		{name: "wrapped not found", err: fmt.Errorf("approve: %w", ErrNotFound), expectedCode: CodeNotFound},
		{name: "storage failure", err: StorageError("insert listing", errors.New("connection reset")), expectedCode: CodeStorageFailure},
		{name: "unknown error", err: errors.New("boom"), expectedCode: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, got)
			}
		})
	}
}

func TestStorageError_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := StorageError("find listing", cause)

	if !errors.Is(err, ErrStorageFailure) {
		t.Error("expected error to match ErrStorageFailure")
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to keep its cause")
	}
	if err.Error() != "find listing: storage failure: connection reset" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestIsValidation(t *testing.T) {
	validation := []error{ErrInvalidImage, ErrInvalidCategory, ErrInvalidPrice, ErrInvalidForm, ErrDuplicateEmail, ErrWeakPassword}
	for _, err := range validation {
		if !IsValidation(err) {
			t.Errorf("expected %v to be a validation error", err)
		}
	}

	other := []error{ErrNotLoggedIn, ErrForbidden, ErrNotFound, ErrStorageFailure, ErrAlreadyApproved}
	for _, err := range other {
		if IsValidation(err) {
			t.Errorf("expected %v not to be a validation error", err)
		}
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrDuplicateEmail, ErrNoSuchUser, ErrInvalidCredential, ErrAccountBanned, ErrWeakPassword,
		ErrNotLoggedIn, ErrForbidden, ErrTokenInvalid, ErrNotFound, ErrInvalidImage,
		ErrInvalidCategory, ErrInvalidPrice, ErrInvalidForm, ErrAlreadyApproved,
		ErrAlreadyRejected, ErrStorageFailure,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("error %v should not match %v", a, b)
			}
		}
	}
}
