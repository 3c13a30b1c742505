package errors

import (
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	wrapped := fmt.Errorf("repository.GetByID: %w", ErrNotFound)

	if !IsNotFound(wrapped) {
		t.Error("Expected wrapped ErrNotFound to match")
	}
	if IsNotFound(ErrForbidden) {
		t.Error("Expected ErrForbidden not to match ErrNotFound")
	}
	if IsNotFound(nil) {
		t.Error("Expected nil not to match")
	}
}

func TestIsForbidden(t *testing.T) {
	if !IsForbidden(fmt.Errorf("service.GetOrder: %w", ErrForbidden)) {
		t.Error("Expected wrapped ErrForbidden to match")
	}
}

func TestIsConflictAndUnauthenticated(t *testing.T) {
	if !IsConflict(fmt.Errorf("repository.UpdateStatus: %w", ErrConflict)) {
		t.Error("Expected wrapped ErrConflict to match")
	}
	if !IsUnauthenticated(ErrUnauthenticated) {
		t.Error("Expected ErrUnauthenticated to match")
	}
	if IsUnauthenticated(ErrForbidden) {
		t.Error("Expected ErrForbidden not to match ErrUnauthenticated")
	}
}

func TestAsValidation(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError("word_count", "word count must be positive"))

	ve, ok := AsValidation(err)
	if !ok {
		t.Fatal("Expected validation error to be found")
	}
	if ve.Field != "word_count" {
		t.Errorf("Expected field 'word_count', got %s", ve.Field)
	}
	if ve.Details["field"] != "word_count" {
		t.Errorf("Expected details to carry the field, got %v", ve.Details)
	}

	if _, ok := AsValidation(ErrNotFound); ok {
		t.Error("Expected ErrNotFound not to be a validation error")
	}
}

func TestValidationError_WithDetail(t *testing.T) {
	ve := (&ValidationError{Field: "status", Message: "bad"}).WithDetail("from", "Complete")

	if ve.Details["from"] != "Complete" {
		t.Errorf("Expected detail 'from'='Complete', got %v", ve.Details)
	}
	if ve.Error() != "validation failed on status: bad" {
		t.Errorf("Unexpected message: %s", ve.Error())
	}
}
