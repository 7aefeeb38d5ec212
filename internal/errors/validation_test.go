package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("scale.min", "scale min must be less than scale max", 5)

	if err.Field != "scale.min" {
		t.Errorf("Expected field to be 'scale.min', got '%s'", err.Field)
	}

	if err.Message != "scale min must be less than scale max" {
		t.Errorf("Unexpected message: '%s'", err.Message)
	}

	expected := "validation error on field 'scale.min': scale min must be less than scale max"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("field1", "message1", nil))
	expected := "validation failed: field1 message1"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("field2", "message2", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("answers", "out of scale range", "scale_bounds", 9)

	if err.Rule != "scale_bounds" {
		t.Errorf("Expected rule to be 'scale_bounds', got '%s'", err.Rule)
	}

	if err.Field != "answers" {
		t.Errorf("Expected field to be 'answers', got '%s'", err.Field)
	}
}
