package errors

import (
	"fmt"
	"testing"
)

func TestLeitnerError_Error(t *testing.T) {
	err := &LeitnerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "fact not found",
	}

	expected := "NOT_FOUND: fact not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("question is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "question is required" {
		t.Errorf("Message = %q, want %q", err.Message, "question is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01J0000000000000000000000")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "01J0000000000000000000000" {
		t.Errorf("Details[id] = %v", err.Details["id"])
	}
}

func TestNewFileNotFound(t *testing.T) {
	err := NewFileNotFound("/decks/spanish.yaml")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Message != "file not found: /decks/spanish.yaml" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["path"] != "/decks/spanish.yaml" {
		t.Errorf("Details[path] = %v", err.Details["path"])
	}
}

func TestNewFileTooLarge(t *testing.T) {
	err := NewFileTooLarge(10*1024*1024, 15*1024*1024)

	if err.Code != ErrFileTooLarge {
		t.Errorf("Code = %q, want %q", err.Code, ErrFileTooLarge)
	}
	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["max_bytes"] != int64(10*1024*1024) {
		t.Errorf("Details[max_bytes] = %v, want %v", err.Details["max_bytes"], int64(10*1024*1024))
	}
	if err.Details["actual_bytes"] != int64(15*1024*1024) {
		t.Errorf("Details[actual_bytes] = %v, want %v", err.Details["actual_bytes"], int64(15*1024*1024))
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("disk full"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q", err.Message)
		}
		if err.Details["internal_error"] != "disk full" {
			t.Errorf("Details[internal_error] = %v, want %q", err.Details["internal_error"], "disk full")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Details == nil {
			t.Error("Details should not be nil")
		}
		if _, ok := err.Details["internal_error"]; ok {
			t.Error("Details should not carry internal_error for nil cause")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("x"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("x"), ErrInvalidRequest) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if Is(fmt.Errorf("plain error"), ErrNotFound) {
			t.Error("Is() = true, want false for non-LeitnerError")
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("deck[3]: %w", NewInvalidRequest("answer is required"))
		if !Is(wrapped, ErrInvalidRequest) {
			t.Error("Is() = false, want true for wrapped LeitnerError")
		}
	})
}
