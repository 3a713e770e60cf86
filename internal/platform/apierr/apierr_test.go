package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsUnwrapsWrappedAPIError(t *testing.T) {
	base := BadRequest("query_required", errors.New("query is required"))
	wrapped := fmt.Errorf("search: %w", base)

	got := As(wrapped)
	if got != base {
		t.Fatalf("unexpected error: got=%v want=%v", got, base)
	}
	if got.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", got.Status, http.StatusBadRequest)
	}
}

func TestAsDefaultsToInternal(t *testing.T) {
	got := As(errors.New("boom"))
	if got.Status != http.StatusInternalServerError || got.Code != "internal_error" {
		t.Fatalf("unexpected error: %+v", got)
	}
	if As(nil) != nil {
		t.Fatalf("nil error should map to nil")
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := New(0, "scheme_not_found", nil).Error(); got != "scheme_not_found" {
		t.Fatalf("unexpected message: %q", got)
	}
}
