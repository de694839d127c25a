package shared

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(Validation("bad")) != KindValidation {
		t.Fatal("validation kind lost")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatal("unknown errors must default to internal")
	}
	wrapped := fmt.Errorf("context: %w", NotFound("missing"))
	if KindOf(wrapped) != KindNotFound {
		t.Fatal("kind must survive wrapping")
	}
}

func TestUserSafeMessageHidesInternals(t *testing.T) {
	err := Internal("Internal server error during login.", errors.New("pg: connection refused"))
	if msg := UserSafeMessage(err); msg != "Internal server error." {
		t.Fatalf("internal cause leaked: %q", msg)
	}
	if msg := UserSafeMessage(Conflict("SubAdmin already exists.")); msg != "SubAdmin already exists." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Internal("wrapped", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause must be reachable via errors.Is")
	}
}
