package policy

import (
	"testing"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
)

func TestEmptyAllowlistPermitsEverything(t *testing.T) {
	if err := CheckCommandAllowed(nil, "analyze"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAllowlistMatchIsCaseAndSpaceInsensitive(t *testing.T) {
	if err := CheckCommandAllowed([]string{" Routes "}, "routes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAllowlistBlocksUnlistedCommand(t *testing.T) {
	err := CheckCommandAllowed([]string{"quote"}, "analyze")
	cErr, ok := clierr.As(err)
	if !ok || cErr.Code != clierr.CodeBlocked {
		t.Fatalf("expected blocked error, got %v", err)
	}
}
