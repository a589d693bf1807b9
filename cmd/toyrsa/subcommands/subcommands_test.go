package subcommands

import (
	"testing"

	"github.com/poolpOrg/toyrsa/context"
)

func TestRegisterAndExecute(t *testing.T) {
	called := []string{}
	Register("test-ok", func(ctx *context.Context, args []string) int {
		called = append(called, args...)
		return 0
	})
	Register("test-fail", func(ctx *context.Context, args []string) int {
		return 2
	})

	status, err := Execute(context.NewContext(), "test-ok", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if status != 0 {
		t.Errorf("Expected status 0, got %d", status)
	}
	if len(called) != 2 || called[0] != "a" || called[1] != "b" {
		t.Errorf("Expected arguments to be passed through, got %v", called)
	}

	status, err = Execute(context.NewContext(), "test-fail", nil)
	if err != nil || status != 2 {
		t.Errorf("Expected status 2 and no error, got %d and %v", status, err)
	}

	if _, err := Execute(context.NewContext(), "nonexistent", nil); err == nil {
		t.Error("Expected error for unknown command")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1] > list[i] {
			t.Fatalf("Expected sorted command list, got %v", list)
		}
	}
}
