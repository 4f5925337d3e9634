package schema

import (
	"testing"

	"github.com/spf13/cobra"
)

func testTree() *cobra.Command {
	root := &cobra.Command{Use: "swapsage"}
	routes := &cobra.Command{Use: "routes", Short: "Fetch routes"}
	routes.Flags().String("chain", "", "Chain identifier")
	root.AddCommand(routes)
	quote := &cobra.Command{Use: "quote", Aliases: []string{"q"}}
	root.AddCommand(quote)
	return root
}

func TestBuildWholeTree(t *testing.T) {
	s, err := Build(testTree(), "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(s.Subcommands) != 2 {
		t.Fatalf("expected 2 subcommands, got %d", len(s.Subcommands))
	}
}

func TestBuildSubcommandByAlias(t *testing.T) {
	s, err := Build(testTree(), "q")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if s.Use != "quote" {
		t.Fatalf("unexpected command: %+v", s)
	}
}

func TestBuildUnknownPathFails(t *testing.T) {
	if _, err := Build(testTree(), "nope"); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestBuildCollectsFlags(t *testing.T) {
	s, err := Build(testTree(), "routes")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(s.Flags) != 1 || s.Flags[0].Name != "chain" {
		t.Fatalf("unexpected flags: %+v", s.Flags)
	}
}
