package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestQuoteCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "proofreading with promotion",
			args: []string{"quote", "--service", "proof", "--delivery", "1 day", "--words", "1000", "--promo", "mrch2023"},
			want: []string{"Proofreading x0.85", "tier 0-3000", "Base price:  39.10", "MRCH2023 (-20%)", "Total:       31.28"},
		},
		{
			name: "unknown delivery",
			args: []string{"quote", "--delivery", "4 day", "--words", "1000"},
			want: []string{"unknown, standard rate applied", "Total:       46.00"},
		},
		{
			name: "unknown promotion",
			args: []string{"quote", "--words", "1000", "--promo", "NOPE"},
			want: []string{"NOPE (not recognised)", "Total:       46.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestQuoteCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "quote", "--words", "7501", "--delivery", "1 day", "--json")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to parse output: %v", err)
	}
	if resp["final_price"] != "330.05" {
		t.Errorf("Expected final_price 330.05, got %v", resp["final_price"])
	}
}

func TestQuoteCommand_RequiresWords(t *testing.T) {
	if _, err := runCLI(t, "quote"); err == nil {
		t.Error("Expected error when --words is missing")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "orders version "+Version) {
		t.Errorf("Unexpected version output %q", out)
	}
}
