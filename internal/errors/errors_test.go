package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("store not loaded"), "Error: store not loaded"},
		{"wrapped", fmt.Errorf("loading 2024-03-02: %w", errors.New("disk I/O")), "Error: loading 2024-03-02: disk I/O"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("habit %q not found", "Floss")
	if want := `Error: habit "Floss" not found`; got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}
