package internal

import (
	"strconv"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain word",
			input: "apple",
			want:  "apple",
		},
		{
			name:  "spaces and punctuation",
			input: "don't give up!",
			want:  "don_t_give_up_",
		},
		{
			name:  "non-latin characters",
			input: "ябълка",
			want:  "______",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateNoteID(t *testing.T) {
	id := GenerateNoteID()

	millis, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		t.Fatalf("GenerateNoteID() = %q, not numeric", id)
	}
	// Sanity bounds: after 2020, before 2100.
	if millis < 1577836800000 || millis > 4102444800000 {
		t.Errorf("GenerateNoteID() = %d, outside plausible range", millis)
	}
}
