package enrich

import "testing"

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain lines",
			content: "The cat sat.\nThe dog ran.",
			want:    []string{"The cat sat.", "The dog ran."},
		},
		{
			name:    "list markers and blank lines stripped",
			content: "- The cat sat.\n\n• The dog ran.\n  ",
			want:    []string{"The cat sat.", "The dog ran."},
		},
		{
			name:    "empty response",
			content: "\n\n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSentences() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitSentences()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFetcherDisabledWithoutKey(t *testing.T) {
	if NewFetcher("").Enabled() {
		t.Error("Enabled() = true without an API key")
	}
	if !NewFetcher("sk-test").Enabled() {
		t.Error("Enabled() = false with an API key")
	}
}
