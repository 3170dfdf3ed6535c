package anki

import "testing"

func TestDuplicateQuery(t *testing.T) {
	tests := []struct {
		name string
		deck string
		word string
		want string
	}{
		{
			name: "plain word",
			deck: "Default",
			word: "apple",
			want: `deck:"Default" Word:*apple*`,
		},
		{
			name: "word with embedded quote",
			deck: "Default",
			word: `say "hi"`,
			want: `deck:"Default" Word:*say \"hi\"*`,
		},
		{
			name: "deck with quote",
			deck: `My "special" deck`,
			word: "apple",
			want: `deck:"My \"special\" deck" Word:*apple*`,
		},
		{
			name: "backslash is escaped before quoting",
			deck: "Default",
			word: `a\b`,
			want: `deck:"Default" Word:*a\\b*`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DuplicateQuery(tt.deck, tt.word); got != tt.want {
				t.Errorf("DuplicateQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}
