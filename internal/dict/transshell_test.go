package dict

import (
	"context"
	"os"
	"testing"

	"github.com/ankiword/ankiword/internal/testutil"
)

func TestAudioFilename(t *testing.T) {
	tests := []struct {
		name string
		word string
		want string
	}{
		{
			name: "plain word",
			word: "apple",
			want: "anki_audio_apple.mp3",
		},
		{
			name: "word with spaces",
			word: "give up",
			want: "anki_audio_give_up.mp3",
		},
		{
			name: "word with punctuation",
			word: "don't",
			want: "anki_audio_don_t.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AudioFilename(tt.word); got != tt.want {
				t.Errorf("AudioFilename(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(nil)

	if runner.config.Command != "trans" {
		t.Errorf("Command = %q, want %q", runner.config.Command, "trans")
	}
	if runner.config.SourceLang != "en" || runner.config.TargetLang != "en" {
		t.Errorf("langs = %q/%q, want en/en", runner.config.SourceLang, runner.config.TargetLang)
	}
	if runner.config.TmpDir == "" {
		t.Error("TmpDir is empty")
	}
}

func TestLookupWithStubCommand(t *testing.T) {
	dir := t.TempDir()
	script := testutil.CreateScript(t, dir, "trans-stub",
		`echo '[["noun", ["alpha", "beta"]]]'`)

	runner := NewRunner(&RunnerConfig{Command: script})
	entry := runner.Lookup(context.Background(), "word")

	if len(entry.Definitions) != 1 || entry.Definitions[0] != "(noun) alpha, beta" {
		t.Errorf("Definitions = %v, want the synonym definition", entry.Definitions)
	}
}

func TestLookupFailingCommandDegrades(t *testing.T) {
	runner := NewRunner(&RunnerConfig{Command: "false"})
	entry := runner.Lookup(context.Background(), "word")

	if entry.Word != "word" {
		t.Errorf("Word = %q, want %q", entry.Word, "word")
	}
	if entry.Translation != "" || len(entry.Definitions) != 0 {
		t.Errorf("expected empty entry, got %+v", entry)
	}
}

func TestDownloadAudioJudgesByFile(t *testing.T) {
	dir := t.TempDir()

	// The stub exits 0 but writes nothing: download must be judged a
	// failure purely by the missing file.
	noop := testutil.CreateScript(t, dir, "trans-noop", "exit 0")
	runner := NewRunner(&RunnerConfig{Command: noop, TmpDir: dir})
	if _, _, err := runner.DownloadAudio(context.Background(), "apple"); err == nil {
		t.Error("expected error when no file was written")
	}

	// This stub exits 1 but writes the file: that counts as success.
	writer := testutil.CreateScript(t, dir, "trans-writer",
		`printf 'mp3data' > "$2"; exit 1`)
	runner = NewRunner(&RunnerConfig{Command: writer, TmpDir: dir})
	path, filename, err := runner.DownloadAudio(context.Background(), "apple")
	if err != nil {
		t.Fatalf("DownloadAudio() error = %v", err)
	}
	if filename != "anki_audio_apple.mp3" {
		t.Errorf("filename = %q, want %q", filename, "anki_audio_apple.mp3")
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty file at %s", path)
	}
}
