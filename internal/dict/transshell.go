package dict

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ankiword/ankiword/internal"
)

// RunnerConfig holds configuration for translate-shell invocations
type RunnerConfig struct {
	Command    string // translate-shell binary (default: "trans")
	SourceLang string // source language code (default: "en")
	TargetLang string // target language code (default: "en")
	TmpDir     string // directory for downloaded audio files
}

// DefaultRunnerConfig returns the default English-to-English configuration
func DefaultRunnerConfig() *RunnerConfig {
	return &RunnerConfig{
		Command:    "trans",
		SourceLang: "en",
		TargetLang: "en",
		TmpDir:     os.TempDir(),
	}
}

// Runner invokes the translate-shell CLI for dictionary dumps and
// pronunciation audio downloads.
type Runner struct {
	config *RunnerConfig
}

// NewRunner creates a new Runner with the given configuration
func NewRunner(config *RunnerConfig) *Runner {
	if config == nil {
		config = DefaultRunnerConfig()
	}
	if config.Command == "" {
		config.Command = "trans"
	}
	if config.TmpDir == "" {
		config.TmpDir = os.TempDir()
	}
	return &Runner{config: config}
}

// CheckInstalled verifies that translate-shell is available on the system
func (r *Runner) CheckInstalled() error {
	if err := exec.Command(r.config.Command, "-V").Run(); err != nil {
		return fmt.Errorf("%s is not installed or not in PATH: %w", r.config.Command, err)
	}
	return nil
}

// Dump runs a dictionary dump for the given word and returns the raw
// process output. The locale is forced to English so part-of-speech labels
// come back in English regardless of the user's environment.
func (r *Runner) Dump(ctx context.Context, word string) ([]byte, error) {
	args := []string{
		"-dump",
		"-no-ansi",
		"-s", r.config.SourceLang,
		"-t", r.config.TargetLang,
		word,
	}

	cmd := exec.CommandContext(ctx, r.config.Command, args...)
	cmd.Env = append(os.Environ(), "LANG=en_US.UTF-8")

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s -dump failed: %w", r.config.Command, err)
	}
	return output, nil
}

// Lookup runs a dump for the word and parses it into an Entry. Lookup never
// fails: a broken or missing dump yields an Entry with empty fields.
func (r *Runner) Lookup(ctx context.Context, word string) Entry {
	output, err := r.Dump(ctx, word)
	if err != nil {
		return Entry{Word: word}
	}
	return Parse(output, word)
}

// AudioFilename returns the media filename used for a word's pronunciation clip
func AudioFilename(word string) string {
	return fmt.Sprintf("anki_audio_%s.mp3", internal.SanitizeFilename(word))
}

// DownloadAudio asks translate-shell to download the pronunciation clip for
// a word into the temp directory. It returns the staged file path and the
// media filename. Success is judged purely by the file existing with a
// non-zero size; the process exit code is ignored.
func (r *Runner) DownloadAudio(ctx context.Context, word string) (path, filename string, err error) {
	filename = AudioFilename(word)
	path = filepath.Join(r.config.TmpDir, filename)

	args := []string{
		"-download-audio-as", path,
		"-s", r.config.SourceLang,
		"-speak",
		"-no-ansi",
		word,
	}

	cmd := exec.CommandContext(ctx, r.config.Command, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	_ = cmd.Run()

	info, statErr := os.Stat(path)
	if statErr != nil || info.Size() == 0 {
		return "", "", fmt.Errorf("no audio downloaded for %q", word)
	}
	return path, filename, nil
}
