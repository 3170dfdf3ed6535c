package session

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ankiword/ankiword/internal"
	"github.com/ankiword/ankiword/internal/anki"
)

// ReadWordList reads a batch file with one word per line. Blank lines and
// lines starting with # are skipped.
func ReadWordList(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var words []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}

// RunBatch adds one card per word from a file without prompting. Parsed
// values are used as-is, duplicates are skipped, and per-word failures
// never stop the run.
func (s *Session) RunBatch(ctx context.Context, path string) error {
	words, err := ReadWordList(path)
	if err != nil {
		return err
	}

	if err := s.client.Ping(ctx); err != nil {
		return fmt.Errorf("anki connection check failed: %w", err)
	}

	s.openHistory()
	defer s.closeHistory()

	s.deck = s.config.DeckName
	if s.deck == "" {
		s.deck = DefaultDeck
	}
	fmt.Fprintf(s.out, "Using deck: %s\n", s.deck)

	added := 0
	skipped := 0
	failed := 0

	for i, word := range words {
		if ctx.Err() != nil {
			break
		}

		fmt.Fprintf(s.out, "\nProcessing %d/%d: %s\n", i+1, len(words), word)

		if s.isDuplicate(ctx, word) {
			fmt.Fprintf(s.out, "  Skipping %q - already present\n", word)
			skipped++
			continue
		}

		if err := s.addCardUnattended(ctx, word); err != nil {
			s.log.Errorf("Error processing %q: %v", word, err)
			failed++
			continue
		}
		added++
	}

	fmt.Fprintf(s.out, "\n=== Batch Summary ===\n")
	fmt.Fprintf(s.out, "Total words: %d\n", len(words))
	fmt.Fprintf(s.out, "Added: %d\n", added)
	fmt.Fprintf(s.out, "Skipped (duplicates): %d\n", skipped)
	if failed > 0 {
		fmt.Fprintf(s.out, "Errors: %d\n", failed)
	}
	fmt.Fprintf(s.out, "=====================\n")

	return nil
}

// addCardUnattended builds and submits a card from parsed values only
func (s *Session) addCardUnattended(ctx context.Context, word string) error {
	entry := s.runner.Lookup(ctx, word)
	if err := ctx.Err(); err != nil {
		return err
	}

	var audioPath, audioName string
	if !s.config.SkipAudio {
		path, name, err := s.runner.DownloadAudio(ctx, word)
		if err != nil {
			s.log.Warnf("no pronunciation audio: %v", err)
		} else {
			audioPath, audioName = path, name
		}
	}
	if audioPath != "" {
		defer func() {
			if err := os.Remove(audioPath); err != nil {
				s.log.Debugf("could not remove temp audio: %v", err)
			}
		}()
	}

	if len(entry.Examples) == 0 && s.config.EnrichExamples && s.enricher.Enabled() {
		sentences, err := s.enricher.ExampleSentences(ctx, word, maxRenderedExamples)
		if err != nil {
			s.log.Warnf("example enrichment failed: %v", err)
		} else {
			entry.Examples = sentences
		}
	}

	note := anki.NewNote(s.deck, s.config.ModelName)
	note.Fields[anki.FieldNoteID] = internal.GenerateNoteID()
	note.Fields[anki.FieldWord] = word
	note.Fields[anki.FieldTranslation] = entry.Translation
	note.Fields[anki.FieldIPA] = entry.IPA
	note.Fields[anki.FieldPoS] = entry.PartOfSpeech
	note.Fields[anki.FieldExamples] = RenderExamples(entry.Examples)

	if audioPath != "" {
		if err := s.storeAudio(ctx, audioPath, audioName); err != nil {
			s.log.Warnf("could not store audio: %v", err)
		} else {
			note.Fields[anki.FieldPronunciation] = anki.SoundTag(audioName)
		}
	}

	id, err := s.client.AddNote(ctx, note)
	if err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("anki refused the note for %q", word)
	}

	fmt.Fprintf(s.out, "  Card added! ID: %d\n", id)
	s.recordHistory(word, id)
	return nil
}
