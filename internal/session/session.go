package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ankiword/ankiword/internal"
	"github.com/ankiword/ankiword/internal/anki"
	"github.com/ankiword/ankiword/internal/browser"
	"github.com/ankiword/ankiword/internal/dict"
	"github.com/ankiword/ankiword/internal/enrich"
	"github.com/ankiword/ankiword/internal/history"
	"github.com/ankiword/ankiword/internal/media"
	"github.com/ankiword/ankiword/internal/notify"
)

const (
	// DefaultDeck is used when no deck can be listed or selected
	DefaultDeck = "Default"

	// quitToken ends the session loop when typed as a word
	quitToken = "q"

	// maxRenderedExamples caps the example sentences placed on a card
	maxRenderedExamples = 4
)

// Config holds everything the session needs, resolved once at startup.
// Deck and language are immutable after selection.
type Config struct {
	AnkiURL   string
	ModelName string
	DeckName  string // preselected deck; empty means prompt

	TransCommand string
	SourceLang   string
	TargetLang   string
	TmpDir       string

	BrowserCommand string

	SkipAudio   bool
	SkipBrowser bool
	NoHistory   bool

	EnrichExamples bool
	OpenAIKey      string

	HistoryPath string
}

// Session orchestrates one card-creation cycle per iteration until the
// user quits. Everything runs synchronously on the calling goroutine.
type Session struct {
	config   *Config
	client   *anki.Client
	runner   *dict.Runner
	resolver *media.Resolver
	enricher *enrich.Fetcher
	prompter *Prompter
	hist     *history.Store
	log      *logrus.Logger
	out      io.Writer
	deck     string
}

// New creates a session wired to stdin/stdout
func New(config *Config, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
	}
	return &Session{
		config: config,
		client: anki.NewClient(config.AnkiURL, log),
		runner: dict.NewRunner(&dict.RunnerConfig{
			Command:    config.TransCommand,
			SourceLang: config.SourceLang,
			TargetLang: config.TargetLang,
			TmpDir:     config.TmpDir,
		}),
		resolver: media.NewResolver(nil, log),
		enricher: enrich.NewFetcher(config.OpenAIKey),
		prompter: NewPrompter(os.Stdin, os.Stdout),
		log:      log,
		out:      os.Stdout,
	}
}

// Run drives the interactive loop. It returns an error only when the
// startup liveness check fails; after that every per-iteration failure is
// reported and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	if err := s.client.Ping(ctx); err != nil {
		if nerr := notify.Alert("ankiword", "Anki is not running or AnkiConnect is unreachable"); nerr != nil {
			s.log.Debugf("notification failed: %v", nerr)
		}
		return fmt.Errorf("anki connection check failed: %w", err)
	}

	s.openHistory()
	defer s.closeHistory()

	s.deck = s.selectDeck(ctx)
	fmt.Fprintf(s.out, "Using deck: %s\n", s.deck)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprintf(s.out, "\n%s\n", strings.Repeat("-", 40))
		word, err := s.prompter.Ask(fmt.Sprintf("Enter word (or %q)", quitToken))
		if err != nil {
			return nil
		}
		if word == "" || strings.EqualFold(word, quitToken) {
			return nil
		}

		if err := s.addCard(ctx, word); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			// Per-iteration errors never end the session.
			s.log.Errorf("Error: %v", err)
		}
	}
}

// selectDeck lists the available decks and asks for a 1-based index.
// An unavailable listing or an empty answer selects the default deck.
func (s *Session) selectDeck(ctx context.Context) string {
	if s.config.DeckName != "" {
		return s.config.DeckName
	}

	decks, err := s.client.DeckNames(ctx)
	if err != nil {
		s.log.Warnf("could not list decks: %v", err)
		return DefaultDeck
	}
	if len(decks) == 0 {
		return DefaultDeck
	}

	fmt.Fprintln(s.out, "\nAvailable Decks:")
	for i, deck := range decks {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, deck)
	}

	for {
		choice, err := s.prompter.Ask(fmt.Sprintf("\nSelect deck (1-%d) [%s]", len(decks), DefaultDeck))
		if err != nil {
			return DefaultDeck
		}
		deck, ok := ChooseDeck(decks, choice)
		if ok {
			return deck
		}
		fmt.Fprintln(s.out, "Invalid selection.")
	}
}

// ChooseDeck resolves a deck selection answer against a deck listing.
// Empty input selects the default deck; anything else must be a valid
// 1-based index.
func ChooseDeck(decks []string, choice string) (string, bool) {
	if choice == "" {
		return DefaultDeck, true
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(decks) {
		return "", false
	}
	return decks[n-1], true
}

// cardDraft holds the user-editable card fields for one word
type cardDraft struct {
	Translation  string
	IPA          string
	PoS          string
	Examples     string
	Notes        string
	ImageSources string
}

// addCard runs one full card-creation cycle for a word
func (s *Session) addCard(ctx context.Context, word string) error {
	if s.isDuplicate(ctx, word) {
		proceed, err := s.prompter.Confirm("Add anyway?")
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	fmt.Fprintln(s.out, "Fetching dictionary data...")
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
		// The staged clip goes away no matter how this iteration ends.
		defer func() {
			if err := os.Remove(audioPath); err != nil {
				s.log.Debugf("could not remove temp audio: %v", err)
			}
		}()
	}

	if !s.config.SkipBrowser {
		if err := browser.Open(s.config.BrowserCommand, browser.ReferenceURLs(word)...); err != nil {
			s.log.Warnf("could not open browser: %v", err)
		}
	}

	if len(entry.Examples) == 0 && s.config.EnrichExamples && s.enricher.Enabled() {
		sentences, err := s.enricher.ExampleSentences(ctx, word, maxRenderedExamples)
		if err != nil {
			s.log.Warnf("example enrichment failed: %v", err)
		} else {
			entry.Examples = sentences
		}
	}

	draft, accepted, err := s.editCard(entry)
	if err != nil {
		return err
	}
	if !accepted {
		return nil
	}

	note := s.buildNote(word, draft)

	if audioPath != "" {
		if err := s.storeAudio(ctx, audioPath, audioName); err != nil {
			s.log.Warnf("could not store audio: %v", err)
		} else {
			note.Fields[anki.FieldPronunciation] = anki.SoundTag(audioName)
		}
	}

	if draft.ImageSources != "" {
		if tags := s.storeImages(ctx, draft.ImageSources); len(tags) > 0 {
			note.Fields[anki.FieldPicture] = strings.Join(tags, " ")
		}
	}

	id, err := s.client.AddNote(ctx, note)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to add card.")
		return err
	}
	if id == 0 {
		fmt.Fprintln(s.out, "Failed to add card.")
		return nil
	}

	fmt.Fprintf(s.out, "Card added! ID: %d\n", id)
	s.recordHistory(word, id)
	return nil
}

// isDuplicate checks the deck for an existing note with this word, via
// AnkiConnect and the local history as a fallback hint
func (s *Session) isDuplicate(ctx context.Context, word string) bool {
	ids, err := s.client.FindNotes(ctx, anki.DuplicateQuery(s.deck, word))
	if err != nil {
		s.log.Warnf("duplicate check failed: %v", err)
	} else if len(ids) > 0 {
		fmt.Fprintf(s.out, "Found %d existing note(s) matching %q in deck %q.\n", len(ids), word, s.deck)
		return true
	}

	if s.hist != nil {
		if added, ok, err := s.hist.LastAdded(word, s.deck); err == nil && ok {
			fmt.Fprintf(s.out, "You already added %q to %q on %s.\n", word, s.deck, added.Format("2006-01-02"))
			return true
		}
	}
	return false
}

// editCard presents the parsed fields for interactive override. Empty
// input keeps the parsed value. The bool result is the final confirmation.
func (s *Session) editCard(entry dict.Entry) (cardDraft, bool, error) {
	draft := cardDraft{
		Translation: entry.Translation,
		IPA:         entry.IPA,
		PoS:         entry.PartOfSpeech,
		Examples:    RenderExamples(entry.Examples),
	}

	fmt.Fprintln(s.out, "\n--- Card Details ---")
	fmt.Fprintf(s.out, "IPA: %s\n", entry.IPA)
	fmt.Fprintf(s.out, "Definitions found: %d\n", len(entry.Definitions))
	fmt.Fprintf(s.out, "Definition:\n%s\n", strings.ReplaceAll(entry.Translation, "<br>", "\n"))

	var err error
	if draft.Translation, err = s.prompter.AskDefault("Edit Definition (Enter to keep)", entry.Translation); err != nil {
		return draft, false, err
	}
	if draft.IPA, err = s.prompter.AskDefault(fmt.Sprintf("Edit IPA [%s]", entry.IPA), entry.IPA); err != nil {
		return draft, false, err
	}
	if draft.PoS, err = s.prompter.AskDefault(fmt.Sprintf("Edit PoS [%s]", entry.PartOfSpeech), entry.PartOfSpeech); err != nil {
		return draft, false, err
	}

	fmt.Fprintf(s.out, "Examples found:\n%s\n", strings.ReplaceAll(draft.Examples, "<br>", "\n"))
	if draft.Examples, err = s.prompter.AskDefault("Edit Examples (Enter to keep)", draft.Examples); err != nil {
		return draft, false, err
	}
	if draft.Notes, err = s.prompter.Ask("Notes"); err != nil {
		return draft, false, err
	}
	if draft.ImageSources, err = s.prompter.Ask("Picture (URLs or paths, comma-separated)"); err != nil {
		return draft, false, err
	}

	accepted, err := s.prompter.Confirm("Add card?")
	if err != nil {
		return draft, false, err
	}
	return draft, accepted, nil
}

// RenderExamples formats example sentences as bullet lines joined with
// Anki's line-break marker, capped at maxRenderedExamples
func RenderExamples(examples []string) string {
	if len(examples) > maxRenderedExamples {
		examples = examples[:maxRenderedExamples]
	}
	bullets := make([]string, 0, len(examples))
	for _, example := range examples {
		bullets = append(bullets, fmt.Sprintf("• %s", example))
	}
	return strings.Join(bullets, "<br>")
}

// buildNote assembles the final note from the edited draft
func (s *Session) buildNote(word string, draft cardDraft) *anki.Note {
	note := anki.NewNote(s.deck, s.config.ModelName)
	note.Fields[anki.FieldNoteID] = internal.GenerateNoteID()
	note.Fields[anki.FieldWord] = word
	note.Fields[anki.FieldTranslation] = draft.Translation
	note.Fields[anki.FieldIPA] = draft.IPA
	note.Fields[anki.FieldPoS] = draft.PoS
	note.Fields[anki.FieldExamples] = draft.Examples
	note.Fields[anki.FieldNotes] = draft.Notes
	return note
}

// storeAudio uploads the staged pronunciation clip to Anki's media store
func (s *Session) storeAudio(ctx context.Context, path, filename string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}
	return s.client.StoreMediaFile(ctx, filename, base64.StdEncoding.EncodeToString(data))
}

// storeImages resolves the picture sources and uploads each one, returning
// an inline image tag per stored file. A failing source or store call is
// logged and skipped.
func (s *Session) storeImages(ctx context.Context, sources string) []string {
	var tags []string
	for _, img := range s.resolver.ResolveSources(ctx, sources) {
		if err := s.client.StoreMediaFile(ctx, img.Filename, img.Data); err != nil {
			s.log.Warnf("could not store image %s: %v", img.Filename, err)
			continue
		}
		tags = append(tags, anki.ImageTag(img.Filename))
	}
	return tags
}

func (s *Session) openHistory() {
	if s.config.NoHistory {
		return
	}
	path := s.config.HistoryPath
	if path == "" {
		path = history.DefaultPath()
	}
	store, err := history.Open(path)
	if err != nil {
		s.log.Warnf("history disabled: %v", err)
		return
	}
	s.hist = store
}

func (s *Session) closeHistory() {
	if s.hist == nil {
		return
	}
	if err := s.hist.Close(); err != nil {
		s.log.Debugf("could not close history: %v", err)
	}
}

func (s *Session) recordHistory(word string, noteID int64) {
	if s.hist == nil {
		return
	}
	if err := s.hist.Record(word, s.deck, noteID); err != nil {
		s.log.Warnf("could not record history: %v", err)
	}
}
