package anki

import "fmt"

// Field names of the card template the note is submitted against.
const (
	FieldNoteID        = "Note ID"
	FieldWord          = "Word"
	FieldTranslation   = "Translation"
	FieldIPA           = "IPA transcription"
	FieldPoS           = "PoS"
	FieldExamples      = "Example sentence(s)"
	FieldNotes         = "Notes"
	FieldPronunciation = "Pronunciation sound"
	FieldPicture       = "Picture"
)

// blankFields are card-template fields the assistant never fills but the
// model still defines; they are submitted empty.
var blankFields = []string{
	"Article",
	"Gender",
	"Specification term",
	"Article pronunciation",
	"Order",
	"Test spelling?",
}

// Note is a flashcard record submitted to AnkiConnect. It is constructed
// once per accepted word and never mutated after submission.
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Options   NoteOptions       `json:"options"`
	Tags      []string          `json:"tags"`
}

// NoteOptions controls AnkiConnect duplicate handling on addNote
type NoteOptions struct {
	AllowDuplicate bool   `json:"allowDuplicate"`
	DuplicateScope string `json:"duplicateScope"`
}

// NewNote creates a note for the given deck and model with all template
// fields present and blank
func NewNote(deckName, modelName string) *Note {
	fields := make(map[string]string, len(blankFields)+8)
	for _, name := range blankFields {
		fields[name] = ""
	}
	return &Note{
		DeckName:  deckName,
		ModelName: modelName,
		Fields:    fields,
		Options: NoteOptions{
			AllowDuplicate: false,
			DuplicateScope: "deck",
		},
		Tags: []string{"script_added"},
	}
}

// SoundTag formats an audio media reference for a note field
func SoundTag(filename string) string {
	return fmt.Sprintf("[sound:%s]", filename)
}

// ImageTag formats an image media reference for a note field
func ImageTag(filename string) string {
	return fmt.Sprintf(`<img src="%s">`, filename)
}
