package dict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// maxInlineSynonyms caps the synonym suffix attached to a definition
	maxInlineSynonyms = 3
	// maxFallbackSynonyms caps a synonym-only definition
	maxFallbackSynonyms = 5
)

// Entry is the flattened dictionary data extracted from a translate-shell dump.
// Missing or unparseable pieces of the payload leave the corresponding field
// at its zero value; Parse never fails.
type Entry struct {
	Word         string
	IPA          string
	PartOfSpeech string
	Translation  string
	Definitions  []string
	Examples     []string
}

// node is one loosely typed position inside the dump payload. The payload is
// a deeply nested array whose element types vary by position, so every level
// is decoded defensively from raw JSON.
type node = json.RawMessage

// definitionEntry is an entry whose first element is the definition text.
// An optional third element carries an example sentence.
type definitionEntry struct {
	text    string
	example string
}

// synonymGroup is an entry whose first element is itself a list of synonym
// strings rather than definition text.
type synonymGroup struct {
	synonyms []string
}

// posBlock is a (part of speech, entry list) pair inside an
// explanation-style top-level item.
type posBlock struct {
	pos     string
	entries []node
}

// Parse converts the raw output of `trans -dump` into an Entry. The input is
// the full process output; everything outside the first `[` and the last `]`
// is discarded. Any structural mismatch degrades the affected field to its
// default instead of returning an error.
func Parse(raw []byte, word string) Entry {
	entry := Entry{Word: word}

	payload, ok := ExtractArray(raw)
	if !ok {
		return entry
	}

	var items []node
	if err := json.Unmarshal(payload, &items); err != nil {
		return entry
	}

	entry.IPA = extractIPA(items)

	labels := newLabelSet()
	entry.Definitions, entry.Examples = extractDefinitions(items, labels)

	// Synonym-style fallback, only when the explanation pass found nothing.
	if len(entry.Definitions) == 0 {
		entry.Definitions = extractSynonymDefinitions(items, labels)
	}

	entry.PartOfSpeech = strings.Join(labels.values, ", ")
	entry.Translation = strings.Join(entry.Definitions, "<br>")

	return entry
}

// ExtractArray returns the substring between the first `[` and the last `]`
// of the raw tool output. translate-shell prints the dump surrounded by
// status noise, so everything outside the brackets is dropped.
func ExtractArray(raw []byte) ([]byte, bool) {
	start := bytes.IndexByte(raw, '[')
	end := bytes.LastIndexByte(raw, ']')
	if start == -1 || end <= start {
		return nil, false
	}
	return raw[start : end+1], true
}

// extractIPA pulls the phonetic transcription out of the payload's first
// element: items[0][1][3], when that path exists and holds a string.
func extractIPA(items []node) string {
	if len(items) == 0 {
		return ""
	}
	first, ok := asArray(items[0])
	if !ok || len(first) < 2 {
		return ""
	}
	inner, ok := asArray(first[1])
	if !ok || len(inner) <= 3 {
		return ""
	}
	ipa, ok := asString(inner[3])
	if !ok || ipa == "" {
		return ""
	}
	return fmt.Sprintf("/%s/", ipa)
}

// extractDefinitions walks the explanation-style items: top-level entries
// that are sequences of posBlock pairs. Definitions render as
// "(<pos>) <text>", optionally suffixed with up to maxInlineSynonyms
// synonyms taken from sibling synonym groups in the same block.
func extractDefinitions(items []node, labels *labelSet) (definitions, examples []string) {
	for _, item := range items {
		blocks, ok := asArray(item)
		if !ok || len(blocks) == 0 {
			continue
		}
		// Explanation-style items start with a nested list; anything else
		// (strings, numbers) marks a different payload section.
		if firstInner, isList := asArray(blocks[0]); !isList || len(firstInner) == 0 {
			continue
		}

		for _, rawBlock := range blocks {
			block, ok := decodePosBlock(rawBlock)
			if !ok {
				continue
			}

			var defs []definitionEntry
			var synonyms []string
			for _, rawEntry := range block.entries {
				def, group := decodeEntry(rawEntry)
				switch {
				case def != nil:
					defs = append(defs, *def)
				case group != nil:
					synonyms = append(synonyms, group.synonyms...)
				}
			}
			if len(defs) == 0 {
				continue
			}

			labels.add(block.pos)
			suffix := synonymSuffix(synonyms)
			for _, def := range defs {
				definitions = append(definitions, fmt.Sprintf("(%s) %s%s", block.pos, def.text, suffix))
				if def.example != "" {
					examples = append(examples, def.example)
				}
			}
		}
	}
	return definitions, examples
}

// extractSynonymDefinitions handles synonym-style payloads: top-level
// (pos, [synonyms...]) pairs. Each pair yields one definition joining the
// first maxFallbackSynonyms synonyms.
func extractSynonymDefinitions(items []node, labels *labelSet) []string {
	var definitions []string
	for _, item := range items {
		pair, ok := asArray(item)
		if !ok || len(pair) < 2 {
			continue
		}
		pos, ok := asString(pair[0])
		if !ok {
			continue
		}
		synonyms, ok := asStringSlice(pair[1])
		if !ok {
			continue
		}
		if len(synonyms) > maxFallbackSynonyms {
			synonyms = synonyms[:maxFallbackSynonyms]
		}
		labels.add(pos)
		definitions = append(definitions, fmt.Sprintf("(%s) %s", pos, strings.Join(synonyms, ", ")))
	}
	return definitions
}

// decodePosBlock decodes a (pos, entries) pair. The first element must be a
// string and the second a list; anything else is not a pos block.
func decodePosBlock(raw node) (posBlock, bool) {
	arr, ok := asArray(raw)
	if !ok || len(arr) < 2 {
		return posBlock{}, false
	}
	pos, ok := asString(arr[0])
	if !ok {
		return posBlock{}, false
	}
	entries, ok := asArray(arr[1])
	if !ok {
		return posBlock{}, false
	}
	return posBlock{pos: pos, entries: entries}, true
}

// decodeEntry classifies one entry inside a pos block. A string first
// element marks a definition; a nested string list marks a synonym group.
// Exactly one of the results is non-nil on success.
func decodeEntry(raw node) (*definitionEntry, *synonymGroup) {
	arr, ok := asArray(raw)
	if !ok || len(arr) == 0 {
		return nil, nil
	}

	if text, ok := asString(arr[0]); ok {
		def := &definitionEntry{text: text}
		if len(arr) > 2 {
			if example, ok := asString(arr[2]); ok {
				def.example = example
			}
		}
		return def, nil
	}

	if synonyms, ok := asStringSlice(arr[0]); ok {
		return nil, &synonymGroup{synonyms: synonyms}
	}

	return nil, nil
}

// synonymSuffix renders up to maxInlineSynonyms synonyms as a definition
// suffix, or an empty string when there are none.
func synonymSuffix(synonyms []string) string {
	if len(synonyms) == 0 {
		return ""
	}
	if len(synonyms) > maxInlineSynonyms {
		synonyms = synonyms[:maxInlineSynonyms]
	}
	return fmt.Sprintf(" (syn: %s)", strings.Join(synonyms, ", "))
}

// labelSet accumulates distinct part-of-speech labels in first-seen order.
type labelSet struct {
	seen   map[string]bool
	values []string
}

func newLabelSet() *labelSet {
	return &labelSet{seen: make(map[string]bool)}
}

func (s *labelSet) add(label string) {
	if s.seen[label] {
		return
	}
	s.seen[label] = true
	s.values = append(s.values, label)
}

// Unmarshalling null into a string or slice target succeeds without
// assigning anything, so every helper rejects null explicitly.
func isNull(raw node) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func asArray(raw node) ([]node, bool) {
	if isNull(raw) {
		return nil, false
	}
	var arr []node
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

func asString(raw node) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func asStringSlice(raw node) ([]string, bool) {
	if isNull(raw) {
		return nil, false
	}
	var s []string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return s, true
}
