// Package media resolves user-supplied picture sources into base64
// payloads for Anki's media collection. Sources are HTTP(S) URLs fetched
// with a bounded timeout and size cap, or local paths with user-home
// shorthand expansion.
package media
