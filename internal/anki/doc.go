// Package anki provides a client for the AnkiConnect HTTP API: deck
// listing, duplicate lookups, note submission and media storage. It also
// defines the note model the assistant fills in.
package anki
