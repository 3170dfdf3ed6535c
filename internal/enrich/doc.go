// Package enrich fills gaps in dictionary data using the OpenAI API.
// Enrichment is strictly best-effort and opt-in: without an API key the
// session runs unchanged.
package enrich
