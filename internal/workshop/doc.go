// Package workshop fetches and parses Steam Workshop item pages for KZ maps.
//
// The workshop link attached to a GlobalMap points at a Steam Community page.
// The scraper extracts the item title, preview image, file size and
// description so callers can render a map card without a Steam Web API key.
package workshop
