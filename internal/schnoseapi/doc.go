// Package schnoseapi is a client for the SchnoseAPI map listing.
//
// SchnoseAPI mirrors the GlobalAPI map data and enriches it with per-course
// tiers and mapper identities, which the GlobalAPI does not expose.
package schnoseapi
