// Package timestamp (de)serializes the naive UTC timestamps used by the KZ APIs.
//
// Both upstream APIs render dates as "2006-01-02T15:04:05" (strftime
// "%Y-%m-%dT%H:%M:%S") without a zone. Parse only accepts strings in exactly
// that shape so that Format(Parse(s)) == s always holds.
package timestamp
