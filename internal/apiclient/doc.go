// Package apiclient holds the JSON-over-HTTP plumbing shared by the
// GlobalAPI and SchnoseAPI clients: request building, status checks and
// the APIError both of them return.
package apiclient
