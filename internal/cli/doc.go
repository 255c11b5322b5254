// Package cli implements the command-line interface for kzmaps.
//
// The cli package provides the Cobra-based CLI for listing aggregated KZ maps,
// fuzzy-searching them by name or id, formatting run times and looking up a
// map's Steam Workshop page. It wires configuration, the upstream API clients
// and the globalmap aggregator together and renders results as text, JSON or
// YAML.
package cli
