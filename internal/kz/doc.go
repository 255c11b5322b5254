// Package kz provides the small set of domain types shared by the KZ map
// clients and the aggregator: game modes, map tiers and map identifiers.
package kz
