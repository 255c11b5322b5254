// Package globalapi is a client for the KZ GlobalAPI (kztimerglobal.com).
//
// Only the endpoints needed to aggregate map metadata are covered: record
// filters, which tell whether a (map, mode, stage, tickrate) leaderboard
// exists, and the map listing, which carries validation state and the Steam
// Workshop link.
package globalapi
