// Package globalmap aggregates KZ map metadata from the GlobalAPI and the
// SchnoseAPI into a single GlobalMap record per map, and provides fuzzy lookup
// over the aggregated collection.
//
// Fetch performs the upstream calls one after another and joins the results
// on map id. It never returns partial data: the first failing upstream call
// aborts the aggregation with an *UpstreamError.
//
// FuzzyMatch returns candidates in ascending score order, so the best match
// is the LAST element, not the first. FuzzySearch returns the first element
// of FuzzyMatch and therefore the weakest match above the threshold.
package globalmap
