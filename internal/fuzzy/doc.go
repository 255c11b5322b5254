// Package fuzzy scores subsequence matches of a pattern against a text.
//
// Scoring is fzf's "v2" algorithm (the model skim's SkimMatcherV2 follows),
// run through github.com/junegunn/fzf/src/algo with the default scheme:
// every pattern rune must occur in the text in order, each matched rune
// earns a fixed score, matches at word boundaries and camelCase/number
// transitions earn a bonus (doubled for the first pattern rune), runes in a
// consecutive run share the bonus of the run's first rune, and gaps between
// matched runes are penalized.
//
// Matching is case-sensitive; callers fold case before scoring.
package fuzzy
