package globalmap

import (
	"sort"

	"github.com/pfrederiksen/kzmaps/internal/fuzzy"
	"github.com/pfrederiksen/kzmaps/internal/kz"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MinScore is the lowest fuzzy score FuzzyMatch keeps
	MinScore = 50
	// EmptyQueryScore is assigned to every map when the query is empty
	EmptyQueryScore = 100
)

// Match is a map with the fuzzy score it was matched with
type Match struct {
	Map   GlobalMap
	Score int
}

// FuzzySearch finds a single map. An id identifier returns the first map with
// that exact id; a name identifier returns the first result of FuzzyMatch.
func FuzzySearch(maps []GlobalMap, ident kz.MapIdentifier) (GlobalMap, bool) {
	if ident.IsID() {
		for _, m := range maps {
			if m.ID == ident.ID {
				return m, true
			}
		}
		return GlobalMap{}, false
	}

	matches := FuzzyMatch(ident.Name, maps)
	if len(matches) == 0 {
		return GlobalMap{}, false
	}
	return matches[0], true
}

// FuzzyMatch returns the maps whose name fuzzy-matches query with a score of
// at least MinScore, in ascending score order.
func FuzzyMatch(query string, maps []GlobalMap) []GlobalMap {
	scored := ScoreMatches(query, maps)
	result := make([]GlobalMap, 0, len(scored))
	for _, m := range scored {
		result = append(result, m.Map)
	}
	return result
}

// ScoreMatches is FuzzyMatch with the scores attached. Comparison is
// case-insensitive; ties keep the input order.
func ScoreMatches(query string, maps []GlobalMap) []Match {
	lower := cases.Lower(language.Und)
	query = lower.String(query)

	matches := make([]Match, 0, len(maps))
	for _, m := range maps {
		if query == "" {
			matches = append(matches, Match{Map: m, Score: EmptyQueryScore})
			continue
		}

		score, ok := fuzzy.Score(lower.String(m.Name), query)
		if !ok || score < MinScore {
			continue
		}
		matches = append(matches, Match{Map: m, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})

	return matches
}
