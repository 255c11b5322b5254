package fuzzy

import (
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// initScheme fills fzf's character class and bonus tables once
var initScheme = sync.OnceFunc(func() {
	algo.Init("default")
})

// Score returns the best alignment score of pattern within text and whether
// pattern is a subsequence of text at all. An empty pattern matches with a
// score of 0.
func Score(text, pattern string) (int, bool) {
	if pattern == "" {
		return 0, true
	}
	initScheme()

	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(true, false, true, &chars, []rune(pattern), false, nil)
	if result.Start < 0 {
		return 0, false
	}
	return result.Score, true
}
