// Package songlink pairs the songs of two sources that are the same song under
// slightly different titles.
package songlink

import (
	"carddraw-backend/internal/songs"
	"carddraw-backend/pkg/textutil"

	"github.com/antzucaro/matchr"
)

// Pair links the song at index Left of the left list to the song at index Right of
// the right list.
type Pair struct {
	Left        int
	Right       int
	Correlation float64
}

func keys(list []songs.Song) []string {
	out := make([]string, len(list))
	for i, song := range list {
		out[i] = textutil.NormalizeTitle(song.Name)
	}
	return out
}

// Link pairs songs whose normalized titles are equal first, then pairs each song
// left over with its most similar unpaired counterpart by Jaro-Winkler similarity.
// A song ends up in at most one pair, fuzzy pairs below `threshold` are dropped.
func Link(left, right []songs.Song, threshold float64) []Pair {
	leftKeys := keys(left)
	rightKeys := keys(right)

	swapped := false
	if len(rightKeys) < len(leftKeys) {
		leftKeys, rightKeys = rightKeys, leftKeys
		swapped = true
	}

	var result []Pair
	matchedLeft := make(map[int]struct{})
	matchedRight := make(map[int]struct{})

	add := func(l, r int, correlation float64) {
		pair := Pair{Left: l, Right: r, Correlation: correlation}
		if swapped {
			pair.Left = r
			pair.Right = l
		}
		result = append(result, pair)
		matchedLeft[l] = struct{}{}
		matchedRight[r] = struct{}{}
	}

	for l, leftKey := range leftKeys {
		if leftKey == "" {
			continue
		}
		for r, rightKey := range rightKeys {
			if _, ok := matchedRight[r]; ok {
				continue
			}
			if leftKey == rightKey {
				add(l, r, 1)
				break
			}
		}
	}

	for l, leftKey := range leftKeys {
		if _, ok := matchedLeft[l]; ok {
			continue
		}

		var mostSimilarity float64
		mostSimilarRight := -1

		for r, rightKey := range rightKeys {
			if _, ok := matchedRight[r]; ok {
				continue
			}

			similarity := matchr.JaroWinkler(leftKey, rightKey, false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilarRight = r
			}
		}

		if mostSimilarRight >= 0 && mostSimilarity >= threshold {
			add(l, mostSimilarRight, mostSimilarity)
		}
	}

	return result
}

// Unpaired returns the indexes of the list that no pair refers to, `left` selects
// which side of the pairs to look at.
func Unpaired(pairs []Pair, length int, left bool) []int {
	paired := make(map[int]struct{}, len(pairs))
	for _, p := range pairs {
		if left {
			paired[p.Left] = struct{}{}
		} else {
			paired[p.Right] = struct{}{}
		}
	}

	var out []int
	for i := 0; i < length; i++ {
		if _, ok := paired[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}
