package scoring

import (
	"math"
	"strings"

	"github.com/okian/reelmatch/internal/domain/model"
)

// SwipeAnalytics summarizes a profile's liked swipes.
type SwipeAnalytics struct {
	Liked        int
	GenreCounts  map[string]int
	MoviePercent float64
	TVPercent    float64
}

// SwipeAnalyzer derives analytics from a swipe history.
type SwipeAnalyzer interface {
	Analyze(swipes []model.Swipe) (SwipeAnalytics, error)
}

// SwipeAnalyzerFunc adapts a function to SwipeAnalyzer.
type SwipeAnalyzerFunc func(swipes []model.Swipe) (SwipeAnalytics, error)

// Analyze implements SwipeAnalyzer.
func (f SwipeAnalyzerFunc) Analyze(swipes []model.Swipe) (SwipeAnalytics, error) { return f(swipes) }

// LikedSwipeAnalyzer counts genres and content types over liked swipes.
// Swipes without a content type count as movies.
type LikedSwipeAnalyzer struct{}

// Analyze implements SwipeAnalyzer. It returns ErrNoSwipeData when nothing
// was liked.
func (LikedSwipeAnalyzer) Analyze(swipes []model.Swipe) (SwipeAnalytics, error) {
	a := SwipeAnalytics{GenreCounts: map[string]int{}}
	tv := 0
	for _, s := range swipes {
		if !s.Liked() {
			continue
		}
		a.Liked++
		if s.ContentType == model.ContentTV {
			tv++
		}
		for _, g := range s.Genres {
			if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
				a.GenreCounts[g]++
			}
		}
	}
	if a.Liked == 0 {
		return a, ErrNoSwipeData
	}
	a.TVPercent = 100 * float64(tv) / float64(a.Liked)
	a.MoviePercent = 100 - a.TVPercent
	return a, nil
}

// cosine is the cosine similarity of two sparse count vectors.
func cosine(a, b map[string]int) float64 {
	var dot, na, nb float64
	for k, va := range a {
		na += float64(va * va)
		if vb, ok := b[k]; ok {
			dot += float64(va * vb)
		}
	}
	for _, vb := range b {
		nb += float64(vb * vb)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
