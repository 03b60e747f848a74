package scoring

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Points a factor must reach before the description mentions it.
const (
	quizNoteMin        = 8.0
	toneNoteMin        = 7.0
	swipeGenreNoteMin  = 15.0
	contentTypeNoteMin = 8.0
	bingeNoteMin       = 12.0
	leaningPercent     = 50.0
)

// describe composes the match description from the scored pair.
func describe(p *pair) string {
	r := p.res
	var clauses []string
	add := func(c string) {
		if c != "" {
			clauses = append(clauses, c)
		}
	}

	if r.Points(FactorQuiz) >= quizNoteMin {
		if p.sharedQuiz != "" {
			add("you're both " + Pluralize(p.sharedQuiz))
		} else {
			add("your quiz answers line up")
		}
	}
	add(titlesClause(r.Evidence.Favorites, "you both love %s", "you share %d favorite movies"))
	add(titlesClause(r.Evidence.Likes, "you both liked %s", "you both liked %d of the same titles"))
	add(watchlistClause(r.Evidence.Watchlist))
	lower := cases.Lower(language.English)
	var plural []string
	for _, g := range r.Evidence.Genres {
		// unnamed genres outside the catalog have no readable form
		if strings.HasPrefix(g, "#") {
			continue
		}
		plural = append(plural, Pluralize(lower.String(g)))
	}
	if len(plural) > 0 {
		add("you both enjoy " + JoinClauses(plural))
	}
	if r.Points(FactorEmotionalTone) >= toneNoteMin && p.tone != "" {
		add(fmt.Sprintf("you're drawn to the same %s stories", p.tone))
	}
	if r.Points(FactorSwipeGenres) >= swipeGenreNoteMin {
		add("your swipes show a similar taste in genres")
	}
	if r.Points(FactorContentType) >= contentTypeNoteMin {
		add(contentTypeClause(p))
	}
	if r.Points(FactorBinge) >= bingeNoteMin {
		add("you binge at a similar pace")
	}

	head := fmt.Sprintf("%d%% match", int(math.Round(r.Score)))
	if len(clauses) == 0 {
		return head
	}
	return head + " — " + JoinClauses(clauses)
}

func quote(titles []string) []string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = fmt.Sprintf("%q", t)
	}
	return out
}

// titlesClause names one or two titles and counts three or more.
func titlesClause(titles []string, named, counted string) string {
	switch n := len(titles); {
	case n == 0:
		return ""
	case n <= 2:
		return fmt.Sprintf(named, JoinClauses(quote(titles)))
	default:
		return fmt.Sprintf(counted, n)
	}
}

func watchlistClause(titles []string) string {
	switch n := len(titles); {
	case n == 0:
		return ""
	case n == 1:
		return fmt.Sprintf("%s is on both your watchlists", quote(titles)[0])
	case n == 2:
		return fmt.Sprintf("%s are on both your watchlists", JoinClauses(quote(titles)))
	default:
		return fmt.Sprintf("%d titles are on both your watchlists", n)
	}
}

func contentTypeClause(p *pair) string {
	sa, sb, missing, err := p.swipes()
	if missing || err != nil {
		return ""
	}
	switch {
	case sa.TVPercent > leaningPercent && sb.TVPercent > leaningPercent:
		return "you both lean toward TV shows"
	case sa.MoviePercent > leaningPercent && sb.MoviePercent > leaningPercent:
		return "you both lean toward movies"
	default:
		return "you like a similar mix of movies and shows"
	}
}

// JoinClauses joins items as "a", "a and b" or "a, b, and c".
func JoinClauses(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// Pluralize applies a simple English plural: consonant+y becomes ies,
// sibilant endings take es, everything else takes s.
func Pluralize(word string) string {
	if word == "" {
		return word
	}
	lower := strings.ToLower(word)
	n := len(lower)
	switch {
	case n >= 2 && lower[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(lower[n-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return word + "es"
	default:
		return word + "s"
	}
}

