package scoring

import (
	"math"
	"strconv"

	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/quiz"
)

// Factor names as they appear in a Result breakdown.
const (
	FactorServices       = "shared_services"
	FactorWatchHistory   = "shared_watch_history"
	FactorGenres         = "shared_genres"
	FactorFavorites      = "shared_favorites"
	FactorLikes          = "shared_likes"
	FactorWatchlist      = "shared_watchlist"
	FactorBinge          = "binge_pattern"
	FactorBingeTV        = "binge_tv_bonus"
	FactorSwipeGenres    = "swipe_genre_similarity"
	FactorContentType    = "content_type_similarity"
	FactorVideoChat      = "video_chat"
	FactorChronotype     = "chronotype"
	FactorMarathon       = "marathon_length"
	FactorDiversity      = "genre_diversity"
	FactorRewatch        = "rewatch_tendency"
	FactorWatchlistSize  = "watchlist_size"
	FactorFrequency      = "viewing_frequency"
	FactorActiveServices = "active_services"
	FactorSnacks         = "snacks"
	FactorEmotionalTone  = "emotional_tone"
	FactorQuiz           = "quiz"
	FactorArchetype      = "archetype"
	FactorDebate         = "debate"
)

const (
	fullScale              = 100.0
	tvHeavyPercent         = 40.0
	bingeDefaultTierPoints = 1.0

	debateSweetSpotLow    = 60.0
	debateSweetSpotHigh   = 80.0
	debateFloor           = 30.0
	debateDeclinePerPoint = 2.5
)

type factor struct {
	name string
	fn   func(*pair) (float64, error)
}

// factors run in this order; description clauses depend on the results.
var factors = []factor{
	{FactorServices, sharedServices},
	{FactorWatchHistory, sharedWatchHistory},
	{FactorGenres, sharedGenres},
	{FactorFavorites, sharedFavorites},
	{FactorLikes, sharedLikes},
	{FactorWatchlist, sharedWatchlist},
	{FactorBinge, bingePattern},
	{FactorBingeTV, bingeTVBonus},
	{FactorSwipeGenres, swipeGenreSimilarity},
	{FactorContentType, contentTypeSimilarity},
	{FactorVideoChat, videoChat},
	{FactorChronotype, chronotype},
	{FactorMarathon, marathonLength},
	{FactorDiversity, genreDiversity},
	{FactorRewatch, rewatchTendency},
	{FactorWatchlistSize, watchlistSize},
	{FactorFrequency, viewingFrequency},
	{FactorActiveServices, activeServices},
	{FactorSnacks, snacks},
	{FactorEmotionalTone, emotionalTone},
	{FactorQuiz, quizCompatibility},
	{FactorArchetype, archetypeCompatibility},
	{FactorDebate, debateAgreement},
}

// shared returns the labels of items in a whose key also appears in b, in a's
// order and without repeats. Items with an empty key are ignored.
func shared[T any](a, b []T, key func(T) string, label func(T) string) []string {
	inB := make(map[string]bool, len(b))
	for _, item := range b {
		if k := key(item); k != "" {
			inB[k] = true
		}
	}
	var out []string
	seen := map[string]bool{}
	for _, item := range a {
		k := key(item)
		if k == "" || !inB[k] || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, label(item))
	}
	return out
}

func movieKey(m model.MovieRef) string {
	if m.ID == 0 {
		return ""
	}
	return strconv.FormatInt(m.ID, 10)
}

func movieLabel(m model.MovieRef) string {
	if m.Title != "" {
		return m.Title
	}
	return "#" + strconv.FormatInt(m.ID, 10)
}

func sharedServices(p *pair) (float64, error) {
	names := shared(p.a.Services, p.b.Services,
		func(s model.ServiceConnection) string { return p.normalize(s.Name) },
		func(s model.ServiceConnection) string { return s.Name })
	p.res.Evidence.Services = names
	return float64(len(names)) * p.w.SharedService, nil
}

func sharedWatchHistory(p *pair) (float64, error) {
	titles := shared(p.a.WatchHistory, p.b.WatchHistory,
		func(w model.WatchEntry) string { return p.normalize(w.Title) },
		func(w model.WatchEntry) string { return w.Title })
	p.res.Evidence.Watched = titles
	return float64(len(titles)) * p.w.SharedWatch, nil
}

// sharedGenres matches genres by catalog ID so {id} and {id,name} forms of
// the same genre agree. Genres outside the catalog match by name.
func sharedGenres(p *pair) (float64, error) {
	key := func(g model.Genre) string {
		id := g.ID
		if id == 0 {
			id = p.tables.GenreID(g.Name)
		}
		if id != 0 {
			return "#" + strconv.Itoa(id)
		}
		return p.normalize(g.Name)
	}
	label := func(g model.Genre) string {
		if g.Name != "" {
			return g.Name
		}
		if name := p.tables.GenreName(g.ID); name != "" {
			return name
		}
		return "#" + strconv.Itoa(g.ID)
	}
	genres := shared(p.a.Preferences.Genres, p.b.Preferences.Genres, key, label)
	p.res.Evidence.Genres = genres
	return float64(len(genres)) * p.w.SharedGenre, nil
}

func sharedFavorites(p *pair) (float64, error) {
	titles := shared(p.a.FavoriteMovies, p.b.FavoriteMovies, movieKey, movieLabel)
	p.res.Evidence.Favorites = titles
	return float64(len(titles)) * p.w.SharedFavorite, nil
}

func sharedLikes(p *pair) (float64, error) {
	key := func(s model.Swipe) string { return movieKey(model.MovieRef{ID: s.MovieID}) }
	label := func(s model.Swipe) string { return movieLabel(model.MovieRef{ID: s.MovieID, Title: s.Title}) }
	titles := shared(p.a.LikedSwipes(), p.b.LikedSwipes(), key, label)
	p.res.Evidence.Likes = titles
	return float64(len(titles)) * p.w.SharedLike, nil
}

func sharedWatchlist(p *pair) (float64, error) {
	titles := shared(p.a.Watchlist, p.b.Watchlist, movieKey, movieLabel)
	p.res.Evidence.Watchlist = titles
	return float64(len(titles)) * p.w.SharedWatchlist, nil
}

// bingeTiers maps the absolute binge-count difference to points. Differences
// above the last tier earn bingeDefaultTierPoints.
var bingeTiers = []struct {
	maxDiff int
	points  float64
}{
	{0, 15},
	{1, 12},
	{2, 10},
	{3, 7},
	{5, 4},
}

func bingePattern(p *pair) (float64, error) {
	ba, bb := p.a.Preferences.BingeCount, p.b.Preferences.BingeCount
	if ba == nil || bb == nil {
		return 0, nil
	}
	diff := *ba - *bb
	if diff < 0 {
		diff = -diff
	}
	for _, t := range bingeTiers {
		if diff <= t.maxDiff {
			return t.points, nil
		}
	}
	return bingeDefaultTierPoints, nil
}

// swipeData returns both analytics, or ok=false when either side has
// nothing to analyze or the analyzer failed.
func swipeData(p *pair) (SwipeAnalytics, SwipeAnalytics, bool, error) {
	sa, sb, missing, err := p.swipes()
	if err != nil {
		return sa, sb, false, err
	}
	return sa, sb, !missing, nil
}

func bingeTVBonus(p *pair) (float64, error) {
	sa, sb, ok, err := swipeData(p)
	if !ok {
		return 0, err
	}
	if sa.TVPercent > tvHeavyPercent && sb.TVPercent > tvHeavyPercent {
		return p.w.BingeTVBonus, nil
	}
	return 0, nil
}

func swipeGenreSimilarity(p *pair) (float64, error) {
	sa, sb, ok, err := swipeData(p)
	if !ok {
		return 0, err
	}
	return cosine(sa.GenreCounts, sb.GenreCounts) * p.w.SwipeGenreMax, nil
}

func contentTypeSimilarity(p *pair) (float64, error) {
	sa, sb, ok, err := swipeData(p)
	if !ok {
		return 0, err
	}
	return (1 - math.Abs(sa.TVPercent-sb.TVPercent)/fullScale) * p.w.ContentTypeMax, nil
}

func videoChat(p *pair) (float64, error) {
	va, vb := p.a.Preferences.VideoChat, p.b.Preferences.VideoChat
	if va == "" || vb == "" {
		return 0, nil
	}
	if va == vb || va == model.VideoChatEither || vb == model.VideoChatEither {
		return p.w.VideoChat, nil
	}
	return 0, nil
}

func snacks(p *pair) (float64, error) {
	names := shared(p.a.Preferences.Snacks, p.b.Preferences.Snacks, p.normalize,
		func(s string) string { return s })
	p.res.Evidence.Snacks = names
	pts := math.Min(float64(len(names))*p.w.SnackPerItem, p.w.SnackMax)
	if p.w.SnackMax > 0 {
		p.res.SubScores.Snack = fullScale * pts / p.w.SnackMax
	}
	return pts, nil
}

// toneShares buckets watch-history and liked-swipe genres into emotional
// tones and returns each tone's share of the matched total.
func toneShares(p *pair, prof *model.Profile) (map[string]float64, int) {
	counts := map[string]int{}
	total := 0
	add := func(genre string) {
		if tone, ok := p.tables.ToneOf(genre); ok {
			counts[tone]++
			total++
		}
	}
	for _, w := range prof.WatchHistory {
		add(w.Genre)
	}
	for _, s := range prof.LikedSwipes() {
		for _, g := range s.Genres {
			add(g)
		}
	}
	shares := make(map[string]float64, len(counts))
	for tone, n := range counts {
		shares[tone] = float64(n) / float64(total)
	}
	return shares, total
}

func emotionalTone(p *pair) (float64, error) {
	sa, na := toneShares(p, p.a)
	sb, nb := toneShares(p, p.b)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	tones := p.tables.Tones()
	diff := 0.0
	best, bestShare := "", 0.0
	for _, t := range tones {
		diff += math.Abs(sa[t] - sb[t])
		if combined := sa[t] + sb[t]; combined > bestShare {
			best, bestShare = t, combined
		}
	}
	alignment := 1 - diff/float64(len(tones))
	p.tone = best
	p.res.SubScores.EmotionalTone = alignment * fullScale
	return alignment * p.w.EmotionalMax, nil
}

func quizCompatibility(p *pair) (float64, error) {
	if p.quizA == nil || p.quizB == nil {
		return 0, nil
	}
	c := quiz.Compare(*p.quizA, *p.quizB)
	p.res.SubScores.Quiz = float64(c.Score)
	typesB := map[string]bool{}
	for _, t := range p.quizB.Traits.ArchetypeTypes() {
		typesB[t] = true
	}
	for _, a := range p.quizA.Traits.Archetypes {
		if typesB[a.Type] {
			p.sharedQuiz = a.Name
			break
		}
	}
	return float64(c.Score) * p.w.QuizScale, nil
}

func archetypeCompatibility(p *pair) (float64, error) {
	if p.archA == "" || p.archB == "" {
		return 0, nil
	}
	return float64(p.classifier.Compatibility(p.archA, p.archB)) * p.w.ArchetypeScale, nil
}

// DebateCurve maps a literal agreement rate (0-100) to a 0-100 score that
// peaks across the 60-80 band and falls toward both full disagreement and
// full agreement.
func DebateCurve(rate float64) float64 {
	switch {
	case rate < debateSweetSpotLow:
		return debateFloor + (fullScale-debateFloor)*rate/debateSweetSpotLow
	case rate <= debateSweetSpotHigh:
		return fullScale
	default:
		return fullScale - debateDeclinePerPoint*(rate-debateSweetSpotHigh)
	}
}

func debateAgreement(p *pair) (float64, error) {
	if len(p.a.DebateAnswers) == 0 || len(p.b.DebateAnswers) == 0 {
		return 0, nil
	}
	positions := make(map[string]string, len(p.a.DebateAnswers))
	for _, d := range p.a.DebateAnswers {
		if _, ok := p.tables.DebatePrompt(d.PromptID); ok {
			positions[d.PromptID] = p.normalize(d.Position)
		}
	}
	common, same := 0, 0
	seen := map[string]bool{}
	for _, d := range p.b.DebateAnswers {
		pos, ok := positions[d.PromptID]
		if !ok || seen[d.PromptID] {
			continue
		}
		seen[d.PromptID] = true
		common++
		if pos == p.normalize(d.Position) {
			same++
		}
	}
	if common == 0 {
		return 0, nil
	}
	curve := DebateCurve(fullScale * float64(same) / float64(common))
	p.res.SubScores.Debate = curve
	return curve * p.w.DebateScale, nil
}
