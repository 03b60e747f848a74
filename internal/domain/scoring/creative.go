package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/okian/reelmatch/internal/domain/model"
)

const (
	recentWindow   = 30 * 24 * time.Hour
	plannerMinimum = 10
)

// Chronotype buckets by hour of day.
const (
	morning = iota
	afternoon
	evening
	night
	chronotypes
)

func chronotypeOf(t time.Time) int {
	switch h := t.Hour(); {
	case h >= 5 && h <= 11:
		return morning
	case h >= 12 && h <= 16:
		return afternoon
	case h >= 17 && h <= 21:
		return evening
	default:
		return night
	}
}

func chronotypeProfile(history []model.WatchEntry) ([chronotypes]float64, bool) {
	var dist [chronotypes]float64
	n := 0
	for _, w := range history {
		if w.WatchedAt.IsZero() {
			continue
		}
		dist[chronotypeOf(w.WatchedAt)]++
		n++
	}
	if n == 0 {
		return dist, false
	}
	for i := range dist {
		dist[i] /= float64(n)
	}
	return dist, true
}

func chronotype(p *pair) (float64, error) {
	da, okA := chronotypeProfile(p.a.WatchHistory)
	db, okB := chronotypeProfile(p.b.WatchHistory)
	if !okA || !okB {
		return 0, nil
	}
	l1 := 0.0
	for i := range da {
		l1 += math.Abs(da[i] - db[i])
	}
	return (1 - l1/2) * p.w.ChronotypeMax, nil
}

func meanEpisodes(history []model.WatchEntry) (float64, bool) {
	sum, n := 0, 0
	for _, w := range history {
		if w.Type == model.ContentTV && w.EpisodeCount > 0 {
			sum += w.EpisodeCount
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

func marathonLength(p *pair) (float64, error) {
	ma, okA := meanEpisodes(p.a.WatchHistory)
	mb, okB := meanEpisodes(p.b.WatchHistory)
	if !okA || !okB {
		return 0, nil
	}
	switch diff := math.Abs(ma - mb); {
	case diff <= 1:
		return p.w.MarathonMax, nil
	case diff <= 3:
		return p.w.MarathonMax * 7 / 10, nil
	case diff <= 6:
		return p.w.MarathonMax * 4 / 10, nil
	default:
		return p.w.MarathonMax / 10, nil
	}
}

// Genre diversity buckets.
const (
	narrow = iota
	balanced
	eclectic
)

func diversityBucket(history []model.WatchEntry) (int, bool) {
	seen := map[string]struct{}{}
	for _, w := range history {
		if g := strings.ToLower(strings.TrimSpace(w.Genre)); g != "" {
			seen[g] = struct{}{}
		}
	}
	switch n := len(seen); {
	case n == 0:
		return 0, false
	case n <= 3:
		return narrow, true
	case n <= 7:
		return balanced, true
	default:
		return eclectic, true
	}
}

func genreDiversity(p *pair) (float64, error) {
	ba, okA := diversityBucket(p.a.WatchHistory)
	bb, okB := diversityBucket(p.b.WatchHistory)
	if !okA || !okB {
		return 0, nil
	}
	switch ba - bb {
	case 0:
		return p.w.DiversityMax, nil
	case 1, -1:
		return p.w.DiversityMax / 2, nil
	default:
		return 0, nil
	}
}

func rewatches(history []model.WatchEntry) bool {
	for _, w := range history {
		if w.Rewatch {
			return true
		}
	}
	return false
}

func rewatchTendency(p *pair) (float64, error) {
	if len(p.a.WatchHistory) == 0 || len(p.b.WatchHistory) == 0 {
		return 0, nil
	}
	if rewatches(p.a.WatchHistory) == rewatches(p.b.WatchHistory) {
		return p.w.RewatchMatch, nil
	}
	return p.w.RewatchMismatch, nil
}

func watchlistSize(p *pair) (float64, error) {
	na, nb := len(p.a.Watchlist), len(p.b.Watchlist)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	if (na > plannerMinimum) == (nb > plannerMinimum) {
		return p.w.PlannerMatch, nil
	}
	return p.w.PlannerMismatch, nil
}

// frequencyTier buckets recent watch counts: dormant, occasional, regular, daily.
func frequencyTier(history []model.WatchEntry, now time.Time) int {
	n := 0
	for _, w := range history {
		if !w.WatchedAt.IsZero() && !w.WatchedAt.After(now) && now.Sub(w.WatchedAt) <= recentWindow {
			n++
		}
	}
	switch {
	case n == 0:
		return 0
	case n <= 4:
		return 1
	case n <= 12:
		return 2
	default:
		return 3
	}
}

func viewingFrequency(p *pair) (float64, error) {
	if len(p.a.WatchHistory) == 0 || len(p.b.WatchHistory) == 0 {
		return 0, nil
	}
	d := frequencyTier(p.a.WatchHistory, p.now) - frequencyTier(p.b.WatchHistory, p.now)
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return p.w.FrequencyMax, nil
	case 1:
		return p.w.FrequencyMax * 2 / 3, nil
	case 2:
		return p.w.FrequencyMax / 3, nil
	default:
		return 0, nil
	}
}

func activeSince(s model.ServiceConnection, now time.Time) bool {
	return s.LastUsedAt != nil && !s.LastUsedAt.After(now) && now.Sub(*s.LastUsedAt) <= recentWindow
}

func activeServices(p *pair) (float64, error) {
	used := func(prof *model.Profile) map[string]bool {
		out := make(map[string]bool, len(prof.Services))
		for _, s := range prof.Services {
			k := p.normalize(s.Name)
			out[k] = out[k] || activeSince(s, p.now)
		}
		return out
	}
	ua, ub := used(p.a), used(p.b)
	sharedCount, active := 0, 0
	for name, activeA := range ua {
		activeB, ok := ub[name]
		if !ok || name == "" {
			continue
		}
		sharedCount++
		if activeA && activeB {
			active++
		}
	}
	if sharedCount == 0 {
		return 0, nil
	}
	return float64(active) / float64(sharedCount) * p.w.ActiveServices, nil
}
