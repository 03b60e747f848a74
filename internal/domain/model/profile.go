// Package model contains the records exchanged between the matching core and
// its callers. Profiles are owned by the caller; the core only reads them.
package model

import (
	"strings"
	"time"
)

// Content types for watch entries and swipes.
const (
	ContentMovie = "movie"
	ContentTV    = "tv"
)

// Swipe actions. Only likes and superlikes count as positive signal.
const (
	SwipeLike      = "like"
	SwipeSuperlike = "superlike"
	SwipeDislike   = "dislike"
	SwipePass      = "pass"
)

// VideoChatEither matches any video-chat preference.
const VideoChatEither = "either"

// Profile is a user's matching profile as supplied by the caller.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Age         int    `json:"age"`
	Location    string `json:"location,omitempty"` // "city, state"
	Gender      string `json:"gender,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Premium     bool   `json:"premium,omitempty"`

	Services       []ServiceConnection `json:"services,omitempty"`
	WatchHistory   []WatchEntry        `json:"watchHistory,omitempty"`
	FavoriteMovies []MovieRef          `json:"favoriteMovies,omitempty"`
	Swipes         []Swipe             `json:"swipes,omitempty"`
	Watchlist      []MovieRef          `json:"watchlist,omitempty"`
	Preferences    Preferences         `json:"preferences"`
	DebateAnswers  []DebateAnswer      `json:"debateAnswers,omitempty"`

	// Archetype is the assigned behavioral archetype; empty when unassigned.
	Archetype    string             `json:"archetype,omitempty"`
	Personality  *PersonalityTraits `json:"personality,omitempty"`
	QuizAttempts []QuizAttempt      `json:"quizAttempts,omitempty"`
}

// ServiceConnection is a linked streaming service.
type ServiceConnection struct {
	Name        string     `json:"name"`
	ConnectedAt time.Time  `json:"connectedAt"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
}

// WatchEntry is one item of viewing history.
type WatchEntry struct {
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Genre        string    `json:"genre,omitempty"`
	Service      string    `json:"service,omitempty"`
	EpisodeCount int       `json:"episodeCount,omitempty"`
	WatchedAt    time.Time `json:"watchedAt"`
	Rewatch      bool      `json:"rewatch,omitempty"`
}

// MovieRef references external content by its catalog ID.
type MovieRef struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear,omitempty"`
}

// Swipe is a single swipe decision on a piece of content.
type Swipe struct {
	MovieID     int64    `json:"movieId"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres,omitempty"`
	Action      string   `json:"action"`
	ContentType string   `json:"contentType,omitempty"`
	ReleaseYear int      `json:"releaseYear,omitempty"`
}

// Liked reports whether the swipe is positive signal.
func (s Swipe) Liked() bool {
	return s.Action == SwipeLike || s.Action == SwipeSuperlike
}

// Preferences holds the user's stated preferences.
type Preferences struct {
	Genres                GenreList `json:"genres,omitempty"`
	BingeCount            *int      `json:"bingeCount,omitempty"`
	AgeRange              *AgeRange `json:"ageRange,omitempty"`
	LocationRadius        *float64  `json:"locationRadius,omitempty"`
	GenderPreference      []string  `json:"genderPreference,omitempty"`
	OrientationPreference []string  `json:"orientationPreference,omitempty"`
	VideoChat             string    `json:"videoChat,omitempty"`
	Snacks                []string  `json:"snacks,omitempty"`
}

// AgeRange is an inclusive age bound.
type AgeRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0,gtefield=Min"`
}

// Contains reports whether age lies within the range, inclusive.
func (r AgeRange) Contains(age int) bool {
	a := float64(age)
	return a >= r.Min && a <= r.Max
}

// DebateAnswer is a stance on a debate prompt.
type DebateAnswer struct {
	PromptID string `json:"promptId"`
	Position string `json:"position"`
}

// LikedSwipes returns the positive swipes in their original order.
func (p *Profile) LikedSwipes() []Swipe {
	out := make([]Swipe, 0, len(p.Swipes))
	for _, s := range p.Swipes {
		if s.Liked() {
			out = append(out, s)
		}
	}
	return out
}

// LatestQuizAttempt returns the most recently completed attempt, or nil.
// Equal completion times resolve to the later attempt in the slice.
func (p *Profile) LatestQuizAttempt() *QuizAttempt {
	var latest *QuizAttempt
	for i := range p.QuizAttempts {
		a := &p.QuizAttempts[i]
		if latest == nil || !a.CompletedAt.Before(latest.CompletedAt) {
			latest = a
		}
	}
	return latest
}

// HasBehavioralSignal reports whether the profile carries any data the
// behavioral classifier can use.
func (p *Profile) HasBehavioralSignal() bool {
	return len(p.WatchHistory) > 0 || p.Preferences.BingeCount != nil
}

// Normalize canonicalizes enumerated fields in place. Callers run it once when
// a profile enters the core so scoring code sees a single representation.
func (p *Profile) Normalize() {
	p.Gender = canon(p.Gender)
	p.Orientation = canon(p.Orientation)
	p.Archetype = canon(p.Archetype)
	p.Preferences.VideoChat = canon(p.Preferences.VideoChat)
	for i := range p.Swipes {
		p.Swipes[i].Action = canon(p.Swipes[i].Action)
		p.Swipes[i].ContentType = canonContentType(p.Swipes[i].ContentType)
	}
	for i := range p.WatchHistory {
		p.WatchHistory[i].Type = canonContentType(p.WatchHistory[i].Type)
	}
	for i, s := range p.Preferences.Snacks {
		p.Preferences.Snacks[i] = canon(s)
	}
	for i, g := range p.Preferences.GenderPreference {
		p.Preferences.GenderPreference[i] = canon(g)
	}
	for i, o := range p.Preferences.OrientationPreference {
		p.Preferences.OrientationPreference[i] = canon(o)
	}
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func canonContentType(s string) string {
	switch canon(s) {
	case "tv", "show", "tv_show", "tvshow", "series", "episode":
		return ContentTV
	case "":
		return ""
	default:
		return ContentMovie
	}
}
