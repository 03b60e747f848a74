// Package filter implements the hard-constraint gates a candidate must pass
// before it is scored against a requester.
package filter

import (
	"context"
	"strings"

	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/okian/reelmatch/pkg/metrics"
)

// Gate names reported on rejection.
const (
	GateAge             = "age"
	GateGender          = "gender"
	GateOrientation     = "orientation"
	GateLocation        = "location"
	GateArchetype       = "archetype"
	GatePremiumGenres   = "premium_genres"
	GatePremiumBinge    = "premium_binge"
	GatePremiumServices = "premium_services"
	GatePremiumDecades  = "premium_decades"
)

const (
	anywhereRadius = 100.0
	regionalRadius = 50.0
	anyValue       = "any"
)

// IntRange is an inclusive integer bound.
type IntRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gte=0,gtefield=Min"`
}

// Contains reports whether v lies within the range.
func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Premium holds filters only premium requesters may apply.
type Premium struct {
	GenreIDs   []int     `json:"genreIds,omitempty"`
	BingeRange *IntRange `json:"bingeRange,omitempty"`
	Services   []string  `json:"services,omitempty"`
	Decades    []int     `json:"decades,omitempty" validate:"dive,gte=0"`
}

// Filters are the constraints applied to a candidate pool. Unset fields fall
// back to the requester's own preferences where one exists.
type Filters struct {
	AgeRange              *model.AgeRange `json:"ageRange,omitempty"`
	LocationRadius        *float64        `json:"locationRadius,omitempty" validate:"omitempty,gte=0"`
	GenderPreference      []string        `json:"genderPreference,omitempty"`
	OrientationPreference []string        `json:"orientationPreference,omitempty"`
	ArchetypePreference   []string        `json:"archetypePreference,omitempty"`
	Premium               *Premium        `json:"premium,omitempty"`
	MinScore              float64         `json:"minScore,omitempty" validate:"gte=0,lte=100"`
	MinAdvancedScore      float64         `json:"minAdvancedScore,omitempty" validate:"gte=0,lte=100"`
}

// Validate rejects malformed filters with an error wrapping ErrInvalidFilter.
func (f Filters) Validate() error {
	return validateStruct(f)
}

// Resolve merges override onto the requester's preferences and validates the
// result. Fields set on override win.
func Resolve(requester *model.Profile, override *Filters) (Filters, error) {
	var f Filters
	if override != nil {
		f = *override
	}
	prefs := requester.Preferences
	if f.AgeRange == nil {
		f.AgeRange = prefs.AgeRange
	}
	if f.LocationRadius == nil {
		f.LocationRadius = prefs.LocationRadius
	}
	if len(f.GenderPreference) == 0 {
		f.GenderPreference = prefs.GenderPreference
	}
	if len(f.OrientationPreference) == 0 {
		f.OrientationPreference = prefs.OrientationPreference
	}
	if err := f.Validate(); err != nil {
		metrics.RecordFilterValidationError()
		return Filters{}, err
	}
	return f, nil
}

// Rejection names the gate a candidate failed.
type Rejection struct {
	Gate string `json:"gate"`
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l.Named("filter")
		}
	}
}

// Pipeline evaluates filter gates in a fixed order.
type Pipeline struct {
	tables *refdata.Tables
	log    logger.Logger
}

// New creates a Pipeline. The tables resolve genre names to IDs for the
// premium genre gate.
func New(tables *refdata.Tables, opts ...Option) *Pipeline {
	if tables == nil {
		tables = refdata.Default()
	}
	p := &Pipeline{tables: tables, log: logger.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check runs every gate against candidate. It returns the first failing gate
// and false, or a zero Rejection and true when the candidate passes. f must
// already be validated, see Resolve.
func (p *Pipeline) Check(ctx context.Context, requester, candidate *model.Profile, f Filters) (Rejection, bool) {
	gate := p.firstFailure(requester, candidate, f)
	if gate == "" {
		return Rejection{}, true
	}
	metrics.RecordFilterRejection(gate)
	p.log.Debug(ctx, "candidate filtered",
		logger.String("user_id", requester.ID),
		logger.String("candidate_id", candidate.ID),
		logger.String("gate", gate))
	return Rejection{Gate: gate}, false
}

func (p *Pipeline) firstFailure(requester, candidate *model.Profile, f Filters) string {
	switch {
	case f.AgeRange != nil && !f.AgeRange.Contains(candidate.Age):
		return GateAge
	case !preferenceAllows(f.GenderPreference, candidate.Gender):
		return GateGender
	case !preferenceAllows(f.OrientationPreference, candidate.Orientation):
		return GateOrientation
	case !withinRadius(f.LocationRadius, requester.Location, candidate.Location):
		return GateLocation
	case !archetypeAllows(f.ArchetypePreference, candidate.Archetype):
		return GateArchetype
	}
	if requester.Premium && f.Premium != nil {
		return p.premiumFailure(candidate, f.Premium)
	}
	return ""
}

// preferenceAllows passes when the list is empty or contains "any", or when
// the candidate has not set the field.
func preferenceAllows(list []string, value string) bool {
	if len(list) == 0 || containsFold(list, anyValue) {
		return true
	}
	value = strings.TrimSpace(value)
	return value == "" || containsFold(list, value)
}

func archetypeAllows(list []string, archetype string) bool {
	if len(list) == 0 || containsFold(list, anyValue) {
		return true
	}
	return archetype != "" && containsFold(list, archetype)
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}
	return false
}

// withinRadius compares "city, state" locations. A radius of 100 or more, or
// a missing radius or location, disables the gate.
func withinRadius(radius *float64, from, to string) bool {
	if radius == nil || *radius >= anywhereRadius {
		return true
	}
	fromCity, fromState := parseLocation(from)
	toCity, toState := parseLocation(to)
	if fromCity == "" || toCity == "" {
		return true
	}
	sameCity := fromCity == toCity
	if *radius > regionalRadius {
		return sameCity || (fromState != "" && fromState == toState)
	}
	return sameCity
}

func parseLocation(loc string) (city, state string) {
	parts := strings.SplitN(loc, ",", 2)
	city = strings.ToLower(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		state = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	return city, state
}

func (p *Pipeline) premiumFailure(candidate *model.Profile, pf *Premium) string {
	if len(pf.GenreIDs) > 0 && !p.genreOverlap(candidate, pf.GenreIDs) {
		return GatePremiumGenres
	}
	if pf.BingeRange != nil {
		b := candidate.Preferences.BingeCount
		if b == nil || !pf.BingeRange.Contains(*b) {
			return GatePremiumBinge
		}
	}
	if len(pf.Services) > 0 && !serviceOverlap(candidate, pf.Services) {
		return GatePremiumServices
	}
	if len(pf.Decades) > 0 && !decadeOverlap(candidate, pf.Decades) {
		return GatePremiumDecades
	}
	return ""
}

func (p *Pipeline) genreOverlap(candidate *model.Profile, ids []int) bool {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, g := range candidate.Preferences.Genres {
		id := g.ID
		if id == 0 {
			id = p.tables.GenreID(g.Name)
		}
		if id != 0 && want[id] {
			return true
		}
	}
	return false
}

func serviceOverlap(candidate *model.Profile, services []string) bool {
	for _, s := range candidate.Services {
		if containsFold(services, s.Name) {
			return true
		}
	}
	return false
}

// Decades returns the release decades (1990, 2000, ...) of a profile's
// favorites, liked swipes and watchlist.
func Decades(prof *model.Profile) map[int]bool {
	out := map[int]bool{}
	add := func(year int) {
		if year > 0 {
			out[year/10*10] = true
		}
	}
	for _, m := range prof.FavoriteMovies {
		add(m.ReleaseYear)
	}
	for _, s := range prof.LikedSwipes() {
		add(s.ReleaseYear)
	}
	for _, m := range prof.Watchlist {
		add(m.ReleaseYear)
	}
	return out
}

func decadeOverlap(candidate *model.Profile, decades []int) bool {
	have := Decades(candidate)
	for _, d := range decades {
		if have[d/10*10] {
			return true
		}
	}
	return false
}
