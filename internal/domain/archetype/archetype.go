// Package archetype classifies a profile into a behavioral viewing
// personality and looks up pairwise archetype compatibility.
package archetype

import (
	"context"
	"strings"

	"github.com/okian/reelmatch/internal/domain/model"
	"github.com/okian/reelmatch/internal/domain/refdata"
	"github.com/okian/reelmatch/pkg/logger"
	"github.com/okian/reelmatch/pkg/metrics"
)

// Rule thresholds and point awards.
const (
	heavyBinge    = 5
	moderateBinge = 3

	eclecticGenres = 8
	variedGenres   = 5
	narrowGenres   = 3

	largeHistory  = 50
	mediumHistory = 30
	smallHistory  = 10

	preferredGenrePoints = 15
)

// Compatibility scores.
const (
	IdenticalCompatibility = 95
	ListedCompatibility    = 85
	DefaultCompatibility   = 60
)

// Result is a classification outcome.
type Result struct {
	Primary    string         `json:"primary"`
	Secondary  string         `json:"secondary"`
	Confidence float64        `json:"confidence"`
	Scores     map[string]int `json:"scores"`
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.log = l.Named("archetype")
		}
	}
}

// Classifier assigns behavioral archetypes.
type Classifier struct {
	tables *refdata.Tables
	log    logger.Logger
}

// New creates a Classifier over the given reference tables.
func New(tables *refdata.Tables, opts ...Option) *Classifier {
	if tables == nil {
		tables = refdata.Default()
	}
	c := &Classifier{tables: tables, log: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify scores p against every archetype. The profile is not modified.
func (c *Classifier) Classify(ctx context.Context, p *model.Profile) Result {
	scores := c.score(p)

	catalog := c.tables.BehavioralArchetypes()
	primary, secondary := -1, -1
	total := 0
	for i, a := range catalog {
		s := scores[a.Type]
		total += s
		switch {
		case primary < 0 || s > scores[catalog[primary].Type]:
			secondary = primary
			primary = i
		case secondary < 0 || s > scores[catalog[secondary].Type]:
			secondary = i
		}
	}

	res := Result{Scores: scores}
	if primary >= 0 {
		res.Primary = catalog[primary].Type
		if total > 0 {
			res.Confidence = 100 * float64(scores[res.Primary]) / float64(total)
		}
	}
	if secondary >= 0 {
		res.Secondary = catalog[secondary].Type
	}

	metrics.RecordArchetypeAssigned(res.Primary)
	c.log.Debug(ctx, "profile classified",
		logger.String("user_id", p.ID),
		logger.String("primary", res.Primary),
		logger.String("secondary", res.Secondary),
		logger.Float64("confidence", res.Confidence))
	return res
}

func (c *Classifier) score(p *model.Profile) map[string]int {
	scores := make(map[string]int, len(c.tables.BehavioralArchetypes()))
	for _, a := range c.tables.BehavioralArchetypes() {
		scores[a.Type] = 0
	}

	binge := 0
	if p.Preferences.BingeCount != nil {
		binge = *p.Preferences.BingeCount
	}
	switch {
	case binge >= heavyBinge:
		scores[refdata.MarathonViewer] += 30
	case binge >= moderateBinge:
		scores[refdata.CasualViewer] += 20
	default:
		scores[refdata.CasualViewer] += 10
		scores[refdata.Critic] += 10
	}

	switch genres := uniqueGenres(p.WatchHistory); {
	case genres >= eclecticGenres:
		scores[refdata.GenreExplorer] += 25
	case genres >= variedGenres:
		scores[refdata.CasualViewer] += 15
	case genres <= narrowGenres:
		scores[refdata.FranchiseLoyalist] += 20
		scores[refdata.ComfortRewatcher] += 15
	}

	for _, g := range p.Preferences.Genres.Names() {
		if target, ok := refdata.MatchKeyword(c.tables.GenreArchetypes(), g); ok {
			scores[target] += preferredGenrePoints
		}
	}

	switch n := len(p.WatchHistory); {
	case n > largeHistory:
		scores[refdata.MarathonViewer] += 20
		scores[refdata.GenreExplorer] += 10
	case n > mediumHistory:
		scores[refdata.FranchiseLoyalist] += 15
	case n > smallHistory:
		scores[refdata.CasualViewer] += 15
	}

	for _, w := range p.WatchHistory {
		if w.Rewatch {
			scores[refdata.ComfortRewatcher] += 25
			break
		}
	}
	return scores
}

func uniqueGenres(history []model.WatchEntry) int {
	seen := map[string]struct{}{}
	for _, w := range history {
		if g := strings.ToLower(strings.TrimSpace(w.Genre)); g != "" {
			seen[g] = struct{}{}
		}
	}
	return len(seen)
}

// Annotate returns a copy of p with its archetype set to the classified
// primary. A profile that already has an archetype is returned unchanged.
func (c *Classifier) Annotate(ctx context.Context, p model.Profile) model.Profile {
	if p.Archetype == "" {
		p.Archetype = c.Classify(ctx, &p).Primary
	}
	return p
}

// Resolve returns the archetype to use for p when scoring: the assigned one,
// or a freshly classified one when the profile carries behavioral data.
// It returns "" when neither is available.
func (c *Classifier) Resolve(ctx context.Context, p *model.Profile) string {
	if p.Archetype != "" {
		return p.Archetype
	}
	if !p.HasBehavioralSignal() {
		return ""
	}
	return c.Classify(ctx, p).Primary
}

// Compatibility scores archetype b from a's point of view. The lookup is
// one-directional: only a's compatibility list is consulted.
func (c *Classifier) Compatibility(a, b string) int {
	if a == b {
		return IdenticalCompatibility
	}
	if def, ok := c.tables.BehavioralArchetype(a); ok {
		for _, t := range def.Compatible {
			if t == b {
				return ListedCompatibility
			}
		}
	}
	return DefaultCompatibility
}
