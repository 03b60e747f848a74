// Package refdata holds the read-only lookup tables the matching core consults:
// the quiz question bank, both archetype catalogs, the debate-prompt bank, the
// genre catalog and the genre keyword tables.
//
// Tables are immutable once built and safe for concurrent use.
package refdata

import (
	"fmt"
	"strings"
)

// Question is a quiz question with per-option point values.
type Question struct {
	ID       string   `koanf:"id"`
	Category string   `koanf:"category"`
	Text     string   `koanf:"text"`
	Options  []Option `koanf:"options"`
}

// Option is one selectable answer.
type Option struct {
	Value  string `koanf:"value"`
	Label  string `koanf:"label"`
	Points int    `koanf:"points"`
}

// MaxPoints is the highest value any option of q awards.
func (q Question) MaxPoints() int {
	best := 0
	for _, o := range q.Options {
		if o.Points > best {
			best = o.Points
		}
	}
	return best
}

// Option looks up an option by value.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// QuizArchetype is a personality archetype derived from quiz categories.
type QuizArchetype struct {
	Type                string
	Name                string
	Description         string
	IndicatorCategories []string
}

// BehavioralArchetype is a viewing personality derived from behavior.
type BehavioralArchetype struct {
	Type        string
	Name        string
	Description string
	// Compatible is consulted one-directionally from this archetype.
	Compatible []string
}

// Category describes a quiz category for report narratives.
type Category struct {
	Key                  string
	Label                string
	StrengthDescription  string
	ChallengeDescription string
	ChallengeSuggestion  string
}

// DebatePrompt is a prompt users take a stance on.
type DebatePrompt struct {
	ID        string
	Prompt    string
	Positions []string
}

// Keyword maps a genre keyword to a target (an archetype or a tone).
type Keyword struct {
	Keyword string
	Target  string
}

// Genre is a catalog genre.
type Genre struct {
	ID   int
	Name string
}

// Tables is the complete reference data set.
type Tables struct {
	questions            []Question
	quizArchetypes       []QuizArchetype
	complementary        [][2]string
	categories           []Category
	behavioralArchetypes []BehavioralArchetype
	genreArchetypes      []Keyword
	emotionalTones       []Keyword
	tones                []string
	debatePrompts        []DebatePrompt
	genres               []Genre

	questionByID   map[string]Question
	quizByType     map[string]QuizArchetype
	behaviorByType map[string]BehavioralArchetype
	categoryByKey  map[string]Category
	promptByID     map[string]DebatePrompt
	genreByName    map[string]int
	genreByID      map[int]string
}

// Default returns the built-in tables.
func Default() *Tables {
	t := &Tables{
		questions:            defaultQuestions(),
		quizArchetypes:       defaultQuizArchetypes(),
		complementary:        defaultComplementaryPairs(),
		categories:           defaultCategories(),
		behavioralArchetypes: defaultBehavioralArchetypes(),
		genreArchetypes:      defaultGenreArchetypes(),
		emotionalTones:       defaultEmotionalTones(),
		tones:                []string{ToneUplifting, ToneIntense, ToneThoughtful, ToneEscapist},
		debatePrompts:        defaultDebatePrompts(),
		genres:               defaultGenres(),
	}
	t.index()
	return t
}

// WithQuestions returns a copy of t whose question bank is replaced by qs.
func (t *Tables) WithQuestions(qs []Question) (*Tables, error) {
	if err := validateQuestions(qs); err != nil {
		return nil, err
	}
	cp := *t
	cp.questions = append([]Question(nil), qs...)
	cp.index()
	return &cp, nil
}

func (t *Tables) index() {
	t.questionByID = make(map[string]Question, len(t.questions))
	for _, q := range t.questions {
		t.questionByID[q.ID] = q
	}
	t.quizByType = make(map[string]QuizArchetype, len(t.quizArchetypes))
	for _, a := range t.quizArchetypes {
		t.quizByType[a.Type] = a
	}
	t.behaviorByType = make(map[string]BehavioralArchetype, len(t.behavioralArchetypes))
	for _, a := range t.behavioralArchetypes {
		t.behaviorByType[a.Type] = a
	}
	t.categoryByKey = make(map[string]Category, len(t.categories))
	for _, c := range t.categories {
		t.categoryByKey[c.Key] = c
	}
	t.promptByID = make(map[string]DebatePrompt, len(t.debatePrompts))
	for _, p := range t.debatePrompts {
		t.promptByID[p.ID] = p
	}
	t.genreByName = make(map[string]int, len(t.genres))
	t.genreByID = make(map[int]string, len(t.genres))
	for _, g := range t.genres {
		t.genreByName[strings.ToLower(g.Name)] = g.ID
		t.genreByID[g.ID] = g.Name
	}
}

func validateQuestions(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("%w: empty bank", ErrInvalidQuestionBank)
	}
	seen := make(map[string]bool, len(qs))
	for i, q := range qs {
		switch {
		case strings.TrimSpace(q.ID) == "":
			return fmt.Errorf("%w: question %d has no id", ErrInvalidQuestionBank, i)
		case strings.TrimSpace(q.Category) == "":
			return fmt.Errorf("%w: question %s has no category", ErrInvalidQuestionBank, q.ID)
		case len(q.Options) == 0:
			return fmt.Errorf("%w: question %s has no options", ErrInvalidQuestionBank, q.ID)
		case seen[q.ID]:
			return fmt.Errorf("%w: duplicate question %s", ErrInvalidQuestionBank, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// Questions returns the question bank in order.
func (t *Tables) Questions() []Question { return t.questions }

// Question looks up a question by ID.
func (t *Tables) Question(id string) (Question, bool) {
	q, ok := t.questionByID[id]
	return q, ok
}

// QuizArchetypes returns the quiz archetype catalog in declaration order.
func (t *Tables) QuizArchetypes() []QuizArchetype { return t.quizArchetypes }

// QuizArchetype looks up a quiz archetype by type.
func (t *Tables) QuizArchetype(typ string) (QuizArchetype, bool) {
	a, ok := t.quizByType[typ]
	return a, ok
}

// Complementary reports whether a and b form a complementary pair, in either order.
func (t *Tables) Complementary(a, b string) bool {
	for _, p := range t.complementary {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

// BehavioralArchetypes returns the behavioral catalog in its fixed order.
func (t *Tables) BehavioralArchetypes() []BehavioralArchetype { return t.behavioralArchetypes }

// BehavioralArchetype looks up a behavioral archetype by type.
func (t *Tables) BehavioralArchetype(typ string) (BehavioralArchetype, bool) {
	a, ok := t.behaviorByType[typ]
	return a, ok
}

// Category returns narrative metadata for a quiz category. Unknown categories
// get generic wording.
func (t *Tables) Category(key string) Category {
	if c, ok := t.categoryByKey[key]; ok {
		return c
	}
	label := strings.ReplaceAll(key, "_", " ")
	return Category{
		Key:                  key,
		Label:                label,
		StrengthDescription:  "You see " + label + " the same way.",
		ChallengeDescription: "You approach " + label + " differently.",
		ChallengeSuggestion:  "Talk through what " + label + " means to each of you before picking a movie.",
	}
}

// GenreArchetypes returns the preferred-genre keyword table in match order.
func (t *Tables) GenreArchetypes() []Keyword { return t.genreArchetypes }

// Tones returns the emotional tones in fixed order.
func (t *Tables) Tones() []string { return t.tones }

// ToneOf returns the emotional tone of a genre name, if any.
func (t *Tables) ToneOf(genre string) (string, bool) {
	return matchKeyword(t.emotionalTones, genre)
}

// DebatePrompt looks up a debate prompt by ID.
func (t *Tables) DebatePrompt(id string) (DebatePrompt, bool) {
	p, ok := t.promptByID[id]
	return p, ok
}

// DebatePrompts returns the debate-prompt bank.
func (t *Tables) DebatePrompts() []DebatePrompt { return t.debatePrompts }

// GenreID resolves a genre name to its catalog ID, or 0.
func (t *Tables) GenreID(name string) int {
	return t.genreByName[strings.ToLower(strings.TrimSpace(name))]
}

// GenreName resolves a catalog ID to its genre name, or "".
func (t *Tables) GenreName(id int) string {
	return t.genreByID[id]
}

// MatchKeyword returns the target of the first keyword contained in name.
func MatchKeyword(table []Keyword, name string) (string, bool) {
	return matchKeyword(table, name)
}

func matchKeyword(table []Keyword, name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	for _, k := range table {
		if strings.Contains(n, k.Keyword) {
			return k.Target, true
		}
	}
	return "", false
}
