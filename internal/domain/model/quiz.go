package model

import "time"

// AnswerInput is a raw quiz answer as submitted by a client.
type AnswerInput struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"selectedValue"`
}

// Answer is a resolved answer with the points it earned.
type Answer struct {
	QuestionID string `json:"questionId"`
	Selected   string `json:"selectedOption"`
	Points     int    `json:"points"`
}

// QuizAttempt is a scored quiz completion.
type QuizAttempt struct {
	ID             string             `json:"id"`
	UserID         string             `json:"userId"`
	Answers        []Answer           `json:"answers"`
	CategoryScores map[string]float64 `json:"categoryScores"`
	Traits         PersonalityTraits  `json:"personalityTraits"`
	CompletedAt    time.Time          `json:"completedAt"`
}

// PersonalityTraits are the traits derived from category scores.
type PersonalityTraits struct {
	Archetypes     []ArchetypeStrength `json:"archetypes"`
	TraitLevels    map[string]string   `json:"traitLevels"`
	DominantTraits []string            `json:"dominantTraits"`
}

// ArchetypeStrength is a quiz archetype with its 0-100 strength.
type ArchetypeStrength struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Strength float64 `json:"strength"`
}

// ArchetypeTypes returns the archetype identifiers in rank order.
func (t PersonalityTraits) ArchetypeTypes() []string {
	out := make([]string, len(t.Archetypes))
	for i, a := range t.Archetypes {
		out[i] = a.Type
	}
	return out
}
