package model

// UserRef identifies a report participant.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// CompatibilityReport is the qualitative comparison of two users' quizzes.
type CompatibilityReport struct {
	Available         bool                    `json:"available"`
	Message           string                  `json:"message,omitempty"`
	User1             UserRef                 `json:"user1"`
	User2             UserRef                 `json:"user2"`
	OverallScore      int                     `json:"overallScore"`
	ArchetypeAnalysis ArchetypeAnalysis       `json:"archetypeAnalysis"`
	CategoryBreakdown []CategoryCompatibility `json:"categoryBreakdown"`
	Strengths         []Strength              `json:"strengths"`
	Challenges        []Challenge             `json:"challenges"`
	Recommendations   []string                `json:"recommendations"`
	Summary           string                  `json:"summary"`
}

// ArchetypeAnalysis compares two users' quiz archetypes.
type ArchetypeAnalysis struct {
	Shared        []string        `json:"shared"`
	Complementary []ArchetypePair `json:"complementary"`
	Different     []ArchetypePair `json:"different"`
}

// ArchetypePair is one cross pairing of archetypes, first user's first.
type ArchetypePair struct {
	User1Archetype string `json:"user1Archetype"`
	User2Archetype string `json:"user2Archetype"`
}

// CategoryCompatibility compares one quiz category.
type CategoryCompatibility struct {
	Category      string  `json:"category"`
	Label         string  `json:"label"`
	User1Score    float64 `json:"user1Score"`
	User2Score    float64 `json:"user2Score"`
	Compatibility float64 `json:"compatibility"`
	Level         string  `json:"level"`
}

// Strength is something a pair has going for them.
type Strength struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Challenge is a category where a pair diverges.
type Challenge struct {
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Suggestion  string  `json:"suggestion"`
	Score       float64 `json:"score"`
}

// GroupCompatibilityReport aggregates pairwise quiz compatibility for a group.
type GroupCompatibilityReport struct {
	Available             bool              `json:"available"`
	Error                 string            `json:"error,omitempty"`
	Users                 []UserRef         `json:"users"`
	PairwiseCompatibility []PairScore       `json:"pairwiseCompatibility"`
	OverallCompatibility  int               `json:"overallCompatibility"`
	SharedArchetypes      []SharedArchetype `json:"sharedArchetypes"`
	Summary               string            `json:"summary"`
	Recommendations       []string          `json:"recommendations"`
}

// PairScore is the quiz compatibility of two group members.
type PairScore struct {
	User1ID string `json:"user1Id"`
	User2ID string `json:"user2Id"`
	Score   int    `json:"score"`
}

// SharedArchetype is an archetype held by two or more group members.
type SharedArchetype struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}
