package model

import "time"

// Match is an immutable scored pairing of a requester and a candidate.
type Match struct {
	ID                         string    `json:"id"`
	User1ID                    string    `json:"user1Id"`
	User2ID                    string    `json:"user2Id"`
	MatchScore                 float64   `json:"matchScore"`
	SharedContent              []string  `json:"sharedContent"`
	Description                string    `json:"description"`
	QuizCompatibility          float64   `json:"quizCompatibility"`
	SnackCompatibility         float64   `json:"snackCompatibility"`
	DebateCompatibility        float64   `json:"debateCompatibility"`
	EmotionalToneCompatibility float64   `json:"emotionalToneCompatibility"`
	CreatedAt                  time.Time `json:"createdAt"`
}
