package scoring

import (
	"fmt"
	"reflect"
)

// Weights is the table of per-factor weights and caps. Per-item weights
// multiply a shared-item count; Max weights scale a [0,1] similarity; Scale
// weights multiply a 0-100 sub-score.
type Weights struct {
	Base     float64 `koanf:"base"`
	MaxScore float64 `koanf:"max_score"`

	SharedService   float64 `koanf:"shared_service"`
	SharedWatch     float64 `koanf:"shared_watch"`
	SharedGenre     float64 `koanf:"shared_genre"`
	SharedFavorite  float64 `koanf:"shared_favorite"`
	SharedLike      float64 `koanf:"shared_like"`
	SharedWatchlist float64 `koanf:"shared_watchlist"`

	BingeTVBonus    float64 `koanf:"binge_tv_bonus"`
	SwipeGenreMax   float64 `koanf:"swipe_genre_max"`
	ContentTypeMax  float64 `koanf:"content_type_max"`
	VideoChat       float64 `koanf:"video_chat"`
	SnackPerItem    float64 `koanf:"snack_per_item"`
	SnackMax        float64 `koanf:"snack_max"`
	EmotionalMax    float64 `koanf:"emotional_tone_max"`
	QuizScale       float64 `koanf:"quiz_scale"`
	ArchetypeScale  float64 `koanf:"archetype_scale"`
	DebateScale     float64 `koanf:"debate_scale"`
	ChronotypeMax   float64 `koanf:"chronotype_max"`
	MarathonMax     float64 `koanf:"marathon_max"`
	DiversityMax    float64 `koanf:"diversity_max"`
	RewatchMatch    float64 `koanf:"rewatch_match"`
	RewatchMismatch float64 `koanf:"rewatch_mismatch"`
	PlannerMatch    float64 `koanf:"planner_match"`
	PlannerMismatch float64 `koanf:"planner_mismatch"`
	FrequencyMax    float64 `koanf:"frequency_max"`
	ActiveServices  float64 `koanf:"active_services_max"`
}

// DefaultWeights returns the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		Base:     10,
		MaxScore: 100,

		SharedService:   10,
		SharedWatch:     20,
		SharedGenre:     5,
		SharedFavorite:  25,
		SharedLike:      30,
		SharedWatchlist: 15,

		BingeTVBonus:    5,
		SwipeGenreMax:   25,
		ContentTypeMax:  10,
		VideoChat:       5,
		SnackPerItem:    3,
		SnackMax:        10,
		EmotionalMax:    10,
		QuizScale:       0.15,
		ArchetypeScale:  0.15,
		DebateScale:     0.10,
		ChronotypeMax:   8,
		MarathonMax:     10,
		DiversityMax:    10,
		RewatchMatch:    7,
		RewatchMismatch: 2,
		PlannerMatch:    6,
		PlannerMismatch: 2,
		FrequencyMax:    12,
		ActiveServices:  10,
	}
}

// Validate rejects negative weights and a ceiling below the base score.
func (w Weights) Validate() error {
	v := reflect.ValueOf(w)
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).Float() < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidWeights, v.Type().Field(i).Name)
		}
	}
	if w.MaxScore < w.Base {
		return fmt.Errorf("%w: max_score %.2f below base %.2f", ErrInvalidWeights, w.MaxScore, w.Base)
	}
	return nil
}
