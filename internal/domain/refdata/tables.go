package refdata

// Behavioral archetypes in their fixed declaration order.
const (
	MarathonViewer    = "marathon-viewer"
	CasualViewer      = "casual-viewer"
	Critic            = "critic"
	GenreExplorer     = "genre-explorer"
	ComfortRewatcher  = "comfort-rewatcher"
	FranchiseLoyalist = "franchise-loyalist"
	IndieSeeker       = "indie-seeker"
	TrendFollower     = "trend-follower"
)

// Quiz archetypes.
const (
	ThrillSeeker    = "thrill-seeker"
	DeepThinker     = "deep-thinker"
	HeartFollower   = "heart-follower"
	ComfortCurator  = "comfort-curator"
	SocialScreener  = "social-screener"
	CultureExplorer = "culture-explorer"
)

// Quiz categories.
const (
	CategoryAdventure = "adventure"
	CategoryEmotion   = "emotion"
	CategoryIntellect = "intellect"
	CategoryComfort   = "comfort"
	CategorySocial    = "social"
	CategoryDiscovery = "discovery"
	CategoryNostalgia = "nostalgia"
	CategoryIntensity = "intensity"
)

// Emotional tones.
const (
	ToneUplifting  = "uplifting"
	ToneIntense    = "intense"
	ToneThoughtful = "thoughtful"
	ToneEscapist   = "escapist"
)

func scale(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: string(rune('a' + i)), Label: v, Points: i}
	}
	return opts
}

func defaultQuestions() []Question {
	return []Question{
		{ID: "q01", Category: CategoryAdventure, Text: "A friend suggests a survival thriller set on a glacier. You...",
			Options: scale("pass", "maybe later", "sure", "already queued it")},
		{ID: "q02", Category: CategoryAdventure, Text: "How do you feel about movies with no clear genre?",
			Options: scale("avoid them", "tolerate them", "enjoy them", "seek them out")},
		{ID: "q03", Category: CategoryEmotion, Text: "How often does a movie make you cry?",
			Options: scale("never", "rarely", "sometimes", "every time")},
		{ID: "q04", Category: CategoryEmotion, Text: "What matters most in a story?",
			Options: scale("the plot twists", "the spectacle", "the dialogue", "the characters' feelings")},
		{ID: "q05", Category: CategoryIntellect, Text: "After a complex film you...",
			Options: scale("move on", "skim a summary", "discuss it", "read every theory online")},
		{ID: "q06", Category: CategoryIntellect, Text: "Documentaries are...",
			Options: scale("homework", "fine occasionally", "often great", "my favorite genre")},
		{ID: "q07", Category: CategoryComfort, Text: "On a bad day you watch...",
			Options: scale("something new", "anything", "a familiar show", "my all-time comfort movie")},
		{ID: "q08", Category: CategoryComfort, Text: "Your ideal movie night setting is...",
			Options: scale("a packed premiere", "a theater", "a friend's couch", "my own couch in pajamas")},
		{ID: "q09", Category: CategorySocial, Text: "You prefer to watch...",
			Options: scale("alone", "with one person", "with a few friends", "with a crowd")},
		{ID: "q10", Category: CategorySocial, Text: "Talking during a movie is...",
			Options: scale("unforgivable", "ok at slow parts", "part of the fun", "the whole point")},
		{ID: "q11", Category: CategoryDiscovery, Text: "How often do you watch films not in your language?",
			Options: scale("never", "rarely", "often", "mostly")},
		{ID: "q12", Category: CategoryDiscovery, Text: "How do you pick what to watch next?",
			Options: scale("top ten list", "friends' picks", "critics' picks", "festival lineups")},
		{ID: "q13", Category: CategoryNostalgia, Text: "How often do you rewatch childhood favorites?",
			Options: scale("never", "once in a while", "every year", "constantly")},
		{ID: "q14", Category: CategoryNostalgia, Text: "Remakes of classics are...",
			Options: scale("better than the originals", "fine", "usually worse", "a crime")},
		{ID: "q15", Category: CategoryIntensity, Text: "Your tolerance for gore is...",
			Options: scale("zero", "low", "decent", "unlimited")},
		{ID: "q16", Category: CategoryIntensity, Text: "The perfect ending is...",
			Options: scale("happy", "bittersweet", "ambiguous", "devastating")},
	}
}

func defaultQuizArchetypes() []QuizArchetype {
	return []QuizArchetype{
		{Type: ThrillSeeker, Name: "Thrill Seeker", Description: "Chases adrenaline and bold, high-stakes stories.",
			IndicatorCategories: []string{CategoryAdventure, CategoryIntensity}},
		{Type: DeepThinker, Name: "Deep Thinker", Description: "Loves films that reward attention and discussion.",
			IndicatorCategories: []string{CategoryIntellect, CategoryDiscovery}},
		{Type: HeartFollower, Name: "Heart Follower", Description: "Watches for characters and feelings.",
			IndicatorCategories: []string{CategoryEmotion, CategorySocial}},
		{Type: ComfortCurator, Name: "Comfort Curator", Description: "Keeps a library of reliable favorites.",
			IndicatorCategories: []string{CategoryComfort, CategoryNostalgia}},
		{Type: SocialScreener, Name: "Social Screener", Description: "Movies are an excuse to get people together.",
			IndicatorCategories: []string{CategorySocial, CategoryAdventure}},
		{Type: CultureExplorer, Name: "Culture Explorer", Description: "Hunts for cinema from everywhere.",
			IndicatorCategories: []string{CategoryDiscovery, CategoryIntellect, CategoryEmotion}},
	}
}

func defaultComplementaryPairs() [][2]string {
	return [][2]string{
		{ThrillSeeker, ComfortCurator},
		{DeepThinker, HeartFollower},
		{SocialScreener, CultureExplorer},
		{ThrillSeeker, CultureExplorer},
	}
}

func defaultCategories() []Category {
	return []Category{
		{Key: CategoryAdventure, Label: "Adventure",
			StrengthDescription:  "You share an appetite for bold, unexpected picks.",
			ChallengeDescription: "One of you wants the unknown while the other prefers a safe bet.",
			ChallengeSuggestion:  "Alternate who picks, and let the adventurous one choose one wildcard a week."},
		{Key: CategoryEmotion, Label: "Emotional depth",
			StrengthDescription:  "You respond to stories with the same emotional intensity.",
			ChallengeDescription: "Tearjerkers land very differently for each of you.",
			ChallengeSuggestion:  "Balance heavy dramas with lighter follow-ups and talk about what moved you."},
		{Key: CategoryIntellect, Label: "Intellectual curiosity",
			StrengthDescription:  "You both enjoy films that make you think.",
			ChallengeDescription: "One of you wants to analyze, the other wants to unwind.",
			ChallengeSuggestion:  "Save the deep-dive discussions for after the credits, not during."},
		{Key: CategoryComfort, Label: "Comfort viewing",
			StrengthDescription:  "You agree on what makes a cozy night in.",
			ChallengeDescription: "Your ideas of a relaxing watch don't line up.",
			ChallengeSuggestion:  "Build a shared comfort list with one pick from each of you."},
		{Key: CategorySocial, Label: "Social viewing",
			StrengthDescription:  "You like watching with the same kind of company.",
			ChallengeDescription: "One of you wants a crowd, the other wants quiet.",
			ChallengeSuggestion:  "Mix group watch parties with one-on-one movie nights."},
		{Key: CategoryDiscovery, Label: "Discovery",
			StrengthDescription:  "You explore new films at the same pace.",
			ChallengeDescription: "One of you hunts for hidden gems while the other sticks to the charts.",
			ChallengeSuggestion:  "Pair a popular pick with a hidden gem on the same night."},
		{Key: CategoryNostalgia, Label: "Nostalgia",
			StrengthDescription:  "You treasure the same kind of classics.",
			ChallengeDescription: "Rewatching old favorites means very different things to you.",
			ChallengeSuggestion:  "Introduce each other to one childhood favorite and explain why it matters."},
		{Key: CategoryIntensity, Label: "Intensity",
			StrengthDescription:  "You can handle the same amount of tension and gore.",
			ChallengeDescription: "Your tolerance for dark or intense content differs.",
			ChallengeSuggestion:  "Agree on content limits up front and keep a lighter backup ready."},
	}
}

func defaultBehavioralArchetypes() []BehavioralArchetype {
	return []BehavioralArchetype{
		{Type: MarathonViewer, Name: "Marathon Viewer", Description: "Finishes whole seasons in a weekend.",
			Compatible: []string{FranchiseLoyalist, TrendFollower}},
		{Type: CasualViewer, Name: "Casual Viewer", Description: "Watches a bit of everything, a bit at a time.",
			Compatible: []string{TrendFollower, ComfortRewatcher}},
		{Type: Critic, Name: "Critic", Description: "Watches closely and has opinions about it.",
			Compatible: []string{IndieSeeker, GenreExplorer}},
		{Type: GenreExplorer, Name: "Genre Explorer", Description: "Never watches the same kind of thing twice.",
			Compatible: []string{IndieSeeker, Critic}},
		{Type: ComfortRewatcher, Name: "Comfort Rewatcher", Description: "Knows every line of their favorites.",
			Compatible: []string{CasualViewer, FranchiseLoyalist}},
		{Type: FranchiseLoyalist, Name: "Franchise Loyalist", Description: "Has seen every entry in the universe.",
			Compatible: []string{MarathonViewer, TrendFollower}},
		{Type: IndieSeeker, Name: "Indie Seeker", Description: "Prefers the festival circuit to the box office.",
			Compatible: []string{Critic}},
		{Type: TrendFollower, Name: "Trend Follower", Description: "Watches whatever everyone is talking about.",
			Compatible: []string{CasualViewer, MarathonViewer}},
	}
}

// Matched in order; the first keyword contained in a genre name wins.
func defaultGenreArchetypes() []Keyword {
	return []Keyword{
		{Keyword: "documentary", Target: Critic},
		{Keyword: "drama", Target: Critic},
		{Keyword: "foreign", Target: IndieSeeker},
		{Keyword: "indie", Target: IndieSeeker},
		{Keyword: "independent", Target: IndieSeeker},
		{Keyword: "arthouse", Target: IndieSeeker},
		{Keyword: "superhero", Target: FranchiseLoyalist},
		{Keyword: "action", Target: FranchiseLoyalist},
		{Keyword: "fantasy", Target: FranchiseLoyalist},
		{Keyword: "thriller", Target: MarathonViewer},
		{Keyword: "crime", Target: MarathonViewer},
		{Keyword: "mystery", Target: MarathonViewer},
		{Keyword: "comedy", Target: CasualViewer},
		{Keyword: "romance", Target: ComfortRewatcher},
		{Keyword: "family", Target: ComfortRewatcher},
		{Keyword: "animation", Target: ComfortRewatcher},
		{Keyword: "horror", Target: GenreExplorer},
		{Keyword: "western", Target: GenreExplorer},
		{Keyword: "science fiction", Target: GenreExplorer},
		{Keyword: "sci-fi", Target: GenreExplorer},
		{Keyword: "reality", Target: TrendFollower},
	}
}

func defaultEmotionalTones() []Keyword {
	return []Keyword{
		{Keyword: "comedy", Target: ToneUplifting},
		{Keyword: "family", Target: ToneUplifting},
		{Keyword: "animation", Target: ToneUplifting},
		{Keyword: "romance", Target: ToneUplifting},
		{Keyword: "music", Target: ToneUplifting},
		{Keyword: "action", Target: ToneIntense},
		{Keyword: "thriller", Target: ToneIntense},
		{Keyword: "horror", Target: ToneIntense},
		{Keyword: "crime", Target: ToneIntense},
		{Keyword: "war", Target: ToneIntense},
		{Keyword: "drama", Target: ToneThoughtful},
		{Keyword: "documentary", Target: ToneThoughtful},
		{Keyword: "history", Target: ToneThoughtful},
		{Keyword: "biography", Target: ToneThoughtful},
		{Keyword: "mystery", Target: ToneThoughtful},
		{Keyword: "science fiction", Target: ToneEscapist},
		{Keyword: "sci-fi", Target: ToneEscapist},
		{Keyword: "fantasy", Target: ToneEscapist},
		{Keyword: "adventure", Target: ToneEscapist},
		{Keyword: "western", Target: ToneEscapist},
	}
}

func defaultDebatePrompts() []DebatePrompt {
	agree := []string{"agree", "disagree"}
	return []DebatePrompt{
		{ID: "die-hard-christmas", Prompt: "Die Hard is a Christmas movie.", Positions: agree},
		{ID: "book-better", Prompt: "The book is always better than the movie.", Positions: agree},
		{ID: "subtitles", Prompt: "Subtitles beat dubbing.", Positions: agree},
		{ID: "sequels", Prompt: "Sequels should stop at two.", Positions: agree},
		{ID: "spoilers", Prompt: "Spoilers expire after a week.", Positions: agree},
		{ID: "theaters", Prompt: "Some movies must be seen in a theater.", Positions: agree},
		{ID: "musicals", Prompt: "Musicals are underrated.", Positions: agree},
		{ID: "runtime", Prompt: "No movie needs to be longer than two hours.", Positions: agree},
		{ID: "remakes", Prompt: "Remakes are usually pointless.", Positions: agree},
		{ID: "inception-top", Prompt: "The top in Inception keeps spinning.", Positions: []string{"spins", "falls", "irrelevant"}},
	}
}

func defaultGenres() []Genre {
	return []Genre{
		{ID: 28, Name: "Action"},
		{ID: 12, Name: "Adventure"},
		{ID: 16, Name: "Animation"},
		{ID: 35, Name: "Comedy"},
		{ID: 80, Name: "Crime"},
		{ID: 99, Name: "Documentary"},
		{ID: 18, Name: "Drama"},
		{ID: 10751, Name: "Family"},
		{ID: 14, Name: "Fantasy"},
		{ID: 36, Name: "History"},
		{ID: 27, Name: "Horror"},
		{ID: 10402, Name: "Music"},
		{ID: 9648, Name: "Mystery"},
		{ID: 10749, Name: "Romance"},
		{ID: 878, Name: "Science Fiction"},
		{ID: 10770, Name: "TV Movie"},
		{ID: 53, Name: "Thriller"},
		{ID: 10752, Name: "War"},
		{ID: 37, Name: "Western"},
	}
}
