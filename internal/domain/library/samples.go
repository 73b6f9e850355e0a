package library

import "parallelstory/internal/domain/story"

// Samples returns the built-in collection shipped with the binary.
func Samples() StoryLibrary {
	return StoryLibrary{
		Name: "Starter Stories",
		URL:  "builtin://samples",
		Stories: []story.Item{
			{
				ID:             "la-casa",
				Title:          "La casa azul",
				Author:         "Traditional",
				Language:       "Spanish",
				SourceLanguage: "English",
				Level:          "A1",
				Description:    "A girl finds a blue house at the end of the road",
				Sentences: []story.SentencePair{
					{ID: "la-casa-1", Target: "María vive en un pueblo pequeño.", Source: "María lives in a small village."},
					{ID: "la-casa-2", Target: "Al final del camino hay una casa azul.", Source: "At the end of the road there is a blue house."},
					{ID: "la-casa-3", Target: "Un día, María abre la puerta.", Source: "One day, María opens the door."},
					{ID: "la-casa-4", Target: "Dentro, un gato duerme al sol.", Source: "Inside, a cat sleeps in the sun."},
				},
				Vocabulary: []story.VocabularyEntry{
					{Word: "pueblo", Translation: "village"},
					{Word: "pequeño", Translation: "small"},
					{Word: "camino", Translation: "road"},
					{Word: "casa", Translation: "house"},
					{Word: "azul", Translation: "blue"},
					{Word: "puerta", Translation: "door"},
					{Word: "gato", Translation: "cat"},
					{Word: "duerme", Translation: "sleeps"},
					{Word: "sol", Translation: "sun"},
				},
			},
			{
				ID:             "le-marche",
				Title:          "Au marché",
				Author:         "Traditional",
				Language:       "French",
				SourceLanguage: "English",
				Level:          "A2",
				Description:    "Shopping for dinner on a Saturday morning",
				Sentences: []story.SentencePair{
					{ID: "le-marche-1", Target: "Le samedi, Paul va au marché.", Source: "On Saturdays, Paul goes to the market."},
					{ID: "le-marche-2", Target: "Il achète du pain, du fromage et des pommes.", Source: "He buys bread, cheese and apples."},
					{ID: "le-marche-3", Target: "La vendeuse lui sourit : « Bonne journée ! »", Source: "The saleswoman smiles at him: \"Have a nice day!\""},
				},
				Vocabulary: []story.VocabularyEntry{
					{Word: "samedi", Translation: "Saturday"},
					{Word: "marché", Translation: "market"},
					{Word: "pain", Translation: "bread"},
					{Word: "fromage", Translation: "cheese"},
					{Word: "pommes", Translation: "apples"},
					{Word: "vendeuse", Translation: "saleswoman"},
					{Word: "sourit", Translation: "smiles"},
				},
			},
			{
				ID:             "der-zug",
				Title:          "Der Zug",
				Author:         "Traditional",
				Language:       "German",
				SourceLanguage: "English",
				Level:          "A1",
				Description:    "An example story, shown with all translations",
				Example:        true,
				Sentences: []story.SentencePair{
					{ID: "der-zug-1", Target: "Der Zug kommt um acht Uhr.", Source: "The train arrives at eight o'clock."},
					{ID: "der-zug-2", Target: "Anna wartet am Bahnhof.", Source: "Anna waits at the station."},
				},
				Vocabulary: []story.VocabularyEntry{
					{Word: "zug", Translation: "train"},
					{Word: "kommt", Translation: "arrives"},
					{Word: "wartet", Translation: "waits"},
					{Word: "bahnhof", Translation: "station"},
				},
			},
		},
	}
}
