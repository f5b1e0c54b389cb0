// internal/content/content.go
//
// Static content provider: phrase categories for grid generation and the
// trivia question bank. Content is compiled in; the accessors are the only
// surface the rest of the server uses, so swapping in a database-backed
// provider later only touches this package.

package content

// A Category is a named set of phrases players listen for.
type Category struct {
	Key     string
	Title   string
	Phrases []string
}

// Question is one entry in the trivia bank. CorrectIndex points into Options.
type Question struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
	Points       int
}

// Phrases returns the phrase list for a category key.
func Phrases(key string) ([]string, bool) {
	c, ok := categories[key]
	if !ok {
		return nil, false
	}
	return c.Phrases, true
}

// CategoryKeys returns all known category keys.
func CategoryKeys() []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	return keys
}

// Questions returns the full trivia bank in stable order.
func Questions() []Question { return questionBank }

// QuestionByID looks up a single trivia question.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questionBank {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Stats reports content sizes (categories, total phrases, questions),
// handy for the debug endpoint.
func Stats() (int, int, int) {
	phrases := 0
	for _, c := range categories {
		phrases += len(c.Phrases)
	}
	return len(categories), phrases, len(questionBank)
}
