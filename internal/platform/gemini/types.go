// Package gemini implements the generation interface using Google's Gemini API.
package gemini

// promptData is the data passed to the prompt templates.
type promptData struct {
	SourceText string
	Topic      string
	Count      int
}

// flashcardResponse is the expected JSON structure of a flashcard
// generation response from the Gemini API.
type flashcardResponse struct {
	Cards []flashcardSchema `json:"cards"`
}

// flashcardSchema is a single flashcard in the API response.
type flashcardSchema struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// quizResponse is the expected JSON structure of a quiz generation response
// from the Gemini API.
type quizResponse struct {
	Questions []quizSchema `json:"questions"`
}

// quizSchema is a single multiple-choice question in the API response.
type quizSchema struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}
