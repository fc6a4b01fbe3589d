package gemini

// flashcardPromptTemplate asks the model for front/back card pairs as JSON.
const flashcardPromptTemplate = `You are an expert tutor creating study flashcards.

Create exactly {{.Count}} flashcards about "{{.Topic}}" from the source material below.
Each flashcard has a concise question on the front and a complete answer on the back.

Respond with JSON only, in this shape:
{"cards": [{"front": "...", "back": "..."}]}

Source material:
{{.SourceText}}`

// quizPromptTemplate asks the model for multiple-choice questions as JSON.
const quizPromptTemplate = `You are an expert tutor creating a multiple-choice quiz.

Create exactly {{.Count}} questions about "{{.Topic}}" from the source material below.
Each question has four options and exactly one correct answer. The correct_answer
field must match one of the options verbatim.

Respond with JSON only, in this shape:
{"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "..."}]}

Source material:
{{.SourceText}}`
