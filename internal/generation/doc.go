// Package generation provides interfaces for interacting with external
// AI/LLM services for study content generation. It abstracts the details of
// LLM API integration (Gemini), allowing the application to generate
// flashcards and quiz questions from source material without coupling to
// specific external services.
package generation
