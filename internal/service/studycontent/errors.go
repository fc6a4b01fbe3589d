package studycontent

import "errors"

// Service-level errors for study content generation.
var (
	// ErrEmptySourceText indicates the generation request carried no source material.
	ErrEmptySourceText = errors.New("source text cannot be empty")

	// ErrGroupNotFound indicates the target study group does not exist.
	ErrGroupNotFound = errors.New("study group not found")
)
