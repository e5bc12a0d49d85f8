package ports

import "context"

// Contract for a text-completion service. Used both for structured-JSON
// extraction of order fields from email text and for free-text weather
// assessments; structured callers validate the returned text themselves.
type CompletionProvider interface {
	// Return a single completion for the given system instruction and
	// user prompt.
	Complete(ctx context.Context, system, prompt string) (string, error)
}
