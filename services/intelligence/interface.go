// File: services/intelligence/interface.go
package ai

import "context"

// TextGenerator is the text-generation boundary. Model choice, temperature
// and API key are configuration behind the implementation, not core logic.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
