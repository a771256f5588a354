// File: services/intelligence/disabled.go
package ai

import (
	"context"
	"errors"
)

// ErrGeneratorDisabled is returned by DisabledGenerator for every call.
var ErrGeneratorDisabled = errors.New("no text-generation service configured")

// DisabledGenerator stands in when no API key is configured. Every call
// fails with ErrGeneratorDisabled, which drives the classifier and composer
// down their documented fallback paths, so the process still answers every
// chat message.
type DisabledGenerator struct{}

func (DisabledGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return "", ErrGeneratorDisabled
}
