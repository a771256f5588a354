// File: services/intelligence/composer.go
package ai

import (
	"context"
	"fmt"

	"bookly/utils"

	"go.uber.org/zap"
)

// ComposerFallback is returned whenever the generation call fails.
const ComposerFallback = "I found some available slots. Please let me know which time works best for you."

const suggestionPromptTemplate = `You are a helpful calendar assistant. Based on the availability information,
suggest suitable time slots to the user in a conversational manner.

Availability info: %s
User's time preference: %s

Provide a friendly response suggesting the available slots and ask the user to choose one.
Be conversational and helpful.`

// SuggestionComposer turns a raw availability report into a conversational
// slot suggestion.
type SuggestionComposer struct {
	Gen TextGenerator
}

func (s *SuggestionComposer) Compose(ctx context.Context, availability, timePreference string) string {
	reply, err := s.Gen.GenerateContent(ctx, fmt.Sprintf(suggestionPromptTemplate, availability, timePreference))
	if err != nil || reply == "" {
		utils.GetLogger().Warn("suggestion composition failed, using fallback", zap.Error(err))
		return ComposerFallback
	}
	return reply
}
