// File: services/intelligence/classifier.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bookly/models"
	"bookly/utils"

	"go.uber.org/zap"
)

const intentPromptTemplate = `You are a calendar booking assistant. Analyze the user's message and determine their intent.

User message: %s

Classify the intent as one of:
1. book_appointment - User wants to book a new appointment
2. check_availability - User wants to check available time slots
3. reschedule - User wants to reschedule an existing appointment
4. cancel - User wants to cancel an appointment
5. general_inquiry - General question about scheduling

Also extract any specific time/date preferences mentioned.

Respond with a single JSON object and nothing else:
{"intent": "<intent>", "time_preference": "<extracted time/date info or \"none\">", "meeting_purpose": "<purpose if mentioned or \"Meeting\">"}`

// IntentClassifier turns free text into a structured intent triple. It never
// returns an error: any failure of the generation call or of parsing yields
// the default triple.
type IntentClassifier struct {
	Gen TextGenerator
}

func (c *IntentClassifier) Classify(ctx context.Context, userMessage string) models.IntentResult {
	logger := utils.GetLogger()

	raw, err := c.Gen.GenerateContent(ctx, fmt.Sprintf(intentPromptTemplate, userMessage))
	if err != nil {
		logger.Warn("intent classification failed, using defaults", zap.Error(err))
		return models.DefaultIntentResult()
	}

	if result, ok := parseIntentJSON(raw); ok {
		return result
	}
	// Secondary path for models that answer with label lines instead of JSON.
	return parseIntentLines(raw)
}

// parseIntentJSON is the strict structured-output path. It tolerates a
// markdown code fence around the object but nothing else.
func parseIntentJSON(raw string) (models.IntentResult, bool) {
	trimmed := stripCodeFence(strings.TrimSpace(raw))

	var payload struct {
		Intent         string `json:"intent"`
		TimePreference string `json:"time_preference"`
		MeetingPurpose string `json:"meeting_purpose"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return models.IntentResult{}, false
	}

	result := models.DefaultIntentResult()
	result.Intent = models.ParseIntent(strings.TrimSpace(payload.Intent))
	if tp := strings.TrimSpace(payload.TimePreference); tp != "" {
		result.TimePreference = tp
	}
	if mp := strings.TrimSpace(payload.MeetingPurpose); mp != "" {
		result.MeetingPurpose = mp
	}
	return result, true
}

// parseIntentLines is the tolerant line-oriented fallback: it looks for the
// three fixed labels and ignores everything else. Fields not found keep
// their defaults.
func parseIntentLines(raw string) models.IntentResult {
	result := models.DefaultIntentResult()

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Intent:"):
			result.Intent = models.ParseIntent(strings.TrimSpace(strings.TrimPrefix(line, "Intent:")))
		case strings.HasPrefix(line, "Time preference:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Time preference:")); v != "" {
				result.TimePreference = v
			}
		case strings.HasPrefix(line, "Meeting purpose:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Meeting purpose:")); v != "" {
				result.MeetingPurpose = v
			}
		}
	}
	return result
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
