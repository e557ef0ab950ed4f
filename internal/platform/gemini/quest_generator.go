package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/minhokim/sejong-api/internal/config"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/generation"
	"google.golang.org/genai"
)

// defaultPromptTemplate is used when no prompt template path is configured.
// It asks the model for a strict JSON payload matching ResponseSchema.
const defaultPromptTemplate = `You are a quest designer for a Korean language learning app.
Design exactly 3 weekly quests for the week of {{.WeekLabel}}.

Learner profile: {{.ProfileHint}}

Each quest must target one of these app features: quiz, flashcards, dictionary, stories, pronunciation, roleplay.
Reward between 50 and 200 XP per quest, with harder quests worth more.

Respond with ONLY a JSON object in this exact format, no markdown fences:
{"quests": [{"title": "...", "description": "...", "xp": 100, "feature_target": "quiz"}]}`

// defaultProfileHint stands in when the caller has no learner profile to offer.
const defaultProfileHint = "a beginner Korean learner practicing daily"

// GeminiGenerator implements the generation.QuestGenerator interface using
// Google's Gemini API to generate weekly quests tailored to a learner profile.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

// Verify interface compliance at compile time.
var _ generation.QuestGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - config: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized GeminiGenerator or an error if initialization fails
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, config config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Validate configuration
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if config.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	// Load the prompt template, falling back to the built-in one when no
	// path is configured.
	templateContent := defaultPromptTemplate
	if config.PromptTemplatePath != "" {
		raw, err := os.ReadFile(config.PromptTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, config.PromptTemplatePath, err)
		}
		templateContent = string(raw)
	}

	promptTemplate, err := template.New("quest").Parse(templateContent)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	// Initialize the Gemini client
	clientConfig := &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	generator := &GeminiGenerator{
		logger:         logger.With(slog.String("component", "gemini_generator")),
		config:         config,
		promptTemplate: promptTemplate,
		client:         client,
		model:          config.ModelName,
	}

	return generator, nil
}

// createPrompt generates a prompt string from the template with the provided
// learner profile hint. An empty hint is replaced by a generic default so that
// brand-new users still get a usable prompt.
func (g *GeminiGenerator) createPrompt(ctx context.Context, profileHint string, now time.Time) (string, error) {
	if strings.TrimSpace(profileHint) == "" {
		profileHint = defaultProfileHint
	}

	year, week := now.ISOWeek()
	data := promptData{
		ProfileHint: profileHint,
		WeekLabel:   fmt.Sprintf("%d-W%02d", year, week),
	}

	g.logger.DebugContext(ctx, "Generating prompt from template",
		"hint_length", len(profileHint),
		"template_name", g.promptTemplate.Name())

	var promptBuffer bytes.Buffer
	if err := g.promptTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	prompt := promptBuffer.String()
	g.logger.DebugContext(ctx, "Prompt generated successfully",
		"prompt_length", len(prompt))

	return prompt, nil
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff retry logic.
//
// It attempts to call the API up to config.MaxRetries times, using exponential backoff
// with jitter between retries for transient errors. Permanent errors (like content being
// blocked by safety filters) are returned immediately without retrying.
func (g *GeminiGenerator) callGeminiWithRetry(ctx context.Context, prompt string) (*ResponseSchema, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	// Initialize retry variables
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	attempt := 0
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Validate retry configuration
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "Invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "Invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	for attempt <= maxRetries {
		attemptNum := attempt + 1 // For logging (1-based)
		g.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		var response *ResponseSchema
		var err error
		var isTransientError bool

		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			// Handle API errors
			isTransientError = true // Assume transient error by default
			g.logger.ErrorContext(ctx, "Gemini API call error",
				"error", err,
				"attempt", attemptNum)
		} else if resp == nil {
			err = fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
			isTransientError = false
		} else if len(resp.Candidates) == 0 {
			err = fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
			isTransientError = false
		} else if resp.Candidates[0].Content == nil {
			err = fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
			isTransientError = false
		} else if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			err = fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
			isTransientError = false
		} else {
			// Extract the response text
			text := ""
			for _, part := range resp.Candidates[0].Content.Parts {
				if part != nil {
					text += part.Text
				}
			}

			// Parse the JSON response
			var parsedResponse ResponseSchema
			if err = json.Unmarshal([]byte(stripCodeFences(text)), &parsedResponse); err != nil {
				err = fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
				isTransientError = false
			} else {
				response = &parsedResponse
			}
		}

		// If successful, return the response
		if err == nil {
			g.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum)
			return response, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		// Determine if the error is transient or permanent
		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			g.logger.WarnContext(ctx, "Permanent error occurred, not retrying",
				"error_type", err)
			return nil, err
		}

		// Check if we've reached the max retries
		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "Maximum retry attempts reached",
				"max_retries", maxRetries)
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// Only retry for transient errors
		if !isTransientError {
			g.logger.WarnContext(ctx, "Non-transient error occurred, not retrying")
			return nil, err
		}

		// Calculate exponential backoff with jitter
		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5 // Between 0.5 and 1.0
		delaySeconds := backoffSeconds * jitterFactor
		delay := time.Duration(delaySeconds * float64(time.Second))

		g.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay_seconds", delaySeconds)

		// Wait for the delay or context cancellation
		select {
		case <-time.After(delay):
			// Continue to next retry
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}

		attempt++
	}

	// This should not be reached due to the check inside the loop,
	// but return an error just in case
	return nil, fmt.Errorf("%w: failed after %d attempts",
		generation.ErrTransientFailure, attempt)
}

// parseResponse converts a ResponseSchema from the Gemini API into
// domain.WeeklyQuest values.
//
// Quest IDs embed the current ISO week so that quests completed this week do
// not suppress next week's generation. If any quest in the response fails
// validation, the method returns an error and no quests are returned.
func (g *GeminiGenerator) parseResponse(
	ctx context.Context,
	response *ResponseSchema,
	now time.Time,
) ([]domain.WeeklyQuest, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}

	if len(response.Quests) == 0 {
		return nil, fmt.Errorf("%w: no quests in response", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "Parsing Gemini API response",
		"quest_count", len(response.Quests))

	year, week := now.ISOWeek()
	quests := make([]domain.WeeklyQuest, 0, len(response.Quests))
	for i, schema := range response.Quests {
		if schema.Title == "" {
			return nil, fmt.Errorf("%w: quest %d missing title", generation.ErrInvalidResponse, i)
		}

		if schema.Description == "" {
			return nil, fmt.Errorf("%w: quest %d missing description", generation.ErrInvalidResponse, i)
		}

		if schema.XP <= 0 {
			return nil, fmt.Errorf("%w: quest %d has non-positive XP", generation.ErrInvalidResponse, i)
		}

		quest := domain.WeeklyQuest{
			ID:            fmt.Sprintf("quest-%d-w%02d-%d", year, week, i+1),
			Title:         schema.Title,
			Description:   schema.Description,
			XP:            schema.XP,
			FeatureTarget: strings.ToLower(strings.TrimSpace(schema.FeatureTarget)),
		}

		if err := quest.Validate(); err != nil {
			return nil, fmt.Errorf("%w: quest %d invalid: %v", generation.ErrInvalidResponse, i, err)
		}

		quests = append(quests, quest)
		g.logger.DebugContext(ctx, "Created quest from API response",
			"quest_id", quest.ID,
			"feature_target", quest.FeatureTarget,
			"xp", quest.XP)
	}

	g.logger.InfoContext(ctx, "Successfully parsed API response",
		"created_quests", len(quests))

	return quests, nil
}

// GenerateQuests creates weekly quests tailored to the provided learner
// profile hint.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - profileHint: A free-form description of the learner, may be empty
//
// Returns:
//   - A slice of validated domain.WeeklyQuest values
//   - An error if the generation fails for any reason
func (g *GeminiGenerator) GenerateQuests(
	ctx context.Context,
	profileHint string,
) ([]domain.WeeklyQuest, error) {
	now := time.Now().UTC()

	prompt, err := g.createPrompt(ctx, profileHint, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	response, err := g.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		// Already classified as blocked, invalid or transient
		return nil, err
	}

	quests, err := g.parseResponse(ctx, response, now)
	if err != nil {
		return nil, err
	}

	return quests, nil
}

// stripCodeFences removes a surrounding markdown code fence from model output.
// Models occasionally wrap JSON in ```json fences despite instructions not to.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
