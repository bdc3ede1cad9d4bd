package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golfimprover/golfimprover/internal/model"
	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrAIUnavailable wraps transport and provider failures.
	ErrAIUnavailable = errors.New("ai generation failed")
	// ErrAIBadResponse means the model returned something that is not the
	// requested JSON. No retry or repair is attempted.
	ErrAIBadResponse = errors.New("ai response was not valid JSON")
)

const aiSystemPrompt = "You are an expert golf coach who returns ONLY valid, well-formed JSON responses. " +
	"Never include unescaped quotes or newlines within JSON strings."

const aiStrictJSONSuffix = `

IMPORTANT: Your response MUST be a valid JSON object with properly escaped quotation marks and no trailing commas.
Do not include markdown formatting, code blocks, or explanatory text outside the JSON.
Double-check that all strings are properly terminated and that there are no syntax errors.`

// chatCompleter is the slice of the OpenAI client the service uses, so tests
// can substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client chatCompleter
	model  string
}

func NewAIService(apiKey, model string) *AIService {
	var client chatCompleter
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &AIService{
		client: client,
		model:  model,
	}
}

// newAIServiceWithClient is for tests.
func newAIServiceWithClient(client chatCompleter, model string) *AIService {
	return &AIService{client: client, model: model}
}

// Complete sends the prompt, augmented with strict-JSON instructions, and
// returns the raw model output.
func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: no API key configured", ErrAIUnavailable)
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: aiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt + aiStrictJSONSuffix},
		},
		Temperature:    0.5,
		MaxTokens:      2000,
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("openai call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrAIUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}

// GeneratedPlan is the JSON schema the model is asked to fill for a practice
// plan.
type GeneratedPlan struct {
	Title            string              `json:"title"`
	UserGoal         string              `json:"userGoal"`
	ImprovementFocus []string            `json:"improvementFocus"`
	Overview         string              `json:"overview"`
	Sessions         []model.PlanSession `json:"sessions"`
}

// PlanRequest carries the practice plan form fields fed to the model.
type PlanRequest struct {
	Handicap         float64
	SessionsPerWeek  int
	Description      string
	TimeAvailability string
	FocusArea        string
	EndDate          string // optional, free text
}

// GeneratePracticePlan asks the model for a structured weekly plan. A response
// that fails to parse yields ErrAIBadResponse and no partial plan.
func (s *AIService) GeneratePracticePlan(ctx context.Context, req PlanRequest) (*GeneratedPlan, string, error) {
	if req.FocusArea == "" {
		req.FocusArea = "Mixed"
	}

	raw, err := s.Complete(ctx, practicePlanPrompt(req))
	if err != nil {
		return nil, "", err
	}

	plan := &GeneratedPlan{}
	err = json.Unmarshal([]byte(raw), plan)
	if err != nil {
		slog.Warn("practice plan response did not parse", "error", err)
		return nil, raw, fmt.Errorf("%w: %v", ErrAIBadResponse, err)
	}

	return plan, raw, nil
}

// GeneratedRecapNarrative is the model's monthly summary.
type GeneratedRecapNarrative struct {
	Summary         string   `json:"summary"`
	Highlights      []string `json:"highlights"`
	FocusSuggestion string   `json:"focus_suggestion"`
	Encouragement   string   `json:"encouragement"`
}

// GenerateMonthlyRecap asks the model for an encouraging narrative over the
// month's effort scores and handicap change.
func (s *AIService) GenerateMonthlyRecap(ctx context.Context, completed, scheduled int, scores model.EffortScores, startHandicap, endHandicap float64) (*GeneratedRecapNarrative, string, error) {
	raw, err := s.Complete(ctx, recapPrompt(completed, scheduled, scores, startHandicap, endHandicap))
	if err != nil {
		return nil, "", err
	}

	narrative := &GeneratedRecapNarrative{}
	err = json.Unmarshal([]byte(raw), narrative)
	if err != nil {
		slog.Warn("recap narrative response did not parse", "error", err)
		return nil, raw, fmt.Errorf("%w: %v", ErrAIBadResponse, err)
	}

	return narrative, raw, nil
}

// GeneratedLogContent is a drafted session note for a minimal log entry.
type GeneratedLogContent struct {
	SessionSummary  string   `json:"session_summary"`
	DrillsCompleted []string `json:"drills_completed"`
	Effectiveness   string   `json:"effectiveness"`
	Suggestion      string   `json:"suggestion"`
}

// GeneratePracticeLogContent drafts a structured session note from category,
// duration and rating.
func (s *AIService) GeneratePracticeLogContent(ctx context.Context, category string, duration, rating int) (*GeneratedLogContent, string, error) {
	raw, err := s.Complete(ctx, logContentPrompt(category, duration, rating))
	if err != nil {
		return nil, "", err
	}

	content := &GeneratedLogContent{}
	err = json.Unmarshal([]byte(raw), content)
	if err != nil {
		slog.Warn("log content response did not parse", "error", err)
		return nil, raw, fmt.Errorf("%w: %v", ErrAIBadResponse, err)
	}

	return content, raw, nil
}

func practicePlanPrompt(req PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Create a personalized golf practice plan with the following details:
- Golfer's handicap: %g
- Sessions per week: %d
- Focus area: %s
- Description of needs and any injuries/limitations: %s
- Time availability and practice locations: %s
`, req.Handicap, req.SessionsPerWeek, req.FocusArea, req.Description, req.TimeAvailability)

	if req.EndDate != "" {
		fmt.Fprintf(&b, "- Target end date: %s\n", req.EndDate)
	}

	fmt.Fprintf(&b, `
Create a detailed, structured practice plan following this format:
1. A title for the practice plan
2. User's goal based on their handicap
3. Key improvement areas extracted from their description (focus heavily on %s)
4. A brief overview paragraph with general advice for improving in %s
5. %d practice sessions with specific drills tailored to the golfer's needs and focused on %s
6. Each session should be on one of their available days, respecting their time constraints and practice locations
7. If the golfer has mentioned any injuries or physical limitations, ensure the plan accommodates these with appropriate modifications
8. Each drill should have clear step-by-step instructions
9. Include a motivational goal for each practice day

The response must be a valid JSON object with this exact format:
{
  "title": "Weekly Golf Practice Plan: [DATE RANGE]",
  "userGoal": "Brief goal based on handicap",
  "improvementFocus": ["Area 1", "Area 2", "Area 3"],
  "overview": "Overall advice paragraph",
  "sessions": [
    {
      "day": "Day of week (e.g., Monday, March 17)",
      "focus": "Main focus for this session",
      "duration": "Total time (e.g., 45 mins)",
      "location": "Suggested practice location based on availability",
      "warmup": "Brief warmup description",
      "drills": [
        {
          "name": "Name of drill",
          "duration": "Time for this drill",
          "description": "Detailed step-by-step instructions for the drill. Write this as numbered steps or clear sentences that can be broken down into a list.",
          "goal": "What the golfer should aim to achieve",
          "keyThought": "A short, memorable cue or reminder to help the golfer focus on the most important aspect of this drill"
        }
      ]
    }
  ]
}

IMPORTANT: Your response must be valid JSON with no markdown formatting, code blocks, or explanatory text outside the JSON. Ensure all durations respect the time availability of each day. Break down drill descriptions into clear instructional steps that are easy to follow. The key thought for each drill should be a short, focused reminder that helps the golfer maintain proper technique. If the golfer has mentioned any injuries or limitations, please ensure the drills are safe and appropriate for their condition.`,
		req.FocusArea, req.FocusArea, req.SessionsPerWeek, req.FocusArea)

	return b.String()
}

func recapPrompt(completed, scheduled int, scores model.EffortScores, startHandicap, endHandicap float64) string {
	pairs := []struct {
		label string
		score int
	}{
		{"Practice Sessions", scores.PracticeSessions},
		{"Full Swing Work", scores.FullSwingWork},
		{"Short Game Work", scores.ShortGameWork},
		{"Putting Work", scores.PuttingWork},
		{"Mental Game", scores.MentalGame},
		{"Strength Training", scores.StrengthTraining},
		{"Mobility Exercises", scores.MobilityExercises},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s (%d)", p.label, p.score))
	}

	return fmt.Sprintf(`This month the golfer:
- Completed %d of %d scheduled practice sessions.
- Rated their effort: %s.
- Handicap changed from %g to %g.

Provide a brief encouraging monthly summary highlighting their successes and suggesting a focus area for next month.

Respond with a JSON object that has this structure (and nothing else):
{
  "summary": "Overall summary of the month",
  "highlights": ["Key achievement 1", "Key achievement 2"],
  "focus_suggestion": "Suggested focus area for next month",
  "encouragement": "Personalized encouragement message"
}

Important: Your entire response must be valid JSON. Do not include any markdown formatting, code blocks, or explanatory text outside the JSON.`,
		completed, scheduled, strings.Join(parts, ", "), startHandicap, endHandicap)
}

func logContentPrompt(category string, duration, rating int) string {
	return fmt.Sprintf(`Given the golfer did a %d-minute %s practice session rated as %d out of 5, generate a concise, structured session note describing the likely drills and session effectiveness briefly.

Respond with a JSON object that has this structure (and nothing else):
{
  "session_summary": "Brief overall summary",
  "drills_completed": ["Likely drill 1", "Likely drill 2"],
  "effectiveness": "Assessment of effectiveness based on rating",
  "suggestion": "Brief suggestion for next time"
}

Important: Your entire response must be valid JSON. Do not include any markdown formatting, code blocks, or explanatory text outside the JSON.`,
		duration, strings.ToLower(category), rating)
}
