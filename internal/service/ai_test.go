package service

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter returns a canned response and records the request.
type fakeCompleter struct {
	response string
	err      error
	lastReq  openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.response}},
		},
	}, nil
}

func TestComplete_RequestShape(t *testing.T) {
	fake := &fakeCompleter{response: `{}`}
	svc := newAIServiceWithClient(fake, "gpt-test")

	_, err := svc.Complete(context.Background(), "draft a plan")
	require.NoError(t, err)

	req := fake.lastReq
	assert.Equal(t, "gpt-test", req.Model)
	assert.InDelta(t, 0.5, req.Temperature, 0.001)
	assert.Equal(t, 2000, req.MaxTokens)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "expert golf coach")
	assert.Contains(t, req.Messages[0].Content, "ONLY valid")
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "draft a plan")
	assert.Contains(t, req.Messages[1].Content, "MUST be a valid JSON object")
}

func TestComplete_NoClient(t *testing.T) {
	svc := NewAIService("", "gpt-test")

	_, err := svc.Complete(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestComplete_ProviderError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate limited")}
	svc := newAIServiceWithClient(fake, "gpt-test")

	_, err := svc.Complete(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestGeneratePracticePlan(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"title": "Short Game Sharpening",
		"userGoal": "Break 85",
		"improvementFocus": ["chipping", "putting"],
		"overview": "Three sessions a week",
		"sessions": [
			{"day": "Monday", "focus": "Putting", "duration": "60 minutes", "drills": [
				{"name": "Gate drill", "duration": "20 minutes", "description": "Putt through a gate", "goal": "8/10 through", "keyThought": "Square face"}
			]}
		]
	}`}
	svc := newAIServiceWithClient(fake, "gpt-test")

	plan, raw, err := svc.GeneratePracticePlan(context.Background(), PlanRequest{
		Handicap:        14.2,
		SessionsPerWeek: 3,
		Description:     "I want to break 85",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	assert.Equal(t, "Short Game Sharpening", plan.Title)
	require.Len(t, plan.Sessions, 1)
	assert.Equal(t, "Monday", plan.Sessions[0].Day)
	require.Len(t, plan.Sessions[0].Drills, 1)
	assert.Equal(t, "Gate drill", plan.Sessions[0].Drills[0].Name)

	// Prompt carries the form fields and the default focus area
	prompt := fake.lastReq.Messages[1].Content
	assert.Contains(t, prompt, "14.2")
	assert.Contains(t, prompt, "Sessions per week: 3")
	assert.Contains(t, prompt, "Mixed")
	assert.Contains(t, prompt, "I want to break 85")
}

// A response that is not the requested JSON keeps the raw text but returns
// ErrAIBadResponse so callers never see a half-parsed plan.
func TestGeneratePracticePlan_BadJSON(t *testing.T) {
	fake := &fakeCompleter{response: `Sure! Here's your plan: ...`}
	svc := newAIServiceWithClient(fake, "gpt-test")

	plan, raw, err := svc.GeneratePracticePlan(context.Background(), PlanRequest{SessionsPerWeek: 3})
	assert.ErrorIs(t, err, ErrAIBadResponse)
	assert.Nil(t, plan)
	assert.Equal(t, `Sure! Here's your plan: ...`, raw)
}

func TestGeneratePracticeLogContent(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"session_summary": "Focused putting session",
		"drills_completed": ["Gate drill", "Lag ladder"],
		"effectiveness": "High",
		"suggestion": "Add pressure putts next time"
	}`}
	svc := newAIServiceWithClient(fake, "gpt-test")

	content, _, err := svc.GeneratePracticeLogContent(context.Background(), "putting", 45, 4)
	require.NoError(t, err)

	assert.Equal(t, "Focused putting session", content.SessionSummary)
	assert.Len(t, content.DrillsCompleted, 2)

	prompt := fake.lastReq.Messages[1].Content
	assert.Contains(t, prompt, "putting")
	assert.Contains(t, prompt, "45")
}
