package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golfimprover/golfimprover/internal/service"
)

type aiHandler struct {
	aiService *service.AIService
}

func NewAIHandler(aiService *service.AIService) *aiHandler {
	return &aiHandler{aiService: aiService}
}

// Proxy is the raw completion endpoint the mobile clients use for one-off
// prompts. The prompt is augmented with strict-JSON instructions before it is
// sent to the provider.
func (h *aiHandler) Proxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
		Type   string `json:"type"`
	}
	err := decodeJSON(r, &req)
	if err != nil || strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	response, err := h.aiService.Complete(r.Context(), req.Prompt)
	if err != nil {
		slog.Error("completion proxy failed", "error", err, "type", req.Type)
		respondError(w, http.StatusInternalServerError, "Failed to generate response")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"response": response,
		"type":     req.Type,
	})
}
