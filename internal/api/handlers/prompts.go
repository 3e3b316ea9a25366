package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/promptpulse/internal/prompt"
)

const maxBodyBytes = 5 << 20

type PromptHandler struct {
	svc    *prompt.Service
	logger *slog.Logger
}

func NewPromptHandler(svc *prompt.Service, logger *slog.Logger) *PromptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PromptHandler{svc: svc, logger: logger}
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("list prompts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read prompts"})
		return
	}

	writeJSON(w, http.StatusOK, prompts)
}

func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req prompt.CreateInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		// unparsable bodies carry no title or content
		req = prompt.CreateInput{}
	}

	p, err := h.svc.Create(r.Context(), req)
	if errors.Is(err, prompt.ErrMissingRequired) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("create prompt failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save prompt"})
		return
	}

	h.logger.Info("prompt created", "id", p.ID, "category", p.Category, "author", p.Author)
	writeJSON(w, http.StatusCreated, p)
}
