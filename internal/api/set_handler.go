package api

import (
	"net/http"

	"github.com/studycards/backend/internal/domain/studyset"
)

// ── Request / Response types ────────────────────────────────────────────────

type SetResponse struct {
	ID            string `json:"id" example:"set_demo"`
	Title         string `json:"title" example:"Demo CSA"`
	Description   string `json:"description"`
	Version       string `json:"version" example:"1.0"`
	QuestionCount int    `json:"question_count" example:"2"`
}

type OptionResponse struct {
	ID   string `json:"id" example:"o2"`
	Text string `json:"text" example:"PUT"`
}

// QuestionResponse never carries the correct answers: grading happens on
// the server.
type QuestionResponse struct {
	ID          string           `json:"id" example:"q_http_idempotent"`
	Type        string           `json:"type" example:"single"`
	Stem        string           `json:"stem"`
	SelectCount *int             `json:"select_count,omitempty"`
	Options     []OptionResponse `json:"options"`
}

type SetSessionResponse struct {
	Set       SetResponse        `json:"set"`
	Questions []QuestionResponse `json:"questions"`
}

func toSetResponse(s *studyset.StudySet) SetResponse {
	return SetResponse{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		Version:       s.Version,
		QuestionCount: s.QuestionCount,
	}
}

func toQuestionResponse(q *studyset.Question) QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i, o := range q.Options {
		options[i] = OptionResponse{ID: o.ID, Text: o.Text}
	}
	resp := QuestionResponse{
		ID:      q.ID,
		Type:    string(q.Type),
		Stem:    q.Stem,
		Options: options,
	}
	if q.Type == studyset.TypeMulti {
		resp.SelectCount = q.SelectCount
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listSets returns every study set with its question count.
// @Summary      List study sets
// @Tags         Sets
// @Produce      json
// @Success      200  {array}   SetResponse
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /sets [get]
func (h *Handler) listSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.sets.ListStudySets(r.Context())
	if h.handleStoreError(w, err, "study sets") {
		return
	}

	resp := make([]SetResponse, len(sets))
	for i, s := range sets {
		resp[i] = toSetResponse(s)
	}
	respondJSON(w, http.StatusOK, resp)
}

// getSetSession returns the set with its questions, options shuffled.
// @Summary      Load a study set
// @Tags         Sets
// @Produce      json
// @Param        setID  path      string  true  "Set ID"
// @Success      200    {object}  SetSessionResponse
// @Failure      404    {object}  map[string]string
// @Security     BearerAuth
// @Router       /sets/{setID}/session [get]
func (h *Handler) getSetSession(w http.ResponseWriter, r *http.Request) {
	set, err := h.sets.GetStudySession(r.Context(), r.PathValue("setID"))
	if h.handleStoreError(w, err, "study set") {
		return
	}

	questions := make([]QuestionResponse, len(set.Questions))
	for i := range set.Questions {
		questions[i] = toQuestionResponse(&set.Questions[i])
	}
	respondJSON(w, http.StatusOK, SetSessionResponse{
		Set:       toSetResponse(set),
		Questions: questions,
	})
}
