package api

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/studycards/backend/internal/domain/studyset"
	"github.com/studycards/backend/internal/ingest"
)

const maxUploadBytes = 10 << 20

type UploadResponse struct {
	Success          bool   `json:"success"`
	Certification    string `json:"certification"`
	SetID            string `json:"set_id"`
	QuestionsAdded   int    `json:"questions_added"`
	QuestionsUpdated int    `json:"questions_updated"`
	TotalProcessed   int    `json:"total_processed"`
}

// uploadQuestions ingests a question document. JSON bodies carry their own
// title; spreadsheets take it from the certification parameter.
// @Summary      Upload questions
// @Description  Accepts a JSON document, or an XLSX/CSV file as the raw body or as multipart field "file".
// @Tags         Admin
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        certification  query     string  false  "Set title for spreadsheet uploads"
// @Success      200            {object}  UploadResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Security     BearerAuth
// @Router       /admin/questions/upload [post]
func (h *Handler) uploadQuestions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	set, err := h.parseUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.sets.UpsertStudySet(r.Context(), set)
	if h.handleStoreError(w, err, "study set") {
		return
	}

	h.logger.Info("questions uploaded",
		"set_id", res.SetID,
		"added", res.QuestionsAdded,
		"updated", res.QuestionsUpdated,
	)
	respondJSON(w, http.StatusOK, UploadResponse{
		Success:          true,
		Certification:    set.Title,
		SetID:            res.SetID,
		QuestionsAdded:   res.QuestionsAdded,
		QuestionsUpdated: res.QuestionsUpdated,
		TotalProcessed:   len(set.Questions),
	})
}

func (h *Handler) parseUpload(r *http.Request) (*studyset.StudySet, error) {
	title := r.URL.Query().Get("certification")
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		if title == "" {
			title = r.FormValue("certification")
		}
		return parseByName(file, header.Filename, title)
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return ingest.ParseXLSX(r.Body, title)
	case "text/csv":
		return ingest.ParseCSV(r.Body, title)
	default:
		return ingest.ParseJSON(r.Body)
	}
}

func parseByName(r io.Reader, name, title string) (*studyset.StudySet, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return ingest.ParseXLSX(r, title)
	case ".csv":
		return ingest.ParseCSV(r, title)
	default:
		return ingest.ParseJSON(r)
	}
}
