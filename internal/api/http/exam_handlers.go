package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-grades/internal/exam"
	"github.com/mind-engage/mindengage-grades/internal/grading"
)

// Defaults fill in rules and weights a request or template leaves out.
type Defaults struct {
	Rules   grading.Rules
	Weights grading.WeightSplit
}

type templateReq struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Content  string               `json:"content"`
	Sections []grading.Section    `json:"sections"`
	Rules    json.RawMessage      `json:"rules,omitempty"`
	Weights  *grading.WeightSplit `json:"weights,omitempty"`
}

// POST /exams
func UploadExamHandler(store exam.Store, def Defaults, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req templateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		rules, err := def.Rules.Overlay(req.Rules)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t := exam.Template{
			ID:       strings.TrimSpace(req.ID),
			Title:    strings.TrimSpace(req.Title),
			Content:  req.Content,
			Sections: grading.TrimSections(req.Sections),
			Rules:    rules,
			Weights:  def.Weights,
		}
		if req.Weights != nil {
			t.Weights = *req.Weights
		}
		if t.Sections == nil {
			t.Sections = []grading.Section{}
		}
		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		saved, err := store.PutTemplate(r.Context(), t)
		if err != nil {
			storeError(w, log, "put exam", err)
			return
		}
		log.Info("exam saved", zap.String("exam_id", saved.ID), zap.Int("sections", len(saved.Sections)))
		writeJSON(w, http.StatusOK, saved)
	}
}

// GET /exams/{examID}
func GetExamHandler(store exam.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetTemplate(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			storeError(w, log, "get exam", err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// DELETE /exams/{examID}
func DeleteExamHandler(store exam.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "examID")
		if err := store.DeleteTemplate(r.Context(), id); err != nil {
			storeError(w, log, "delete exam", err)
			return
		}
		log.Info("exam deleted", zap.String("exam_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

type gradingForm struct {
	ExamID            string              `json:"exam_id"`
	DetectedQuestions int                 `json:"detected_questions"`
	Input             grading.Input       `json:"input"`
	Sections          []grading.Section   `json:"sections"`
	Rules             grading.Rules       `json:"rules"`
	Weights           grading.WeightSplit `json:"weights"`
}

// GET /exams/{examID}/grading-form
//
// The starting point of a grading session. It is regenerated from the
// template every time, so adding or removing sections shows up here.
func GradingFormHandler(store exam.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetTemplate(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			storeError(w, log, "grading form", err)
			return
		}
		in := t.DefaultInput()
		writeJSON(w, http.StatusOK, gradingForm{
			ExamID:            t.ID,
			DetectedQuestions: in.TotalQuestions,
			Input:             in,
			Sections:          t.Sections,
			Rules:             t.Rules,
			Weights:           t.Weights,
		})
	}
}
