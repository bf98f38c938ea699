package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-grades/internal/exam"
	"github.com/mind-engage/mindengage-grades/internal/grading"
	"github.com/mind-engage/mindengage-grades/internal/metrics"
	"github.com/mind-engage/mindengage-grades/internal/rbac"
	syncx "github.com/mind-engage/mindengage-grades/internal/sync"
)

// EventAppender is the slice of syncx.EventRepo the grading handlers need.
type EventAppender interface {
	Append(ctx context.Context, e syncx.Event) error
}

// EventLog is the full syncx.EventRepo surface.
type EventLog interface {
	EventAppender
	List(ctx context.Context, after int64, limit int) ([]syncx.Event, error)
}

type gradeReq struct {
	// TotalQuestions overrides the detected count when positive.
	TotalQuestions int                    `json:"total_questions"`
	Hits           int                    `json:"hits"`
	Errors         int                    `json:"errors"`
	SectionScores  []grading.SectionScore `json:"section_scores"`

	// AnswerKey and Answers, when a key is given, replace Hits and Errors
	// with a tally of the answer sheet.
	AnswerKey []string `json:"answer_key,omitempty"`
	Answers   []string `json:"answers,omitempty"`

	// Rules may be partial; missing fields keep the template or default value.
	Rules   json.RawMessage      `json:"rules,omitempty"`
	Weights *grading.WeightSplit `json:"weights,omitempty"`

	// Preview only: exam content used for question detection.
	Content string `json:"content,omitempty"`
	// Record only.
	Student string `json:"student,omitempty"`
}

type gradeResp struct {
	Input     grading.Input       `json:"input"`
	Rules     grading.Rules       `json:"rules"`
	Weights   grading.WeightSplit `json:"weights"`
	Tally     *grading.Counts     `json:"tally,omitempty"`
	Breakdown grading.Breakdown   `json:"breakdown"`
}

// resolveInput builds the calculator input from a request. content is the
// exam text used for question detection.
func (req gradeReq) resolveInput(content string) (grading.Input, *grading.Counts) {
	in := grading.Input{
		Hits:          req.Hits,
		Errors:        req.Errors,
		SectionScores: req.SectionScores,
	}
	if len(req.AnswerKey) > 0 {
		c := grading.Tally(req.AnswerKey, req.Answers)
		in.Hits, in.Errors = c.Hits, c.Errors
		in.TotalQuestions = c.Total
		if req.TotalQuestions > 0 {
			in.TotalQuestions = req.TotalQuestions
		}
		return in, &c
	}
	in.TotalQuestions = grading.ResolveTotal(content, req.TotalQuestions)
	return in, nil
}

func (req gradeReq) rulesAndWeights(rules grading.Rules, weights grading.WeightSplit) (grading.Rules, grading.WeightSplit, error) {
	rules, err := rules.Overlay(req.Rules)
	if err != nil {
		return grading.Rules{}, grading.WeightSplit{}, err
	}
	if req.Weights != nil {
		weights = *req.Weights
	}
	return rules, weights, nil
}

// POST /grading/preview
//
// Stateless: grades whatever the form currently holds. Section IDs are taken
// as given since there is no template to check them against.
func PreviewHandler(def Defaults, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		rules, weights, err := req.rulesAndWeights(def.Rules, def.Weights)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		in, tally := req.resolveInput(req.Content)

		b := grading.Grade(in, rules, weights)
		m.ObserveGrade("preview", b)
		writeJSON(w, http.StatusOK, gradeResp{Input: in, Rules: rules, Weights: weights, Tally: tally, Breakdown: b})
	}
}

// POST /exams/{examID}/grades
//
// Grades against the template's sections, rules and weights (request rules
// and weights override) and stores the outcome.
func RecordGradeHandler(store exam.Store, events EventAppender, m *metrics.Metrics, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t, err := store.GetTemplate(ctx, chi.URLParam(r, "examID"))
		if err != nil {
			storeError(w, log, "record grade", err)
			return
		}
		var req gradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		in, tally := req.resolveInput(t.Content)
		in.SectionScores, err = grading.ReconcileSections(t.Sections, req.SectionScores)
		if err != nil {
			storeError(w, log, "record grade", err)
			return
		}
		rules, weights, err := req.rulesAndWeights(t.Rules, t.Weights)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b := grading.Grade(in, rules, weights)

		rec := exam.Record{
			ID:        uuid.NewString(),
			ExamID:    t.ID,
			Student:   strings.TrimSpace(req.Student),
			Input:     in,
			Rules:     rules,
			Weights:   weights,
			Breakdown: b,
			GradedBy:  rbac.SubjectFromContext(ctx),
			CreatedAt: time.Now().Unix(),
		}
		if err := store.PutRecord(ctx, rec); err != nil {
			storeError(w, log, "record grade", err)
			return
		}
		m.ObserveGrade("record", b)

		if events != nil {
			data, _ := json.Marshal(rec)
			if err := events.Append(ctx, syncx.Event{Type: syncx.TypeGradeRecorded, Key: rec.ID, DataJSON: string(data)}); err != nil {
				// the record is stored; a missing event is not worth failing the request
				log.Warn("append grade event", zap.String("record_id", rec.ID), zap.Error(err))
			}
		}

		log.Info("grade recorded",
			zap.String("record_id", rec.ID),
			zap.String("exam_id", rec.ExamID),
			zap.Float64("final_grade", b.FinalGrade),
			zap.Int("advisories", len(b.Advisories)),
		)
		writeJSON(w, http.StatusCreated, struct {
			exam.Record
			Tally *grading.Counts `json:"tally,omitempty"`
		}{rec, tally})
	}
}

// GET /exams/{examID}/grades?student=...&limit=50&offset=0
func ListGradesHandler(store exam.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		if _, err := store.GetTemplate(r.Context(), examID); err != nil {
			storeError(w, log, "list grades", err)
			return
		}
		list, err := store.ListRecords(r.Context(), exam.RecordListOpts{
			ExamID:  examID,
			Student: strings.TrimSpace(r.URL.Query().Get("student")),
			Limit:   parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:  parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			storeError(w, log, "list grades", err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /grades/{recordID}
func GetGradeHandler(store exam.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
		if err != nil {
			storeError(w, log, "get grade", err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
