package http

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	auth "github.com/mind-engage/mindengage-grades/internal/auth/middleware"
	"github.com/mind-engage/mindengage-grades/internal/exam"
	"github.com/mind-engage/mindengage-grades/internal/metrics"
	"github.com/mind-engage/mindengage-grades/internal/rbac"
)

type Deps struct {
	Store    exam.Store
	Events   EventLog // optional
	Auth     *auth.AuthService
	Defaults Defaults
	Metrics  *metrics.Metrics // optional
	Log      *zap.Logger
}

// MountAPI registers the protected routes (JWT -> role in context -> RBAC).
func MountAPI(r chi.Router, d Deps) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("grade:preview")).
			Post("/grading/preview", PreviewHandler(d.Defaults, d.Metrics))

		pr.With(rbac.Require("exam:view")).
			Get("/exams", ListExamsHandler(d.Store, d.Log))
		pr.With(rbac.Require("exam:create")).
			Post("/exams", UploadExamHandler(d.Store, d.Defaults, d.Log))
		pr.With(rbac.Require("exam:view")).
			Get("/exams/{examID}", GetExamHandler(d.Store, d.Log))
		pr.With(rbac.Require("exam:delete")).
			Delete("/exams/{examID}", DeleteExamHandler(d.Store, d.Log))
		pr.With(rbac.RequireAny("grade:record", "grade:preview")).
			Get("/exams/{examID}/grading-form", GradingFormHandler(d.Store, d.Log))

		pr.With(rbac.Require("grade:record")).
			Post("/exams/{examID}/grades", RecordGradeHandler(d.Store, d.Events, d.Metrics, d.Log))
		pr.With(rbac.Require("grade:view")).
			Get("/exams/{examID}/grades", ListGradesHandler(d.Store, d.Log))
		pr.With(rbac.Require("grade:view")).
			Get("/grades/{recordID}", GetGradeHandler(d.Store, d.Log))

		if d.Events != nil {
			pr.With(rbac.Require("events:view")).
				Get("/events", ListEventsHandler(d.Events, d.Log))
		}
	})
}
