package exam

import "context"

type ListOpts struct {
	Q      string
	Limit  int
	Offset int
}

type RecordListOpts struct {
	ExamID  string // filter by exam
	Student string // optional exact match
	Limit   int
	Offset  int
}

type Store interface {
	PutTemplate(ctx context.Context, t Template) (Template, error)
	GetTemplate(ctx context.Context, id string) (Template, error)
	ListTemplates(ctx context.Context, opts ListOpts) ([]TemplateSummary, error)
	DeleteTemplate(ctx context.Context, id string) error

	PutRecord(ctx context.Context, r Record) error
	GetRecord(ctx context.Context, id string) (Record, error)
	// ListRecords returns newest first.
	ListRecords(ctx context.Context, opts RecordListOpts) ([]Record, error)
}

func normLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
