package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mind-engage/mindengage-grades/internal/grading"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutTemplate(ctx context.Context, t Template) (Template, error) {
	sj, err := json.Marshal(t.Sections)
	if err != nil {
		return Template{}, err
	}
	rj, err := json.Marshal(t.Rules)
	if err != nil {
		return Template{}, err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO exam_templates (id,title,content,sections_json,rules_json,test_weight,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, content=EXCLUDED.content, sections_json=EXCLUDED.sections_json,
			rules_json=EXCLUDED.rules_json, test_weight=EXCLUDED.test_weight, updated_at=EXCLUDED.updated_at`,
		t.ID, t.Title, t.Content, string(sj), string(rj), t.Weights.TestPercent(), now, now)
	if err != nil {
		return Template{}, fmt.Errorf("put exam %q: %w", t.ID, err)
	}
	return s.GetTemplate(ctx, t.ID)
}

func (s *SQLStore) GetTemplate(ctx context.Context, id string) (Template, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,content,sections_json,rules_json,test_weight,created_at,updated_at
		FROM exam_templates WHERE id=$1`, id)
	var (
		t          Template
		sj, rj     string
		testWeight int
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Content, &sj, &rj, &testWeight, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, fmt.Errorf("exam %q: %w", id, ErrNotFound)
		}
		return Template{}, err
	}
	if err := json.Unmarshal([]byte(sj), &t.Sections); err != nil {
		return Template{}, fmt.Errorf("exam %q sections: %w", id, err)
	}
	if err := json.Unmarshal([]byte(rj), &t.Rules); err != nil {
		return Template{}, fmt.Errorf("exam %q rules: %w", id, err)
	}
	t.Weights = grading.NewWeightSplit(testWeight)
	return t, nil
}

func (s *SQLStore) ListTemplates(ctx context.Context, opts ListOpts) ([]TemplateSummary, error) {
	var (
		where []string
		args  []any
	)
	if q := strings.TrimSpace(opts.Q); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, fmt.Sprintf("LOWER(title) LIKE $%d", len(args)))
	}
	query := `SELECT id,title,sections_json,updated_at FROM exam_templates`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, normLimit(opts.Limit), max(opts.Offset, 0))
	query += fmt.Sprintf(" ORDER BY updated_at DESC, id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TemplateSummary{}
	for rows.Next() {
		var (
			ts TemplateSummary
			sj string
		)
		if err := rows.Scan(&ts.ID, &ts.Title, &sj, &ts.UpdatedAt); err != nil {
			return nil, err
		}
		var secs []grading.Section
		if err := json.Unmarshal([]byte(sj), &secs); err != nil {
			return nil, fmt.Errorf("exam %q sections: %w", ts.ID, err)
		}
		ts.Sections = len(secs)
		out = append(out, ts)
	}
	return out, rows.Err()
}

// DeleteTemplate removes the template and its records in one transaction,
// without relying on the driver enforcing ON DELETE CASCADE.
func (s *SQLStore) DeleteTemplate(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM grade_records WHERE exam_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM exam_templates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("exam %q: %w", id, ErrNotFound)
	}
	return tx.Commit()
}

func (s *SQLStore) PutRecord(ctx context.Context, r Record) error {
	var exist int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM exam_templates WHERE id=$1`, r.ExamID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("exam %q: %w", r.ExamID, ErrNotFound)
		}
		return err
	}
	ij, err := json.Marshal(r.Input)
	if err != nil {
		return err
	}
	rj, err := json.Marshal(r.Rules)
	if err != nil {
		return err
	}
	bj, err := json.Marshal(r.Breakdown)
	if err != nil {
		return err
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO grade_records
		(id,exam_id,student,input_json,rules_json,test_weight,breakdown_json,final_grade,graded_by,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		r.ID, r.ExamID, r.Student, string(ij), string(rj), r.Weights.TestPercent(), string(bj), r.Breakdown.FinalGrade, r.GradedBy, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("put grade %q: %w", r.ID, err)
	}
	return nil
}

const recordCols = `id,exam_id,student,input_json,rules_json,test_weight,breakdown_json,graded_by,created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r          Record
		ij, rj, bj string
		testWeight int
	)
	if err := sc.Scan(&r.ID, &r.ExamID, &r.Student, &ij, &rj, &testWeight, &bj, &r.GradedBy, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(ij), &r.Input); err != nil {
		return Record{}, fmt.Errorf("grade %q input: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(rj), &r.Rules); err != nil {
		return Record{}, fmt.Errorf("grade %q rules: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(bj), &r.Breakdown); err != nil {
		return Record{}, fmt.Errorf("grade %q breakdown: %w", r.ID, err)
	}
	r.Weights = grading.NewWeightSplit(testWeight)
	return r, nil
}

func (s *SQLStore) GetRecord(ctx context.Context, id string) (Record, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx, `SELECT `+recordCols+` FROM grade_records WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("grade %q: %w", id, ErrNotFound)
	}
	return r, err
}

func (s *SQLStore) ListRecords(ctx context.Context, opts RecordListOpts) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if opts.ExamID != "" {
		args = append(args, opts.ExamID)
		where = append(where, fmt.Sprintf("exam_id = $%d", len(args)))
	}
	if opts.Student != "" {
		args = append(args, opts.Student)
		where = append(where, fmt.Sprintf("student = $%d", len(args)))
	}
	query := `SELECT ` + recordCols + ` FROM grade_records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, normLimit(opts.Limit), max(opts.Offset, 0))
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
