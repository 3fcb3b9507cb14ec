package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openpetition/petition-api/internal/model"
)

// ComplaintTypeRepo encapsulates queries against the complaints_type
// dictionary table.
type ComplaintTypeRepo struct{ DB *sql.DB }

func NewComplaintTypeRepo(db *sql.DB) *ComplaintTypeRepo { return &ComplaintTypeRepo{DB: db} }

// Create inserts a complaint type and populates its generated id.
func (r *ComplaintTypeRepo) Create(ctx context.Context, ct *model.ComplaintType) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO complaints_type (complaint_type, dictionary) VALUES (?,?)",
		ct.ComplaintType, ct.Dictionary)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ct.ID = uint64(id)
	return nil
}

// GetByID fetches a complaint type by id.
func (r *ComplaintTypeRepo) GetByID(ctx context.Context, id uint64) (*model.ComplaintType, error) {
	var ct model.ComplaintType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, complaint_type, dictionary FROM complaints_type WHERE id = ? LIMIT 1", id).
		Scan(&ct.ID, &ct.ComplaintType, &ct.Dictionary)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrComplaintTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// ListAll returns every complaint type ordered by id.
func (r *ComplaintTypeRepo) ListAll(ctx context.Context) ([]*model.ComplaintType, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, complaint_type, dictionary FROM complaints_type ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.ComplaintType
	for rows.Next() {
		ct := new(model.ComplaintType)
		if err := rows.Scan(&ct.ID, &ct.ComplaintType, &ct.Dictionary); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the code and label of a complaint type.
func (r *ComplaintTypeRepo) Update(ctx context.Context, id uint64, ct *model.ComplaintType) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE complaints_type SET complaint_type=?, dictionary=? WHERE id=?",
		ct.ComplaintType, ct.Dictionary, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a complaint type by id.
func (r *ComplaintTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM complaints_type WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrComplaintTypeNotFound
	}
	return nil
}
