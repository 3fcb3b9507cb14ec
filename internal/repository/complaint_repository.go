package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openpetition/petition-api/internal/model"
)

// ComplaintRepo encapsulates all database queries against the complaints
// table. Complaints are not owner-scoped: any authenticated user can read
// the full list, matching the public-resource semantics of the API.
type ComplaintRepo struct{ DB *sql.DB }

func NewComplaintRepo(db *sql.DB) *ComplaintRepo { return &ComplaintRepo{DB: db} }

const complaintColumns = "id, name, email, phone, city, state, complaint_type, complaint_text"

// Create inserts a complaint and populates its generated id.
func (r *ComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO complaints (name, email, phone, city, state, complaint_type, complaint_text) VALUES (?,?,?,?,?,?,?)",
		c.Name, c.Email, c.Phone, c.City, c.State, c.ComplaintType, c.ComplaintText)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a complaint by id.
func (r *ComplaintRepo) GetByID(ctx context.Context, id uint64) (*model.Complaint, error) {
	var c model.Complaint
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+complaintColumns+" FROM complaints WHERE id = ? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.City, &c.State, &c.ComplaintType, &c.ComplaintText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListAll returns every complaint ordered by id.
func (r *ComplaintRepo) ListAll(ctx context.Context) ([]*model.Complaint, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+complaintColumns+" FROM complaints ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Complaint
	for rows.Next() {
		c := new(model.Complaint)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.City, &c.State, &c.ComplaintType, &c.ComplaintText); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites all mutable fields of a complaint.
func (r *ComplaintRepo) Update(ctx context.Context, id uint64, c *model.Complaint) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE complaints SET name=?, email=?, phone=?, city=?, state=?, complaint_type=?, complaint_text=? WHERE id=?",
		c.Name, c.Email, c.Phone, c.City, c.State, c.ComplaintType, c.ComplaintText, id)
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

// Delete removes a complaint by id.
func (r *ComplaintRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM complaints WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrComplaintNotFound
	}
	return nil
}
