// This file defines repository methods for petitions. A petition is an
// owner-scoped resource: every read, update and delete issued on behalf of
// a regular user carries the owner predicate in the SQL itself, so a row
// belonging to someone else is indistinguishable from a missing row.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openpetition/petition-api/internal/model"
)

// PetitionRepo encapsulates all database queries related to petitions.
type PetitionRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewPetitionRepo constructs a PetitionRepo with the provided DB handle.
// This allows dependency injection of the database in tests and at startup.
func NewPetitionRepo(db *sql.DB) *PetitionRepo {
	return &PetitionRepo{db: db}
}

// Create inserts a new petition. On success the ID field is populated with
// the auto-generated value.
func (r *PetitionRepo) Create(ctx context.Context, p *model.Petition) error {
	const q = "INSERT INTO petition (user_id, petition_name, petition_text, image) VALUES (?,?,?,?)"
	res, err := r.db.ExecContext(ctx, q, p.UserID, p.PetitionName, p.PetitionText, p.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByIDAndOwner fetches a petition by id but only if it belongs to the
// specified owner. If the petition doesn't exist or is owned by someone
// else, ErrPetitionNotFound is returned.
func (r *PetitionRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Petition, error) {
	const q = "SELECT id, user_id, petition_name, petition_text, image FROM petition WHERE id = ? AND user_id = ?"
	var p model.Petition
	if err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(&p.ID, &p.UserID, &p.PetitionName, &p.PetitionText, &p.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPetitionNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByOwner returns all petitions for a specific owner ordered by id.
func (r *PetitionRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Petition, error) {
	const q = `SELECT id, user_id, petition_name, petition_text, image
	           FROM petition WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Petition
	for rows.Next() {
		p := new(model.Petition)
		if err := rows.Scan(&p.ID, &p.UserID, &p.PetitionName, &p.PetitionText, &p.Image); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every petition regardless of owner. Reserved for the
// admin moderation endpoints.
func (r *PetitionRepo) ListAll(ctx context.Context) ([]*model.Petition, error) {
	const q = "SELECT id, user_id, petition_name, petition_text, image FROM petition ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Petition
	for rows.Next() {
		p := new(model.Petition)
		if err := rows.Scan(&p.ID, &p.UserID, &p.PetitionName, &p.PetitionText, &p.Image); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable fields of a petition owned by ownerID.
// ErrPetitionNotFound is returned when no row matched the id+owner pair.
func (r *PetitionRepo) Update(ctx context.Context, id, ownerID uint64, name, text, image string) error {
	const q = `UPDATE petition SET petition_name = ?, petition_text = ?, image = ?
	           WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, text, image, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "row absent" from "row present but unchanged":
		// MySQL reports zero affected rows for a no-op update.
		if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByIDAndOwner removes a petition if it belongs to the given owner.
// A second delete of the same id yields ErrPetitionNotFound, not success.
func (r *PetitionRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM petition WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPetitionNotFound
	}
	return nil
}

// DeleteByID removes a petition regardless of owner. Reserved for admins.
func (r *PetitionRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM petition WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPetitionNotFound
	}
	return nil
}

// ListPublic returns the browse projection of all petitions: owner ids are
// withheld and each row carries its current signature count.
func (r *PetitionRepo) ListPublic(ctx context.Context) ([]*model.PetitionSummary, error) {
	const q = `SELECT p.id, p.petition_name, p.petition_text, p.image, COUNT(s.id)
	           FROM petition p
	           LEFT JOIN signature s ON s.petition_id = p.id
	           GROUP BY p.id, p.petition_name, p.petition_text, p.image
	           ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.PetitionSummary
	for rows.Next() {
		s := new(model.PetitionSummary)
		if err := rows.Scan(&s.ID, &s.PetitionName, &s.PetitionText, &s.Image, &s.SignatureCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPublic returns the browse projection of a single petition.
func (r *PetitionRepo) GetPublic(ctx context.Context, id uint64) (*model.PetitionSummary, error) {
	const q = `SELECT p.id, p.petition_name, p.petition_text, p.image, COUNT(s.id)
	           FROM petition p
	           LEFT JOIN signature s ON s.petition_id = p.id
	           WHERE p.id = ?
	           GROUP BY p.id, p.petition_name, p.petition_text, p.image`
	var s model.PetitionSummary
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.PetitionName, &s.PetitionText, &s.Image, &s.SignatureCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPetitionNotFound
		}
		return nil, err
	}
	return &s, nil
}
