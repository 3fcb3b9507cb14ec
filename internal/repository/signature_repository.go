// This file defines repository methods for signatures. Reads, updates and
// deletes issued by a regular user are scoped to the signer's user id; the
// create path is public and the validation transition is keyed by id only.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/openpetition/petition-api/internal/model"
)

// SignatureRepo encapsulates all database queries related to signatures.
type SignatureRepo struct {
	db *sql.DB
}

func NewSignatureRepo(db *sql.DB) *SignatureRepo {
	return &SignatureRepo{db: db}
}

const signatureColumns = "id, petition_id, user_id, name, email, phone, city, state, show_signature, validated_signature, can_be_contacted"

func scanSignature(row interface{ Scan(...any) error }) (*model.Signature, error) {
	s := new(model.Signature)
	var userID sql.NullInt64
	if err := row.Scan(&s.ID, &s.PetitionID, &userID, &s.Name, &s.Email, &s.Phone,
		&s.City, &s.State, &s.ShowSignature, &s.ValidatedSignature, &s.CanBeContacted); err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		s.UserID = &uid
	}
	return s, nil
}

// Create inserts a new signature. validated_signature always starts false
// regardless of what the submitter sent; only the validation transition can
// flip it. UserID may be nil for anonymous submitters.
func (r *SignatureRepo) Create(ctx context.Context, s *model.Signature) error {
	const q = `INSERT INTO signature
	           (petition_id, user_id, name, email, phone, city, state, show_signature, validated_signature, can_be_contacted)
	           VALUES (?,?,?,?,?,?,?,?,?,?)`
	var userID any
	if s.UserID != nil {
		userID = *s.UserID
	}
	res, err := r.db.ExecContext(ctx, q, s.PetitionID, userID, s.Name, s.Email, s.Phone,
		s.City, s.State, s.ShowSignature, false, s.CanBeContacted)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.ValidatedSignature = false
	return nil
}

// GetByIDAndSigner fetches a signature by id restricted to the signing user.
func (r *SignatureRepo) GetByIDAndSigner(ctx context.Context, id, userID uint64) (*model.Signature, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+signatureColumns+" FROM signature WHERE id = ? AND user_id = ?", id, userID)
	s, err := scanSignature(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSignatureNotFound
	}
	return s, err
}

// GetByID fetches a signature by id without an ownership predicate. Used by
// the validation transition, which is keyed by id alone.
func (r *SignatureRepo) GetByID(ctx context.Context, id uint64) (*model.Signature, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+signatureColumns+" FROM signature WHERE id = ?", id)
	s, err := scanSignature(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSignatureNotFound
	}
	return s, err
}

// ListBySigner returns all signatures attached to the given user.
func (r *SignatureRepo) ListBySigner(ctx context.Context, userID uint64) ([]*model.Signature, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+signatureColumns+" FROM signature WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Signature
	for rows.Next() {
		s, err := scanSignature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every signature. Reserved for the admin endpoints.
func (r *SignatureRepo) ListAll(ctx context.Context) ([]*model.Signature, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+signatureColumns+" FROM signature ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Signature
	for rows.Next() {
		s, err := scanSignature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable contact fields of a signature attached to
// the given signer. The validated flag is not touched here.
func (r *SignatureRepo) Update(ctx context.Context, id, userID uint64, s *model.Signature) error {
	const q = `UPDATE signature SET name = ?, email = ?, phone = ?, city = ?, state = ?,
	           show_signature = ?, can_be_contacted = ?
	           WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Email, s.Phone, s.City, s.State,
		s.ShowSignature, s.CanBeContacted, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByIDAndSigner(ctx, id, userID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByIDAndSigner removes a signature attached to the given signer.
func (r *SignatureRepo) DeleteByIDAndSigner(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM signature WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSignatureNotFound
	}
	return nil
}

// DeleteByID removes a signature regardless of signer. Reserved for admins.
func (r *SignatureRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM signature WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSignatureNotFound
	}
	return nil
}

// Validate flips validated_signature to true and returns the updated row.
// The transition is one-way: re-validating an already validated signature
// re-sets the same value and is indistinguishable from the first call.
func (r *SignatureRepo) Validate(ctx context.Context, id uint64) (*model.Signature, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE signature SET validated_signature = TRUE WHERE id = ?", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
