package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/openpetition/petition-api/internal/model"
)

func newSignatureMock(t *testing.T) (*SignatureRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSignatureRepo(db), mock
}

func signatureRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "petition_id", "user_id", "name", "email", "phone",
		"city", "state", "show_signature", "validated_signature", "can_be_contacted"})
}

func TestSignatureCreateAnonymous(t *testing.T) {
	repo, mock := newSignatureMock(t)

	// Anonymous submitters leave user_id NULL, and the validated flag is
	// forced to false no matter what the caller set.
	mock.ExpectExec("INSERT INTO signature").
		WithArgs(uint64(3), nil, "Jane Doe", "jane@example.com", "555-0100",
			"Porto Alegre", "RS", true, false, true).
		WillReturnResult(sqlmock.NewResult(21, 1))

	s := &model.Signature{
		PetitionID:         3,
		Name:               "Jane Doe",
		Email:              "jane@example.com",
		Phone:              "555-0100",
		City:               "Porto Alegre",
		State:              "RS",
		ShowSignature:      true,
		ValidatedSignature: true, // must be ignored
		CanBeContacted:     true,
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID != 21 {
		t.Errorf("Create() id = %d, want 21", s.ID)
	}
	if s.ValidatedSignature {
		t.Error("Create() left ValidatedSignature true; new signatures start unvalidated")
	}
}

func TestSignatureCreateWithSigner(t *testing.T) {
	repo, mock := newSignatureMock(t)

	mock.ExpectExec("INSERT INTO signature").
		WithArgs(uint64(3), uint64(7), "Jane Doe", "jane@example.com", "",
			"", "", false, false, false).
		WillReturnResult(sqlmock.NewResult(22, 1))

	uid := uint64(7)
	s := &model.Signature{PetitionID: 3, UserID: &uid, Name: "Jane Doe", Email: "jane@example.com"}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestSignatureGetByIDAndSigner(t *testing.T) {
	repo, mock := newSignatureMock(t)

	mock.ExpectQuery("SELECT (.+) FROM signature WHERE id = \\? AND user_id = \\?").
		WithArgs(uint64(21), uint64(7)).
		WillReturnRows(signatureRows().
			AddRow(21, 3, 7, "Jane Doe", "jane@example.com", "", "", "", true, false, false))

	s, err := repo.GetByIDAndSigner(context.Background(), 21, 7)
	if err != nil {
		t.Fatalf("GetByIDAndSigner() error = %v", err)
	}
	if s.UserID == nil || *s.UserID != 7 {
		t.Errorf("UserID = %v, want 7", s.UserID)
	}
}

func TestSignatureGetForeignSigner(t *testing.T) {
	repo, mock := newSignatureMock(t)

	mock.ExpectQuery("SELECT (.+) FROM signature WHERE id = \\? AND user_id = \\?").
		WithArgs(uint64(21), uint64(999)).
		WillReturnRows(signatureRows())

	_, err := repo.GetByIDAndSigner(context.Background(), 21, 999)
	if !errors.Is(err, ErrSignatureNotFound) {
		t.Errorf("GetByIDAndSigner() error = %v, want ErrSignatureNotFound", err)
	}
}

func TestSignatureScanNullSigner(t *testing.T) {
	repo, mock := newSignatureMock(t)

	mock.ExpectQuery("SELECT (.+) FROM signature WHERE id = \\?").
		WithArgs(uint64(21)).
		WillReturnRows(signatureRows().
			AddRow(21, 3, nil, "Jane Doe", "jane@example.com", "", "", "", true, false, false))

	s, err := repo.GetByID(context.Background(), 21)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if s.UserID != nil {
		t.Errorf("UserID = %v, want nil for anonymous signature", *s.UserID)
	}
}

func TestSignatureValidate(t *testing.T) {
	repo, mock := newSignatureMock(t)

	mock.ExpectExec("UPDATE signature SET validated_signature = TRUE").
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM signature WHERE id = \\?").
		WithArgs(uint64(21)).
		WillReturnRows(signatureRows().
			AddRow(21, 3, nil, "Jane Doe", "jane@example.com", "", "", "", true, true, false))

	s, err := repo.Validate(context.Background(), 21)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !s.ValidatedSignature {
		t.Error("Validate() returned signature with ValidatedSignature = false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSignatureValidateMissing(t *testing.T) {
	repo, mock := newSignatureMock(t)

	mock.ExpectExec("UPDATE signature SET validated_signature = TRUE").
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM signature WHERE id = \\?").
		WithArgs(uint64(404)).
		WillReturnRows(signatureRows())

	_, err := repo.Validate(context.Background(), 404)
	if !errors.Is(err, ErrSignatureNotFound) {
		t.Errorf("Validate() error = %v, want ErrSignatureNotFound", err)
	}
}
