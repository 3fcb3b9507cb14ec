package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/openpetition/petition-api/internal/repository"
)

func newUserHandler(t *testing.T) (*UserHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserHandler(testConfig(), repository.NewUserRepo(db)), mock
}

func TestProfile(t *testing.T) {
	h, mock := newUserHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(userRow(t, 5, "alice", "secret1", "User"))

	c, rec := authedCtx(http.MethodGet, "/v1/users", "", 5)
	if err := h.Profile(c); err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Error("profile response leaked the password hash")
	}
}

func TestChangePassword(t *testing.T) {
	h, mock := newUserHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(userRow(t, 5, "alice", "old-secret", "User"))
	mock.ExpectExec("UPDATE users SET hashed_password=").
		WithArgs(sqlmock.AnyArg(), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := authedCtx(http.MethodPut, "/v1/users/password",
		`{"password":"old-secret","new_password":"new-secret"}`, 5)
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	h, mock := newUserHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(userRow(t, 5, "alice", "old-secret", "User"))

	c, rec := authedCtx(http.MethodPut, "/v1/users/password",
		`{"password":"not-the-one","new_password":"new-secret"}`, 5)
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for wrong current password", rec.Code)
	}
}

func TestChangePasswordTooShort(t *testing.T) {
	h, _ := newUserHandler(t)
	c, rec := authedCtx(http.MethodPut, "/v1/users/password",
		`{"password":"old-secret","new_password":"12345"}`, 5)
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for short new password", rec.Code)
	}
}
