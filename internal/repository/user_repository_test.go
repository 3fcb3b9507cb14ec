package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/openpetition/petition-api/internal/model"
)

func newMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestUserCreate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (username, email, first_name, last_name, hashed_password, is_active, role) VALUES (?,?,?,?,?,?,?)")).
		WithArgs("alice", "alice@example.com", "Alice", "Smith", sqlmock.AnyArg(), true, "User").
		WillReturnResult(sqlmock.NewResult(5, 1))

	u := model.User{
		Username:  " alice ", // whitespace is trimmed before insert
		Email:     "Alice@Example.COM",
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      "User",
	}
	id, err := repo.Create(context.Background(), u, "pass-word", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != 5 {
		t.Errorf("Create() id = %d, want 5", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"))

	_, err := repo.Create(context.Background(), model.User{Username: "alice", Role: "User"}, "pw", bcrypt.MinCost)
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("Create() error = %v, want ErrDuplicateUser", err)
	}
}

func TestUserGetByUsername(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "first_name", "last_name", "hashed_password", "is_active", "role"}).
		AddRow(3, "alice", "alice@example.com", "Alice", "Smith", "$2a$hash", true, "Admin")
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(rows)

	u, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if u.ID != 3 || u.Role != "Admin" || u.HashedPassword != "$2a$hash" {
		t.Errorf("GetByUsername() = %+v", u)
	}
}

func TestUserGetByUsernameMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByUsername() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserUpdatePassword(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE users SET hashed_password=").
		WithArgs(sqlmock.AnyArg(), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), 3, "new-pass", bcrypt.MinCost); err != nil {
		t.Fatalf("UpdatePassword() error = %v", err)
	}
}

func TestUserUpdatePasswordMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE users SET hashed_password=").
		WithArgs(sqlmock.AnyArg(), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 99, "new-pass", bcrypt.MinCost)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdatePassword() error = %v, want ErrUserNotFound", err)
	}
}
