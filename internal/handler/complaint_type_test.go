package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/openpetition/petition-api/internal/repository"
)

func newComplaintTypeHandler(t *testing.T) (*ComplaintTypeHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewComplaintTypeHandler(repository.NewComplaintTypeRepo(db)), mock
}

func TestComplaintTypeCreate(t *testing.T) {
	h, mock := newComplaintTypeHandler(t)
	mock.ExpectExec("INSERT INTO complaints_type").
		WithArgs(int64(2), "Abusive content").
		WillReturnResult(sqlmock.NewResult(2, 1))

	c, rec := authedCtx(http.MethodPost, "/v1/complaint_types",
		`{"complaint_type":2,"dictionary":"Abusive content"}`, 1)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
}

func TestComplaintTypeCreateMissingDictionary(t *testing.T) {
	h, _ := newComplaintTypeHandler(t)
	c, rec := authedCtx(http.MethodPost, "/v1/complaint_types", `{"complaint_type":2}`, 1)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestComplaintTypeUpdateMissing(t *testing.T) {
	h, mock := newComplaintTypeHandler(t)
	mock.ExpectExec("UPDATE complaints_type SET").
		WithArgs(int64(2), "Spam", uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Zero affected rows triggers an existence re-check.
	mock.ExpectQuery("SELECT (.+) FROM complaints_type WHERE id = \\?").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := authedCtx(http.MethodPut, "/v1/complaint_types/404",
		`{"complaint_type":2,"dictionary":"Spam"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("404")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
