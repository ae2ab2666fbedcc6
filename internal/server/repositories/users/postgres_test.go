package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/stnkworkshop/auth-service/internal/common"
	"github.com/stnkworkshop/auth-service/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func userRows(u *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "username", "game_id", "email", "password_hash", "activity",
		"role", "is_activated", "activation_code", "created_at", "updated_at",
	}).AddRow(
		u.UserID, u.Username, u.GameID, u.Email, u.PasswordHash, u.Activity,
		u.Role, u.IsActivated, u.ActivationCode, u.CreatedAt, u.UpdatedAt,
	)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\b.*VALUES\s*\(\$1,.*\$9\)\s*RETURNING\s+created_at,\s*updated_at\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs(int64(10000001), "bob", int64(7), "b@x.com", "hash", "pve", "User", false, 54321).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user := &models.User{
		UserID: 10000001, Username: "bob", GameID: 7, Email: "b@x.com",
		PasswordHash: "hash", Activity: "pve", Role: "User", ActivationCode: 54321,
	}
	got, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at not populated: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+user_id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	want := &models.User{
		UserID: 10000001, Username: "bob", GameID: 7, Email: "b@x.com",
		PasswordHash: "hash", Activity: "pve", Role: "User",
		IsActivated: true, ActivationCode: 54321,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	mock.ExpectQuery(q).WithArgs("b@x.com").WillReturnRows(userRows(want))

	got, err := repo.FindByEmail(context.Background(), "b@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != want.UserID || got.Email != want.Email || !got.IsActivated {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("nobody@x.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByUserID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+user_id,.*FROM\s+users\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	want := &models.User{UserID: 10000002, Email: "c@x.com", Role: "User"}
	mock.ExpectQuery(q).WithArgs(int64(10000002)).WillReturnRows(userRows(want))

	got, err := repo.FindByUserID(context.Background(), 10000002)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "c@x.com" {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestMaxUserID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+COALESCE\(MAX\(user_id\),\s*0\)\s+FROM\s+users\s*$`
	mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(10000005)))

	maxID, err := repo.MaxUserID(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maxID != 10000005 {
		t.Fatalf("expected 10000005, got %d", maxID)
	}
}

func TestMaxUserID_EmptyTable(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`COALESCE`).WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	maxID, err := repo.MaxUserID(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maxID != 0 {
		t.Fatalf("expected 0 for empty table, got %d", maxID)
	}
}

func TestDeleteByEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs("stale@x.com").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByEmail(context.Background(), "stale@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActivate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+is_activated\s*=\s*TRUE.*WHERE\s+email\s*=\s*\$1\s*$`
	mock.ExpectExec(q).WithArgs("b@x.com").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Activate(context.Background(), "b@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestActivate_NoRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users`).WithArgs("gone@x.com").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Activate(context.Background(), "gone@x.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
