package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*password_hash,\s*role,\s*location,\s*crop_type\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*NULLIF\(\$6, ''\),\s*NULLIF\(\$7, ''\)\)\s*RETURNING\s+created_at\s*$`

var userCols = []string{"id", "name", "email", "password_hash", "role", "location", "crop_type", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(insertQ).
		WithArgs(sqlmock.AnyArg(), "Ann", "ann@farm.test", "hash", "farmer", "Valley", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	in := &models.User{Name: "Ann", Email: "ann@farm.test", PasswordHash: "hash", Role: models.RoleFarmer, Location: "Valley"}
	got, err := repo.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", got.ID)
	}
	if !got.CreatedAt.Equal(now) || got.Email != "ann@farm.test" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if in.ID != "" {
		t.Fatalf("input must not be mutated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), &models.User{Email: "dup@farm.test", Role: models.RoleFarmer})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "ann@farm.test"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows(userCols).
		AddRow("u-1", "Ann", "ann@farm.test", "hash", "provider", "", "", time.Now())
	mock.ExpectQuery(q).WithArgs("ann@farm.test").WillReturnRows(rows)

	got, err := repo.GetUserByEmail(context.Background(), "ann@farm.test")
	if err != nil {
		t.Fatalf("GetUserByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.Role != models.RoleProvider || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs("ghost@farm.test").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@farm.test")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.NewString()
	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(id, "Bo", "bo@farm.test", "h", "farmer", "", "wheat", time.Now()))

	got, err := repo.GetUserByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetUserByID error: %v", err)
	}
	if got.CropType != "wheat" {
		t.Fatalf("unexpected user: %+v", got)
	}

	// not a uuid: no query is issued
	if _, err := repo.GetUserByID(context.Background(), "1700000000000000000"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+users\s+ORDER\s+BY\s+created_at\s*$`
	rows := sqlmock.NewRows(userCols).
		AddRow("u-1", "Ann", "ann@farm.test", "h1", "farmer", "", "", time.Now()).
		AddRow("u-2", "Bo", "bo@farm.test", "h2", "manufacturer", "North", "", time.Now())
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].Role != models.RoleManufacturer || got[1].Location != "North" {
		t.Fatalf("unexpected users: %+v", got)
	}
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+users`).WillReturnError(errors.New("db err"))

	_, err := repo.List(context.Background())
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
