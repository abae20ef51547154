package proposals

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+proposals\s*\(id,\s*title,\s*description,\s*price,\s*target_crops,\s*proposer_id,\s*status\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+created_at\s*$`
	listQ   = `(?s)^SELECT\s+p\.id,.*FROM\s+proposals\s+p\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*p\.proposer_id\s+WHERE\s+p\.status\s*=\s*\$1\s+ORDER\s+BY\s+p\.created_at\s+DESC\s*$`
	lockQ   = `^SELECT proposer_id FROM proposals WHERE id = \$1 FOR UPDATE$`
	deleteQ = `^DELETE FROM proposals WHERE id = \$1$`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	owner := uuid.NewString()
	mock.ExpectQuery(insertQ).
		WithArgs(sqlmock.AnyArg(), "Drip kit", "", 120.0, `["corn","rice"]`, owner, "active").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := repo.Create(context.Background(), &models.Proposal{
		Title:       "Drip kit",
		Price:       120,
		TargetCrops: []string{"corn", "rice"},
		Proposer:    models.Proposer{ID: owner, Name: "Pat", Email: "pat@farm.test"},
		Status:      models.ProposalActive,
	})
	require.NoError(t, err)

	_, perr := uuid.Parse(got.ID)
	assert.NoError(t, perr)
	assert.True(t, now.Equal(got.CreatedAt))
	assert.Equal(t, "Pat", got.Proposer.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_EmptyCropsEncodeAsArray(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs(sqlmock.AnyArg(), "t", "", 0.0, `[]`, "o", "active").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	_, err := repo.Create(context.Background(), &models.Proposal{Title: "t", Proposer: models.Proposer{ID: "o"}, Status: models.ProposalActive})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Proposal{Title: "t"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestListActive(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	cols := []string{"id", "title", "description", "price", "target_crops", "status", "created_at", "uid", "name", "email"}
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	mock.ExpectQuery(listQ).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p2", "Sensors", "soil", 50.0, []byte(`["wheat"]`), "active", newer, "u2", "Bo", "bo@farm.test").
			AddRow("p1", "Pumps", "", 10.0, []byte(`null`), "active", older, "u1", "Ann", "ann@farm.test"))

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, []string{"wheat"}, got[0].TargetCrops)
	assert.Equal(t, models.Proposer{ID: "u2", Name: "Bo", Email: "bo@farm.test"}, got[0].Proposer)
	assert.Equal(t, []string{}, got[1].TargetCrops)
	assert.Equal(t, models.ProposalActive, got[1].Status)
}

func TestListActive_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WillReturnError(errors.New("db err"))

	_, err := repo.ListActive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestDeleteOwned_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQ).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"proposer_id"}).AddRow("owner"))
	mock.ExpectExec(deleteQ).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteOwned(context.Background(), id, "owner"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwned_Forbidden(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQ).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"proposer_id"}).AddRow("owner"))
	mock.ExpectRollback()

	err := repo.DeleteOwned(context.Background(), id, "intruder")
	assert.ErrorIs(t, err, common.ErrorForbidden)
	assert.NoError(t, mock.ExpectationsWereMet(), "no DELETE may be issued")
}

func TestDeleteOwned_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQ).WithArgs(id).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.DeleteOwned(context.Background(), id, "owner"), common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwned_MalformedID(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	assert.ErrorIs(t, repo.DeleteOwned(context.Background(), "64b7f0c2a1", "owner"), common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet(), "no transaction for ids that cannot exist")
}

func TestDeleteOwned_ExecError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQ).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"proposer_id"}).AddRow("owner"))
	mock.ExpectExec(deleteQ).WithArgs(id).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.DeleteOwned(context.Background(), id, "owner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.NoError(t, mock.ExpectationsWereMet())
}
