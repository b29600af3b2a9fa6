package records

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cvboard/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQuery = `(?s)^\s*INSERT\s+INTO\s+records\s*\(id,\s*owner,\s*name,\s*qualifications,\s*skills,\s*posted_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*ON\s+CONFLICT\s*\(owner\)\s*DO\s+NOTHING\s*$`

func sampleRecord() models.Record {
	return models.Record{
		Owner:          "owner-1",
		Name:           "Ann",
		Qualifications: []string{"BSc", "MSc"},
		Skills:         []string{"Go", "SQL"},
		PostedAt:       1_700_000_000_000_000_001,
	}
}

func TestCreate_Inserted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rec := sampleRecord()
	mock.ExpectExec(insertQuery).
		WithArgs("id-1", "owner-1", "Ann", `["BSc","MSc"]`, `["Go","SQL"]`, rec.PostedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), "id-1", rec)
	require.NoError(t, err)
	require.True(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_OwnerConflictIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Create(context.Background(), "id-2", sampleRecord())
	require.NoError(t, err)
	require.False(t, created)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "id-3", sampleRecord())
	require.ErrorContains(t, err, "db error: db down")
}

func TestCreate_UnexpectedRowsAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(0, 2))

	_, err := repo.Create(context.Background(), "id-4", sampleRecord())
	require.ErrorContains(t, err, "unexpected rows affected: 2")
}

func TestList_DecodesRowsInOrder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"owner", "name", "qualifications", "skills", "posted_at"}).
		AddRow("o1", "Ann", []byte(`["BSc"]`), []byte(`["Go","Rust"]`), int64(10)).
		AddRow("o2", "Bob", []byte(`["MSc"]`), []byte(`["C++"]`), int64(20))
	mock.ExpectQuery(`(?s)SELECT\s+owner,\s*name,\s*qualifications,\s*skills,\s*posted_at\s+FROM\s+records\s+ORDER\s+BY\s+posted_at,\s*seq`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)

	want := []models.Record{
		{Owner: "o1", Name: "Ann", Qualifications: []string{"BSc"}, Skills: []string{"Go", "Rust"}, PostedAt: 10},
		{Owner: "o2", Name: "Bob", Qualifications: []string{"MSc"}, Skills: []string{"C++"}, PostedAt: 20},
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnRows(
		sqlmock.NewRows([]string{"owner", "name", "qualifications", "skills", "posted_at"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestList_BadJSON(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"owner", "name", "qualifications", "skills", "posted_at"}).
		AddRow("o1", "Ann", []byte(`not json`), []byte(`[]`), int64(10))
	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.ErrorContains(t, err, "decode qualifications")
}

func TestDeleteAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+records$`).WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	mock.ExpectExec(`^DELETE\s+FROM\s+records$`).WillReturnResult(sqlmock.NewResult(0, 0))
	n, err = repo.DeleteAll(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestLatestPostedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COALESCE\(MAX\(posted_at\),\s*0\)\s+FROM\s+records`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(99)))

	latest, err := repo.LatestPostedAt(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 99, latest)
}
