package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
	"pet-vet-reviews/internal/domain/users"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUsersRepo_Create_UniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUsersRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("u1", "a@x.com", "hash", "alice", t0).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.Create(context.Background(), users.User{
		ID: "u1", Email: "a@x.com", PasswordHash: "hash", UserName: "alice", CreatedAt: t0,
	})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUsersRepo(db)
	cols := []string{"id", "email", "password_hash", "user_name", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "a@x.com", "hash", "alice", t0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).
		WithArgs("b@x.com").
		WillReturnRows(sqlmock.NewRows(cols))

	u, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)

	_, err = repo.GetByEmail(context.Background(), "b@x.com")
	assert.ErrorIs(t, err, users.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var profileCols = []string{"id", "user_id", "zipcode", "state", "city", "pets", "history", "created_at", "version"}

func TestProfilesRepo_GetByUser_DecodesDocuments(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfilesRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM profiles`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(
			"p1", "u1", int64(12345), "CA", "LA",
			[]byte(`[{"_id":"pet1","petName":"Rex","breed":"unknown","spayed_neutered":"No"}]`),
			[]byte(`[]`),
			t0, int64(4),
		))

	p, err := repo.GetByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), p.Zipcode)
	assert.Equal(t, int64(4), p.Version)
	require.Len(t, p.Pets, 1)
	assert.Equal(t, profiles.Pet{ID: "pet1", Name: "Rex", Breed: "unknown", SpayedNeutered: "No"}, p.Pets[0])
	assert.Empty(t, p.History)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilesRepo_Create_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfilesRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO profiles`)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.Create(context.Background(), profiles.Profile{ID: "p1", UserID: "u1"})
	assert.ErrorIs(t, err, profiles.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilesRepo_Update(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		exists   bool
		want     error
	}{
		{"applied", 1, true, nil},
		{"stale version", 0, true, profiles.ErrVersionConflict},
		{"missing", 0, false, profiles.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewProfilesRepo(db)

			mock.ExpectExec(regexp.QuoteMeta(`UPDATE profiles`)).
				WithArgs("u1", int64(2), int64(12345), "CA", "LA", `[]`, `[]`).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))
			if tc.affected == 0 {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
					WithArgs("u1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))
			}

			err := repo.Update(context.Background(), profiles.Profile{
				UserID: "u1", Version: 2, Zipcode: 12345, State: "CA", City: "LA",
			})
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

var postCols = []string{"id", "user_id", "user_name", "yelp_id", "vet_name", "post_title", "image_url", "address", "phone", "toggles", "created_at", "version"}

func TestPostsRepo_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM posts`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC, id DESC`)).
		WithArgs("u1", 5, 5).
		WillReturnRows(sqlmock.NewRows(postCols).AddRow(
			"p1", "u1", "alice", "biz-1", "", "visit", "", "", "",
			[]byte(`{"useful":[{"_id":"e1","user":"u2"}],"GI_stasis":[]}`),
			t0, int64(0),
		))

	page, err := repo.List(context.Background(), posts.ListFilter{UserID: "u1", Offset: 5, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 6, page.Count)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, []string{"u2"}, page.Posts[0].Toggles[posts.Useful].Users())
	assert.NotNil(t, page.Posts[0].Toggles[posts.Laboratory])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostsRepo_List_PastLastPage(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM posts`)).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	page, err := repo.List(context.Background(), posts.ListFilter{Offset: 5, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	assert.Empty(t, page.Posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostsRepo_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostsRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts`)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "p1"), posts.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteAccount_Transaction(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE user_id`)).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM profiles`)).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users`)).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.DeleteAccount(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteAccount_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE user_id`)).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM profiles`)).WithArgs("u1").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	assert.Error(t, store.DeleteAccount(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleDocuments_RoundTrip(t *testing.T) {
	in := posts.Toggles{}.Clone()
	in[posts.SpayNeutered] = posts.ToggleList{{ID: "e1", UserID: "u1"}, {ID: "e2", UserID: "u2"}}

	raw, err := encodeToggles(in)
	require.NoError(t, err)
	assert.Contains(t, raw, `"spay_neutered":[{"_id":"e1","user":"u1"}`)

	out, err := decodeToggles([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
