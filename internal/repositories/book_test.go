package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/bookie-app/bookie-api/internal/models"
)

func newBookMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func bookRows(books ...models.BookDB) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"uid", "title", "author", "publisher", "page_count", "language",
		"published_date", "user_uid", "created_at", "updated_at",
	})
	for _, b := range books {
		rows.AddRow(b.UID, b.Title, b.Author, b.Publisher, b.PageCount, b.Language,
			b.PublishedDate, b.UserUID, b.CreatedAt, b.UpdatedAt)
	}
	return rows
}

func strptr(s string) *string { return &s }

func TestBookReadRepository_List_Ordering(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookReadRepository(db, nil)

	newer := models.BookDB{UID: uuid.New(), Title: strptr("Newer"), CreatedAt: time.Now()}
	older := models.BookDB{UID: uuid.New(), Title: strptr("Older"), CreatedAt: time.Now().Add(-time.Hour)}

	mock.ExpectQuery(`SELECT (.+) FROM books ORDER BY created_at DESC`).
		WillReturnRows(bookRows(newer, older))

	books, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, newer.UID, books[0].UID)
	assert.Equal(t, older.UID, books[1].UID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookReadRepository_ListByUser_Empty(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookReadRepository(db, nil)

	userUID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM books WHERE user_uid = \$1 ORDER BY created_at DESC`).
		WithArgs(userUID).
		WillReturnRows(bookRows())

	books, err := repo.ListByUser(context.Background(), userUID)
	assert.NoError(t, err)
	assert.NotNil(t, books, "zero books is an empty slice, not nil")
	assert.Len(t, books, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookReadRepository_Get_NotFound(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookReadRepository(db, nil)

	uid := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM books WHERE uid = \$1`).
		WithArgs(uid).
		WillReturnRows(bookRows())

	book, err := repo.Get(context.Background(), uid)
	assert.NoError(t, err)
	assert.Nil(t, book)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Save(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookWriteRepository(db, nil)

	ownerUID := uuid.New()
	book := models.BookDB{
		Title:    strptr("The Go Programming Language"),
		Author:   strptr("Donovan"),
		Language: strptr(models.DefaultBookLanguage),
		UserUID:  &ownerUID,
	}
	saved := book
	saved.UID = uuid.New()
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt

	mock.ExpectQuery(`INSERT INTO books (.+) RETURNING`).
		WillReturnRows(bookRows(saved))

	got, err := repo.Save(context.Background(), book)
	assert.NoError(t, err)
	assert.Equal(t, saved.UID, got.UID)
	assert.Equal(t, *book.Title, *got.Title)
	assert.Equal(t, ownerUID, *got.UserUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Update_NotFound(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookWriteRepository(db, nil)

	uid := uuid.New()

	mock.ExpectQuery(`UPDATE books SET (.+) WHERE uid = \$1 RETURNING`).
		WillReturnRows(bookRows())

	updated, err := repo.Update(context.Background(), uid, models.BookUpdate{Title: strptr("New title")})
	assert.NoError(t, err)
	assert.Nil(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Update_PartialFields(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookWriteRepository(db, nil)

	uid := uuid.New()
	updated := models.BookDB{
		UID:      uid,
		Title:    strptr("New title"),
		Author:   strptr("Old author"),
		Language: strptr(models.DefaultBookLanguage),
	}

	mock.ExpectQuery(`UPDATE books SET (.+) WHERE uid = \$1 RETURNING`).
		WillReturnRows(bookRows(updated))

	got, err := repo.Update(context.Background(), uid, models.BookUpdate{Title: strptr("New title")})
	assert.NoError(t, err)
	assert.Equal(t, "New title", *got.Title)
	assert.Equal(t, "Old author", *got.Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Delete(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookWriteRepository(db, nil)

	uid := uuid.New()
	deleted := models.BookDB{UID: uid, Title: strptr("Gone")}

	mock.ExpectQuery(`DELETE FROM books WHERE uid = \$1 RETURNING`).
		WithArgs(uid).
		WillReturnRows(bookRows(deleted))

	got, err := repo.Delete(context.Background(), uid)
	assert.NoError(t, err)
	assert.Equal(t, uid, got.UID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Delete_NotFound(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookWriteRepository(db, nil)

	uid := uuid.New()

	mock.ExpectQuery(`DELETE FROM books WHERE uid = \$1 RETURNING`).
		WithArgs(uid).
		WillReturnRows(bookRows())

	got, err := repo.Delete(context.Background(), uid)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookReadRepository_List_QueryError(t *testing.T) {
	db, mock := newBookMockDB(t)
	repo := NewBookReadRepository(db, nil)

	mock.ExpectQuery(`SELECT (.+) FROM books`).
		WillReturnError(errors.New("connection refused"))

	books, err := repo.List(context.Background())
	assert.Error(t, err)
	assert.Nil(t, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}
