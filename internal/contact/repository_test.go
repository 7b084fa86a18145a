// AngelaMos | 2026
// repository_test.go

package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func contactRows(contacts ...Contact) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "favorite", "owner",
		"created_at", "updated_at",
	})
	for _, c := range contacts {
		rows.AddRow(
			c.ID, c.Name, c.Email, c.Phone, c.Favorite, c.Owner,
			c.CreatedAt, c.UpdatedAt,
		)
	}
	return rows
}

func sampleContact() Contact {
	now := time.Now()
	return Contact{
		ID:        "c-1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Phone:     "+1 555 0100",
		Favorite:  false,
		Owner:     "u-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	c := sampleContact()
	mock.ExpectQuery(`(?s)SELECT .+ FROM contacts\s+WHERE owner = \$1\s+ORDER BY created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(contactRows(c))

	contacts, err := repo.ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "c-1", contacts[0].ID)
}

func TestListByOwner_EmptyIsNotAnError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM contacts\s+WHERE owner = \$1`).
		WithArgs("u-1").
		WillReturnRows(contactRows())

	contacts, err := repo.ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestGetByID_ScopedByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM contacts\s+WHERE id = \$1 AND owner = \$2`).
		WithArgs("c-1", "u-1").
		WillReturnRows(contactRows(sampleContact()))

	contact, err := repo.GetByID(context.Background(), "c-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", contact.Name)
}

func TestGetByID_OtherOwnerIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM contacts\s+WHERE id = \$1 AND owner = \$2`).
		WithArgs("c-1", "u-2").
		WillReturnRows(contactRows())

	_, err := repo.GetByID(context.Background(), "c-1", "u-2")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO contacts \(id, name, email, phone, favorite, owner\)`).
		WithArgs("c-1", "Alice", "alice@example.com", "+1 555 0100", false, "u-1").
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)

	c := sampleContact()
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}

	require.NoError(t, repo.Create(context.Background(), &c))
	assert.Equal(t, now, c.CreatedAt)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO contacts`).
		WillReturnError(errors.New("db down"))

	c := sampleContact()
	err := repo.Create(context.Background(), &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create contact")
}

func TestUpdate_PartialFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	updated := sampleContact()
	updated.Name = "Alice Cooper"

	mock.ExpectQuery(`(?s)UPDATE contacts\s+SET name = \$1, updated_at = NOW\(\)\s+WHERE id = \$2 AND owner = \$3\s+RETURNING`).
		WithArgs("Alice Cooper", "c-1", "u-1").
		WillReturnRows(contactRows(updated))

	name := "Alice Cooper"
	contact, err := repo.Update(
		context.Background(),
		"c-1", "u-1",
		UpdateContactRequest{Name: &name},
	)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", contact.Name)
}

func TestUpdate_AllFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	updated := sampleContact()
	updated.Favorite = true

	mock.ExpectQuery(`(?s)UPDATE contacts\s+SET name = \$1, email = \$2, phone = \$3, favorite = \$4, updated_at = NOW\(\)\s+WHERE id = \$5 AND owner = \$6`).
		WithArgs("Bob", "bob@example.com", "+1 555 0101", true, "c-1", "u-1").
		WillReturnRows(contactRows(updated))

	name, email, phone := "Bob", "bob@example.com", "+1 555 0101"
	favorite := true
	_, err := repo.Update(
		context.Background(),
		"c-1", "u-1",
		UpdateContactRequest{
			Name:     &name,
			Email:    &email,
			Phone:    &phone,
			Favorite: &favorite,
		},
	)
	require.NoError(t, err)
}

func TestUpdate_NoFields(t *testing.T) {
	repo, _ := newRepoWithMock(t)

	_, err := repo.Update(
		context.Background(),
		"c-1", "u-1",
		UpdateContactRequest{},
	)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)UPDATE contacts`).
		WithArgs("Alice", "c-404", "u-1").
		WillReturnRows(contactRows())

	name := "Alice"
	_, err := repo.Update(
		context.Background(),
		"c-404", "u-1",
		UpdateContactRequest{Name: &name},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDelete_ReturnsDeletedRow(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)DELETE FROM contacts\s+WHERE id = \$1 AND owner = \$2\s+RETURNING`).
		WithArgs("c-1", "u-1").
		WillReturnRows(contactRows(sampleContact()))

	contact, err := repo.Delete(context.Background(), "c-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", contact.ID)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)DELETE FROM contacts`).
		WithArgs("c-404", "u-1").
		WillReturnRows(contactRows())

	_, err := repo.Delete(context.Background(), "c-404", "u-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSetFavorite(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	updated := sampleContact()
	updated.Favorite = true

	mock.ExpectQuery(`(?s)UPDATE contacts\s+SET favorite = \$3, updated_at = NOW\(\)\s+WHERE id = \$1 AND owner = \$2`).
		WithArgs("c-1", "u-1", true).
		WillReturnRows(contactRows(updated))

	contact, err := repo.SetFavorite(context.Background(), "c-1", "u-1", true)
	require.NoError(t, err)
	assert.True(t, contact.Favorite)
}

func TestSetFavorite_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)UPDATE contacts\s+SET favorite = \$3`).
		WithArgs("c-404", "u-1", false).
		WillReturnRows(contactRows())

	_, err := repo.SetFavorite(context.Background(), "c-404", "u-1", false)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
