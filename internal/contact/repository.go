// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

// Repository scopes every operation by owner inside the query itself.
// A mismatched owner and a missing id both come back as core.ErrNotFound,
// so a caller cannot tell whether someone else's contact exists.
type Repository interface {
	ListByOwner(ctx context.Context, owner string) ([]Contact, error)
	GetByID(ctx context.Context, id, owner string) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
	Update(
		ctx context.Context,
		id, owner string,
		fields UpdateContactRequest,
	) (*Contact, error)
	Delete(ctx context.Context, id, owner string) (*Contact, error)
	SetFavorite(
		ctx context.Context,
		id, owner string,
		favorite bool,
	) (*Contact, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const contactColumns = `id, name, email, phone, favorite, owner,
		       created_at, updated_at`

func (r *repository) ListByOwner(
	ctx context.Context,
	owner string,
) ([]Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE owner = $1
		ORDER BY created_at DESC`, contactColumns)

	contacts := []Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query, owner); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id, owner string,
) (*Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE id = $1 AND owner = $2`, contactColumns)

	var contact Contact
	err := r.db.GetContext(ctx, &contact, query, id, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return &contact, nil
}

func (r *repository) Create(ctx context.Context, contact *Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, phone, favorite, owner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, contact, query,
		contact.ID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Favorite,
		contact.Owner,
	)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

// Update applies the present fields in one owner-filtered statement; there
// is no separate existence check to race against.
func (r *repository) Update(
	ctx context.Context,
	id, owner string,
	fields UpdateContactRequest,
) (*Contact, error) {
	var assignments []string
	var args []any
	argIdx := 1

	if fields.Name != nil {
		assignments = append(assignments, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *fields.Name)
		argIdx++
	}

	if fields.Email != nil {
		assignments = append(assignments, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *fields.Email)
		argIdx++
	}

	if fields.Phone != nil {
		assignments = append(assignments, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, *fields.Phone)
		argIdx++
	}

	if fields.Favorite != nil {
		assignments = append(assignments, fmt.Sprintf("favorite = $%d", argIdx))
		args = append(args, *fields.Favorite)
		argIdx++
	}

	if len(assignments) == 0 {
		return nil, fmt.Errorf("update contact: %w", core.ErrInvalidInput)
	}

	assignments = append(assignments, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE contacts
		SET %s
		WHERE id = $%d AND owner = $%d
		RETURNING %s`,
		strings.Join(assignments, ", "), argIdx, argIdx+1, contactColumns)

	args = append(args, id, owner)

	var contact Contact
	err := r.db.GetContext(ctx, &contact, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}

	return &contact, nil
}

func (r *repository) Delete(
	ctx context.Context,
	id, owner string,
) (*Contact, error) {
	query := fmt.Sprintf(`
		DELETE FROM contacts
		WHERE id = $1 AND owner = $2
		RETURNING %s`, contactColumns)

	var contact Contact
	err := r.db.GetContext(ctx, &contact, query, id, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delete contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete contact: %w", err)
	}

	return &contact, nil
}

func (r *repository) SetFavorite(
	ctx context.Context,
	id, owner string,
	favorite bool,
) (*Contact, error) {
	query := fmt.Sprintf(`
		UPDATE contacts
		SET favorite = $3, updated_at = NOW()
		WHERE id = $1 AND owner = $2
		RETURNING %s`, contactColumns)

	var contact Contact
	err := r.db.GetContext(ctx, &contact, query, id, owner, favorite)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set favorite: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set favorite: %w", err)
	}

	return &contact, nil
}
