// AngelaMos | 2026
// entity.go

package contact

import (
	"time"
)

// Contact always belongs to exactly one user; Owner is immutable after
// creation and every query is filtered by it.
type Contact struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Favorite  bool      `db:"favorite"`
	Owner     string    `db:"owner"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
