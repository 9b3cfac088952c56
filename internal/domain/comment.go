package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousName is stored when a commenter leaves the name field blank.
const AnonymousName = "Anonymous"

// Comment is an unauthenticated public annotation on a share.
// Comments are append-only: there is no edit or delete path.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	ShareID    uuid.UUID `json:"-"`
	AuthorName string    `json:"author_name"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
