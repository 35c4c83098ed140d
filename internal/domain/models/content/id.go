package content

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeID returns the dashed UUID form of id, or id unchanged when it is not a UUID.
// The API accepts both forms; caches key on the dashed one.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return u.String()
}

// IsID reports whether s looks like a page id rather than a slug
func IsID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}
