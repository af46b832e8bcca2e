// Package query builds the read-side aggregations of the API: each use case
// is a single round trip that joins related tables and computes derived
// fields (like counts, subscriber counts, viewer-relative booleans) with
// correlated subqueries. Writes that belong to the store (view counters,
// watch history, like/subscription toggles) live here too so the handlers
// stay thin.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/gorm"

	"vidtube/pkg/response"
)

// Builder runs aggregation queries against an injected store handle. A
// viewer id of 0 means "no authenticated viewer": viewer-relative fields
// come back false, never an error.
type Builder struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

// OwnerSummary is the owner projection every feed embeds. It is a fixed
// allowlist: no password, email or asset keys can leak through it.
type OwnerSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

// ParseID validates a textual id from the request path or query. Ill-formed
// input fails fast with a client error instead of silently matching nothing.
func ParseID(raw, what string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, response.InvalidArgument(fmt.Sprintf("invalid %s", what))
	}
	return uint(n), nil
}

// IsUniqueViolation reports whether err is the store rejecting a duplicate
// row on a unique index. The toggle paths rely on it to turn a conflicting
// insert into a delete.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

// OwnerRow is the flat scan target for joined owner columns. It is embedded
// in the per-use-case row structs; it must stay exported, as must they, or
// gorm skips the fields when scanning.
type OwnerRow struct {
	OwnerID        uint
	OwnerUsername  string
	OwnerFullName  string
	OwnerAvatarURL string
}

func (r OwnerRow) summary() OwnerSummary {
	return OwnerSummary{
		ID:        r.OwnerID,
		Username:  r.OwnerUsername,
		FullName:  r.OwnerFullName,
		AvatarURL: r.OwnerAvatarURL,
	}
}

const ownerColumns = `users.id AS owner_id, users.username AS owner_username,
	users.full_name AS owner_full_name, users.avatar_url AS owner_avatar_url`

var timeNow = time.Now
