package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. User ids are opaque to clients; ULIDs keep
// them unique, unguessable enough for a sample app, and sortable by creation
// time, which makes good DynamoDB partition keys.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
