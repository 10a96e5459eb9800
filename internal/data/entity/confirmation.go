package entity

import (
	"time"

	"github.com/google/uuid"
)

// Confirmation stores one issued signup code. The code itself is only ever
// persisted as a bcrypt hash; Fingerprint pins the code to the user state it
// was issued against.
type Confirmation struct {
	BaseSimple
	UserID      uuid.UUID `db:"user_id"`
	CodeHash    string    `db:"code_hash"`
	Fingerprint string    `db:"fingerprint"`
	ExpiresAt   time.Time `db:"expires_at"`
	Used        bool      `db:"used"`
}
