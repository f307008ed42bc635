package doctor

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Specialty    string    `json:"specialty" db:"specialty"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PresenceStatus is the transient availability of a doctor. It lives only in
// the ephemeral store: available and busy expire, offline persists until
// overwritten, and absence always reads as offline.
type PresenceStatus string

const (
	PresenceAvailable PresenceStatus = "available"
	PresenceBusy      PresenceStatus = "busy"
	PresenceOffline   PresenceStatus = "offline"
)

func (s PresenceStatus) Valid() bool {
	switch s {
	case PresenceAvailable, PresenceBusy, PresenceOffline:
		return true
	}
	return false
}
