package bcrypt

import (
	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// Hasher hashes passwords with a fresh random salt per call.
type Hasher struct {
	cost int
}

// New returns a Hasher. Costs outside bcrypt's range fall back to DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns nil only when plain matches hashed.
func (h *Hasher) Compare(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
