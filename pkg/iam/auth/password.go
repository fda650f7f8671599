package auth

import (
	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies signup passwords
type PasswordHasher interface {
	Hash(password kernel.Password) (kernel.PasswordHash, error)
	Compare(hash kernel.PasswordHash, password kernel.Password) bool
}

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password kernel.Password) (kernel.PasswordHash, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return kernel.PasswordHash(hashed), nil
}

func (h *BcryptHasher) Compare(hash kernel.PasswordHash, password kernel.Password) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
