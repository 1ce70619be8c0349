package authinfra

import (
	"github.com/Abraxas-365/hireflow/pkg/errx"
	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordService hashes passwords with bcrypt
type BcryptPasswordService struct {
	cost int
}

func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

// NewBcryptPasswordServiceWithCost is meant for tests, where the default cost
// is needlessly slow.
func NewBcryptPasswordServiceWithCost(cost int) *BcryptPasswordService {
	return &BcryptPasswordService{cost: cost}
}

func (s *BcryptPasswordService) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hash), nil
}

func (s *BcryptPasswordService) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
