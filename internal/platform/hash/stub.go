package hash

import "errors"

type StubHasher struct {
	HashFunc func(plain string) (string, error)
}

var _ Hasher = (*StubHasher)(nil)

func (h *StubHasher) Hash(plain string) (string, error) {
	if h.HashFunc == nil {
		return "", errors.New("Hash is not implemented by stub")
	}
	return h.HashFunc(plain)
}
