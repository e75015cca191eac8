package validation

import "errors"

type StubValidator struct {
	ValidateStructFunc func(any) map[string]string
}

var _ Validator = (*StubValidator)(nil)

func (s *StubValidator) ValidateStruct(st any) map[string]string {
	if s.ValidateStructFunc == nil {
		return map[string]string{"stub": errors.New("ValidateStruct not implemented by stub").Error()}
	}
	return s.ValidateStructFunc(st)
}
