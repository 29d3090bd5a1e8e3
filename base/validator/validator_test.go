package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestValidate() {
	type payload struct {
		Name  string `validate:"required"`
		Count int    `validate:"gte=0"`
	}

	v := NewCustomValidator(validator.New())

	s.NoError(v.Validate(&payload{Name: "alice.eth", Count: 1}))
	s.Error(v.Validate(&payload{Name: "", Count: 1}))
	s.Error(v.Validate(&payload{Name: "alice.eth", Count: -1}))
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
