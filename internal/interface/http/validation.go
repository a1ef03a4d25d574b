package http

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usPhonePattern matches E.164 numbers in the North American numbering plan.
var usPhonePattern = regexp.MustCompile(`^\+1[0-9]{10}$`)

var registerValidators sync.Once

// setupValidators adds the relay's custom rules to gin's binding validator.
// It panics when they cannot be registered, since every bind would fail.
func setupValidators() {
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("unexpected binding validator engine %T", binding.Validator.Engine()))
		}
		if err := registerPhoneRule(v); err != nil {
			panic(err)
		}
	})
}

func registerPhoneRule(v *validator.Validate) error {
	return v.RegisterValidation("usphone", func(fl validator.FieldLevel) bool {
		return usPhonePattern.MatchString(fl.Field().String())
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "usphone":
			msgs = append(msgs, fmt.Sprintf("%s must be a +1 phone number with 10 digits", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
