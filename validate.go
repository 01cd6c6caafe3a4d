package cmdtree

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// validate is a single, package-wide validator instance — the teacher wraps
// go-playground/validator the same way in internal/validation/validation.go,
// one shared *validator.Validate rather than one per call site.
var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cmdname", validateCommandName)

	return v
})

// identifierInput is the struct validator.Struct runs against every command,
// literal and argument name a Builder is given, enforcing the non-empty,
// whitespace-free invariant spec §3 states for component names. Flag names
// are not run through it.
type identifierInput struct {
	Name string `validate:"required,cmdname"`
}

// validateCommandName rejects names containing the token separator or
// leading/trailing space — a name users could never actually type as a
// single token.
func validateCommandName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	for i := 0; i < len(name); i++ {
		if name[i] == tokenSeparator {
			return false
		}
	}

	return true
}

// validateIdentifier checks a proposed component/flag name and returns a
// *Failure describing the violation, or nil.
func validateIdentifier(kind, name string) *Failure {
	if err := validate().Struct(identifierInput{Name: name}); err != nil {
		return newFailuref(ErrBuilder, "invalid %s name %q: %v", kind, name, err)
	}

	return nil
}
