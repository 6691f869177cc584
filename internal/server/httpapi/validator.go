package httpapi

import "regexp"

var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// validator accumulates per-field messages; the first failure for a
// field wins.
type validator struct {
	errors map[string]string
}

func newValidator() *validator {
	return &validator{errors: make(map[string]string)}
}

func (v *validator) hasErrors() bool {
	return len(v.errors) != 0
}

func (v *validator) checkCond(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.errors[key]; !ok {
		v.errors[key] = msg
	}
}

func (v *validator) checkEmail(email string) {
	v.checkCond(email != "", "email", "must be provided")
	v.checkCond(emailRegexp.MatchString(email), "email", "must be a valid email address")
}

func (v *validator) checkPassword(password string) {
	v.checkCond(password != "", "password", "must be provided")
	v.checkCond(len(password) >= 8, "password", "must be at least 8 characters long")
	v.checkCond(len(password) <= 72, "password", "must be at most 72 characters long")
}

func (v *validator) checkDisplayName(name string) {
	v.checkCond(name != "", "display_name", "must be provided")
	v.checkCond(len(name) <= 255, "display_name", "must be at most 255 characters")
}
