package validator

// Rule is one check on one field. The zero Rule always passes.
type Rule struct {
	Field   string
	Code    string
	Message string
	check   func() bool
}

func newRule(field, code, message string, check func() bool) Rule {
	return Rule{Field: field, Code: code, Message: message, check: check}
}

// Passes runs the check.
func (r Rule) Passes() bool {
	return r.check == nil || r.check()
}

// WithMessage returns a copy of the rule reporting msg on failure.
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// When makes rule conditional: it passes whenever cond is false.
func When(cond bool, rule Rule) Rule {
	if !cond {
		rule.check = nil
	}
	return rule
}

// Apply runs every rule, without stopping at the first failure, and returns
// the failures as ValidationErrors in rule order. It returns nil when all pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Passes() {
			errs = append(errs, ValidationError{Field: r.Field, Code: r.Code, Message: r.Message})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
