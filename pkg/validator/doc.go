// Package validator provides declarative validation rules for form input.
//
// A rule constructor captures the value and returns a Rule. Apply evaluates
// every rule and returns the failures, in order, as ValidationErrors:
//
//	err := validator.Apply(
//	    validator.LengthBetween("name", name, 2, 100).WithMessage("Name must be between 2 and 100 characters"),
//	    validator.ValidEmail("email", email),
//	    validator.When(phone != "", validator.ValidPhone("phone", phone)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    details := verrs.Messages()
//	}
//
// Each failure keeps the rule's Code ("length", "email", ...) next to its
// message so callers can map failures without string matching.
package validator
