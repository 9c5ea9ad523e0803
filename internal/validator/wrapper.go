package validator

// Validator wraps struct validation and the domain business rules behind a
// single dependency handed to the service layer.
type Validator struct {
	business *BusinessValidator
}

// New creates a validator with all custom rules registered
func New() *Validator {
	return &Validator{
		business: NewBusinessValidator(),
	}
}

// Validate validates struct tags and returns ValidationErrors on failure
func (v *Validator) Validate(s interface{}) error {
	if errors := v.business.Validate(s); len(errors) > 0 {
		return errors
	}
	return nil
}

// GetBusinessValidator exposes the business rule validator
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}
