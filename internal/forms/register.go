package forms

import (
	"context"
	"strings"

	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

// StudentRegistrationForm drives student signup against the gateway.
type StudentRegistrationForm struct {
	machine
	gateway ports.AuthGateway
}

// NewStudentRegistrationForm creates a student registration form.
func NewStudentRegistrationForm(gw ports.AuthGateway) *StudentRegistrationForm {
	return &StudentRegistrationForm{machine: newMachine(), gateway: gw}
}

// RecruiterRegistrationForm drives recruiter signup against the gateway.
type RecruiterRegistrationForm struct {
	machine
	gateway ports.AuthGateway
}

// NewRecruiterRegistrationForm creates a recruiter registration form.
func NewRecruiterRegistrationForm(gw ports.AuthGateway) *RecruiterRegistrationForm {
	return &RecruiterRegistrationForm{machine: newMachine(), gateway: gw}
}

// validateCommon checks the fields shared by both registration forms.
func validateCommon(email, password, confirm, firstName, lastName, phone string, errs map[string]string) {
	if !validEmail(email) {
		errs["email"] = "Enter a valid email address."
	}
	if !validStrongPassword(password) {
		errs["password"] = "Password must be at least 8 characters with an upper-case letter, a lower-case letter, and a digit."
	}
	if confirm != password {
		errs["confirm_password"] = "Passwords do not match."
	}
	if strings.TrimSpace(firstName) == "" {
		errs["first_name"] = "First name is required."
	}
	if strings.TrimSpace(lastName) == "" {
		errs["last_name"] = "Last name is required."
	}
	if !validPhone(phone) {
		errs["phone_number"] = "Enter a valid phone number."
	}
}

// ValidateStudentSignup checks a student signup and returns a field-keyed
// error map, empty when acceptable.
func ValidateStudentSignup(in ports.StudentSignup) map[string]string {
	errs := map[string]string{}
	validateCommon(in.Email, in.Password, in.ConfirmPassword, in.FirstName, in.LastName, in.PhoneNumber, errs)
	if strings.TrimSpace(in.StudentID) == "" {
		errs["student_id"] = "Student ID is required."
	}
	if strings.TrimSpace(in.University) == "" {
		errs["university"] = "University is required."
	}
	if strings.TrimSpace(in.Department) == "" {
		errs["department"] = "Department is required."
	}
	if strings.TrimSpace(in.GraduationYear) == "" {
		errs["graduation_year"] = "Graduation year is required."
	}
	if !in.AgreeTerms {
		errs["agree_terms"] = "You must accept the terms of service."
	}
	if !in.AgreePlacement {
		errs["agree_placement"] = "You must accept the placement policy."
	}
	return errs
}

// ValidateRecruiterSignup checks a recruiter signup and returns a
// field-keyed error map, empty when acceptable.
func ValidateRecruiterSignup(in ports.RecruiterSignup) map[string]string {
	errs := map[string]string{}
	validateCommon(in.Email, in.Password, in.ConfirmPassword, in.FirstName, in.LastName, in.PhoneNumber, errs)
	if strings.TrimSpace(in.CompanyName) == "" {
		errs["company_name"] = "Company name is required."
	}
	if strings.TrimSpace(in.Position) == "" {
		errs["position"] = "Your position is required."
	}
	if !validWebsite(in.CompanyWebsite) {
		errs["company_website"] = "Enter the company website as an http(s) URL."
	}
	if strings.TrimSpace(in.CompanySize) == "" {
		errs["company_size"] = "Company size is required."
	}
	if !in.AgreeTerms {
		errs["agree_terms"] = "You must accept the terms of service."
	}
	if !in.AgreeConduct {
		errs["agree_conduct"] = "You must accept the recruiter code of conduct."
	}
	return errs
}

// Submit validates and, only when validation passes, registers the student.
// Re-entry while an attempt is in flight is a no-op.
func (f *StudentRegistrationForm) Submit(ctx context.Context, in ports.StudentSignup) Result {
	if !f.beginSubmit() {
		return Result{State: f.State(), Errors: f.Errors()}
	}
	if errs := ValidateStudentSignup(in); len(errs) > 0 {
		return f.failValidation(errs)
	}

	f.startNetwork()
	result, err := f.gateway.RegisterStudent(ctx, in)
	if err != nil {
		if fields := apperrors.GetFields(err); len(fields) > 0 {
			return f.failValidation(fields)
		}
		return f.fail(gatewayMessage(err))
	}
	return f.succeed(&result)
}

// Submit validates and, only when validation passes, registers the recruiter.
// Re-entry while an attempt is in flight is a no-op.
func (f *RecruiterRegistrationForm) Submit(ctx context.Context, in ports.RecruiterSignup) Result {
	if !f.beginSubmit() {
		return Result{State: f.State(), Errors: f.Errors()}
	}
	if errs := ValidateRecruiterSignup(in); len(errs) > 0 {
		return f.failValidation(errs)
	}

	f.startNetwork()
	result, err := f.gateway.RegisterRecruiter(ctx, in)
	if err != nil {
		if fields := apperrors.GetFields(err); len(fields) > 0 {
			return f.failValidation(fields)
		}
		return f.fail(gatewayMessage(err))
	}
	return f.succeed(&result)
}
