// Package validation checks offboarding form submissions before they are stored.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"offboarding-service/internal/models"
)

var (
	companyEmailRe  = regexp.MustCompile(`^[a-zA-Z0-9]{3,50}@astrolitetech\.com$`)
	personalEmailRe = regexp.MustCompile(`^[a-zA-Z0-9.]{5,20}@(gmail\.com|yahoo\.com|outlook\.com)$`)
	employeeIDRe    = regexp.MustCompile(`^ATS0(\d{3})$`)
	phoneNumberRe   = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// Result is the outcome of Validate. The zero value means valid.
type Result struct {
	Field   string
	Message string
}

// Valid reports whether no rule was violated.
func (r Result) Valid() bool {
	return r.Message == ""
}

type field struct {
	name  string
	value func(models.OffboardingSubmission) string
}

// Order matters: the first missing field is the one reported.
var requiredFields = []field{
	{"fullName", func(s models.OffboardingSubmission) string { return s.FullName }},
	{"employeeId", func(s models.OffboardingSubmission) string { return s.EmployeeID }},
	{"email", func(s models.OffboardingSubmission) string { return s.Email }},
	{"department", func(s models.OffboardingSubmission) string { return s.Department }},
	{"position", func(s models.OffboardingSubmission) string { return s.Position }},
	{"lastWorkDay", func(s models.OffboardingSubmission) string { return s.LastWorkDay }},
	{"personalEmail", func(s models.OffboardingSubmission) string { return s.PersonalEmail }},
	{"phoneNumber", func(s models.OffboardingSubmission) string { return s.PhoneNumber }},
	{"currentAddress", func(s models.OffboardingSubmission) string { return s.CurrentAddress }},
	{"currentProjects", func(s models.OffboardingSubmission) string { return s.CurrentProjects }},
	{"projectStatus", func(s models.OffboardingSubmission) string { return s.ProjectStatus }},
	{"handoverPerson", func(s models.OffboardingSubmission) string { return s.HandoverPerson }},
	{"resignationReason", func(s models.OffboardingSubmission) string { return s.ResignationReason }},
	{"feedback", func(s models.OffboardingSubmission) string { return s.Feedback }},
}

type rule struct {
	field
	tag     string
	message string
}

var formatRules = []rule{
	{field{"email", func(s models.OffboardingSubmission) string { return s.Email }}, "company_email", "Invalid company email format"},
	{field{"personalEmail", func(s models.OffboardingSubmission) string { return s.PersonalEmail }}, "personal_email", "Invalid personal email format"},
	{field{"employeeId", func(s models.OffboardingSubmission) string { return s.EmployeeID }}, "employee_id", "Invalid employee ID format"},
	{field{"phoneNumber", func(s models.OffboardingSubmission) string { return s.PhoneNumber }}, "phone_number", "Invalid phone number format"},
	{field{"lastWorkDay", func(s models.OffboardingSubmission) string { return strings.TrimSpace(s.LastWorkDay) }}, "calendar_date", "Invalid last work day format"},
}

var validate = New()

// New returns a validator with the offboarding format tags registered:
// company_email, personal_email, employee_id, phone_number and calendar_date.
func New() *validator.Validate {
	v := validator.New()
	register := func(tag string, fn func(string) bool) {
		// registration only fails on an empty tag or nil func
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
	}
	register("company_email", IsCompanyEmail)
	register("personal_email", IsPersonalEmail)
	register("employee_id", IsEmployeeID)
	register("phone_number", IsPhoneNumber)
	register("calendar_date", IsCalendarDate)
	return v
}

// Validate checks a submission and reports the first violated rule.
// Required fields are checked first, then the formats of email,
// personalEmail, employeeId, phoneNumber and lastWorkDay in that order.
func Validate(in models.OffboardingSubmission) Result {
	for _, f := range requiredFields {
		if err := validate.Var(strings.TrimSpace(f.value(in)), "required"); err != nil {
			return Result{Field: f.name, Message: f.name + " is required"}
		}
	}

	for _, r := range formatRules {
		if err := validate.Var(r.value(in), r.tag); err != nil {
			return Result{Field: r.name, Message: r.message}
		}
	}

	return Result{}
}

// IsCompanyEmail checks the astrolitetech.com mailbox format.
func IsCompanyEmail(s string) bool {
	return companyEmailRe.MatchString(s)
}

// IsPersonalEmail accepts gmail, yahoo and outlook addresses only.
func IsPersonalEmail(s string) bool {
	return personalEmailRe.MatchString(s)
}

// IsEmployeeID checks for ATS0 followed by three digits other than 000.
func IsEmployeeID(s string) bool {
	m := employeeIDRe.FindStringSubmatch(s)
	return m != nil && m[1] != "000"
}

// IsPhoneNumber checks for a ten digit number starting with 6-9.
func IsPhoneNumber(s string) bool {
	return phoneNumberRe.MatchString(s)
}

// IsCalendarDate checks for a real YYYY-MM-DD date.
func IsCalendarDate(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}
