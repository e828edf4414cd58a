package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format of last_work_day.
const DateLayout = "2006-01-02"

// Asset is one entry of the returned-assets list. Keys are free-form.
type Asset map[string]any

// OffboardingSubmission is the body posted by the offboarding form.
type OffboardingSubmission struct {
	FullName               string  `json:"fullName"`
	EmployeeID             string  `json:"employeeId"`
	Email                  string  `json:"email"`
	Department             string  `json:"department"`
	Position               string  `json:"position"`
	LastWorkDay            string  `json:"lastWorkDay"` // YYYY-MM-DD
	PersonalEmail          string  `json:"personalEmail"`
	PhoneNumber            string  `json:"phoneNumber"`
	AlternateContactName   string  `json:"alternateContactName"`
	AlternateContactNumber string  `json:"alternateContactNumber"`
	CurrentAddress         string  `json:"currentAddress"`
	CurrentProjects        string  `json:"currentProjects"`
	ProjectStatus          string  `json:"projectStatus"`
	HandoverPerson         string  `json:"handoverPerson"`
	ResignationReason      string  `json:"resignationReason"`
	OtherReasonDetails     string  `json:"otherReasonDetails"`
	Feedback               string  `json:"feedback"`
	WouldRecommend         string  `json:"wouldRecommend"`
	Assets                 []Asset `json:"assets"`
	LaptopSerial           string  `json:"laptopSerial"`
	PhoneSerial            string  `json:"phoneSerial"`
	MonitorSerial          string  `json:"monitorSerial"`
	AccessCardNumber       string  `json:"accessCardNumber"`
	AdditionalAssets       string  `json:"additionalAssets"`
}

// OffboardingRequest is a stored offboarding request as returned by the API.
type OffboardingRequest struct {
	ID                     int64      `json:"id"`
	FullName               string     `json:"full_name"`
	EmployeeID             string     `json:"employee_id"`
	Email                  string     `json:"email"`
	Department             string     `json:"department"`
	Position               string     `json:"position"`
	LastWorkDay            string     `json:"last_work_day"`
	PersonalEmail          string     `json:"personal_email"`
	PhoneNumber            string     `json:"phone_number"`
	AlternateContactName   *string    `json:"alternate_contact_name"`
	AlternateContactNumber *string    `json:"alternate_contact_number"`
	CurrentAddress         string     `json:"current_address"`
	CurrentProjects        string     `json:"current_projects"`
	ProjectStatus          string     `json:"project_status"`
	HandoverPerson         string     `json:"handover_person"`
	ResignationReason      string     `json:"resignation_reason"`
	OtherReasonDetails     *string    `json:"other_reason_details"`
	Feedback               string     `json:"feedback"`
	WouldRecommend         *string    `json:"would_recommend"`
	Assets                 []Asset    `json:"assets"`
	LaptopSerial           *string    `json:"laptop_serial"`
	PhoneSerial            *string    `json:"phone_serial"`
	MonitorSerial          *string    `json:"monitor_serial"`
	AccessCardNumber       *string    `json:"access_card_number"`
	AdditionalAssets       *string    `json:"additional_assets"`
	Status                 Status     `json:"status"`
	SubmissionDate         time.Time  `json:"submission_date"`
	UpdatedAt              *time.Time `json:"updated_at"`
}

// ToRequest converts a validated submission into a new pending request.
// Blank optional fields become nil and a missing asset list becomes empty.
func (s OffboardingSubmission) ToRequest() OffboardingRequest {
	assets := s.Assets
	if assets == nil {
		assets = []Asset{}
	}
	return OffboardingRequest{
		FullName:               strings.TrimSpace(s.FullName),
		EmployeeID:             strings.TrimSpace(s.EmployeeID),
		Email:                  strings.TrimSpace(s.Email),
		Department:             strings.TrimSpace(s.Department),
		Position:               strings.TrimSpace(s.Position),
		LastWorkDay:            strings.TrimSpace(s.LastWorkDay),
		PersonalEmail:          strings.TrimSpace(s.PersonalEmail),
		PhoneNumber:            strings.TrimSpace(s.PhoneNumber),
		AlternateContactName:   optional(s.AlternateContactName),
		AlternateContactNumber: optional(s.AlternateContactNumber),
		CurrentAddress:         strings.TrimSpace(s.CurrentAddress),
		CurrentProjects:        strings.TrimSpace(s.CurrentProjects),
		ProjectStatus:          strings.TrimSpace(s.ProjectStatus),
		HandoverPerson:         strings.TrimSpace(s.HandoverPerson),
		ResignationReason:      strings.TrimSpace(s.ResignationReason),
		OtherReasonDetails:     optional(s.OtherReasonDetails),
		Feedback:               strings.TrimSpace(s.Feedback),
		WouldRecommend:         optional(s.WouldRecommend),
		Assets:                 assets,
		LaptopSerial:           optional(s.LaptopSerial),
		PhoneSerial:            optional(s.PhoneSerial),
		MonitorSerial:          optional(s.MonitorSerial),
		AccessCardNumber:       optional(s.AccessCardNumber),
		AdditionalAssets:       optional(s.AdditionalAssets),
		Status:                 StatusPending,
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
