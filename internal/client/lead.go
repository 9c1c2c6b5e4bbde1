package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrSubmission   = errors.New("lead submission failed")
)

// FormMode is how the visitor wants to be contacted.
type FormMode string

const (
	ModeAppointment FormMode = "appointment"
	ModeMessage     FormMode = "message"
)

// ServiceID is the topic picked in the contact form.
type ServiceID string

const (
	ServiceSales       ServiceID = "sales"
	ServiceSupport     ServiceID = "support"
	ServicePartnership ServiceID = "partnership"
	ServiceGeneral     ServiceID = "general"
)

// Service is a selectable topic with its label.
type Service struct {
	ID    ServiceID
	Label string
}

// Services lists the selectable topics in form order.
var Services = []Service{
	{ServiceSales, "Sales inquiry"},
	{ServiceSupport, "Technical support"},
	{ServicePartnership, "Partnership"},
	{ServiceGeneral, "General question"},
}

// Lead is a contact-form submission.
type Lead struct {
	FormType FormMode  `json:"formType,omitempty"`
	Service  ServiceID `json:"service"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Message  string    `json:"message"`
	Phone    string    `json:"phone,omitempty"`
	Company  string    `json:"company,omitempty"`
	Timezone string    `json:"timezone,omitempty"`
	Source   string    `json:"source,omitempty"`
	Date     string    `json:"date,omitempty"`
	Time     string    `json:"time,omitempty"`
}

// Validate checks the required fields and lists every missing one.
func (l Lead) Validate() error {
	var missing []string
	if strings.TrimSpace(l.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(l.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(l.Message) == "" {
		missing = append(missing, "message")
	}
	if strings.TrimSpace(string(l.Service)) == "" {
		missing = append(missing, "service")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// SavedCallback is the callback slot recorded for appointment leads. Fields
// are nil for plain messages.
type SavedCallback struct {
	CallbackDate      *string `json:"callback_date"`
	CallbackTimeStart *string `json:"callback_time_start"`
	CallbackTimeEnd   *string `json:"callback_time_end"`
}

// Ack is the lead API's acknowledgement.
type Ack struct {
	Message string        `json:"message"`
	ID      int64         `json:"id"`
	Mode    FormMode      `json:"mode"`
	Saved   SavedCallback `json:"saved"`
}
