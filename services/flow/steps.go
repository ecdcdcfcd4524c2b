package flow

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"bookpage/models"
	"bookpage/upstream"
)

// StepInput is the answer payload for one continue transition. Only the
// fields the current step cares about are read; the rest are ignored.
type StepInput struct {
	ServiceID string           `json:"serviceId,omitempty"`
	StaffID   string           `json:"staffId,omitempty"`
	PartySize int              `json:"partySize,omitempty"`
	Date      string           `json:"date,omitempty"` // "YYYY-MM-DD"
	Time      string           `json:"time,omitempty"` // "HH:MM"
	Customer  *models.Customer `json:"customer,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// Step is one stage of the booking flow. Validate runs against the session
// snapshot before anything is merged; Apply merges the answer into the draft.
type Step struct {
	ID       string
	Validate func(sess *models.FlowSession, in StepInput) error
	Apply    func(draft *models.BookingDraft, in StepInput)
}

// Step identifiers. A flow is an ordered list of these; the only entry point
// into step i>0 is a continue from step i-1.
const (
	StepService  = "service"
	StepParty    = "party"
	StepSchedule = "schedule"
	StepDetails  = "details"
)

// ServiceFlowSteps is the step order for service-based businesses.
func ServiceFlowSteps() []string {
	return []string{StepService, StepSchedule, StepDetails}
}

// PartyFlowSteps is the step order for party-based businesses (restaurants,
// venues): party size replaces service selection.
func PartyFlowSteps() []string {
	return []string{StepParty, StepSchedule, StepDetails}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var stepRegistry = map[string]Step{
	StepService: {
		ID: StepService,
		Validate: func(sess *models.FlowSession, in StepInput) error {
			if in.ServiceID == "" {
				return upstream.NewValidationError("Please choose a service.")
			}
			if _, ok := sess.Business.ServiceByID(in.ServiceID); !ok {
				return upstream.NewValidationError("The chosen service is not offered by this business.")
			}
			if in.StaffID != "" {
				if _, ok := sess.Business.StaffByID(in.StaffID); !ok {
					return upstream.NewValidationError("The chosen staff member does not work at this business.")
				}
			}
			return nil
		},
		Apply: func(draft *models.BookingDraft, in StepInput) {
			draft.ServiceID = in.ServiceID
			draft.StaffID = in.StaffID
		},
	},
	StepParty: {
		ID: StepParty,
		Validate: func(sess *models.FlowSession, in StepInput) error {
			if in.PartySize < 1 {
				return upstream.NewValidationError("Please tell us how many people are coming.")
			}
			return nil
		},
		Apply: func(draft *models.BookingDraft, in StepInput) {
			draft.PartySize = in.PartySize
		},
	},
	StepSchedule: {
		ID: StepSchedule,
		Validate: func(sess *models.FlowSession, in StepInput) error {
			if in.Date == "" || in.Time == "" {
				return upstream.NewValidationError("Please pick a date and time.")
			}
			if _, err := time.Parse("2006-01-02", in.Date); err != nil {
				return upstream.NewValidationError(fmt.Sprintf("%q is not a valid date.", in.Date))
			}
			if _, err := time.Parse("15:04", in.Time); err != nil {
				return upstream.NewValidationError(fmt.Sprintf("%q is not a valid time.", in.Time))
			}
			return nil
		},
		Apply: func(draft *models.BookingDraft, in StepInput) {
			draft.Date = in.Date
			draft.Time = in.Time
		},
	},
	StepDetails: {
		ID: StepDetails,
		Validate: func(sess *models.FlowSession, in StepInput) error {
			if in.Customer == nil {
				return upstream.NewValidationError("Please fill in your contact details.")
			}
			if strings.TrimSpace(in.Customer.Name) == "" {
				return upstream.NewValidationError("Please enter your name.")
			}
			if strings.TrimSpace(in.Customer.Phone) == "" {
				return upstream.NewValidationError("Please enter your phone number.")
			}
			if !emailPattern.MatchString(in.Customer.Email) {
				return upstream.NewValidationError("Please enter a valid email address.")
			}
			return nil
		},
		Apply: func(draft *models.BookingDraft, in StepInput) {
			c := *in.Customer
			draft.Customer = &c
			draft.Notes = in.Notes
		},
	},
}

// stepByID resolves a registered step. The registry is fixed at compile time,
// so a miss means a corrupted session document.
func stepByID(id string) (Step, bool) {
	s, ok := stepRegistry[id]
	return s, ok
}
