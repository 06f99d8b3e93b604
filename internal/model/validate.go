package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
)

var validate = validator.New()

// LeadInput carries the fields accepted when a lead is entered by hand.
type LeadInput struct {
	Name      string `validate:"required"`
	Email     string `validate:"omitempty,email"`
	Platform  string `validate:"omitempty,oneof=Twitch YouTube Instagram"`
	Source    string `validate:"omitempty,oneof=scraper referral inbound outbound"`
	Followers int    `validate:"min=0"`
	Score     int    `validate:"min=0,max=100"`
	Notes     string
}

// DealInput carries the fields accepted when a deal is created or edited.
type DealInput struct {
	Name      string `validate:"required"`
	ServiceID string `validate:"required"`
	Value     int    `validate:"min=0"`
	Notes     string
}

// ServiceInput carries the fields accepted when a service is created or edited.
type ServiceInput struct {
	Name        string `validate:"required"`
	Description string
	Price       int      `validate:"min=0"`
	Period      string   `validate:"oneof=month year one-time"`
	Features    []string `validate:"dive,required"`
}

// TaskInput carries the fields accepted when a task is created.
type TaskInput struct {
	Title     string `validate:"required"`
	Type      string `validate:"oneof=follow-up outreach onboarding support meeting"`
	DueDate   string `validate:"required,datetime=2006-01-02"`
	RelatedTo string
}

// ValidateInput runs struct validation and flattens the failures into a
// single user-facing message.
func ValidateInput(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "min":
			msgs = append(msgs, field+" must be at least "+fe.Param())
		case "max":
			msgs = append(msgs, field+" must be at most "+fe.Param())
		case "oneof":
			msgs = append(msgs, field+" must be one of: "+fe.Param())
		case "datetime":
			msgs = append(msgs, field+" must be a date in YYYY-MM-DD form")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return eris.New(strings.Join(msgs, ", "))
}
