package request

import (
	"fmt"
	"strings"
	"time"
)

type CreateFeedbackRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Contact     string     `json:"contact,omitempty" validate:"max=100"`
	Email       string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string     `json:"phone,omitempty" validate:"max=20"`
	Rating      *int       `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comments    string     `json:"comments,omitempty" validate:"max=1000"`
	Location    string     `json:"location,omitempty" validate:"max=200"`
	Category    string     `json:"category,omitempty" validate:"omitempty,oneof=food service ambiance value cleanliness other"`
	VisitDate   *time.Time `json:"visit_date,omitempty"`
	IsAnonymous bool       `json:"is_anonymous"`
	Tags        []string   `json:"tags,omitempty" validate:"max=10,dive,max=50"`
}

func (r *CreateFeedbackRequest) Validate() error {
	if r.IsAnonymous {
		r.Name = "Anonymous"
		r.Email = ""
		r.Phone = ""
		r.Contact = ""
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if r.Rating == nil && strings.TrimSpace(r.Comments) == "" {
		return fmt.Errorf("either a rating or comments must be provided")
	}
	if r.VisitDate != nil && r.VisitDate.After(time.Now()) {
		return fmt.Errorf("visit_date cannot be in the future")
	}
	return validate.Struct(r)
}
