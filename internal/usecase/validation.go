package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xavierca1/assistant-flow-hub/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// usa o nome do campo JSON nas mensagens
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})

	return v
}

func validateStruct(s interface{}) []ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "_", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is invalid"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must not exceed " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "clock":
		return "must be a time in HH:MM format"
	}
	return "is invalid"
}

type LeadInput struct {
	Name     string              `json:"name" validate:"required,max=200"`
	Email    string              `json:"email" validate:"required,email,max=254"`
	Phone    string              `json:"phone" validate:"max=40"`
	Interest string              `json:"interest" validate:"max=500"`
	Status   entity.LeadStatus   `json:"status" validate:"omitempty,oneof=novo qualificado proposta fechado perdido"`
	Priority entity.LeadPriority `json:"priority" validate:"omitempty,oneof=baixa media alta"`
	Notes    string              `json:"notes" validate:"max=5000"`
	Source   entity.LeadSource   `json:"source" validate:"omitempty,oneof=manual whatsapp website referencia social"`
}

// ValidateLeadInput confere uma cópia aparada; o lead é gravado como veio.
func ValidateLeadInput(in LeadInput) []ValidationError {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Interest = strings.TrimSpace(in.Interest)
	return validateStruct(in)
}

// toEntity monta o lead; numa edição (prev != nil) os campos com padrão que
// vieram vazios mantêm o valor gravado.
func (in LeadInput) toEntity(prev *entity.Lead) *entity.Lead {
	lead := &entity.Lead{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Interest: in.Interest,
		Status:   in.Status,
		Priority: in.Priority,
		Notes:    in.Notes,
		Source:   in.Source,
	}
	if prev != nil {
		if lead.Status == "" {
			lead.Status = prev.Status
		}
		if lead.Priority == "" {
			lead.Priority = prev.Priority
		}
		if lead.Source == "" {
			lead.Source = prev.Source
		}
	}
	lead.ApplyDefaults()
	return lead
}

type AppointmentInput struct {
	Title           string                   `json:"title" validate:"required,max=200"`
	ClientName      string                   `json:"client_name" validate:"required,max=200"`
	Email           string                   `json:"email" validate:"required,email,max=254"`
	Phone           string                   `json:"phone" validate:"max=40"`
	Date            entity.Date              `json:"date"`
	Time            string                   `json:"time" validate:"required,clock"`
	DurationMinutes int                      `json:"duration_minutes" validate:"omitempty,min=1,max=1440"`
	Kind            entity.MeetingKind       `json:"kind" validate:"omitempty,oneof=presencial online telefone"`
	Location        string                   `json:"location" validate:"max=300"`
	Link            string                   `json:"link" validate:"omitempty,url,max=500"`
	Notes           string                   `json:"notes" validate:"max=5000"`
	Status          entity.AppointmentStatus `json:"status" validate:"omitempty,oneof=agendado confirmado concluido cancelado"`
}

// normalize apara só os campos com formato fixo; texto livre fica como veio.
func (in *AppointmentInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.Time = strings.TrimSpace(in.Time)
	in.Link = strings.TrimSpace(in.Link)
}

func ValidateAppointmentInput(in AppointmentInput) []ValidationError {
	in.normalize()
	in.Title = strings.TrimSpace(in.Title)
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Location = strings.TrimSpace(in.Location)
	errs := validateStruct(in)
	if in.Date.IsZero() {
		errs = append(errs, ValidationError{Field: "date", Message: "is required"})
	}
	return errs
}

func (in AppointmentInput) toEntity(prev *entity.Appointment) *entity.Appointment {
	in.normalize()
	a := &entity.Appointment{
		Title:           in.Title,
		ClientName:      in.ClientName,
		Email:           in.Email,
		Phone:           in.Phone,
		Date:            in.Date,
		Time:            in.Time,
		DurationMinutes: in.DurationMinutes,
		Kind:            in.Kind,
		Location:        in.Location,
		Link:            in.Link,
		Notes:           in.Notes,
		Status:          in.Status,
	}
	if prev != nil {
		if a.DurationMinutes == 0 {
			a.DurationMinutes = prev.DurationMinutes
		}
		if a.Kind == "" {
			a.Kind = prev.Kind
		}
		if a.Status == "" {
			a.Status = prev.Status
		}
	}
	a.ApplyDefaults()
	a.NormalizePlace()
	return a
}
