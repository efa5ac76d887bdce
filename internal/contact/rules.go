// Package contact validates and submits the public contact form.
package contact

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field names a contact form input. Values match the wire JSON keys.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
	FieldAddress Field = "address"
)

// Fields lists every input in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage, FieldAddress}

// Submission is the payload sent to the backend.
type Submission struct {
	Name    string `json:"name" validate:"required,personname"`
	Email   string `json:"email" validate:"required,contactemail"`
	Phone   string `json:"phone" validate:"omitempty,contactphone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,contactmessage"`
	Address string `json:"address"`
}

const (
	minNameLen    = 2
	minMessageLen = 10
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
	fieldTags     map[Field]string

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9][\d\s()\-]{7,15}$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			return name
		})

		_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minNameLen
		})

		_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("contactphone", func(fl validator.FieldLevel) bool {
			phone := stripSpace(fl.Field().String())
			return phone == "" || phonePattern.MatchString(phone)
		})

		_ = v.RegisterValidation("contactmessage", func(fl validator.FieldLevel) bool {
			return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minMessageLen
		})

		fieldTags = make(map[Field]string)
		t := reflect.TypeFor[Submission]()
		for i := range t.NumField() {
			sf := t.Field(i)
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			fieldTags[Field(name)] = sf.Tag.Get("validate")
		}

		validateInst = v
	})

	return validateInst
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ValidateField reports whether value satisfies the rule for field. Fields
// without a rule always pass.
func ValidateField(field Field, value string) bool {
	v := validatorInstance()
	tag := fieldTags[field]
	if tag == "" {
		return true
	}
	return v.Var(value, tag) == nil
}

// Required reports whether field must be filled before submitting.
func Required(field Field) bool {
	validatorInstance()
	return strings.HasPrefix(fieldTags[field], "required")
}

// validated reports whether field has any rule at all.
func validated(field Field) bool {
	validatorInstance()
	return fieldTags[field] != ""
}

// Message returns the inline error text for a failed field.
func Message(field Field, value string) string {
	if strings.TrimSpace(value) == "" && Required(field) {
		switch field {
		case FieldName:
			return "Name is required"
		case FieldEmail:
			return "Email is required"
		case FieldMessage:
			return "Message is required"
		}
	}
	switch field {
	case FieldName:
		return "Name must be at least 2 characters"
	case FieldEmail:
		return "Please enter a valid email address"
	case FieldPhone:
		return "Please enter a valid phone number"
	case FieldMessage:
		return "Message must be at least 10 characters"
	}
	return "Invalid value"
}

// Check validates a whole submission and returns the failed fields with
// their messages. An empty map means the submission is valid.
func Check(s Submission) map[Field]string {
	failed := make(map[Field]string)
	err := validatorInstance().Struct(s)
	if err == nil {
		return failed
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		failed[FieldName] = err.Error()
		return failed
	}
	for _, fe := range verrs {
		field := Field(fe.Field())
		failed[field] = Message(field, s.value(field))
	}
	return failed
}

func (s Submission) value(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldPhone:
		return s.Phone
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	case FieldAddress:
		return s.Address
	}
	return ""
}
