// Package form decodes urlencoded form posts into tagged structs and keeps
// the submitted values and per-field errors for re-rendering the page.
//
//	type CommentForm struct {
//	    Text string `form:"text" validate:"required"`
//	}
//
//	var in CommentForm
//	f, err := form.Decode(r, &in)
//	if !f.Valid() { ... render f ... }
package form

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"newsnotes/internal/domain/entity"
)

// NonFieldErrors is the error key for problems not tied to one field.
const NonFieldErrors = "__all__"

// Messages shown for validator tags.
const (
	MsgRequired = "Обязательное поле."
	MsgInvalid  = "Введите корректное значение."
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report errors under the form field name.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _ := parseTag(fld.Tag.Get("form"))
			if name == "" || name == "-" {
				return strings.ToLower(fld.Name)
			}
			return name
		})

		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return entity.ValidateSlug(fl.Field().String()) == nil
		})
	})
	return validate
}

// Form is the page-context view of a submitted or blank form.
type Form struct {
	Fields map[string]string   `json:"fields"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// New returns a blank form with the given field names.
func New(fields ...string) *Form {
	f := &Form{Fields: make(map[string]string, len(fields))}
	for _, name := range fields {
		f.Fields[name] = ""
	}
	return f
}

// Valid reports whether the form has no errors.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Get returns the submitted value of field.
func (f *Form) Get(field string) string {
	return f.Fields[field]
}

// AddError attaches msg to field.
func (f *Form) AddError(field, msg string) {
	if f.Errors == nil {
		f.Errors = map[string][]string{}
	}
	f.Errors[field] = append(f.Errors[field], msg)
}

// AddValidationError attaches err to its field if it is an
// *entity.ValidationError and reports whether it did.
func (f *Form) AddValidationError(err error) bool {
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	field := vErr.Field
	if field == "" {
		field = NonFieldErrors
	}
	f.AddError(field, vErr.Message)
	return true
}

// Decode parses the request body into dst, a pointer to a struct whose
// string fields carry `form:"name"` tags, and validates it with the
// `validate` tags. Values are trimmed unless the tag has the nostrip
// option. The returned error is only set when the body cannot be parsed;
// validation problems end up in Form.Errors.
func Decode(r *http.Request, dst any) (*Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, errors.New("form: dst must be a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	f := &Form{Fields: make(map[string]string, rt.NumField())}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, opts := parseTag(sf.Tag.Get("form"))
		if name == "" || name == "-" || sf.Type.Kind() != reflect.String {
			continue
		}
		value := r.PostForm.Get(name)
		if !strings.Contains(opts, "nostrip") {
			value = strings.TrimSpace(value)
		}
		rv.Field(i).SetString(value)
		if !strings.Contains(opts, "nostrip") {
			f.Fields[name] = value
		} else {
			// never echo secrets back
			f.Fields[name] = ""
		}
	}

	if err := getValidator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate form: %w", err)
		}
		for _, fe := range verrs {
			f.AddError(fe.Field(), message(fe))
		}
	}
	return f, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		n := utf8.RuneCountInString(fmt.Sprint(fe.Value()))
		return fmt.Sprintf("Убедитесь, что это значение содержит не более %s символов (сейчас %d).", fe.Param(), n)
	case "min":
		return fmt.Sprintf("Убедитесь, что это значение содержит не менее %s символов.", fe.Param())
	case "slug":
		return "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса."
	default:
		return MsgInvalid
	}
}

func parseTag(tag string) (name, opts string) {
	name, opts, _ = strings.Cut(tag, ",")
	return name, opts
}
