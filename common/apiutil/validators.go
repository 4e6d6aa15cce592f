package apiutil

import (
	"encoding/json"
	"io"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// emailPattern is the address format accepted for user emails.
var emailPattern = regexp.MustCompile(`^([a-zA-Z0-9_\-\.]+)@([a-zA-Z0-9_\-\.]+)\.([a-zA-Z]{2,5})$`)

var registerOnce sync.Once

// IsEmail reports whether value is an acceptable user email.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// RegisterValidators configures the validator gin binds with: field names
// come from the json, form or uri tag and the `user_email` rule is added.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		if err := v.RegisterValidation("user_email", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// BindError converts a gin binding failure into an Unprocessable error with
// one field entry per failed rule.
func BindError(err error) *errors.Error {
	var fieldsError validator.ValidationErrors
	if errors.As(err, &fieldsError) {
		validationErr := errors.Unprocessable.Explain("validation error")
		for _, fieldErr := range fieldsError {
			validationErr = validationErr.WithField(fieldErr.Tag(), fieldErr.Field(), fieldErr.Param())
		}
		return validationErr.Wrap(err)
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		numErr    *strconv.NumError
	)
	switch {
	case errors.Is(err, io.EOF), errors.As(err, &syntaxErr):
		return errors.Unprocessable.Explain("invalid request body").Wrap(err)
	case errors.As(err, &typeErr):
		return errors.Unprocessable.Explain("invalid request body").
			WithField("type", typeErr.Field, typeErr.Type.String()).Wrap(err)
	case errors.As(err, &numErr):
		return errors.Unprocessable.Explain("invalid number %q", numErr.Num).Wrap(err)
	}
	return errors.Unprocessable.Explain("invalid request").Wrap(err)
}
