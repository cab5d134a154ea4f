package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init configures the global validator used by Gin's binding.
// - Uses JSON (or form) tag names in errors.
// - Registers alias tags for the site's closed vocabularies.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "" {
				tag = fld.Tag.Get("form")
			}
			name := strings.SplitN(tag, ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8")
		v.RegisterAlias("phone", "e164")
		v.RegisterAlias("media_type", "oneof=photo video")
		v.RegisterAlias("gallery_category", "oneof=Programs Events Bootcamps Outreach")
		v.RegisterAlias("report_type", "oneof='Annual Report' 'Financial Report' 'MEL Framework'")
		v.RegisterAlias("isodate", "datetime=2006-01-02")
	})
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return map[string]string{"payload": "too large"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

var fixedMessages = map[string]string{
	"required":         "is required",
	"email":            "must be a valid email",
	"url":              "must be a valid URL",
	"http_url":         "must be a valid URL",
	"uuid":             "must be a valid UUID",
	"e164":             "must be a valid phone number",
	"phone":            "must be a valid phone number",
	"pwd":              "min length 8",
	"media_type":       "must be one of: photo, video",
	"gallery_category": "must be one of: Programs, Events, Bootcamps, Outreach",
	"report_type":      "must be one of: Annual Report, Financial Report, MEL Framework",
	"isodate":          "must be a date in YYYY-MM-DD format",
	"boolean":          "must be a boolean value",
	"numeric":          "must be numeric",
}

func formatFieldError(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()
	if msg, ok := fixedMessages[tag]; ok {
		return msg
	}

	unit := " characters long"
	if isNumberKind(fe.Kind()) {
		unit = ""
	}
	switch tag {
	case "len":
		return "must be exactly " + param + unit
	case "min":
		return "must be at least " + param + unit
	case "max":
		return "must be at most " + param + unit
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "datetime":
		return "must match datetime format: " + param
	}
	if param != "" {
		return "validation failed for '" + tag + "' with parameter '" + param + "'"
	}
	return "validation failed for '" + tag + "'"
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
