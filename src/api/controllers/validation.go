package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"assetserver/src/schemas"
	"assetserver/src/utils"

	"github.com/go-playground/validator/v10"
)

const dateFormatHint = "must be a date in YYYY-MM-DD format"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func invalidField(field, reason string) error {
	return utils.BadRequest("Invalid field value").
		With("field", field).
		With("details", reason)
}

// decodeField unmarshals p[key] into dst when present. kind names the
// expected JSON type for the error message.
func decodeField(p schemas.Payload, key, kind string, dst interface{}) error {
	raw, ok := p[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalidField(key, "expected "+kind)
	}
	return nil
}

// decodeCategoryID reads p[key] as a category id. JSON integers, integral
// floats and numeric strings are accepted. Any other value, null included,
// is an invalid category.
func decodeCategoryID(p schemas.Payload, key string) (int64, error) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(p[key]))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return 0, errInvalidCategory
	}

	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, errInvalidCategory
	}

	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errInvalidCategory
	}
	return int64(f), nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "datetime":
		return dateFormatHint
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// validateStruct reports the first failing field of s.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return invalidField(verrs[0].Field(), describeTag(verrs[0]))
	}
	return err
}

func validateDate(field string, value *string) error {
	if value == nil {
		return nil
	}
	if err := validate.Var(*value, "datetime="+utils.ShortDashDateLayout); err != nil {
		return invalidField(field, dateFormatHint)
	}
	return nil
}
