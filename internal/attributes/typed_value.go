package attributes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	custom_error "github.com/voycel/Asset-Tracker-sub000/pkg/errors"
	"github.com/voycel/Asset-Tracker-sub000/pkg/metadata"
	"github.com/voycel/Asset-Tracker-sub000/pkg/models"
)

const dateLayout = "2006-01-02"

// TypedValue is the variant form of one custom field value. Exactly one slot
// is set, chosen by the field's declared kind, so callers never probe four
// nullable columns themselves.
type TypedValue struct {
	Kind    metadata.FieldKind
	Text    *string
	Number  *float64
	Date    *time.Time
	Boolean *bool
}

// Coerce validates raw input against the field's kind and produces the
// variant. Coercion failures are ValidationErrors naming the field.
func Coerce(field *models.FieldDefinition, raw interface{}) (TypedValue, error) {
	kind := metadata.FieldKind(field.Kind)

	switch kind {
	case metadata.KindText:
		text, err := coerceText(raw)
		if err != nil {
			return TypedValue{}, custom_error.NewValidationError(field.Name, err.Error(), raw)
		}
		return TypedValue{Kind: kind, Text: &text}, nil

	case metadata.KindNumber:
		number, err := coerceNumber(raw)
		if err != nil {
			return TypedValue{}, custom_error.NewValidationError(field.Name, err.Error(), raw)
		}
		return TypedValue{Kind: kind, Number: &number}, nil

	case metadata.KindDate:
		date, err := coerceDate(raw)
		if err != nil {
			return TypedValue{}, custom_error.NewValidationError(field.Name, err.Error(), raw)
		}
		return TypedValue{Kind: kind, Date: &date}, nil

	case metadata.KindBoolean:
		boolean, err := coerceBoolean(raw)
		if err != nil {
			return TypedValue{}, custom_error.NewValidationError(field.Name, err.Error(), raw)
		}
		return TypedValue{Kind: kind, Boolean: &boolean}, nil

	case metadata.KindChoice:
		text, err := coerceText(raw)
		if err != nil {
			return TypedValue{}, custom_error.NewValidationError(field.Name, err.Error(), raw)
		}
		if !field.HasOption(text) {
			return TypedValue{}, custom_error.NewValidationError(
				field.Name,
				fmt.Sprintf("value must be one of: %s", strings.Join(field.Options, ", ")),
				raw,
			)
		}
		return TypedValue{Kind: kind, Text: &text}, nil

	default:
		return TypedValue{}, custom_error.NewIntegrityError("field " + field.Name + " has unknown kind " + field.Kind)
	}
}

// Interface renders the populated slot for JSON views and export. Dates come
// back as calendar strings so values round-trip unchanged.
func (v TypedValue) Interface() interface{} {
	switch {
	case v.Text != nil:
		return *v.Text
	case v.Number != nil:
		return *v.Number
	case v.Date != nil:
		return v.Date.Format(dateLayout)
	case v.Boolean != nil:
		return *v.Boolean
	default:
		return nil
	}
}

func coerceText(raw interface{}) (string, error) {
	text, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected a string value")
	}
	return text, nil
}

func coerceNumber(raw interface{}) (float64, error) {
	switch value := raw.(type) {
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case string:
		number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("expected a numeric value")
		}
		return number, nil
	default:
		return 0, fmt.Errorf("expected a numeric value")
	}
}

func coerceDate(raw interface{}) (time.Time, error) {
	switch value := raw.(type) {
	case time.Time:
		return value, nil
	case string:
		trimmed := strings.TrimSpace(value)
		if date, err := time.Parse(dateLayout, trimmed); err == nil {
			return date, nil
		}
		if date, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return date, nil
		}
		return time.Time{}, fmt.Errorf("expected a date in YYYY-MM-DD format")
	default:
		return time.Time{}, fmt.Errorf("expected a date in YYYY-MM-DD format")
	}
}

func coerceBoolean(raw interface{}) (bool, error) {
	switch value := raw.(type) {
	case bool:
		return value, nil
	case float64:
		return value != 0, nil
	case int:
		return value != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "1", "on":
			return true, nil
		case "false", "no", "0", "off", "":
			return false, nil
		default:
			return false, fmt.Errorf("expected a boolean value")
		}
	default:
		return false, fmt.Errorf("expected a boolean value")
	}
}
