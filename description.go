package dfamin

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Description is the external record form of an automaton, consumed by Load and produced by Describe.
// States, symbols and the start are labels. Start is nil when the automaton has no start state.
type Description struct {
	States      []string                     `json:"states" yaml:"states" validate:"required"`
	Start       *string                      `json:"start" yaml:"start" validate:"required"`
	Alphabet    []string                     `json:"alphabet" yaml:"alphabet" validate:"required"`
	Transitions map[string]map[string]string `json:"transitions" yaml:"transitions" validate:"required"`
	Final       []string                     `json:"final" yaml:"final" validate:"required"`
}

// descriptionValidate reports fields under their json names.
var descriptionValidate *validator.Validate

func init() {
	descriptionValidate = validator.New(validator.WithRequiredStructEnabled())
	descriptionValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks that every field is present. An empty final list is valid; an absent one is not.
func (d *Description) Validate() error {
	if d == nil {
		return &MalformedInputError{Key: "description", Reason: "is missing"}
	}

	err := descriptionValidate.Struct(d)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := fmt.Sprintf("failed %q validation", fe.Tag())
		if fe.Tag() == "required" {
			reason = "is required"
		}
		return &MalformedInputError{Key: fe.Field(), Reason: reason}
	}
	return err
}

// DecodeDescription decodes a loosely typed document, as produced by decoding JSON or YAML into a
// map, into a validated Description. Numeric labels are accepted and rendered as decimal strings.
func DecodeDescription(raw map[string]any) (*Description, error) {
	if raw == nil {
		return nil, &MalformedInputError{Key: "description", Reason: "expected an object"}
	}

	d := &Description{}
	fields := []struct {
		key    string
		target any
	}{
		{"states", &d.States},
		{"start", &d.Start},
		{"alphabet", &d.Alphabet},
		{"transitions", &d.Transitions},
		{"final", &d.Final},
	}
	for _, f := range fields {
		value, ok := raw[f.key]
		if !ok || value == nil {
			continue
		}
		if err := decodeField(value, f.target); err != nil {
			return nil, &MalformedInputError{Key: f.key, Reason: err.Error(), Value: value}
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeField(value, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: labelHook,
		Result:     target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(value)
}

// labelHook turns numeric labels into strings. Everything else is left to mapstructure, which rejects
// values of the wrong shape.
func labelHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return data, nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	}
	return data, nil
}
