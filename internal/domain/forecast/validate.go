package forecast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultAPIBase is the only origin forecast links may point at.
const DefaultAPIBase = "https://api.weather.gov"

type schema struct {
	validate *validator.Validate
	origin   *url.URL
}

func newSchema(apiBase string) (*schema, error) {
	if strings.TrimSpace(apiBase) == "" {
		apiBase = DefaultAPIBase
	}
	origin, err := url.Parse(strings.TrimRight(apiBase, "/"))
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("invalid weather api base %q", apiBase)
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	s := &schema{validate: v, origin: origin}
	if err := v.RegisterValidation("nwsurl", s.sameOrigin); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *schema) sameOrigin(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return u.Scheme == s.origin.Scheme && u.Host == s.origin.Host &&
		strings.HasPrefix(u.Path, s.origin.Path+"/")
}

// decode unmarshals data into dst and checks it against its validate tags.
func (s *schema) decode(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	return s.check(dst)
}

func (s *schema) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, s.describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (s *schema) describe(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + ": required"
	case "url":
		return field + ": invalid url"
	case "nwsurl":
		return fmt.Sprintf("%s: must be a %s url", field, s.origin.Scheme+"://"+s.origin.Host)
	case "datetime":
		return field + ": invalid datetime, expected RFC 3339 with offset"
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
}

// fieldPath drops the struct name validator puts in front of the namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ParseRequest decodes the get_weather tool arguments. Unknown keys are rejected.
func ParseRequest(raw string) (Request, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	var req Request
	if err := dec.Decode(&req); err != nil {
		return Request{}, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Request{}, errors.New("unexpected data after arguments object")
	}
	if err := requestSchema.check(&req); err != nil {
		return Request{}, err
	}
	return req, nil
}

var requestSchema = mustSchema(DefaultAPIBase)

func mustSchema(base string) *schema {
	s, err := newSchema(base)
	if err != nil {
		panic(err)
	}
	return s
}
