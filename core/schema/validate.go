package schema

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// validate checks value against s and returns every violation as
// "<json pointer>: <reason>". It returns nil when value is valid.
func validate(s *openapi3.Schema, value any) []string {
	err := s.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	var out []string
	collect(err, &out)
	return out
}

func collect(err error, out *[]string) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collect(inner, out)
		}
	case *openapi3.SchemaError:
		reason := e.Reason
		if reason == "" {
			reason = e.Error()
		}
		*out = append(*out, pointer(e.JSONPointer())+": "+reason)
	default:
		*out = append(*out, err.Error())
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func pointer(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, p := range path {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(p))
	}
	return b.String()
}
