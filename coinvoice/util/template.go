package util

import (
	"bytes"
	"encoding/base64"
	"text/template"

	"github.com/go-faster/errors"
)

// MergeTemplate renders tpl against model. Besides the builtins the template
// can call base64 and default.
func MergeTemplate(tpl string, model any) ([]byte, error) {

	var funcMap = template.FuncMap{
		"base64": func(s string) string {
			return base64.StdEncoding.EncodeToString([]byte(s))
		},
		"default": func(def, v string) string {
			if v == "" {
				return def
			}
			return v
		},
	}

	tmpl, err := template.New("output").Funcs(funcMap).Option("missingkey=error").Parse(tpl)
	if err != nil {
		return nil, errors.Wrap(err, "parse output template")
	}

	var output bytes.Buffer

	if err = tmpl.Execute(&output, model); err != nil {
		return nil, errors.Wrap(err, "render output template")
	}
	return output.Bytes(), nil
}
