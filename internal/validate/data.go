package validate

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// checkJSON strict-decodes the snippet as a single JSON document.
//
// encoding/json is the one stdlib strategy here: its decoder reports byte
// offsets in syntax errors, which no wrapper library improves on.
func checkJSON(code string) (Status, []string) {
	dec := json.NewDecoder(strings.NewReader(code))
	var v any
	if err := dec.Decode(&v); err != nil {
		return StatusFail, []string{err.Error()}
	}
	if err := dec.Decode(&v); !errors.Is(err, io.EOF) {
		return StatusFail, []string{"trailing data after JSON document"}
	}
	return StatusPass, nil
}

// checkYAML decodes the snippet with yaml.v3, multi-document aware.
func checkYAML(code string) (Status, []string) {
	dec := yaml.NewDecoder(strings.NewReader(code))
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return StatusPass, nil
		}
		if err != nil {
			return StatusFail, []string{err.Error()}
		}
	}
}
