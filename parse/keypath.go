package parse

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/adamwoolhether/courier/errs"
)

// decodeRoot decodes body generically, surfacing any syntax error.
func decodeRoot(body []byte) (any, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, err
	}

	return root, nil
}

// lookup resolves keyPath inside body, which must hold a JSON object.
// Each segment must name a key of an object.
func lookup(body []byte, keyPath string) (gjson.Result, error) {
	result := gjson.ParseBytes(body)
	for key := range strings.SplitSeq(keyPath, ".") {
		if !result.IsObject() {
			return gjson.Result{}, errs.MissingValue(errs.FieldContent)
		}

		result = result.Get(gjson.Escape(key))
		if !result.Exists() {
			return gjson.Result{}, errs.MissingValue(errs.FieldContent)
		}
	}

	return result, nil
}

// resolve decodes body and, when keyPath is set, navigates to the value it
// names. It returns the generic value and, for key paths, the raw JSON of it.
func resolve(body []byte, keyPath string) (any, []byte, error) {
	root, err := decodeRoot(body)
	if err != nil {
		return nil, nil, err
	}

	if keyPath == "" {
		return root, body, nil
	}

	if _, ok := root.(map[string]any); !ok {
		return nil, nil, errs.InvalidValue(root, errs.FieldContent)
	}

	result, err := lookup(body, keyPath)
	if err != nil {
		return nil, nil, err
	}

	return result.Value(), []byte(result.Raw), nil
}
