package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnexpectedShape is returned when a response is neither a bare value nor
// one of the known envelopes.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// Unwrap returns the value stored under the first of keys present in raw as
// a JSON object. When raw is not an object or none of the keys holds an
// object, raw itself is the resource and is returned unchanged.
func Unwrap(raw json.RawMessage, keys ...string) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '{' {
			return v
		}
	}
	return raw
}

// Page describes the page a paginated list response belongs to. It is zero
// for unpaginated lists.
type Page struct {
	Current int `json:"current_page"`
	Last    int `json:"last_page"`
	Total   int `json:"total"`
}

// UnwrapList accepts a bare JSON array or a {data: [...]} page and returns
// the array.
func UnwrapList(raw json.RawMessage) (json.RawMessage, Page, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("[]"), Page{}, nil
	}
	if trimmed[0] == '[' {
		return trimmed, Page{}, nil
	}

	var env struct {
		Data json.RawMessage `json:"data"`
		Page
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, Page{}, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, Page{}, fmt.Errorf("%w: no data array", ErrUnexpectedShape)
	}
	return data, env.Page, nil
}
