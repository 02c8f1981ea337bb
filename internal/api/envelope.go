package api

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/habithaven/internal/logger"
)

// ErrMalformedPayload is returned when a response carries no usable object
var ErrMalformedPayload = errors.New("malformed response payload")

// The backend is inconsistent about where it puts payloads. Candidates are
// tried in order; "" is the body itself.
var (
	listPaths   = []string{"", "data", "message"}
	objectPaths = []string{"data", "message", ""}
)

func lookup(root gjson.Result, path string) gjson.Result {
	if path == "" {
		return root
	}
	return root.Get(path)
}

// ListItems returns the elements of the first array found under the list
// candidates. It never returns nil: anything that is not an array yields an
// empty slice.
func ListItems(body []byte) []json.RawMessage {
	items := []json.RawMessage{}
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return items
	}
	root := gjson.ParseBytes(body)
	for _, path := range listPaths {
		res := lookup(root, path)
		if !res.IsArray() {
			continue
		}
		res.ForEach(func(_, value gjson.Result) bool {
			if value.IsObject() {
				items = append(items, json.RawMessage(value.Raw))
			} else {
				logger.Debug("Skipping non-object list element", "element", value.Raw)
			}
			return true
		})
		return items
	}
	return items
}

// ObjectPayload returns the first JSON object found under the object candidates
func ObjectPayload(body []byte) (json.RawMessage, error) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return nil, ErrMalformedPayload
	}
	root := gjson.ParseBytes(body)
	for _, path := range objectPaths {
		if res := lookup(root, path); res.IsObject() {
			return json.RawMessage(res.Raw), nil
		}
	}
	return nil, ErrMalformedPayload
}

// Unwrap returns the object nested under the first present key, or obj itself.
// Used for payloads like {"task": {...}} next to bare {...}.
func Unwrap(obj json.RawMessage, keys ...string) json.RawMessage {
	root := gjson.ParseBytes(obj)
	for _, key := range keys {
		if res := root.Get(key); res.IsObject() {
			return json.RawMessage(res.Raw)
		}
	}
	return obj
}

// DecodeList decodes every list element into T, skipping elements that do not fit
func DecodeList[T any](body []byte) []T {
	items := ListItems(body)
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			logger.Debug("Skipping undecodable list element", "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// DecodeObject decodes the envelope's object payload into T, descending into
// the first of keys that holds an object.
func DecodeObject[T any](body []byte, keys ...string) (T, error) {
	var v T
	obj, err := ObjectPayload(body)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(Unwrap(obj, keys...), &v); err != nil {
		return v, errors.Join(ErrMalformedPayload, err)
	}
	return v, nil
}
