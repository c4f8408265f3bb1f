package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

// maxBodyBytes caps form and JSON request bodies.
const maxBodyBytes = 100 << 10

var errBadBody = errors.New("invalid request body")

// readFields decodes a JSON object or urlencoded form body into field values.
// Bodies of any other content type, and JSON that is not an object, yield no
// fields. Values are coerced to strings; null, false, 0 and "" become "".
func readFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	fields := map[string]string{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var body any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadBody, err)
		}
		obj, ok := body.(map[string]any)
		if !ok {
			return fields, nil
		}
		for k, v := range obj {
			fields[k] = coerce(v)
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadBody, err)
		}
		for k := range r.PostForm {
			fields[k] = r.PostForm.Get(k)
		}
	}
	return fields, nil
}

func coerce(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case json.Number:
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil && f == 0 {
			return ""
		}
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
