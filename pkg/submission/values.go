// Package submission models the flat key/value payload a browser posts for a
// form: an ordered multimap where each key maps to the values submitted for
// it, in submission order. Repeated inputs (one per row) share a key, nested
// groups are encoded as "parent__child" keys.
package submission

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	defaultMaxMemory = 32 << 20
	maxBodySize      = 10 << 20
)

// Values is an ordered multimap of submitted form data. The zero value is an
// empty submission ready to use.
type Values struct {
	entries *orderedmap.OrderedMap[string, []string]
}

// New returns an empty submission.
func New() Values {
	return Values{}
}

// FromMap builds a submission from a plain map. Plain maps carry no key
// order, so keys are sorted to keep the result deterministic; value order
// per key is preserved.
func FromMap(in map[string][]string) Values {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := Values{}
	for _, key := range keys {
		out.SetList(key, in[key])
	}
	return out
}

// FromURLValues converts url.Values (for example http.Request.PostForm).
// Keys are sorted, see FromMap.
func FromURLValues(in url.Values) Values {
	return FromMap(in)
}

// Parse decodes an application/x-www-form-urlencoded payload keeping the
// order in which keys first appear.
func Parse(raw string) (Values, error) {
	out := Values{}
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return Values{}, fmt.Errorf("submission: decode key %q: %w", key, err)
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return Values{}, fmt.Errorf("submission: decode value for %q: %w", decodedKey, err)
		}
		out.Add(decodedKey, decodedValue)
	}
	return out, nil
}

// FromRequest returns the values posted in the request body. Urlencoded
// bodies keep first-seen key order. Multipart bodies are decoded by
// net/http into a plain map, so their keys are sorted. Query string
// parameters are not included.
func FromRequest(r *http.Request) (Values, error) {
	if r == nil {
		return Values{}, fmt.Errorf("submission: request is nil")
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if r.Body == nil {
			return Values{}, nil
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
		if err != nil {
			return Values{}, fmt.Errorf("submission: read body: %w", err)
		}
		if len(body) > maxBodySize {
			return Values{}, fmt.Errorf("submission: body exceeds %d bytes", maxBodySize)
		}
		return Parse(string(body))
	case "multipart/form-data":
		if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
			return Values{}, fmt.Errorf("submission: parse multipart form: %w", err)
		}
		if r.MultipartForm != nil {
			return FromMap(r.MultipartForm.Value), nil
		}
	default:
		if err := r.ParseForm(); err != nil {
			return Values{}, fmt.Errorf("submission: parse form: %w", err)
		}
	}
	return FromURLValues(r.PostForm), nil
}

// Add appends value to the list stored under key.
func (v *Values) Add(key, value string) {
	pair := v.register(key)
	pair.Value = append(pair.Value, value)
}

// SetList replaces the values stored under key. A nil or empty list still
// registers the key, mirroring a submitted field with no values.
func (v *Values) SetList(key string, values []string) {
	pair := v.register(key)
	pair.Value = append([]string(nil), values...)
}

// Del removes key and its values.
func (v *Values) Del(key string) {
	if v.entries != nil {
		v.entries.Delete(key)
	}
}

// Get returns the last value submitted for key, or "" when there is none.
func (v Values) Get(key string) string {
	list, _ := v.lookup(key)
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1]
}

// GetList returns a copy of every value submitted for key.
func (v Values) GetList(key string) []string {
	list, _ := v.lookup(key)
	if len(list) == 0 {
		return nil
	}
	return append([]string(nil), list...)
}

// Has reports whether key was submitted, even with zero values.
func (v Values) Has(key string) bool {
	_, ok := v.lookup(key)
	return ok
}

// Keys returns the submitted keys in first-insertion order.
func (v Values) Keys() []string {
	keys := make([]string, 0, v.Len())
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of distinct keys.
func (v Values) Len() int {
	return v.entries.Len()
}

// Empty reports whether nothing was submitted.
func (v Values) Empty() bool {
	return v.Len() == 0
}

// Clone returns a deep copy.
func (v Values) Clone() Values {
	out := Values{}
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		out.SetList(pair.Key, pair.Value)
	}
	return out
}

// URLValues converts the submission into url.Values.
func (v Values) URLValues() url.Values {
	out := make(url.Values, v.Len())
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = append([]string(nil), pair.Value...)
	}
	return out
}

// Encode serialises the submission as application/x-www-form-urlencoded,
// keeping key order.
func (v Values) Encode() string {
	var builder strings.Builder
	for pair := v.entries.Oldest(); pair != nil; pair = pair.Next() {
		escaped := url.QueryEscape(pair.Key)
		for _, value := range pair.Value {
			if builder.Len() > 0 {
				builder.WriteByte('&')
			}
			builder.WriteString(escaped)
			builder.WriteByte('=')
			builder.WriteString(url.QueryEscape(value))
		}
	}
	return builder.String()
}

func (v Values) lookup(key string) ([]string, bool) {
	if v.entries == nil {
		return nil, false
	}
	return v.entries.Get(key)
}

func (v *Values) register(key string) *orderedmap.Pair[string, []string] {
	if v.entries == nil {
		v.entries = orderedmap.New[string, []string]()
	}
	if pair := v.entries.GetPair(key); pair != nil {
		return pair
	}
	v.entries.Set(key, nil)
	return v.entries.GetPair(key)
}
