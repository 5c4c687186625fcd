package validate

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/baechuer/devevent-service/internal/domain"
)

const (
	// formMemory is how much of a multipart body is held in memory before spilling to disk.
	formMemory = 8 << 20
	// MaxJSONBody caps JSON request bodies.
	MaxJSONBody = 1 << 20
)

// DecodeJSON decodes a JSON body of at most MaxJSONBody bytes into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return domain.ErrValidationMeta("request too large", map[string]string{
				"body": "exceeds size limit",
			})
		}
		return domain.ErrValidationMeta("invalid body", map[string]string{
			"body": "must be a valid JSON object",
		})
	}
	return nil
}

// IsMultipart reports whether the request carries multipart/form-data.
func IsMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// Form is a parsed multipart request with an optional "image" file.
type Form struct {
	values   map[string][]string
	Filename string
	Image    []byte
}

// ParseMultipart reads the form, rejecting bodies over maxBytes.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) (*Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, domain.ErrValidationMeta("request too large", map[string]string{
				"body": "exceeds upload size limit",
			})
		}
		return nil, domain.ErrValidationMeta("invalid form", map[string]string{
			"body": "must be valid multipart/form-data",
		})
	}

	f := &Form{values: r.MultipartForm.Value}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return f, nil
	}
	if err != nil {
		return nil, domain.ErrValidationMeta("invalid form", map[string]string{"image": "could not be read"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.ErrValidationMeta("invalid form", map[string]string{"image": "could not be read"})
	}
	f.Filename = header.Filename
	f.Image = data
	return f, nil
}

func (f *Form) HasImage() bool { return len(f.Image) > 0 }

// String returns the first value of key and whether the field was sent.
func (f *Form) String(key string) (string, bool) {
	vals, ok := f.values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// List accepts either a single JSON array of strings or repeated fields.
func (f *Form) List(key string) ([]string, bool, error) {
	vals, ok := f.values[key]
	if !ok || len(vals) == 0 {
		return nil, false, nil
	}
	if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(vals[0]), &out); err != nil {
			return nil, true, domain.ErrValidationMeta("invalid form", map[string]string{
				key: "must be a JSON array of strings",
			})
		}
		return out, true, nil
	}
	return append([]string(nil), vals...), true, nil
}
