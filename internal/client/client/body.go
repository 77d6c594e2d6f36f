package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/beehive-drones/admin/internal/common"
)

// Body is a request payload. Exactly one of JSON or Form is used; Form wins
// when both are set. MethodOverride (e.g. "PUT") is written as the `_method`
// field of a Form body so an update can travel as POST.
type Body struct {
	JSON           any
	Form           *Form
	MethodOverride string
}

// JSONBody wraps v as a JSON request body.
func JSONBody(v any) *Body {
	return &Body{JSON: v}
}

// FileField is a local file sent as a multipart part.
type FileField struct {
	Field string
	Path  string
}

type formField struct {
	name, value string
}

// Form is an ordered multipart form. Field order is kept so repeated keys
// such as "categories[]" arrive in selection order.
type Form struct {
	fields []formField
	files  []FileField
}

func NewForm() *Form {
	return &Form{}
}

// Add appends a text field.
func (f *Form) Add(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file part read from path at send time.
func (f *Form) AddFile(field, path string) *Form {
	f.files = append(f.files, FileField{Field: field, Path: path})
	return f
}

// Get returns the first value of name.
func (f *Form) Get(name string) (string, bool) {
	for _, ff := range f.fields {
		if ff.name == name {
			return ff.value, true
		}
	}
	return "", false
}

// Values returns every value of name in insertion order.
func (f *Form) Values(name string) []string {
	var out []string
	for _, ff := range f.fields {
		if ff.name == name {
			out = append(out, ff.value)
		}
	}
	return out
}

// Files returns the file parts.
func (f *Form) Files() []FileField {
	return append([]FileField(nil), f.files...)
}

// encode returns the wire body and its content type. A nil Body encodes to
// no body at all.
func (b *Body) encode() (io.Reader, string, error) {
	if b == nil {
		return nil, "", nil
	}
	if b.Form != nil {
		return b.encodeMultipart()
	}
	if b.JSON == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(b.JSON)
	if err != nil {
		return nil, "", fmt.Errorf("marshal request: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func (b *Body) encodeMultipart() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, ff := range b.Form.fields {
		if err := w.WriteField(ff.name, ff.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", ff.name, err)
		}
	}
	if b.MethodOverride != "" {
		if err := w.WriteField(common.MethodOverrideField, b.MethodOverride); err != nil {
			return nil, "", fmt.Errorf("write method override: %w", err)
		}
	}
	for _, file := range b.Form.files {
		if err := writeFilePart(w, file); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, file FileField) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open attachment %s: %w", file.Path, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(file.Field, filepath.Base(file.Path))
	if err != nil {
		return fmt.Errorf("create part %s: %w", file.Field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy attachment %s: %w", file.Path, err)
	}
	return nil
}
