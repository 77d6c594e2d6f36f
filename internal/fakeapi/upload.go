package fakeapi

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// parseForm makes sure a multipart body is parsed. methodOverride may have
// done so already.
func parseForm(r *http.Request) error {
	if r.MultipartForm != nil {
		return nil
	}
	if !isMultipart(r) {
		return errBadBody
	}
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

var indexedKey = regexp.MustCompile(`^(.+)\[(\d*)\]$`)

// formList collects name[] and name[i] values in index order.
func formList(r *http.Request, name string) []string {
	type entry struct {
		idx int
		v   string
	}
	var entries []entry
	next := 0
	for key, values := range r.MultipartForm.Value {
		m := indexedKey.FindStringSubmatch(key)
		if m == nil || m[1] != name {
			continue
		}
		for _, v := range values {
			idx := next
			if m[2] != "" {
				idx, _ = strconv.Atoi(m[2])
			} else {
				next++
			}
			entries = append(entries, entry{idx, v})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.v)
	}
	return out
}

// storeUpload accepts the image part field and returns the server path it
// would be stored under. ok is false when the part is absent.
func storeUpload(r *http.Request, field, dir string, v *validation) (path string, ok bool) {
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return "", false
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		v.add(field, fmt.Sprintf("The %s failed to upload.", field))
		return "", false
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		v.add(field, fmt.Sprintf("The %s field must be an image.", field))
		return "", false
	}
	return fmt.Sprintf("/storage/%s/%s%s", dir, uuid.NewString(), strings.ToLower(filepath.Ext(fh.Filename))), true
}

// storeDataURL accepts a base64 image data URL and returns its server path.
func storeDataURL(u, dir string) (string, error) {
	meta, data, ok := strings.Cut(u, ",")
	if !ok || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return "", fmt.Errorf("not an image data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("bad base64: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(raw), "image/") {
		return "", fmt.Errorf("not an image")
	}
	ext := strings.TrimSuffix(strings.TrimPrefix(meta, "data:image/"), ";base64")
	return fmt.Sprintf("/storage/%s/%s.%s", dir, uuid.NewString(), ext), nil
}

func publicURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}
