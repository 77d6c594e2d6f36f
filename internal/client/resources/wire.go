package resources

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
)

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// decodeEach unmarshals a JSON array of W and maps every element.
func decodeEach[W any, R any](items json.RawMessage, conv func(W) R) ([]R, error) {
	var ws []W
	if err := json.Unmarshal(items, &ws); err != nil {
		return nil, err
	}
	out := make([]R, 0, len(ws))
	for _, w := range ws {
		out = append(out, conv(w))
	}
	return out, nil
}

func decodeOne[W any, R any](raw json.RawMessage, conv func(W) R) (R, error) {
	var w W
	if err := json.Unmarshal(raw, &w); err != nil {
		var zero R
		return zero, err
	}
	return conv(w), nil
}

// parseTimestamp accepts the backend's ISO and "YYYY-MM-DD hh:mm:ss" forms.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// relationsSource fetches a bare (or {data}) list of {id, name} as kind.
func relationsSource(api client.Client, path, kind string) crud.Source {
	return crud.Source{
		Kinds: []string{kind},
		Fetch: func(ctx context.Context) (map[string][]models.Relation, error) {
			raw, err := api.Get(ctx, path)
			if err != nil {
				return nil, err
			}
			items, _, err := client.UnwrapList(raw)
			if err != nil {
				return nil, err
			}
			var rels []models.Relation
			if err := json.Unmarshal(items, &rels); err != nil {
				return nil, fmt.Errorf("decode %s: %w", kind, err)
			}
			return map[string][]models.Relation{kind: rels}, nil
		},
	}
}

// DataURL reads an image file and encodes it as a data: URL.
func DataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, ct)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
