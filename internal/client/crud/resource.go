package crud

import (
	"encoding/json"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/models"
)

// Resource describes one backend collection. R is the canonical record and
// D the editable draft. Implementations normalize the wire shape in Decode
// and DecodeList so nothing downstream sees it.
type Resource[R models.Record, D any] interface {
	// Name is the plural collection name, e.g. "articles".
	Name() string
	// Singular is used in notifications, e.g. "article".
	Singular() string
	// Path is the collection path relative to the API root, e.g. "/articles".
	Path() string
	// Envelope lists the keys a single-record response may be wrapped in,
	// tried in order.
	Envelope() []string
	// Sources are the option lists the forms need.
	Sources(api client.Client) []Source

	DecodeList(items json.RawMessage) ([]R, error)
	Decode(raw json.RawMessage) (R, error)

	// Empty returns a blank create draft.
	Empty() D
	// Seed returns an edit draft for r. It must not share mutable state
	// with r.
	Seed(r R) D
	Validate(d D) error

	EncodeCreate(d D) (*client.Body, error)
	// EncodeUpdate returns the HTTP method and body that update orig to d.
	EncodeUpdate(orig R, d D) (string, *client.Body, error)
	// Merge combines the record before the update with the server's
	// response, filling anything the response leaves out.
	Merge(orig, updated R) R
}
