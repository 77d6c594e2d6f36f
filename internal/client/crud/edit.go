package crud

import (
	"context"

	"github.com/beehive-drones/admin/internal/client/models"
)

// EditModal is a Form seeded from an existing record. Its submit uses the
// resource's update encoding, and on success the returned record replaces
// the row with the same id. The modal is closed after a successful save.
type EditModal[R models.Record, D any] struct {
	*Form[R, D]
	orig R
}

func newEditModal[R models.Record, D any](c *Controller[R, D], orig R) *EditModal[R, D] {
	send := func(ctx context.Context, d D) (R, error) {
		return c.updateSend(ctx, orig, d)
	}
	return &EditModal[R, D]{
		Form: newForm(c, c.res.Seed(orig), modeEdit, send),
		orig: orig,
	}
}

// Original is the record the modal was opened with.
func (m *EditModal[R, D]) Original() R { return m.orig }

// ID is the id of the record being edited.
func (m *EditModal[R, D]) ID() int64 { return m.orig.RecordID() }
