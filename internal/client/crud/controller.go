package crud

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/models"
	"github.com/beehive-drones/admin/internal/logging"
)

// ErrNotFound is returned when an id is not in the local collection.
var ErrNotFound = errors.New("record not found")

// Config wires a Controller to its surroundings. Zero values are replaced by
// no-op implementations.
type Config struct {
	Logger   logging.Logger
	Notifier Notifier
	// OnUnauthorized runs after any call answered 401, typically to tear
	// down the session.
	OnUnauthorized func(ctx context.Context)
}

// Controller is the list view of one resource. It owns the local collection
// and mutates it only when a request succeeds.
type Controller[R models.Record, D any] struct {
	res    Resource[R, D]
	api    client.Client
	log    logging.Logger
	notify Notifier
	onAuth func(ctx context.Context)

	mu       sync.Mutex
	items    []R
	page     client.Page
	loading  bool
	err      error
	refresh  uint64
	detached bool
}

func NewController[R models.Record, D any](res Resource[R, D], api client.Client, cfg Config) *Controller[R, D] {
	c := &Controller[R, D]{
		res:    res,
		api:    api,
		log:    cfg.Logger,
		notify: cfg.Notifier,
		onAuth: cfg.OnUnauthorized,
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	c.log = c.log.With("resource", res.Name())
	if c.notify == nil {
		c.notify = nopNotifier{}
	}
	if c.onAuth == nil {
		c.onAuth = func(context.Context) {}
	}
	return c
}

// Resource returns the controller's resource description.
func (c *Controller[R, D]) Resource() Resource[R, D] { return c.res }

// Load fetches the collection (the first page when the backend paginates)
// and replaces the local copy. On failure the previous copy is kept.
func (c *Controller[R, D]) Load(ctx context.Context) error {
	return c.load(ctx, 0)
}

// LoadPage fetches page n of a paginated collection.
func (c *Controller[R, D]) LoadPage(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("invalid page %d", n)
	}
	return c.load(ctx, n)
}

// Refresh is the manual reload signal. It bumps RefreshCount and reloads the
// page currently held.
func (c *Controller[R, D]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.refresh++
	page := c.page.Current
	c.mu.Unlock()
	return c.load(ctx, page)
}

func (c *Controller[R, D]) load(ctx context.Context, page int) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	path := c.res.Path()
	if page > 0 {
		path = fmt.Sprintf("%s?page=%d", path, page)
	}

	items, pg, err := c.fetch(ctx, path)

	c.mu.Lock()
	c.loading = false
	if c.detached {
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.err = err
		c.mu.Unlock()
		c.fail(ctx, "load", "Failed to load "+c.res.Name(), err)
		return err
	}
	c.items = items
	c.page = pg
	c.err = nil
	c.mu.Unlock()

	c.log.Debug(ctx, "list loaded", "count", len(items), "page", pg.Current)
	return nil
}

func (c *Controller[R, D]) fetch(ctx context.Context, path string) ([]R, client.Page, error) {
	raw, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, client.Page{}, err
	}
	list, pg, err := client.UnwrapList(raw)
	if err != nil {
		return nil, client.Page{}, err
	}
	items, err := c.res.DecodeList(list)
	if err != nil {
		return nil, client.Page{}, fmt.Errorf("decode %s: %w", c.res.Name(), err)
	}
	return items, pg, nil
}

// Items returns a copy of the local collection.
func (c *Controller[R, D]) Items() []R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Get returns the local record with id.
func (c *Controller[R, D]) Get(id int64) (R, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		var zero R
		return zero, false
	}
	return c.items[i], true
}

// Page is the page held, zero for unpaginated resources.
func (c *Controller[R, D]) Page() client.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Loading reports whether a load is in flight.
func (c *Controller[R, D]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err is the error of the last failed load, cleared by a successful one.
func (c *Controller[R, D]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// RefreshCount counts Refresh calls.
func (c *Controller[R, D]) RefreshCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh
}

// Remove deletes id on the server and then drops it locally. Nothing else
// in the collection is touched.
func (c *Controller[R, D]) Remove(ctx context.Context, id int64) error {
	err := c.api.Delete(ctx, c.itemPath(id))
	if c.isDetached() {
		return err
	}
	if err != nil {
		c.fail(ctx, "delete", "Failed to delete "+c.res.Singular(), err)
		return err
	}

	c.mu.Lock()
	if i := c.index(id); i >= 0 {
		c.items = slices.Delete(slices.Clone(c.items), i, i+1)
	}
	c.mu.Unlock()

	c.succeed(ctx, fmt.Sprintf("%s deleted successfully.", title(c.res.Singular())))
	return nil
}

// NewCreateForm opens a create form with an empty draft and starts loading
// its options. An options failure leaves the relation controls in the
// loading state and is reported, but the form is still usable.
func (c *Controller[R, D]) NewCreateForm(ctx context.Context) *Form[R, D] {
	f := newForm(c, c.res.Empty(), modeCreate, c.createSend)
	c.resolve(ctx, f.options)
	return f
}

// RequestEdit opens an edit modal seeded from the local record with id.
// The modal fetches its own options, independently of Load.
func (c *Controller[R, D]) RequestEdit(ctx context.Context, id int64) (*EditModal[R, D], error) {
	orig, ok := c.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, c.res.Singular(), id)
	}
	m := newEditModal(c, orig)
	c.resolve(ctx, m.options)
	return m, nil
}

// Detach marks the view as gone. Responses that arrive afterwards are
// returned to their callers but no longer change any state.
func (c *Controller[R, D]) Detach() {
	c.mu.Lock()
	c.detached = true
	c.mu.Unlock()
}

func (c *Controller[R, D]) isDetached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detached
}

func (c *Controller[R, D]) resolve(ctx context.Context, opts *Options) {
	if err := opts.Resolve(ctx); err != nil {
		c.fail(ctx, "options", "Failed to load options", err)
	}
}

func (c *Controller[R, D]) createSend(ctx context.Context, d D) (R, error) {
	var zero R
	body, err := c.res.EncodeCreate(d)
	if err != nil {
		return zero, err
	}
	raw, err := c.api.Send(ctx, "POST", c.res.Path(), body)
	if err != nil {
		return zero, err
	}
	rec, err := c.res.Decode(client.Unwrap(raw, c.res.Envelope()...))
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", c.res.Singular(), err)
	}
	return rec, nil
}

func (c *Controller[R, D]) updateSend(ctx context.Context, orig R, d D) (R, error) {
	var zero R
	method, body, err := c.res.EncodeUpdate(orig, d)
	if err != nil {
		return zero, err
	}
	raw, err := c.api.Send(ctx, method, c.itemPath(orig.RecordID()), body)
	if err != nil {
		return zero, err
	}
	rec, err := c.res.Decode(client.Unwrap(raw, c.res.Envelope()...))
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", c.res.Singular(), err)
	}
	return c.res.Merge(orig, rec), nil
}

// commit applies a submitted record to the collection. It reports false
// when the view has been detached and nothing was applied.
func (c *Controller[R, D]) commit(rec R, created bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detached {
		return false
	}
	if created {
		c.insert(rec)
	} else {
		c.replace(rec)
	}
	return true
}

func (c *Controller[R, D]) succeed(ctx context.Context, msg string) {
	c.log.Info(ctx, msg)
	c.notify.Success(ctx, msg)
}

// insert puts a created record at the top, or replaces it when a reload
// already brought it in. Caller holds mu.
func (c *Controller[R, D]) insert(rec R) {
	if i := c.index(rec.RecordID()); i >= 0 {
		c.replaceAt(i, rec)
		return
	}
	next := make([]R, 0, len(c.items)+1)
	next = append(next, rec)
	c.items = append(next, c.items...)
}

// replace swaps the row with rec's id. Caller holds mu.
func (c *Controller[R, D]) replace(rec R) {
	if i := c.index(rec.RecordID()); i >= 0 {
		c.replaceAt(i, rec)
	}
}

func (c *Controller[R, D]) replaceAt(i int, rec R) {
	next := slices.Clone(c.items)
	next[i] = rec
	c.items = next
}

func (c *Controller[R, D]) index(id int64) int {
	return slices.IndexFunc(c.items, func(r R) bool { return r.RecordID() == id })
}

func (c *Controller[R, D]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", c.res.Path(), id)
}

// fail logs, notifies and, for a 401, runs the unauthorized hook.
func (c *Controller[R, D]) fail(ctx context.Context, op, msg string, err error) {
	kind := client.Classify(err)
	var verr *ValidationError
	if errors.As(err, &verr) {
		kind = client.KindValidation
	}
	c.log.Warn(ctx, "operation failed", "op", op, "kind", kind.String(), "error", err)
	c.notify.Failure(ctx, msg, err)
	if kind == client.KindAuth {
		c.onAuth(ctx)
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
