package crud

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/beehive-drones/admin/internal/client/models"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotResolved means the options are still loading. Callers keep the
	// affected control disabled and try again later.
	ErrNotResolved = errors.New("options not loaded yet")

	ErrUnknownOption = errors.New("unknown option")
)

// Source fetches one or more option lists in a single request. Kinds names
// the lists it returns, e.g. {"product_services", "industries"}.
type Source struct {
	Kinds []string
	Fetch func(ctx context.Context) (map[string][]models.Relation, error)
}

// Resolver maps option names to ids for the kinds of one Source.
type Resolver struct {
	src Source

	mu    sync.RWMutex
	ready bool
	opts  map[string][]models.Relation
}

func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve fetches the options. A failed fetch keeps whatever was loaded
// before.
func (r *Resolver) Resolve(ctx context.Context) error {
	opts, err := r.src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", strings.Join(r.src.Kinds, ","), err)
	}

	r.mu.Lock()
	r.opts = opts
	r.ready = true
	r.mu.Unlock()
	return nil
}

func (r *Resolver) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// Serves reports whether kind is one of the resolver's lists.
func (r *Resolver) Serves(kind string) bool {
	return slices.Contains(r.src.Kinds, kind)
}

// Options returns the options of kind, or ErrNotResolved while loading.
func (r *Resolver) Options(kind string) ([]models.Relation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return nil, ErrNotResolved
	}
	return slices.Clone(r.opts[kind]), nil
}

// ID translates a human-readable name into its id. Matching ignores case and
// surrounding space.
func (r *Resolver) ID(kind, name string) (int64, error) {
	opts, err := r.Options(kind)
	if err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)
	for _, o := range opts {
		if strings.EqualFold(o.Name, name) {
			return o.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownOption, kind, name)
}

// Name is the reverse of ID.
func (r *Resolver) Name(kind string, id int64) (string, bool) {
	opts, err := r.Options(kind)
	if err != nil {
		return "", false
	}
	for _, o := range opts {
		if o.ID == id {
			return o.Name, true
		}
	}
	return "", false
}

// Options is the set of resolvers a form needs.
type Options struct {
	resolvers []*Resolver
}

// NewOptions builds one resolver per source.
func NewOptions(sources ...Source) *Options {
	o := &Options{}
	for _, s := range sources {
		o.resolvers = append(o.resolvers, NewResolver(s))
	}
	return o
}

// Resolve loads every source in parallel and waits for all of them.
func (o *Options) Resolve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range o.resolvers {
		g.Go(func() error { return r.Resolve(ctx) })
	}
	return g.Wait()
}

// Ready reports whether the list for kind has loaded.
func (o *Options) Ready(kind string) bool {
	r := o.lookup(kind)
	return r != nil && r.Ready()
}

func (o *Options) List(kind string) ([]models.Relation, error) {
	r := o.lookup(kind)
	if r == nil {
		return nil, fmt.Errorf("%w: no source for %s", ErrUnknownOption, kind)
	}
	return r.Options(kind)
}

func (o *Options) ID(kind, name string) (int64, error) {
	r := o.lookup(kind)
	if r == nil {
		return 0, fmt.Errorf("%w: no source for %s", ErrUnknownOption, kind)
	}
	return r.ID(kind, name)
}

func (o *Options) Name(kind string, id int64) (string, bool) {
	r := o.lookup(kind)
	if r == nil {
		return "", false
	}
	return r.Name(kind, id)
}

func (o *Options) lookup(kind string) *Resolver {
	for _, r := range o.resolvers {
		if r.Serves(kind) {
			return r
		}
	}
	return nil
}
