package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
)

// view is the command-line face of one resource.
type view interface {
	name() string
	list(ctx context.Context, w io.Writer, page int) error
	refresh(ctx context.Context, w io.Writer) error
	show(ctx context.Context, w io.Writer, id int64) error
	create(ctx context.Context, p *prompter) error
	edit(ctx context.Context, p *prompter, id int64) error
	remove(ctx context.Context, id int64) error
	detach()
}

// resourceView adapts a crud.Controller to the view interface. The
// resource-specific parts are the table columns, the markdown document and
// the prompt sequence that fills a draft.
type resourceView[R models.Record, D any] struct {
	ctrl    *crud.Controller[R, D]
	columns []string
	row     func(R) []string
	doc     func(R) string
	fill    func(p *prompter, opts *crud.Options, d *D) error

	loaded bool
}

func (v *resourceView[R, D]) name() string { return v.ctrl.Resource().Name() }

// ensure loads the list once; later calls use the local collection.
func (v *resourceView[R, D]) ensure(ctx context.Context) error {
	if v.loaded {
		return nil
	}
	if err := v.ctrl.Load(ctx); err != nil {
		return err
	}
	v.loaded = true
	return nil
}

func (v *resourceView[R, D]) list(ctx context.Context, w io.Writer, page int) error {
	var err error
	if page > 0 {
		err = v.ctrl.LoadPage(ctx, page)
		v.loaded = err == nil || v.loaded
	} else {
		err = v.ensure(ctx)
	}
	if err != nil {
		return err
	}
	v.render(w)
	return nil
}

func (v *resourceView[R, D]) refresh(ctx context.Context, w io.Writer) error {
	if err := v.ctrl.Refresh(ctx); err != nil {
		return err
	}
	v.loaded = true
	v.render(w)
	return nil
}

func (v *resourceView[R, D]) render(w io.Writer) {
	items := v.ctrl.Items()
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, append([]string{fmt.Sprint(it.RecordID())}, v.row(it)...))
	}
	headers := append([]string{"ID"}, v.columns...)
	renderTable(w, fmt.Sprintf("No %s yet.", v.name()), headers, rows)

	if pg := v.ctrl.Page(); pg.Last > 1 {
		fmt.Fprintf(w, "Page %d of %d (%d total)\n", pg.Current, pg.Last, pg.Total)
	}
}

func (v *resourceView[R, D]) show(ctx context.Context, w io.Writer, id int64) error {
	if err := v.ensure(ctx); err != nil {
		return err
	}
	rec, ok := v.ctrl.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s %d", crud.ErrNotFound, v.ctrl.Resource().Singular(), id)
	}
	return renderMarkdown(w, v.doc(rec))
}

func (v *resourceView[R, D]) create(ctx context.Context, p *prompter) error {
	if err := v.ensure(ctx); err != nil {
		return err
	}
	f := v.ctrl.NewCreateForm(ctx)
	return v.submit(ctx, p, f)
}

func (v *resourceView[R, D]) edit(ctx context.Context, p *prompter, id int64) error {
	if err := v.ensure(ctx); err != nil {
		return err
	}
	m, err := v.ctrl.RequestEdit(ctx, id)
	if err != nil {
		return err
	}
	return v.submit(ctx, p, m.Form)
}

// submit prompts for the draft and submits it. After a failed submit the
// operator may correct the retained draft and try again.
func (v *resourceView[R, D]) submit(ctx context.Context, p *prompter, f *crud.Form[R, D]) error {
	opts := f.Options()
	for {
		if err := f.Update(func(d *D) error { return v.fill(p, opts, d) }); err != nil {
			f.Discard()
			return err
		}

		_, err := f.Submit(ctx)
		if err == nil {
			return nil
		}
		if client.Classify(err) == client.KindAuth || errors.Is(err, crud.ErrClosed) {
			return err
		}

		again, cerr := p.confirm("Edit and retry?")
		if cerr != nil || !again {
			f.Discard()
			return err
		}
	}
}

func (v *resourceView[R, D]) remove(ctx context.Context, id int64) error {
	if err := v.ensure(ctx); err != nil {
		return err
	}
	return v.ctrl.Remove(ctx, id)
}

func (v *resourceView[R, D]) detach() { v.ctrl.Detach() }
