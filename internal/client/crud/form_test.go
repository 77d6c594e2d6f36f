package crud

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_RejectsBelowMinimumWithoutRequest(t *testing.T) {
	c, api, n := loadedController(t)
	f := c.NewCreateForm(context.Background())

	require.NoError(t, f.Update(func(d *noteDraft) error {
		d.Title = "Hello"
		return nil
	}))

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "select at least 1 tag", err.Error())
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, err, f.Err())
	assert.Equal(t, "Failed to save note", n.last().Msg)

	for _, call := range api.Calls() {
		assert.NotEqual(t, "POST", call.Method)
	}
	assert.Equal(t, "Hello", f.Draft().Title)
}

func TestForm_CreateSuccess(t *testing.T) {
	c, api, n := loadedController(t)
	api.reply("POST /notes", `{"note":{"id":42,"title":"Hello","tags":[{"id":3,"name":"Drones"}]}}`)
	before := c.Items()

	f := c.NewCreateForm(context.Background())
	require.NoError(t, f.Update(func(d *noteDraft) error {
		d.Title = "Hello"
		id, err := f.Options().ID("tags", "Drones")
		if err != nil {
			return err
		}
		return d.Tags.Toggle(id)
	}))

	rec, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)

	items := c.Items()
	require.Len(t, items, len(before)+1)
	assert.Equal(t, int64(42), items[0].ID)
	assert.Empty(t, cmp.Diff(before, items[1:]))

	assert.Equal(t, "", f.Draft().Title)
	assert.Zero(t, f.Draft().Tags.Len())
	assert.Equal(t, Idle, f.State())
	assert.NoError(t, f.Err())
	assert.Equal(t, notice{OK: true, Msg: "Note added successfully."}, n.last())

	last := api.Calls()[len(api.Calls())-1]
	assert.Equal(t, []string{"3"}, last.Body.Form.Values("tags[]"))
}

func TestForm_CreateDoesNotDuplicateReloadedRecord(t *testing.T) {
	c, api, _ := loadedController(t)
	api.reply("POST /notes", `{"id":3,"title":"Third again","tags":[{"id":1,"name":"News"}]}`)

	f := c.NewCreateForm(context.Background())
	require.NoError(t, f.Update(func(d *noteDraft) error {
		d.Title = "Third again"
		return d.Tags.Add(1)
	}))
	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Len(t, c.Items(), 3)
	got, _ := c.Get(3)
	assert.Equal(t, "Third again", got.Title)
}

func TestForm_ValidationFailureFromServerKeepsDraft(t *testing.T) {
	c, api, n := loadedController(t)
	api.fail("POST /notes", &client.APIError{
		Status:  422,
		Message: "The given data was invalid.",
		Fields: map[string][]string{
			"title": {"The title has already been taken."},
			"tags":  {"The selected tags are invalid."},
		},
	})
	before := c.Items()

	f := c.NewCreateForm(context.Background())
	require.NoError(t, f.Update(func(d *noteDraft) error {
		d.Title = "Dup"
		d.Image = Pending("/tmp/cover.png")
		return d.Tags.Add(2)
	}))
	want := f.Draft()

	_, err := f.Submit(context.Background())
	require.Error(t, err)

	assert.Empty(t, cmp.Diff(want, f.Draft(), cmp.AllowUnexported(Selection{})))
	assert.Equal(t, Idle, f.State())
	assert.Contains(t, f.Err().Error(), "The title has already been taken.")
	assert.Contains(t, f.Err().Error(), "The selected tags are invalid.")
	assert.Equal(t, err, n.last().Err)
	assert.Empty(t, cmp.Diff(before, c.Items()))

	api.reply("POST /notes", `{"id":5,"title":"Dup2"}`)
	require.NoError(t, f.Update(func(d *noteDraft) error { d.Title = "Dup2"; return nil }))
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Items(), 4)
}

func TestForm_SecondSubmitWhileInFlightIsRefused(t *testing.T) {
	c, api, _ := loadedController(t)
	release := make(chan struct{})
	entered := make(chan struct{})
	api.on("POST /notes", func() (json.RawMessage, error) {
		close(entered)
		<-release
		return json.RawMessage(`{"id":50,"title":"Slow"}`), nil
	})

	f := c.NewCreateForm(context.Background())
	require.NoError(t, f.Update(func(d *noteDraft) error {
		d.Title = "Slow"
		return d.Tags.Add(1)
	}))

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-entered

	assert.True(t, f.Busy())
	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, ErrBusy)
	require.ErrorIs(t, f.Update(func(d *noteDraft) error { return nil }), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, c.Items(), 4)

	posts := 0
	for _, call := range api.Calls() {
		if call.Method == "POST" {
			posts++
		}
	}
	assert.Equal(t, 1, posts)
}

func TestForm_DiscardDropsLateResponse(t *testing.T) {
	c, api, _ := loadedController(t)
	release := make(chan struct{})
	entered := make(chan struct{})
	api.on("POST /notes", func() (json.RawMessage, error) {
		close(entered)
		<-release
		return json.RawMessage(`{"id":60,"title":"Late"}`), nil
	})

	f := c.NewCreateForm(context.Background())
	require.NoError(t, f.Update(func(d *noteDraft) error {
		d.Title = "Late"
		return d.Tags.Add(1)
	}))

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-entered
	f.Discard()
	close(release)

	require.NoError(t, <-done)
	assert.Len(t, c.Items(), 3)
	assert.Equal(t, Closed, f.State())
}

func TestForm_DetachedViewClosesForm(t *testing.T) {
	c, api, _ := loadedController(t)
	release := make(chan struct{})
	entered := make(chan struct{})
	api.on("POST /notes", func() (json.RawMessage, error) {
		close(entered)
		<-release
		return json.RawMessage(`{"id":61,"title":"Orphan"}`), nil
	})

	f := c.NewCreateForm(context.Background())
	require.NoError(t, f.Update(func(d *noteDraft) error {
		d.Title = "Orphan"
		return d.Tags.Add(1)
	}))

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-entered
	c.Detach()
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, Closed, f.State())
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, f.Update(func(*noteDraft) error { return nil }), ErrClosed)
}

func TestForm_UpdateErrorLeavesDraft(t *testing.T) {
	c, _, _ := loadedController(t)
	f := c.NewCreateForm(context.Background())

	require.NoError(t, f.Update(func(d *noteDraft) error { d.Title = "keep"; return nil }))
	err := f.Update(func(d *noteDraft) error {
		d.Title = "lost"
		_, err := f.Options().ID("tags", "Nope")
		return err
	})
	require.ErrorIs(t, err, ErrUnknownOption)
	assert.Equal(t, "keep", f.Draft().Title)
}

func TestEditModal_ReplacesOnlyTarget(t *testing.T) {
	c, api, n := loadedController(t)
	api.reply("POST /notes/2", `{"note":{"id":2,"title":"Second (edited)","tags":[{"id":2,"name":"Tech"},{"id":3,"name":"Drones"}],"image":null}}`)
	before := c.Items()

	m, err := c.RequestEdit(context.Background(), 2)
	require.NoError(t, err)
	require.NoError(t, m.Update(func(d *noteDraft) error {
		d.Title = "Second (edited)"
		return d.Tags.Add(3)
	}))

	rec, err := m.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Second (edited)", rec.Title)

	after := c.Items()
	require.Len(t, after, 3)
	assert.Empty(t, cmp.Diff(before[0], after[0]))
	assert.Empty(t, cmp.Diff(before[2], after[2]))
	assert.Equal(t, rec, after[1])
	assert.Equal(t, Closed, m.State())
	assert.Equal(t, notice{OK: true, Msg: "Note updated successfully."}, n.last())

	last := api.Calls()[len(api.Calls())-1]
	assert.Equal(t, "POST", last.Method)
	assert.Equal(t, "PUT", last.Body.MethodOverride)
	assert.Empty(t, last.Body.Form.Files())

	_, err = m.Submit(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

func TestEditModal_MergeKeepsImageWhenResponseOmitsIt(t *testing.T) {
	c, api, _ := loadedController(t)
	api.reply("POST /notes/1", `{"id":1,"title":"First v2","tags":[{"id":1,"name":"News"}]}`)

	m, err := c.RequestEdit(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, m.Update(func(d *noteDraft) error { d.Title = "First v2"; return nil }))

	rec, err := m.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/storage/1.png", rec.Image)
	got, _ := c.Get(1)
	assert.Equal(t, "/storage/1.png", got.Image)
}

func TestEditModal_FailureKeepsRowAndDraft(t *testing.T) {
	c, api, _ := loadedController(t)
	api.fail("POST /notes/1", client.ErrUnavailable)
	before := c.Items()

	m, err := c.RequestEdit(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, m.Update(func(d *noteDraft) error { d.Title = "Offline edit"; return nil }))

	_, err = m.Submit(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, "Offline edit", m.Draft().Title)
	assert.Equal(t, Idle, m.State())
	assert.Empty(t, cmp.Diff(before, c.Items()))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "closed", Closed.String())
}
