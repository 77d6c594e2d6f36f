package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Load(t *testing.T) {
	c, _, _ := loadedController(t)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "/storage/1.png", items[0].Image)
	assert.Empty(t, items[1].Image)
	assert.NoError(t, c.Err())
	assert.False(t, c.Loading())
}

func TestController_LoadFailureKeepsState(t *testing.T) {
	c, api, n := loadedController(t)
	before := c.Items()

	api.fail("GET /notes", &client.APIError{Status: 500, Message: "Server Error"})
	err := c.Load(context.Background())
	require.Error(t, err)

	assert.Empty(t, cmp.Diff(before, c.Items()))
	assert.Equal(t, err, c.Err())
	assert.False(t, n.last().OK)
	assert.Equal(t, "Failed to load notes", n.last().Msg)
}

func TestController_LoadPaginated(t *testing.T) {
	api := newFakeAPI()
	api.reply("GET /notes?page=2", `{"data":[{"id":11,"title":"p2"}],"current_page":2,"last_page":3,"total":21}`)
	c := NewController[note, noteDraft](noteResource{}, api, Config{})

	require.NoError(t, c.LoadPage(context.Background(), 2))
	assert.Equal(t, client.Page{Current: 2, Last: 3, Total: 21}, c.Page())
	require.Len(t, c.Items(), 1)

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, uint64(1), c.RefreshCount())
	assert.Equal(t, "GET /notes?page=2", fmt.Sprintf("%s %s", api.Calls()[1].Method, api.Calls()[1].Path))

	require.Error(t, c.LoadPage(context.Background(), 0))
}

func TestController_Refresh(t *testing.T) {
	c, api, _ := loadedController(t)
	api.reply("GET /notes", `[{"id":9,"title":"Only"}]`)

	require.NoError(t, c.Refresh(context.Background()))
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, uint64(2), c.RefreshCount())
	require.Len(t, c.Items(), 1)
	assert.Equal(t, int64(9), c.Items()[0].ID)
}

func TestController_Remove(t *testing.T) {
	c, api, n := loadedController(t)
	before := c.Items()
	api.reply("DELETE /notes/2", ``)

	require.NoError(t, c.Remove(context.Background(), 2))

	after := c.Items()
	require.Len(t, after, 2)
	_, ok := c.Get(2)
	assert.False(t, ok)
	assert.Empty(t, cmp.Diff([]note{before[0], before[2]}, after))
	assert.Equal(t, notice{OK: true, Msg: "Note deleted successfully."}, n.last())
}

func TestController_RemoveFailureLeavesState(t *testing.T) {
	c, api, _ := loadedController(t)
	before := c.Items()
	api.fail("DELETE /notes/2", client.ErrUnavailable)

	require.ErrorIs(t, c.Remove(context.Background(), 2), client.ErrUnavailable)
	assert.Empty(t, cmp.Diff(before, c.Items()))
}

func TestController_UnauthorizedRunsHook(t *testing.T) {
	api := newFakeAPI()
	api.fail("GET /notes", &client.APIError{Status: 401, Message: "Unauthenticated."})

	var tornDown bool
	c := NewController[note, noteDraft](noteResource{}, api, Config{
		OnUnauthorized: func(context.Context) { tornDown = true },
	})

	err := c.Load(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, tornDown)
}

func TestController_DetachDropsLateResponses(t *testing.T) {
	c, api, _ := loadedController(t)
	before := c.Items()

	api.reply("GET /notes", `[]`)
	api.reply("DELETE /notes/1", ``)
	c.Detach()

	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Remove(context.Background(), 1))
	assert.Empty(t, cmp.Diff(before, c.Items()))
	assert.False(t, c.Loading())
}

func TestController_DetachDuringLoadClearsLoading(t *testing.T) {
	c, api, _ := loadedController(t)
	release := make(chan struct{})
	entered := make(chan struct{})
	api.on("GET /notes", func() (json.RawMessage, error) {
		close(entered)
		<-release
		return json.RawMessage(`[]`), nil
	})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	<-entered
	assert.True(t, c.Loading())
	c.Detach()
	close(release)

	require.NoError(t, <-done)
	assert.False(t, c.Loading())
	assert.Len(t, c.Items(), 3)
}

func TestController_ItemsIsACopy(t *testing.T) {
	c, _, _ := loadedController(t)
	items := c.Items()
	items[0].Title = "mutated"
	assert.Equal(t, "First", c.Items()[0].Title)
}

func TestController_RequestEdit(t *testing.T) {
	c, _, _ := loadedController(t)

	m, err := c.RequestEdit(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID())
	assert.Equal(t, "First", m.Draft().Title)
	assert.Equal(t, []int64{1}, m.Draft().Tags.IDs())
	assert.False(t, m.Draft().Image.IsPending())
	assert.True(t, m.Options().Ready("tags"))

	_, err = c.RequestEdit(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestController_OptionsFailureStillOpensForm(t *testing.T) {
	api := newFakeAPI()
	n := &recordingNotifier{}
	res := noteResource{tagsFetch: func(context.Context) (map[string][]models.Relation, error) {
		return nil, errors.New("categories down")
	}}
	c := NewController[note, noteDraft](res, api, Config{Notifier: n})

	f := c.NewCreateForm(context.Background())
	require.NotNil(t, f)
	assert.False(t, f.Options().Ready("tags"))
	_, err := f.Options().ID("tags", "News")
	require.ErrorIs(t, err, ErrNotResolved)
	assert.Equal(t, "Failed to load options", n.last().Msg)
}
