package resources

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectsJSON = `[
	{"id":3,"title":"Rice survey","description":"d","location":"Karawang","goal":"g",
	 "product_service_id":1,"industry_id":7,"product_service":{"name":"Mapping"},"industry":{"name":"Agriculture"},"image":null},
	{"id":4,"title":"Mine","description":"d","location":"Papua","goal":"g",
	 "product_service_id":2,"industry_id":8,"productService":{"name":"Inspection"}}
]`

const dropdownsJSON = `{"product_services":[{"id":1,"name":"Mapping"},{"id":2,"name":"Inspection"}],
	"industries":[{"id":7,"name":"Agriculture"},{"id":8,"name":"Mining"}]}`

func projectRoutes(r chi.Router) {
	r.Get("/projects", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, 200, projectsJSON) })
	r.Get("/projects/dropdowns", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, 200, dropdownsJSON) })
	r.Post("/projects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 201, `{"project":{"id":10,"title":"New","description":"d","location":"l","goal":"g","product_service_id":2,"industry_id":8}}`)
	})
	r.Post("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"id":3,"title":"Rice survey","description":"d","location":"Karawang","goal":"g","product_service_id":1,"industry_id":8}`)
	})
}

func TestProjects_DecodeBothRelationSpellings(t *testing.T) {
	items, err := Projects{}.DecodeList([]byte(projectsJSON))
	require.NoError(t, err)
	assert.Equal(t, "Mapping", items[0].ProductService)
	assert.Equal(t, "Agriculture", items[0].Industry)
	assert.Equal(t, "Inspection", items[1].ProductService)
	assert.Empty(t, items[1].Industry)
}

func TestProjects_CreateJSONWithoutImage(t *testing.T) {
	ctx := context.Background()
	api, rec := newServer(t, projectRoutes)
	c := crud.NewController[models.Project, ProjectDraft](Projects{}, api, crud.Config{})
	require.NoError(t, c.Load(ctx))

	f := c.NewCreateForm(ctx)
	require.True(t, f.Options().Ready(IndustryKind))
	require.NoError(t, f.Update(func(d *ProjectDraft) error {
		d.Title, d.Description, d.Location, d.Goal = "New", "d", "l", "g"
		ps, err := f.Options().ID(ProductServiceKind, "Inspection")
		if err != nil {
			return err
		}
		ind, err := f.Options().ID(IndustryKind, "Mining")
		if err != nil {
			return err
		}
		if err := d.ProductService.Add(ps); err != nil {
			return err
		}
		return d.Industry.Add(ind)
	}))

	got, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Len(t, c.Items(), 3)

	last := rec.last("POST", "/api/projects")
	assert.Contains(t, last.Header.Get("Content-Type"), "application/json")
	payload := decodeJSON(t, last.Body)
	assert.EqualValues(t, 2, payload["product_service_id"])
	assert.EqualValues(t, 8, payload["industry_id"])
}

func TestProjects_CreateMultipartWithImage(t *testing.T) {
	img := filepath.Join(t.TempDir(), "site.png")
	require.NoError(t, os.WriteFile(img, pngBytes, 0o600))

	d := Projects{}.Empty()
	d.Image = crud.Pending(img)
	require.NoError(t, d.ProductService.Add(1))
	require.NoError(t, d.Industry.Add(7))

	body, err := Projects{}.EncodeCreate(d)
	require.NoError(t, err)
	require.NotNil(t, body.Form)
	v, _ := body.Form.Get("industry_id")
	assert.Equal(t, "7", v)
	assert.Len(t, body.Form.Files(), 1)
}

func TestProjects_RelationReplace(t *testing.T) {
	d := Projects{}.Seed(models.Project{ProductServiceID: 1, IndustryID: 7})
	require.NoError(t, d.Industry.Add(8))
	assert.Equal(t, []int64{8}, d.Industry.IDs())

	d = Projects{}.Empty()
	err := Projects{}.Validate(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select at least 1 product/service")
	assert.Contains(t, err.Error(), "select at least 1 industry")
}

func TestProjects_EditMultipartOverrideAndMerge(t *testing.T) {
	ctx := context.Background()
	api, rec := newServer(t, projectRoutes)
	c := crud.NewController[models.Project, ProjectDraft](Projects{}, api, crud.Config{})
	require.NoError(t, c.Load(ctx))

	m, err := c.RequestEdit(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, m.Update(func(d *ProjectDraft) error {
		id, err := m.Options().ID(IndustryKind, "Mining")
		if err != nil {
			return err
		}
		return d.Industry.Add(id)
	}))

	got, err := m.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.IndustryID)
	assert.Equal(t, "Mapping", got.ProductService, "unchanged relation keeps its name")
	assert.Empty(t, got.Industry, "changed relation name is not guessed")

	form := parseMultipart(t, rec.last("POST", "/api/projects/3"))
	assert.Equal(t, []string{"PUT"}, form.Value["_method"])
	assert.Equal(t, []string{"8"}, form.Value["industry_id"])
	assert.Equal(t, []string{"Karawang"}, form.Value["location"])
}
