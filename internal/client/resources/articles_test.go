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

const articlesJSON = `[
	{"id":1,"title":"Launch","content":"# Hi","author":"Ana","image":"articles/1.png","image_url":"http://127.0.0.1:8000/storage/articles/1.png",
	 "categories":[{"id":1,"name":"News"}],"created_at":"2025-11-14T03:00:00.000000Z"},
	{"id":2,"title":"Untagged","content":"x","author":"Bo","image":null,"categories":null}
]`

const categoriesJSON = `[{"id":1,"name":"News"},{"id":2,"name":"Tech"},{"id":3,"name":"Agriculture"}]`

func articleRoutes(create, update http.HandlerFunc) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/articles", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, 200, articlesJSON) })
		r.Get("/articles/categories", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, 200, categoriesJSON) })
		if create != nil {
			r.Post("/articles", create)
		}
		if update != nil {
			r.Post("/articles/{id}", update)
		}
	}
}

func TestArticles_DecodeList(t *testing.T) {
	items, err := Articles{}.DecodeList([]byte(articlesJSON))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "articles/1.png", items[0].Image)
	assert.Equal(t, 2025, items[0].CreatedAt.Year())
	assert.Equal(t, []models.Relation{{ID: 1, Name: "News"}}, items[0].Categories)

	assert.Empty(t, items[1].Image)
	assert.NotNil(t, items[1].Categories)
	assert.True(t, items[1].CreatedAt.IsZero())
}

func TestArticles_CreateScenario(t *testing.T) {
	ctx := context.Background()
	api, rec := newServer(t, articleRoutes(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 201, `{"article":{"id":42,"title":"Hello","content":"Body","author":"Ana","image":null,"categories":[{"id":2,"name":"Tech"}]}}`)
	}, nil))

	c := crud.NewController[models.Article, ArticleDraft](Articles{}, api, crud.Config{})
	require.NoError(t, c.Load(ctx))
	before := len(c.Items())

	f := c.NewCreateForm(ctx)
	require.NoError(t, f.Update(func(d *ArticleDraft) error {
		d.Title, d.Content, d.Author = "Hello", "Body", "Ana"
		return nil
	}))

	_, err := f.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, "select at least 1 category", err.Error())
	assert.Zero(t, rec.count("POST", "/api/articles"))

	require.NoError(t, f.Update(func(d *ArticleDraft) error {
		id, err := f.Options().ID(CategoryKind, "Tech")
		if err != nil {
			return err
		}
		return d.Categories.Toggle(id)
	}))
	got, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)

	require.Len(t, c.Items(), before+1)
	_, ok := c.Get(42)
	assert.True(t, ok)

	form := parseMultipart(t, rec.last("POST", "/api/articles"))
	assert.Equal(t, []string{"Hello"}, form.Value["title"])
	assert.Equal(t, []string{"2"}, form.Value["categories[]"])
	assert.Empty(t, form.File["image"])
}

func TestArticles_CategoriesTruncateAtTwo(t *testing.T) {
	d := Articles{}.Empty()
	require.NoError(t, d.Categories.Add(1))
	require.NoError(t, d.Categories.Add(2))
	require.NoError(t, d.Categories.Add(3))
	assert.Equal(t, []int64{1, 2}, d.Categories.IDs())
}

func TestArticles_UpdateKeepsImageAndUsesOverride(t *testing.T) {
	ctx := context.Background()
	api, rec := newServer(t, articleRoutes(nil, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"article":{"id":1,"title":"Launch v2","content":"# Hi","author":"Ana","categories":[{"id":1,"name":"News"},{"id":3,"name":"Agriculture"}]}}`)
	}))

	c := crud.NewController[models.Article, ArticleDraft](Articles{}, api, crud.Config{})
	require.NoError(t, c.Load(ctx))
	other, _ := c.Get(2)

	m, err := c.RequestEdit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, m.Options().Ready(CategoryKind))
	require.NoError(t, m.Update(func(d *ArticleDraft) error {
		d.Title = "Launch v2"
		return d.Categories.Add(3)
	}))

	updated, err := m.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "articles/1.png", updated.Image)
	assert.Equal(t, "http://127.0.0.1:8000/storage/articles/1.png", updated.ImageURL)

	row, _ := c.Get(1)
	assert.Equal(t, "Launch v2", row.Title)
	still, _ := c.Get(2)
	assert.Equal(t, other, still)

	form := parseMultipart(t, rec.last("POST", "/api/articles/1"))
	assert.Equal(t, []string{"PUT"}, form.Value["_method"])
	assert.Equal(t, []string{"1"}, form.Value["categories[0]"])
	assert.Equal(t, []string{"3"}, form.Value["categories[1]"])
	assert.Empty(t, form.File["image"])
}

func TestArticles_UpdateUploadsNewImage(t *testing.T) {
	img := filepath.Join(t.TempDir(), "new.png")
	require.NoError(t, os.WriteFile(img, pngBytes, 0o600))

	_, body, err := Articles{}.EncodeUpdate(models.Article{ID: 1}, ArticleDraft{
		Title:      "t",
		Categories: newCategories(1),
		Image:      crud.Persisted("articles/1.png").Replace(img),
	})
	require.NoError(t, err)
	files := body.Form.Files()
	require.Len(t, files, 1)
	assert.Equal(t, "image", files[0].Field)
	assert.Equal(t, img, files[0].Path)
}

func TestArticles_Validate(t *testing.T) {
	err := Articles{}.Validate(Articles{}.Empty())
	var verr *crud.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
}
