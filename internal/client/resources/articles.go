package resources

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
)

// CategoryKind is the option list of article categories.
const CategoryKind = "categories"

// ArticleDraft is the editable form of an article.
type ArticleDraft struct {
	Title      string
	Content    string
	Author     string
	Categories crud.Selection
	Image      crud.Attachment
}

type articleWire struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Author     string            `json:"author"`
	Image      *string           `json:"image"`
	ImageURL   *string           `json:"image_url"`
	Categories []models.Relation `json:"categories"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}

func (w articleWire) toModel() models.Article {
	cats := w.Categories
	if cats == nil {
		cats = []models.Relation{}
	}
	return models.Article{
		ID:         w.ID,
		Title:      w.Title,
		Content:    w.Content,
		Author:     w.Author,
		Image:      deref(w.Image),
		ImageURL:   deref(w.ImageURL),
		Categories: cats,
		CreatedAt:  parseTimestamp(w.CreatedAt),
		UpdatedAt:  parseTimestamp(w.UpdatedAt),
	}
}

var _ crud.Resource[models.Article, ArticleDraft] = Articles{}

// Articles is the /articles collection.
type Articles struct{}

func (Articles) Name() string       { return "articles" }
func (Articles) Singular() string   { return "article" }
func (Articles) Path() string       { return "/articles" }
func (Articles) Envelope() []string { return []string{"article", "data"} }

func (Articles) Sources(api client.Client) []crud.Source {
	return []crud.Source{relationsSource(api, "/articles/categories", CategoryKind)}
}

func (Articles) DecodeList(items json.RawMessage) ([]models.Article, error) {
	return decodeEach(items, articleWire.toModel)
}

func (Articles) Decode(raw json.RawMessage) (models.Article, error) {
	return decodeOne(raw, articleWire.toModel)
}

func newCategories(ids ...int64) crud.Selection {
	s := crud.NewSelection("category", 1, 2, crud.Truncate, ids...)
	s.Plural = "categories"
	return s
}

func (Articles) Empty() ArticleDraft {
	return ArticleDraft{Categories: newCategories()}
}

func (Articles) Seed(a models.Article) ArticleDraft {
	return ArticleDraft{
		Title:      a.Title,
		Content:    a.Content,
		Author:     a.Author,
		Categories: newCategories(models.RelationIDs(a.Categories)...),
		Image:      crud.Persisted(a.Image),
	}
}

func (Articles) Validate(d ArticleDraft) error {
	v := &crud.Validator{}
	return v.Required("title", d.Title).
		Required("content", d.Content).
		Required("author", d.Author).
		Selection("categories", d.Categories).
		Err()
}

func (Articles) EncodeCreate(d ArticleDraft) (*client.Body, error) {
	form := articleForm(d)
	for _, id := range d.Categories.IDs() {
		form.Add("categories[]", itoa(id))
	}
	if d.Image.IsPending() {
		form.AddFile("image", d.Image.Path)
	}
	return &client.Body{Form: form}, nil
}

// EncodeUpdate resends every field. The image part is only present when a
// new file was picked.
func (Articles) EncodeUpdate(_ models.Article, d ArticleDraft) (string, *client.Body, error) {
	form := articleForm(d)
	for i, id := range d.Categories.IDs() {
		form.Add(fmt.Sprintf("categories[%d]", i), itoa(id))
	}
	if d.Image.IsPending() {
		form.AddFile("image", d.Image.Path)
	}
	return http.MethodPost, &client.Body{Form: form, MethodOverride: http.MethodPut}, nil
}

func articleForm(d ArticleDraft) *client.Form {
	return client.NewForm().
		Add("title", d.Title).
		Add("content", d.Content).
		Add("author", d.Author)
}

// Merge keeps the previous image when the update response carries none.
func (Articles) Merge(orig, updated models.Article) models.Article {
	if updated.Image == "" {
		updated.Image = orig.Image
		if updated.ImageURL == "" {
			updated.ImageURL = orig.ImageURL
		}
	}
	return updated
}
