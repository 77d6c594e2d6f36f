package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
)

// Option lists served by GET /projects/dropdowns.
const (
	ProductServiceKind = "product_services"
	IndustryKind       = "industries"
)

// ProjectDraft is the editable form of a project. Each relation holds
// exactly one id; picking another replaces it.
type ProjectDraft struct {
	Title          string
	Description    string
	Location       string
	Goal           string
	ProductService crud.Selection
	Industry       crud.Selection
	Image          crud.Attachment
}

type namedWire struct {
	Name string `json:"name"`
}

type projectWire struct {
	ID                  int64      `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	Goal                string     `json:"goal"`
	ProductServiceID    *int64     `json:"product_service_id"`
	IndustryID          *int64     `json:"industry_id"`
	ProductService      *namedWire `json:"product_service"`
	ProductServiceCamel *namedWire `json:"productService"`
	Industry            *namedWire `json:"industry"`
	Image               *string    `json:"image"`
}

func (w projectWire) toModel() models.Project {
	p := models.Project{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Location:    w.Location,
		Goal:        w.Goal,
		Image:       deref(w.Image),
	}
	if w.ProductServiceID != nil {
		p.ProductServiceID = *w.ProductServiceID
	}
	if w.IndustryID != nil {
		p.IndustryID = *w.IndustryID
	}
	switch {
	case w.ProductService != nil:
		p.ProductService = w.ProductService.Name
	case w.ProductServiceCamel != nil:
		p.ProductService = w.ProductServiceCamel.Name
	}
	if w.Industry != nil {
		p.Industry = w.Industry.Name
	}
	return p
}

type projectPayload struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Goal             string `json:"goal"`
	ProductServiceID int64  `json:"product_service_id"`
	IndustryID       int64  `json:"industry_id"`
}

var _ crud.Resource[models.Project, ProjectDraft] = Projects{}

// Projects is the /projects collection.
type Projects struct{}

func (Projects) Name() string       { return "projects" }
func (Projects) Singular() string   { return "project" }
func (Projects) Path() string       { return "/projects" }
func (Projects) Envelope() []string { return []string{"project", "data"} }

func (Projects) Sources(api client.Client) []crud.Source {
	return []crud.Source{{
		Kinds: []string{ProductServiceKind, IndustryKind},
		Fetch: func(ctx context.Context) (map[string][]models.Relation, error) {
			raw, err := api.Get(ctx, "/projects/dropdowns")
			if err != nil {
				return nil, err
			}
			var dd struct {
				ProductServices []models.Relation `json:"product_services"`
				Industries      []models.Relation `json:"industries"`
			}
			if err := json.Unmarshal(client.Unwrap(raw, "data"), &dd); err != nil {
				return nil, fmt.Errorf("decode dropdowns: %w", err)
			}
			return map[string][]models.Relation{
				ProductServiceKind: dd.ProductServices,
				IndustryKind:       dd.Industries,
			}, nil
		},
	}}
}

func (Projects) DecodeList(items json.RawMessage) ([]models.Project, error) {
	return decodeEach(items, projectWire.toModel)
}

func (Projects) Decode(raw json.RawMessage) (models.Project, error) {
	return decodeOne(raw, projectWire.toModel)
}

func single(label, plural string, id int64) crud.Selection {
	var s crud.Selection
	if id == 0 {
		s = crud.NewSelection(label, 1, 1, crud.Replace)
	} else {
		s = crud.NewSelection(label, 1, 1, crud.Replace, id)
	}
	s.Plural = plural
	return s
}

func (Projects) Empty() ProjectDraft {
	return ProjectDraft{
		ProductService: single("product/service", "products/services", 0),
		Industry:       single("industry", "industries", 0),
	}
}

func (Projects) Seed(p models.Project) ProjectDraft {
	return ProjectDraft{
		Title:          p.Title,
		Description:    p.Description,
		Location:       p.Location,
		Goal:           p.Goal,
		ProductService: single("product/service", "products/services", p.ProductServiceID),
		Industry:       single("industry", "industries", p.IndustryID),
		Image:          crud.Persisted(p.Image),
	}
}

func (Projects) Validate(d ProjectDraft) error {
	v := &crud.Validator{}
	return v.Required("title", d.Title).
		Required("description", d.Description).
		Required("location", d.Location).
		Required("goal", d.Goal).
		Selection("product_service_id", d.ProductService).
		Selection("industry_id", d.Industry).
		Err()
}

func firstID(s crud.Selection) int64 {
	ids := s.IDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[0]
}

// EncodeCreate sends JSON unless an image is attached.
func (Projects) EncodeCreate(d ProjectDraft) (*client.Body, error) {
	if !d.Image.IsPending() {
		return client.JSONBody(projectPayload{
			Title:            d.Title,
			Description:      d.Description,
			Location:         d.Location,
			Goal:             d.Goal,
			ProductServiceID: firstID(d.ProductService),
			IndustryID:       firstID(d.Industry),
		}), nil
	}
	form := projectForm(d).AddFile("image", d.Image.Path)
	return &client.Body{Form: form}, nil
}

func (Projects) EncodeUpdate(_ models.Project, d ProjectDraft) (string, *client.Body, error) {
	form := projectForm(d)
	if d.Image.IsPending() {
		form.AddFile("image", d.Image.Path)
	}
	return http.MethodPost, &client.Body{Form: form, MethodOverride: http.MethodPut}, nil
}

func projectForm(d ProjectDraft) *client.Form {
	return client.NewForm().
		Add("title", d.Title).
		Add("description", d.Description).
		Add("location", d.Location).
		Add("goal", d.Goal).
		Add("product_service_id", itoa(firstID(d.ProductService))).
		Add("industry_id", itoa(firstID(d.Industry)))
}

// Merge fills relation names and the image the update response left out.
func (Projects) Merge(orig, updated models.Project) models.Project {
	if updated.ProductService == "" && updated.ProductServiceID == orig.ProductServiceID {
		updated.ProductService = orig.ProductService
	}
	if updated.Industry == "" && updated.IndustryID == orig.IndustryID {
		updated.Industry = orig.Industry
	}
	if updated.Image == "" {
		updated.Image = orig.Image
	}
	return updated
}
