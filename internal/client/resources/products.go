package resources

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/models"
)

// MaxProductImages bounds the image gallery of a product.
const MaxProductImages = 4

// ProductDraft is the editable form of a product. IncludeText holds the
// "what's in the box" list one item per line until submit.
type ProductDraft struct {
	Title           string
	Subtitle        string
	Description     string
	Type            string
	Wingspan        string
	FlightEndurance string
	FlightRange     string
	FlightHeight    string
	OtherDetails    string
	BasePrice       float64
	IncludeText     string
	PackageOptions  []models.PackageOption
	Financing       []string
	Images          crud.Attachments
}

type productWire struct {
	ID              int64                  `json:"id"`
	Title           string                 `json:"title"`
	Subtitle        *string                `json:"subtitle"`
	Images          []string               `json:"images"`
	Description     *string                `json:"description"`
	Type            *string                `json:"type"`
	Wingspan        *string                `json:"wingspan"`
	FlightEndurance *string                `json:"flight_endurance"`
	FlightRange     *string                `json:"flight_range"`
	FlightHeight    *string                `json:"flight_height"`
	OtherDetails    *string                `json:"other_details"`
	IncludeItems    []string               `json:"include_items"`
	PackageOptions  []models.PackageOption `json:"package_options"`
	Financing       []string               `json:"financing"`
	BasePrice       *float64               `json:"base_price"`
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (w productWire) toModel() models.Product {
	p := models.Product{
		ID:              w.ID,
		Title:           w.Title,
		Subtitle:        deref(w.Subtitle),
		Images:          orEmpty(w.Images),
		Description:     deref(w.Description),
		Type:            deref(w.Type),
		Wingspan:        deref(w.Wingspan),
		FlightEndurance: deref(w.FlightEndurance),
		FlightRange:     deref(w.FlightRange),
		FlightHeight:    deref(w.FlightHeight),
		OtherDetails:    deref(w.OtherDetails),
		Include:         orEmpty(w.IncludeItems),
		PackageOptions:  orEmpty(w.PackageOptions),
		Financing:       orEmpty(w.Financing),
	}
	if w.BasePrice != nil {
		p.BasePrice = *w.BasePrice
	}
	return p
}

type productPayload struct {
	Title           string                 `json:"title"`
	Subtitle        string                 `json:"subtitle"`
	Description     string                 `json:"description"`
	Type            string                 `json:"type"`
	Wingspan        string                 `json:"wingspan"`
	FlightEndurance string                 `json:"flightEndurance"`
	FlightRange     string                 `json:"flightRange"`
	FlightHeight    string                 `json:"flightHeight"`
	OtherDetails    string                 `json:"otherDetails"`
	BasePrice       float64                `json:"basePrice"`
	Images          []string               `json:"images,omitempty"`
	Include         []string               `json:"include"`
	PackageOptions  []models.PackageOption `json:"packageOptions"`
	Financing       []string               `json:"financing"`
}

// SplitLines turns free text into a list: one item per line, trimmed,
// blank lines dropped.
func SplitLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

var _ crud.Resource[models.Product, ProductDraft] = Products{}

// Products is the paginated /products collection.
type Products struct{}

func (Products) Name() string                        { return "products" }
func (Products) Singular() string                    { return "product" }
func (Products) Path() string                        { return "/products" }
func (Products) Envelope() []string                  { return []string{"data"} }
func (Products) Sources(client.Client) []crud.Source { return nil }

func (Products) DecodeList(items json.RawMessage) ([]models.Product, error) {
	return decodeEach(items, productWire.toModel)
}

func (Products) Decode(raw json.RawMessage) (models.Product, error) {
	return decodeOne(raw, productWire.toModel)
}

func (Products) Empty() ProductDraft {
	return ProductDraft{
		Financing: slices.Clone(models.DefaultFinancing),
		Images:    crud.NewAttachments(MaxProductImages),
	}
}

func (Products) Seed(p models.Product) ProductDraft {
	return ProductDraft{
		Title:           p.Title,
		Subtitle:        p.Subtitle,
		Description:     p.Description,
		Type:            p.Type,
		Wingspan:        p.Wingspan,
		FlightEndurance: p.FlightEndurance,
		FlightRange:     p.FlightRange,
		FlightHeight:    p.FlightHeight,
		OtherDetails:    p.OtherDetails,
		BasePrice:       p.BasePrice,
		IncludeText:     strings.Join(p.Include, "\n"),
		PackageOptions:  slices.Clone(p.PackageOptions),
		Financing:       slices.Clone(p.Financing),
		Images:          crud.NewAttachments(MaxProductImages, p.Images...),
	}
}

func (Products) Validate(d ProductDraft) error {
	v := &crud.Validator{}
	v.Required("title", d.Title).NonNegative("base_price", d.BasePrice)
	for i, opt := range d.PackageOptions {
		field := fmt.Sprintf("package_options.%d", i)
		v.Custom(field+".name", strings.TrimSpace(opt.Name) == "", field+".name is required")
		v.NonNegative(field+".price", opt.Price)
	}
	return v.Err()
}

func (p Products) EncodeCreate(d ProductDraft) (*client.Body, error) {
	payload, err := p.payload(d)
	if err != nil {
		return nil, err
	}
	return client.JSONBody(payload), nil
}

// EncodeUpdate resends every scalar field. Only newly picked images travel,
// as data URLs; with none the images key is omitted and the stored gallery
// is kept.
func (p Products) EncodeUpdate(_ models.Product, d ProductDraft) (string, *client.Body, error) {
	payload, err := p.payload(d)
	if err != nil {
		return "", nil, err
	}
	return http.MethodPost, client.JSONBody(payload), nil
}

func (Products) payload(d ProductDraft) (productPayload, error) {
	var images []string
	for _, a := range d.Images.Pending() {
		u, err := DataURL(a.Path)
		if err != nil {
			return productPayload{}, err
		}
		images = append(images, u)
	}
	return productPayload{
		Title:           d.Title,
		Subtitle:        d.Subtitle,
		Description:     d.Description,
		Type:            d.Type,
		Wingspan:        d.Wingspan,
		FlightEndurance: d.FlightEndurance,
		FlightRange:     d.FlightRange,
		FlightHeight:    d.FlightHeight,
		OtherDetails:    d.OtherDetails,
		BasePrice:       d.BasePrice,
		Images:          images,
		Include:         SplitLines(d.IncludeText),
		PackageOptions:  orEmpty(d.PackageOptions),
		Financing:       orEmpty(d.Financing),
	}, nil
}

// Merge keeps the gallery when the response has none.
func (Products) Merge(orig, updated models.Product) models.Product {
	if len(updated.Images) == 0 {
		updated.Images = slices.Clone(orig.Images)
	}
	return updated
}
