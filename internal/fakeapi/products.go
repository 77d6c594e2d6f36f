package fakeapi

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const maxProductImages = 4

type packageOption struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type product struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Subtitle        *string         `json:"subtitle"`
	Images          []string        `json:"images"`
	Description     *string         `json:"description"`
	Type            *string         `json:"type"`
	Wingspan        *string         `json:"wingspan"`
	FlightEndurance *string         `json:"flight_endurance"`
	FlightRange     *string         `json:"flight_range"`
	FlightHeight    *string         `json:"flight_height"`
	OtherDetails    *string         `json:"other_details"`
	IncludeItems    []string        `json:"include_items"`
	PackageOptions  []packageOption `json:"package_options"`
	Financing       []string        `json:"financing"`
	BasePrice       float64         `json:"base_price"`
}

// productInput is the camelCase body the dashboard posts.
type productInput struct {
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle"`
	Description     string          `json:"description"`
	Type            string          `json:"type"`
	Wingspan        string          `json:"wingspan"`
	FlightEndurance string          `json:"flightEndurance"`
	FlightRange     string          `json:"flightRange"`
	FlightHeight    string          `json:"flightHeight"`
	OtherDetails    string          `json:"otherDetails"`
	BasePrice       float64         `json:"basePrice"`
	Images          []string        `json:"images"`
	Include         []string        `json:"include"`
	PackageOptions  []packageOption `json:"packageOptions"`
	Financing       []string        `json:"financing"`
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v := newValidation()
			v.add("page", "The page field must be a positive integer.")
			v.write(w)
			return
		}
		page = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	per := s.cfg.PerPage
	total := len(s.products)
	last := max(1, (total+per-1)/per)
	from := min(total, (page-1)*per)
	to := min(total, from+per)

	writeJSON(w, http.StatusOK, map[string]any{
		"data":         nonNil(s.products[from:to]),
		"current_page": page,
		"last_page":    last,
		"per_page":     per,
		"total":        total,
	})
}

// applyProduct checks in and copies it onto p. New images are appended to
// the stored gallery.
func applyProduct(p *product, in productInput, v *validation) {
	v.required("title", in.Title)
	if in.BasePrice < 0 {
		v.add("basePrice", "The base price must be at least 0.")
	}
	for i, opt := range in.PackageOptions {
		if strings.TrimSpace(opt.Name) == "" {
			v.add(fmt.Sprintf("packageOptions.%d.name", i), "The package option name is required.")
		}
		if opt.Price < 0 {
			v.add(fmt.Sprintf("packageOptions.%d.price", i), "The package option price must be at least 0.")
		}
	}
	if n := len(p.Images) + len(in.Images); n > maxProductImages {
		v.add("images", fmt.Sprintf("The images field must not have more than %d items.", maxProductImages))
	}

	var added []string
	for i, u := range in.Images {
		path, err := storeDataURL(u, "products")
		if err != nil {
			v.add(fmt.Sprintf("images.%d", i), fmt.Sprintf("The images.%d field must be an image: %v.", i, err))
			continue
		}
		added = append(added, path)
	}
	if v.failed() {
		return
	}

	p.Title = in.Title
	p.Subtitle = nullable(in.Subtitle)
	p.Description = nullable(in.Description)
	p.Type = nullable(in.Type)
	p.Wingspan = nullable(in.Wingspan)
	p.FlightEndurance = nullable(in.FlightEndurance)
	p.FlightRange = nullable(in.FlightRange)
	p.FlightHeight = nullable(in.FlightHeight)
	p.OtherDetails = nullable(in.OtherDetails)
	p.BasePrice = in.BasePrice
	p.Images = append(nonNil(p.Images), added...)
	p.IncludeItems = nonNil(in.Include)
	p.PackageOptions = nonNil(in.PackageOptions)
	p.Financing = nonNil(in.Financing)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := decodeBody(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var p product
	v := newValidation()
	applyProduct(&p, in, v)
	if v.failed() {
		v.write(w)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	s.products = append(s.products, p)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Product created.", "data": p})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, "Product")
		return
	}
	var in productInput
	if err := decodeBody(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.products, func(p product) bool { return p.ID == id })
	if i < 0 {
		notFound(w, "Product")
		return
	}
	p := s.products[i]
	p.Images = slices.Clone(p.Images)
	v := newValidation()
	applyProduct(&p, in, v)
	if v.failed() {
		v.write(w)
		return
	}
	s.products[i] = p
	writeJSON(w, http.StatusOK, map[string]any{"message": "Product updated.", "data": p})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.products, func(p product) bool { return p.ID == id })
	if i < 0 {
		notFound(w, "Product")
		return
	}
	s.products = slices.Delete(s.products, i, i+1)
	writeMessage(w, http.StatusOK, "Product deleted.")
}
