package fakeapi

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"
)

type article struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	Image      *string    `json:"image"`
	ImageURL   *string    `json:"image_url"`
	Categories []relation `json:"categories"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

func (s *Server) listArticles(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.articles)
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.categories)
}

// articleInput reads and checks the multipart article form. The caller
// holds s.mu.
func (s *Server) articleInput(r *http.Request, v *validation) (article, *string) {
	a := article{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Author:  r.FormValue("author"),
	}
	v.required("title", a.Title)
	v.required("content", a.Content)
	v.required("author", a.Author)

	ids := formList(r, "categories")
	switch {
	case len(ids) == 0:
		v.add("categories", "The categories field is required.")
	case len(ids) > 2:
		v.add("categories", "The categories field must not have more than 2 items.")
	}
	for i, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		rel, ok := findRelation(s.categories, id)
		if err != nil || !ok {
			v.add(fmt.Sprintf("categories.%d", i), fmt.Sprintf("The selected categories.%d is invalid.", i))
			continue
		}
		a.Categories = append(a.Categories, rel)
	}

	var image *string
	if p, ok := storeUpload(r, "image", "articles", v); ok {
		image = &p
	}
	return a, image
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := newValidation()
	a, image := s.articleInput(r, v)
	if v.failed() {
		v.write(w)
		return
	}

	now := timestamp(time.Now())
	a.ID = s.id()
	a.CreatedAt, a.UpdatedAt = now, now
	if image != nil {
		u := publicURL(r, *image)
		a.Image, a.ImageURL = image, &u
	}
	s.articles = append(s.articles, a)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Article created.", "article": a})
}

func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, "Article")
		return
	}
	if err := parseForm(r); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.articles, func(a article) bool { return a.ID == id })
	if i < 0 {
		notFound(w, "Article")
		return
	}

	v := newValidation()
	a, image := s.articleInput(r, v)
	if v.failed() {
		v.write(w)
		return
	}

	prev := s.articles[i]
	a.ID, a.CreatedAt, a.UpdatedAt = id, prev.CreatedAt, timestamp(time.Now())
	a.Image, a.ImageURL = prev.Image, prev.ImageURL
	if image != nil {
		u := publicURL(r, *image)
		a.Image, a.ImageURL = image, &u
	}
	s.articles[i] = a
	writeJSON(w, http.StatusOK, map[string]any{"message": "Article updated.", "article": a})
}

func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.articles, func(a article) bool { return a.ID == id })
	if i < 0 {
		notFound(w, "Article")
		return
	}
	s.articles = slices.Delete(s.articles, i, i+1)
	writeMessage(w, http.StatusOK, "Article deleted.")
}
