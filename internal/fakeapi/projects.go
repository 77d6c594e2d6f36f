package fakeapi

import (
	"net/http"
	"slices"
	"strconv"
)

type project struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	Goal             string    `json:"goal"`
	ProductServiceID int64     `json:"product_service_id"`
	IndustryID       int64     `json:"industry_id"`
	ProductService   *relation `json:"product_service"`
	Industry         *relation `json:"industry"`
	Image            *string   `json:"image"`
}

type projectInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Goal             string `json:"goal"`
	ProductServiceID int64  `json:"product_service_id"`
	IndustryID       int64  `json:"industry_id"`
}

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.projects)
}

func (s *Server) projectDropdowns(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"product_services": s.productServices,
		"industries":       s.industries,
	})
}

// readProject accepts either a JSON body or a multipart form. image is set
// only for a multipart upload.
func readProject(r *http.Request, v *validation) (in projectInput, image *string, err error) {
	if !isMultipart(r) {
		err = decodeBody(r, &in)
		return in, nil, err
	}
	if err = parseForm(r); err != nil {
		return in, nil, err
	}
	in = projectInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Goal:        r.FormValue("goal"),
	}
	in.ProductServiceID, _ = strconv.ParseInt(r.FormValue("product_service_id"), 10, 64)
	in.IndustryID, _ = strconv.ParseInt(r.FormValue("industry_id"), 10, 64)
	if p, ok := storeUpload(r, "image", "projects", v); ok {
		image = &p
	}
	return in, image, nil
}

// buildProject checks in and resolves its relations. The caller holds s.mu.
func (s *Server) buildProject(in projectInput, v *validation) project {
	v.required("title", in.Title)
	v.required("description", in.Description)
	v.required("location", in.Location)
	v.required("goal", in.Goal)

	p := project{
		Title:            in.Title,
		Description:      in.Description,
		Location:         in.Location,
		Goal:             in.Goal,
		ProductServiceID: in.ProductServiceID,
		IndustryID:       in.IndustryID,
	}
	if rel, ok := findRelation(s.productServices, in.ProductServiceID); ok {
		p.ProductService = &rel
	} else {
		v.add("product_service_id", "The selected product service id is invalid.")
	}
	if rel, ok := findRelation(s.industries, in.IndustryID); ok {
		p.Industry = &rel
	} else {
		v.add("industry_id", "The selected industry id is invalid.")
	}
	return p
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	v := newValidation()
	in, image, err := readProject(r, v)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.buildProject(in, v)
	if v.failed() {
		v.write(w)
		return
	}
	p.ID = s.id()
	p.Image = image
	s.projects = append(s.projects, p)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Project created.", "project": p})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, "Project")
		return
	}
	v := newValidation()
	in, image, err := readProject(r, v)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.projects, func(p project) bool { return p.ID == id })
	if i < 0 {
		notFound(w, "Project")
		return
	}
	p := s.buildProject(in, v)
	if v.failed() {
		v.write(w)
		return
	}
	p.ID = id
	p.Image = s.projects[i].Image
	if image != nil {
		p.Image = image
	}
	s.projects[i] = p
	writeJSON(w, http.StatusOK, map[string]any{"message": "Project updated.", "project": p})
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.projects, func(p project) bool { return p.ID == id })
	if i < 0 {
		notFound(w, "Project")
		return
	}
	s.projects = slices.Delete(s.projects, i, i+1)
	writeMessage(w, http.StatusOK, "Project deleted.")
}
