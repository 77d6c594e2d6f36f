package fakeapi

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"
)

var workTypes = []string{"WFO", "WFH", "Hybrid"}

type career struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Qualifications   string  `json:"qualifications"`
	Benefits         *string `json:"benefits"`
	Responsibilities *string `json:"responsibilities"`
	Location         string  `json:"location"`
	WorkType         string  `json:"work_type"`
	Deadline         string  `json:"deadline"`
}

func (s *Server) listCareers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.careers)
}

// applyCareer copies every key present in fields onto c. Absent keys keep
// their value; null clears an optional field.
func applyCareer(c *career, fields map[string]json.RawMessage, v *validation) {
	str := func(key string, dst *string) {
		raw, ok := fields[key]
		if !ok {
			return
		}
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			v.add(key, "The "+key+" field must be a string.")
			return
		}
		if s == nil {
			*dst = ""
			return
		}
		*dst = *s
	}
	optional := func(key string, dst **string) {
		raw, ok := fields[key]
		if !ok {
			return
		}
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			v.add(key, "The "+key+" field must be a string.")
			return
		}
		if s != nil && *s == "" {
			s = nil
		}
		*dst = s
	}

	str("title", &c.Title)
	str("qualifications", &c.Qualifications)
	optional("benefits", &c.Benefits)
	optional("responsibilities", &c.Responsibilities)
	str("location", &c.Location)
	str("work_type", &c.WorkType)
	str("deadline", &c.Deadline)
}

func checkCareer(c *career, v *validation) {
	v.required("title", c.Title)
	v.required("qualifications", c.Qualifications)
	v.required("location", c.Location)
	v.required("work_type", c.WorkType)
	v.required("deadline", c.Deadline)

	if c.WorkType != "" && !slices.Contains(workTypes, c.WorkType) {
		v.add("work_type", "The selected work type is invalid.")
	}
	if c.Deadline != "" {
		d, err := time.Parse(time.DateOnly, c.Deadline)
		if err != nil {
			v.add("deadline", "The deadline field must be a valid date.")
			return
		}
		c.Deadline = d.Format(time.DateTime)
	}
}

func (s *Server) createCareer(w http.ResponseWriter, r *http.Request) {
	var fields map[string]json.RawMessage
	if err := decodeBody(r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	v := newValidation()
	var c career
	applyCareer(&c, fields, v)
	checkCareer(&c, v)
	if v.failed() {
		v.write(w)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.careers = append(s.careers, c)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Career created.", "career": c})
}

func (s *Server) updateCareer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFound(w, "Career")
		return
	}
	var fields map[string]json.RawMessage
	if err := decodeBody(r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.careers, func(c career) bool { return c.ID == id })
	if i < 0 {
		notFound(w, "Career")
		return
	}

	c := s.careers[i]
	c.Deadline = c.Deadline[:min(len(c.Deadline), len(time.DateOnly))]
	v := newValidation()
	applyCareer(&c, fields, v)
	checkCareer(&c, v)
	if v.failed() {
		v.write(w)
		return
	}
	s.careers[i] = c
	writeJSON(w, http.StatusOK, map[string]any{"message": "Career updated.", "career": c})
}

func (s *Server) deleteCareer(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.careers, func(c career) bool { return c.ID == id })
	if i < 0 {
		notFound(w, "Career")
		return
	}
	s.careers = slices.Delete(s.careers, i, i+1)
	writeMessage(w, http.StatusOK, "Career deleted.")
}
