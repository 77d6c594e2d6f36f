package fakeapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/beehive-drones/admin/internal/common"
	"github.com/beehive-drones/admin/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

const maxUpload = 16 << 20

type ctxKey string

const claimsKey ctxKey = "claims"

type relation struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type user struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	hash  []byte
}

// Server is an in-memory stand-in for the dashboard's REST API. All state
// lives in the struct and is lost when it is dropped.
type Server struct {
	cfg    Config
	secret []byte
	log    logging.Logger

	mu       sync.Mutex
	users    []user
	revoked  map[string]struct{}
	nextID   int64
	articles []article
	careers  []career
	projects []project
	products []product

	categories      []relation
	productServices []relation
	industries      []relation
}

// New builds a Server with the admin account from cfg and, when cfg.Seed is
// set, a handful of sample records.
func New(cfg Config, log logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.Nop()
	}

	secret := []byte(cfg.SecretKey)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
	}
	if cfg.PerPage < 1 {
		cfg.PerPage = 10
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		secret:  secret,
		log:     log,
		revoked: make(map[string]struct{}),
		nextID:  100,
		users:   []user{{ID: 1, Name: "Administrator", Email: cfg.AdminEmail, hash: hash}},
	}
	s.seedOptions()
	if cfg.Seed {
		s.seedRecords()
	}
	return s, nil
}

// Handler routes every endpoint under /api.
//
//	POST   /api/login, /api/logout
//	GET    /api/articles, /api/articles/categories
//	POST   /api/articles, PUT /api/articles/{id} (or POST + _method=PUT)
//	GET    /api/careers, POST /api/careers, PUT /api/careers/{id}
//	GET    /api/projects, /api/projects/dropdowns, POST, PUT /api/projects/{id}
//	GET    /api/products?page=n, POST /api/products, POST|PUT /api/products/{id}
//	DELETE /api/{resource}/{id}
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(methodOverride)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/logout", s.logout)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", s.listArticles)
				r.Get("/categories", s.listCategories)
				r.Post("/", s.createArticle)
				r.Put("/{id}", s.updateArticle)
				r.Delete("/{id}", s.deleteArticle)
			})
			r.Route("/careers", func(r chi.Router) {
				r.Get("/", s.listCareers)
				r.Post("/", s.createCareer)
				r.Put("/{id}", s.updateCareer)
				r.Delete("/{id}", s.deleteCareer)
			})
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", s.listProjects)
				r.Get("/dropdowns", s.projectDropdowns)
				r.Post("/", s.createProject)
				r.Put("/{id}", s.updateProject)
				r.Delete("/{id}", s.deleteProject)
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.listProducts)
				r.Post("/", s.createProduct)
				r.Post("/{id}", s.updateProduct)
				r.Put("/{id}", s.updateProduct)
				r.Delete("/{id}", s.deleteProduct)
			})
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", r.Header.Get(common.RequestIDHeader),
		)
	})
}

// methodOverride turns a multipart POST carrying _method into that method.
// It runs ahead of routing so the rewritten method picks the route.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && isMultipart(r) {
			if err := r.ParseMultipartForm(maxUpload); err == nil {
				switch m := strings.ToUpper(r.FormValue(common.MethodOverrideField)); m {
				case http.MethodPut, http.MethodPatch, http.MethodDelete:
					r.Method = m
					if rctx := chi.RouteContext(r.Context()); rctx != nil {
						rctx.RouteMethod = m
					}
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := common.BearerToken(r.Header.Get(common.AuthorizationHeader))
		if tok == "" {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		claims, err := ParseToken(tok, s.secret)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		s.mu.Lock()
		_, revoked := s.revoked[claims.ID]
		s.mu.Unlock()
		if revoked {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	v := newValidation()
	v.required("email", req.Email)
	v.required("password", req.Password)
	if v.failed() {
		v.write(w)
		return
	}

	s.mu.Lock()
	var found *user
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, req.Email) {
			found = &s.users[i]
			break
		}
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	tok, err := GenerateToken(found.ID, s.secret, s.cfg.TokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "token generation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": tok, "user": found})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(claimsKey).(*Claims)
	s.mu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.mu.Unlock()
	writeMessage(w, http.StatusOK, "Logged out.")
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func findRelation(rs []relation, id int64) (relation, bool) {
	for _, r := range rs {
		if r.ID == id {
			return r, true
		}
	}
	return relation{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func notFound(w http.ResponseWriter, what string) {
	writeMessage(w, http.StatusNotFound, what+" not found.")
}

// validation collects field errors into the 422 body
// {"message": "...", "errors": {"field": ["..."]}}.
type validation struct {
	errors map[string][]string
}

func newValidation() *validation {
	return &validation{errors: map[string][]string{}}
}

func (v *validation) add(field, msg string) {
	v.errors[field] = append(v.errors[field], msg)
}

func (v *validation) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("The %s field is required.", strings.ReplaceAll(field, "_", " ")))
	}
}

func (v *validation) failed() bool { return len(v.errors) > 0 }

func (v *validation) write(w http.ResponseWriter) {
	fields := make([]string, 0, len(v.errors))
	for f := range v.errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msg := v.errors[fields[0]][0]
	if n := len(v.errors) - 1; n > 0 {
		msg = fmt.Sprintf("%s (and %d more error%s)", msg, n, plural(n))
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": msg, "errors": v.errors})
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

var errBadBody = errors.New("malformed request body")

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}
