// Package wptest runs an in-memory wp/v2 REST API for tests.
package wptest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"wordpress-posts/internal/common/wordpress"
	"wordpress-posts/internal/models"
)

const (
	Username = "editor"
	Password = "abcd efgh ijkl mnop"
)

// Recorded is one request seen by the server.
type Recorded struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	posts       map[int64]*models.Post
	media       map[int64]*models.Media
	nextPostID  int64
	nextMediaID int64
	requests    []Recorded

	// RejectUploads maps a filename to the message returned with a 400.
	RejectUploads map[string]string
	// FailMediaLookup makes GET media/{id} return 404 for these ids.
	FailMediaLookup map[int64]bool
	// FailPostWrites, when set, is returned as the message of a 500 on post writes.
	FailPostWrites string
}

func NewServer() *Server {
	s := &Server{
		posts:           map[int64]*models.Post{},
		media:           map[int64]*models.Media{},
		nextPostID:      100,
		nextMediaID:     500,
		RejectUploads:   map[string]string{},
		FailMediaLookup: map[int64]bool{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *Server) Credentials() wordpress.Credentials {
	return wordpress.Credentials{SiteURL: s.URL, Username: Username, Password: Password}
}

// AddPost stores p and returns its id.
func (s *Server) AddPost(p models.Post) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextPostID++
		p.ID = s.nextPostID
	}
	s.posts[p.ID] = &p
	return p.ID
}

func (s *Server) Post(id int64) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, false
	}
	return *p, true
}

func (s *Server) Media(id int64) (models.Media, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.media[id]
	if !ok {
		return models.Media{}, false
	}
	return *m, true
}

func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request to path with method.
func (s *Server) LastRequest(method, path string) (Recorded, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Recorded{}, false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"code":    code,
		"message": message,
		"data":    map[string]int{"status": status},
	})
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		body, _ = io.ReadAll(r.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body})
	s.mu.Unlock()

	user, pass, ok := r.BasicAuth()
	if !ok || user != Username || pass != Password {
		writeError(w, http.StatusUnauthorized, "rest_not_logged_in", "You are not currently logged in.")
		return
	}

	route := strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/")
	parts := strings.Split(route, "/")

	switch {
	case parts[0] == "posts" && len(parts) == 1 && r.Method == http.MethodGet:
		s.listPosts(w, r)
	case parts[0] == "posts" && len(parts) == 1 && r.Method == http.MethodPost:
		s.writePost(w, 0, body)
	case parts[0] == "posts" && len(parts) == 2:
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "rest_no_route", "No route was found matching the URL and request method.")
			return
		}
		if r.Method == http.MethodPost {
			s.writePost(w, id, body)
			return
		}
		s.getPost(w, id)
	case parts[0] == "media" && len(parts) == 1 && r.Method == http.MethodPost:
		s.uploadMedia(w, r)
	case parts[0] == "media" && len(parts) == 2 && r.Method == http.MethodGet:
		id, _ := strconv.ParseInt(parts[1], 10, 64)
		s.getMedia(w, id)
	default:
		writeError(w, http.StatusNotFound, "rest_no_route", "No route was found matching the URL and request method.")
	}
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	statuses := map[string]bool{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, st := range strings.Split(raw, ",") {
			statuses[st] = true
		}
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	s.mu.Lock()
	var out []models.Post
	for _, p := range s.posts {
		if len(statuses) > 0 && !statuses[p.Status] {
			continue
		}
		out = append(out, *p)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if perPage > 0 && len(out) > perPage {
		out = out[:perPage]
	}
	if out == nil {
		out = []models.Post{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getPost(w http.ResponseWriter, id int64) {
	p, ok := s.Post(id)
	if !ok {
		writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) writePost(w http.ResponseWriter, id int64, body []byte) {
	if s.FailPostWrites != "" {
		writeError(w, http.StatusInternalServerError, "rest_cannot_create", s.FailPostWrites)
		return
	}

	var in models.PostWrite
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "rest_invalid_json", "Invalid JSON body passed.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var p *models.Post
	status := http.StatusOK
	if id == 0 {
		s.nextPostID++
		p = &models.Post{ID: s.nextPostID, Status: models.StatusDraft, Date: "2024-05-01T10:00:00", Author: 1}
		s.posts[p.ID] = p
		status = http.StatusCreated
	} else {
		existing, ok := s.posts[id]
		if !ok {
			writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
			return
		}
		p = existing
	}

	if in.Title != nil {
		p.Title.Rendered = *in.Title
	}
	if in.Content != nil {
		p.Content.Rendered = *in.Content
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Excerpt != nil {
		p.Excerpt.Rendered = *in.Excerpt
	}
	if in.Categories != nil {
		p.Categories = *in.Categories
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.FeaturedMedia != nil {
		p.FeaturedMedia = *in.FeaturedMedia
	}

	writeJSON(w, status, p)
}

func (s *Server) uploadMedia(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "rest_upload_no_data", "No data supplied.")
		return
	}
	defer file.Close()
	data, _ := io.ReadAll(file)

	if msg, rejected := s.RejectUploads[header.Filename]; rejected {
		writeError(w, http.StatusBadRequest, "rest_upload_sideload_error", msg)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMediaID++
	m := &models.Media{
		ID:           s.nextMediaID,
		Status:       "inherit",
		MediaType:    "image",
		MimeType:     header.Header.Get("Content-Type"),
		SourceURL:    s.URL + "/wp-content/uploads/" + header.Filename,
		Title:        models.Rendered{Rendered: header.Filename},
		MediaDetails: json.RawMessage(`{"filesize":` + strconv.Itoa(len(data)) + `}`),
	}
	s.media[m.ID] = m
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) getMedia(w http.ResponseWriter, id int64) {
	s.mu.Lock()
	m, ok := s.media[id]
	fail := s.FailMediaLookup[id]
	s.mu.Unlock()

	if !ok || fail {
		writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
		return
	}
	writeJSON(w, http.StatusOK, m)
}
