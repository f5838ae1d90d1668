// Package apitest provides an in-memory stand-in for the back-office API,
// used by adapter and workflow tests. It speaks the same wire shapes as the
// real collaborator: paginated list envelopes, message-string mutation
// responses, JSON or multipart submissions.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Record is one stored fake record. Fields are free-form; "id", "name" and
// "status" get special treatment (identity, search, toggle).
type Record map[string]any

// Server is a fake back-office API hosting one record collection.
type Server struct {
	mu      sync.Mutex
	records []Record

	// Requests counts list fetches, for assertions on debounce behaviour.
	Requests int
	// LastListQuery holds the raw query values of the latest list fetch.
	LastListQuery map[string]string
	// LastContentType holds the Content-Type of the latest submission.
	LastContentType string
	// FailList makes list fetches return 500 with this message.
	FailList string

	httpSrv *httptest.Server
}

// NewServer starts a fake collaborator serving the given collection path
// (e.g. "/banks") with the given seed records. Callers must Close it.
func NewServer(path string, seed []Record) *Server {
	s := &Server{records: append([]Record{}, seed...)}

	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET(path, s.list)
	r.POST(path, s.create)
	r.PUT(path+"/:id", s.update)
	r.DELETE(path+"/:id", s.remove)
	r.POST(path+"/:id/:action", s.act)

	s.httpSrv = httptest.NewServer(r)
	return s
}

// URL is the server's base URL.
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.httpSrv.Close()
}

// Records returns a snapshot of the stored records.
func (s *Server) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Server) list(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests++
	s.LastListQuery = map[string]string{}
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			s.LastListQuery[name] = values[0]
		}
	}

	if s.FailList != "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": s.FailList})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	search := strings.ToLower(c.Query("search"))
	status := c.Query("status")

	matched := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		if search != "" {
			name, _ := rec["name"].(string)
			if !strings.Contains(strings.ToLower(name), search) {
				continue
			}
		}
		if status != "" {
			if recStatus, _ := rec["status"].(string); recStatus != status {
				continue
			}
		}
		matched = append(matched, rec)
	}

	total := len(matched)
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"data":         matched[start:end],
		"current_page": page,
		"last_page":    lastPage,
		"per_page":     perPage,
		"total":        total,
	})
}

func (s *Server) create(c *gin.Context) {
	rec, err := s.bindRecord(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec["id"] = uuid.NewString()

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"message": "record created successfully"})
}

func (s *Server) update(c *gin.Context) {
	rec, err := s.bindRecord(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing["id"] == id {
			rec["id"] = id
			s.records[i] = rec
			c.JSON(http.StatusOK, gin.H{"message": "record updated successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

func (s *Server) remove(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing["id"] == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "record deleted successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

func (s *Server) act(c *gin.Context) {
	id := c.Param("id")
	action := c.Param("action")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if existing["id"] == id {
			if action == "toggle-status" {
				if existing["status"] == "ACTIVE" {
					existing["status"] = "INACTIVE"
				} else {
					existing["status"] = "ACTIVE"
				}
			}
			c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s completed successfully", action)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
}

// bindRecord accepts either a JSON body or a multipart form, mirroring the
// collaborator's dual-path contract.
func (s *Server) bindRecord(c *gin.Context) (Record, error) {
	contentType := c.ContentType()
	s.mu.Lock()
	s.LastContentType = c.GetHeader("Content-Type")
	s.mu.Unlock()

	rec := Record{}
	if contentType == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		for name, values := range form.Value {
			if len(values) > 0 {
				rec[name] = values[0]
			}
		}
		files := make([]string, 0, len(form.File))
		for name := range form.File {
			files = append(files, name)
		}
		rec["__files"] = files
		return rec, nil
	}

	if err := json.NewDecoder(c.Request.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("invalid request format: %w", err)
	}
	return rec, nil
}
