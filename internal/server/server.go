package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ticketer-app/ticketer/internal/config"
	"github.com/ticketer-app/ticketer/internal/extract"
	"github.com/ticketer-app/ticketer/internal/pdf"
)

// Server exposes the extraction engine over HTTP: invoices are uploaded,
// stored under a generated identifier, and answered with the extracted
// field mapping. Empty fields are substituted with the "." sentinel so the
// downstream ticket automation always receives a value to type.
type Server struct {
	cfg       *config.Config
	extractor *extract.Extractor
	validator *pdf.Validator
	search    *pdf.Search
	engine    *gin.Engine
}

// UploadResponse is the reply to a successful invoice upload.
type UploadResponse struct {
	ID       string            `json:"id"`
	Filename string            `json:"filename"`
	Fields   map[string]string `json:"fields"`
}

// New creates the upload API server.
func New(cfg *config.Config, extractor *extract.Extractor) *Server {
	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		extractor: extractor,
		validator: pdf.NewValidator(cfg.MaxFileSize),
		search:    pdf.NewSearch(cfg.MaxFileSize),
		engine:    gin.Default(),
	}

	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/upload", s.handleUpload)
	s.engine.GET("/files", s.handleFiles)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("upload API listening on %s", s.cfg.Address())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.cfg.Version})
}

// handleUpload stores the posted PDF under a fresh identifier and runs the
// extraction. Extraction itself never fails the request: a corrupt file
// simply yields sentinel fields, since a ticket must still be creatable
// with placeholders.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'file' form field"})
		return
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("not a PDF: %s", file.Filename)})
		return
	}

	if file.Size > s.cfg.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large: %d bytes (max: %d bytes)", file.Size, s.cfg.MaxFileSize),
		})
		return
	}

	id := uuid.NewString()
	dst := filepath.Join(s.cfg.UploadDirectory, id+".pdf")
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to store file: %v", err)})
		return
	}

	if !s.validator.IsValidPDF(dst) {
		log.Printf("stored invoice %s is not a readable PDF, fields will be sparse", id)
	}

	fields := s.extractor.Extract(dst)

	c.JSON(http.StatusOK, UploadResponse{
		ID:       id,
		Filename: file.Filename,
		Fields:   sentinelFields(fields),
	})
}

func (s *Server) handleFiles(c *gin.Context) {
	files, err := s.search.FindPDFsInDirectory(s.cfg.UploadDirectory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files, "total_count": len(files)})
}

// sentinelFields maps a FieldSet onto the wire keys the ticket automation
// expects, substituting "." for anything the extractors left empty.
func sentinelFields(f extract.FieldSet) map[string]string {
	return map[string]string{
		"name":     ensureDot(f.Name),
		"surname":  ensureDot(f.Surname),
		"phone":    ensureDot(f.Phone),
		"invoice":  ensureDot(f.Invoice),
		"cstcode":  ensureDot(f.CSTCode),
		"material": ensureDot(f.Material),
		"product":  ensureDot(f.Product),
		"serial":   ensureDot(f.Serial),
	}
}

// ensureDot returns "." for empty values so no form field is left blank.
func ensureDot(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "."
	}
	return v
}
