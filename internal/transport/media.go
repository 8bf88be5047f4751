package transport

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadBytes caps image uploads at 5 MB.
const maxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// MediaStore saves uploaded project images under a root directory.
type MediaStore struct {
	root string
}

// NewMediaStore creates the upload directory if needed.
func NewMediaStore(root string) (*MediaStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating media root: %w", err)
	}
	return &MediaStore{root: root}, nil
}

// Save writes the upload under a unique sanitized filename and returns
// that filename.
func (m *MediaStore) Save(filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("disallowed file extension %q", ext)
	}

	safe := unsafeFilenameChars.ReplaceAllString(filepath.Base(filename), "")
	unique := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + safe

	dst, err := os.Create(filepath.Join(m.root, unique))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return unique, nil
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "no image part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.writeError(w, http.StatusBadRequest, "no image selected for uploading")
		return
	}

	name, err := s.media.Save(header.Filename, file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "allowed image types are png, jpg, jpeg, gif")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"id":  name,
		"url": "/media/uploads/" + name,
	})
}

func (s *Server) serveMedia(w http.ResponseWriter, r *http.Request) {
	// Base strips any traversal attempt smuggled into the URL parameter.
	name := filepath.Base(chi.URLParam(r, "name"))
	http.ServeFile(w, r, filepath.Join(s.media.root, name))
}
