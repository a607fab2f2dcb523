package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"starlog/app/apperr"
	"starlog/app/blobstore"
)

// maxUploadBytes caps a single asset upload.
const maxUploadBytes = 10 << 20

// UploadController stores binary assets and hands back their public URLs.
type UploadController struct {
	blobs blobstore.Store
}

// NewUploadController creates a new UploadController.
func NewUploadController(blobs blobstore.Store) *UploadController {
	return &UploadController{blobs: blobs}
}

// Create accepts a multipart file upload and returns {"url": ...}.
func (uc *UploadController) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		sendError(w, apperr.Validation("file", "invalid multipart form: "+err.Error()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(w, apperr.Validation("file", "is required"))
		return
	}
	defer file.Close()

	key := uuid.NewString() + filepath.Ext(header.Filename)
	url, err := uc.blobs.Upload(r.Context(), key, file)
	if err != nil {
		sendError(w, apperr.Store("upload blob", err))
		return
	}
	sendJSON(w, http.StatusCreated, map[string]string{"url": url})
}
