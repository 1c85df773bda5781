package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"photo_contest/internal/api/middleware"
	"photo_contest/internal/app/service"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/repository"
	"photo_contest/internal/platform/config"
	"photo_contest/internal/platform/storage"
	"time"

	"github.com/go-chi/chi/v5"
)

type PhotoHandler struct {
	submissionService *service.SubmissionService
	contestRepo       repository.ContestRepository
	fileStore         *storage.FileStore
}

func NewPhotoHandler(ss *service.SubmissionService, contestRepo repository.ContestRepository, fs *storage.FileStore) *PhotoHandler {
	return &PhotoHandler{submissionService: ss, contestRepo: contestRepo, fileStore: fs}
}

// RegisterContestRoutes mounts the submission route under a contest.
func (h *PhotoHandler) RegisterContestRoutes(r chi.Router) {
	r.Post("/{contestSlug}/photos", h.submitPhoto)
}

// RegisterRoutes mounts owner-only photo management.
func (h *PhotoHandler) RegisterRoutes(r chi.Router) {
	r.Patch("/{photoID}", h.updatePhoto)
	r.Delete("/{photoID}", h.deletePhoto)
}

// submitPhoto accepts a multipart form with "title" and "photo". The file is
// saved before the ledger runs; if the ledger rejects the submission the
// stored file is removed again, since the ledger does not own file storage.
func (h *PhotoHandler) submitPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	contest, err := h.contestRepo.FindBySlug(r.Context(), chi.URLParam(r, "contestSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.AppConfig.MaxUploadBytes)
	if err := r.ParseMultipartForm(config.AppConfig.MaxUploadBytes); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	title := r.FormValue("title")
	file, header, err := r.FormFile("photo")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Photo file is required")
		return
	}
	defer file.Close()

	if !storage.AllowedExtension(header.Filename, config.AppConfig.AllowedExtensions) {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid file type. Allowed: png, jpg, jpeg, gif")
		return
	}

	filename := fmt.Sprintf("%s_%d_%s", userID, time.Now().Unix(), storage.SafeFilename(header.Filename))
	relPath, err := h.fileStore.Save(filename, file)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to store photo: "+err.Error())
		return
	}

	submissionID, err := h.submissionService.SubmitPhoto(r.Context(), userID, contest.ID, title, relPath)
	if err != nil {
		if rmErr := h.fileStore.Remove(relPath); rmErr != nil {
			log.Printf("WARN: failed to remove file after rejected submission: %v", rmErr)
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	common.RespondWithJSON(w, http.StatusCreated, map[string]string{"submission_id": submissionID})
}

func (h *PhotoHandler) updatePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	photoID := chi.URLParam(r, "photoID")
	if err := h.submissionService.UpdatePhotoTitle(r.Context(), userID, photoID, req.Title); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Photo updated"})
}

func (h *PhotoHandler) deletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	photoID := chi.URLParam(r, "photoID")
	filePath, err := h.submissionService.DeletePhoto(r.Context(), userID, photoID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if rmErr := h.fileStore.Remove(filePath); rmErr != nil {
		log.Printf("WARN: failed to remove file for deleted photo %s: %v", photoID, rmErr)
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Photo deleted"})
}
