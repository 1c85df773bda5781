package handler

import (
	"encoding/json"
	"net/http"
	"photo_contest/internal/api/middleware"
	"photo_contest/internal/app/service"
	"photo_contest/internal/common"
	"time"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	authService       *service.AuthService
	adminService      *service.AdminService
	contestService    *service.ContestService
	submissionService *service.SubmissionService
}

func NewAdminHandler(
	authService *service.AuthService,
	adminService *service.AdminService,
	contestService *service.ContestService,
	submissionService *service.SubmissionService,
) *AdminHandler {
	return &AdminHandler{
		authService:       authService,
		adminService:      adminService,
		contestService:    contestService,
		submissionService: submissionService,
	}
}

// RegisterAuthRoutes holds the public admin auth routes.
func (h *AdminHandler) RegisterAuthRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

// RegisterRoutes holds the admin-gated moderation and lifecycle routes.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Post("/contests", h.createContest)
	r.Post("/contests/update-statuses", h.updateStatuses)
	r.Post("/contests/{contestID}/finalize", h.finalizeContest)
	r.Post("/contests/{contestID}/cancel", h.cancelContest)
	r.Post("/submissions/{submissionID}/approve", h.approveSubmission)
	r.Post("/submissions/{submissionID}/reject", h.rejectSubmission)
}

func (h *AdminHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.AdminSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.AdminSignup(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.AdminLogin(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing admin context")
		return
	}
	resp, err := h.adminService.Dashboard(r.Context(), adminID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) createContest(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing admin context")
		return
	}

	var req service.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	contest, err := h.contestService.CreateContest(r.Context(), adminID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, contest)
}

// updateStatuses is the manual lifecycle trigger; the same recompute also
// runs best-effort on contest read paths.
func (h *AdminHandler) updateStatuses(w http.ResponseWriter, r *http.Request) {
	updated, err := h.contestService.RecomputeStatuses(r.Context(), time.Now())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (h *AdminHandler) finalizeContest(w http.ResponseWriter, r *http.Request) {
	result, err := h.contestService.FinalizeContest(r.Context(), chi.URLParam(r, "contestID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) cancelContest(w http.ResponseWriter, r *http.Request) {
	if err := h.contestService.CancelContest(r.Context(), chi.URLParam(r, "contestID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Contest cancelled"})
}

func (h *AdminHandler) approveSubmission(w http.ResponseWriter, r *http.Request) {
	if err := h.submissionService.ApproveSubmission(r.Context(), chi.URLParam(r, "submissionID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Submission approved"})
}

func (h *AdminHandler) rejectSubmission(w http.ResponseWriter, r *http.Request) {
	if err := h.submissionService.RejectSubmission(r.Context(), chi.URLParam(r, "submissionID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Submission rejected"})
}
