package handler

import (
	"net/http"
	"photo_contest/internal/app/service"
	"photo_contest/internal/common"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService *service.ContestService
	voteService    *service.VoteService
}

func NewContestHandler(cs *service.ContestService, vs *service.VoteService) *ContestHandler {
	return &ContestHandler{contestService: cs, voteService: vs}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listContests)                              // GET /api/v1/contests
	r.Get("/active", h.listActiveContests)                  // GET /api/v1/contests/active
	r.Get("/{contestSlug}", h.getContest)                   // GET /api/v1/contests/summer-skies
	r.Get("/{contestSlug}/leaderboard", h.getLeaderboard)   // GET /api/v1/contests/summer-skies/leaderboard
}

func (h *ContestHandler) listContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contestService.ListContests(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) listActiveContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.contestService.ListActiveContests(r.Context(), 0)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	contestSlug := chi.URLParam(r, "contestSlug")
	detail, err := h.contestService.GetContestDetail(r.Context(), contestSlug)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *ContestHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	contestSlug := chi.URLParam(r, "contestSlug")
	detail, err := h.contestService.GetContestDetail(r.Context(), contestSlug)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail.Leaderboard)
}
