package handler

import (
	"net/http"
	"photo_contest/internal/api/middleware"
	"photo_contest/internal/app/service"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type VoteHandler struct {
	voteService *service.VoteService
	contestRepo repository.ContestRepository
}

func NewVoteHandler(vs *service.VoteService, contestRepo repository.ContestRepository) *VoteHandler {
	return &VoteHandler{voteService: vs, contestRepo: contestRepo}
}

func (h *VoteHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{contestSlug}/photos/{photoID}/vote", h.castVote)
}

func (h *VoteHandler) castVote(w http.ResponseWriter, r *http.Request) {
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

	vote, err := h.voteService.CastVote(r.Context(), userID, chi.URLParam(r, "photoID"), contest.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, vote)
}
