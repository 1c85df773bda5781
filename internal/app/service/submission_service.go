package service

import (
	"context"
	"database/sql"
	"log"
	"photo_contest/internal/common"
	"photo_contest/internal/domain/model"
	"photo_contest/internal/domain/repository"

	"github.com/google/uuid"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	photoRepo      repository.PhotoRepository
	contestRepo    repository.ContestRepository
	userRepo       repository.UserRepository
	db             *sql.DB // For transactions
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	photoRepo repository.PhotoRepository,
	contestRepo repository.ContestRepository,
	userRepo repository.UserRepository,
	db *sql.DB,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		photoRepo:      photoRepo,
		contestRepo:    contestRepo,
		userRepo:       userRepo,
		db:             db,
	}
}

// SubmitPhoto records a contest entry: photo insert, submission insert and
// entry fee debit happen in one transaction, or not at all. The contest row
// is locked first, which serializes concurrent entries so the
// one-entry-per-user and capacity checks hold under racing requests; the
// user row lock then guards the balance check. The caller owns the uploaded
// file and removes it if this returns an error.
func (s *SubmissionService) SubmitPhoto(ctx context.Context, userID, contestID, title, filePath string) (string, error) {
	if title == "" || filePath == "" {
		return "", common.Errorf("title and photo file are required: %w", common.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	contest, err := s.contestRepo.FindByIDForUpdate(ctx, tx, contestID)
	if err != nil {
		return "", err
	}

	entered, err := s.submissionRepo.UserHasEntered(ctx, tx, userID, contestID)
	if err != nil {
		return "", err
	}
	if entered {
		return "", common.Errorf("you have already entered this contest: %w", common.ErrConflict)
	}

	if contest.MaxParticipants > 0 {
		count, err := s.submissionRepo.CountByContest(ctx, tx, contestID)
		if err != nil {
			return "", err
		}
		if count >= contest.MaxParticipants {
			return "", common.ErrContestFull
		}
	}

	coins, err := s.userRepo.GetCoinsForUpdate(ctx, tx, userID)
	if err != nil {
		return "", err
	}
	if coins < contest.EntryFee {
		return "", common.ErrInsufficientFunds
	}

	photo := &model.Photo{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    title,
		FilePath: filePath,
	}
	if err := s.photoRepo.Create(ctx, tx, photo); err != nil {
		return "", err
	}

	submission := &model.Submission{
		ID:        uuid.NewString(),
		PhotoID:   photo.ID,
		ContestID: contestID,
		Status:    model.SubmissionPending,
	}
	if err := s.submissionRepo.Create(ctx, tx, submission); err != nil {
		return "", err
	}

	if contest.EntryFee > 0 {
		if err := s.userRepo.DebitCoins(ctx, tx, userID, contest.EntryFee); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", common.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Photo %s submitted to contest %s by user %s (fee %d).", photo.ID, contestID, userID, contest.EntryFee)
	return submission.ID, nil
}

func (s *SubmissionService) ApproveSubmission(ctx context.Context, submissionID string) error {
	return s.setStatus(ctx, submissionID, model.SubmissionApproved)
}

func (s *SubmissionService) RejectSubmission(ctx context.Context, submissionID string) error {
	return s.setStatus(ctx, submissionID, model.SubmissionRejected)
}

func (s *SubmissionService) setStatus(ctx context.Context, submissionID string, status model.SubmissionStatus) error {
	if _, err := s.submissionRepo.FindByID(ctx, submissionID); err != nil {
		return err
	}
	return s.submissionRepo.UpdateStatus(ctx, submissionID, status)
}

// UpdatePhotoTitle is owner-only.
func (s *SubmissionService) UpdatePhotoTitle(ctx context.Context, userID, photoID, title string) error {
	if title == "" {
		return common.Errorf("title is required: %w", common.ErrValidation)
	}
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return common.Errorf("only the owner may edit a photo: %w", common.ErrForbidden)
	}
	return s.photoRepo.UpdateTitle(ctx, photoID, title)
}

// DeletePhoto is owner-only. It returns the stored file path so the HTTP
// layer can remove the file artifact; the service does not own file storage.
func (s *SubmissionService) DeletePhoto(ctx context.Context, userID, photoID string) (string, error) {
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return "", err
	}
	if photo.UserID != userID {
		return "", common.Errorf("only the owner may delete a photo: %w", common.ErrForbidden)
	}
	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return "", err
	}
	return photo.FilePath, nil
}
