package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/reviews-service/internal/domain"
)

var (
	ErrDenied  = errors.New("forbidden")
	ErrInvalid = errors.New("invalid input")
)

type ReviewRepo interface {
	Create(ctx context.Context, rv *domain.Review) error
	ByID(ctx context.Context, id string) (*domain.Review, error)
	Save(ctx context.Context, rv *domain.Review) error
	ListByRoom(ctx context.Context, roomID string) ([]domain.Review, error)
}

type ReviewSvc struct{ repo ReviewRepo }

func NewReviewSvc(r ReviewRepo) *ReviewSvc { return &ReviewSvc{repo: r} }

func denied(d authz.Decision) error {
	return fmt.Errorf("%w: %s", ErrDenied, d.Reason)
}

func validRating(r int) error {
	if r < 1 || r > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}
	return nil
}

func (s *ReviewSvc) Create(ctx context.Context, caller authz.Context, userID, roomID string, rating int, comment string) (*domain.Review, error) {
	caller.DeclaredOwnerID = userID
	if d := authz.Reviews.Decide(authz.ReviewCreate, caller); !d.Allowed {
		return nil, denied(d)
	}
	if err := validRating(rating); err != nil {
		return nil, err
	}

	rv := &domain.Review{
		UserID:  userID,
		RoomID:  roomID,
		Rating:  rating,
		Comment: comment,
		Status:  domain.StatusActive,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// UpdateParams carries the optional fields of a review update.
type UpdateParams struct {
	Rating  *int
	Comment *string
}

func (s *ReviewSvc) Update(ctx context.Context, caller authz.Context, id string, p UpdateParams) (*domain.Review, error) {
	rv, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caller.ResourceOwnerID = rv.UserID
	if d := authz.Reviews.Decide(authz.ReviewUpdate, caller); !d.Allowed {
		return nil, denied(d)
	}

	if p.Rating != nil {
		if err := validRating(*p.Rating); err != nil {
			return nil, err
		}
		rv.Rating = *p.Rating
	}
	if p.Comment != nil {
		rv.Comment = *p.Comment
	}

	if err := s.repo.Save(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewSvc) Delete(ctx context.Context, caller authz.Context, id string) error {
	rv, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}

	caller.ResourceOwnerID = rv.UserID
	if d := authz.Reviews.Decide(authz.ReviewDelete, caller); !d.Allowed {
		return denied(d)
	}

	rv.Status = domain.StatusDeleted
	return s.repo.Save(ctx, rv)
}

func (s *ReviewSvc) ListByRoom(ctx context.Context, caller authz.Context, roomID string) ([]domain.Review, error) {
	if d := authz.Reviews.Decide(authz.ReviewListRoom, caller); !d.Allowed {
		return nil, denied(d)
	}
	return s.repo.ListByRoom(ctx, roomID)
}

// Flag marks a review for moderation; reserved to admins and moderators.
func (s *ReviewSvc) Flag(ctx context.Context, caller authz.Context, id string) (*domain.Review, error) {
	if d := authz.Reviews.Decide(authz.ReviewFlag, caller); !d.Allowed {
		return nil, denied(d)
	}

	rv, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rv.IsFlagged = true
	if err := s.repo.Save(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}
