package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

// PollResults is the tally view of a poll. Voters is only populated for
// admin callers.
type PollResults struct {
	Poll       *model.Poll     `json:"poll"`
	TotalVotes int64           `json:"total_votes"`
	Voters     []model.UserRef `json:"voters,omitempty"`
}

// PollService handles polls and voting. Poll CRUD is admin-only at the route
// level; voting is open to any authenticated member.
type PollService interface {
	List(ctx context.Context) ([]model.Poll, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Poll, error)
	Create(ctx context.Context, caller auth.Identity, question string, options []string, expiresAt time.Time) (*model.Poll, error)
	UpdateMeta(ctx context.Context, id uuid.UUID, question string, expiresAt time.Time) (*model.Poll, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Vote(ctx context.Context, caller auth.Identity, pollID uuid.UUID, optionIndex int) (*model.Poll, error)
	Results(ctx context.Context, caller auth.Identity, pollID uuid.UUID) (*PollResults, error)
}

type pollService struct {
	repo repository.PollRepository
}

// NewPollService builds a PollService.
func NewPollService(repo repository.PollRepository) PollService {
	return &pollService{repo: repo}
}

func (s *pollService) List(ctx context.Context) ([]model.Poll, error) {
	return s.repo.List(ctx)
}

func (s *pollService) Get(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	poll, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return poll, nil
}

// Create stores a poll with its option list; option positions are assigned
// from the input order and stay stable for the poll's lifetime.
func (s *pollService) Create(ctx context.Context, caller auth.Identity, question string, options []string, expiresAt time.Time) (*model.Poll, error) {
	if len(options) < 2 {
		return nil, httperr.ErrInvalidOption
	}

	poll := &model.Poll{
		ID:          uuid.New(),
		Question:    question,
		ExpiresAt:   expiresAt,
		CreatedByID: caller.UserID,
	}
	for i, text := range options {
		poll.Options = append(poll.Options, model.PollOption{
			Position: i,
			Text:     text,
		})
	}

	if err := s.repo.Create(ctx, poll); err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}
	return s.Get(ctx, poll.ID)
}

// UpdateMeta edits question and expiry. Options are immutable once created so
// recorded votes always reference a live option.
func (s *pollService) UpdateMeta(ctx context.Context, id uuid.UUID, question string, expiresAt time.Time) (*model.Poll, error) {
	poll, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	poll.Question = question
	poll.ExpiresAt = expiresAt

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, fmt.Errorf("save poll: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *pollService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Vote records one vote for the caller. The voter row insert and the counter
// increment run in a single transaction; the composite unique index makes a
// concurrent duplicate fail instead of double-counting.
func (s *pollService) Vote(ctx context.Context, caller auth.Identity, pollID uuid.UUID, optionIndex int) (*model.Poll, error) {
	poll, err := s.Get(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.Expired() {
		return nil, httperr.ErrPollExpired
	}
	option := poll.OptionAt(optionIndex)
	if option == nil {
		return nil, httperr.ErrInvalidOption
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.PollRepository) error {
		vote := &model.PollVote{
			PollID:   pollID,
			UserID:   caller.UserID,
			OptionID: option.ID,
		}
		if err := txRepo.CreateVote(ctx, vote); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrAlreadyVoted
			}
			return err
		}
		return txRepo.IncrementOptionVotes(ctx, option.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, pollID)
}

// Results tallies the poll; admins additionally see who voted.
func (s *pollService) Results(ctx context.Context, caller auth.Identity, pollID uuid.UUID) (*PollResults, error) {
	poll, err := s.Get(ctx, pollID)
	if err != nil {
		return nil, err
	}

	results := &PollResults{
		Poll:       poll,
		TotalVotes: poll.TotalVotes(),
	}

	if caller.IsAdmin() {
		votes, err := s.repo.ListVotes(ctx, pollID)
		if err != nil {
			return nil, err
		}
		for _, v := range votes {
			if v.User != nil {
				results.Voters = append(results.Voters, v.User.Ref())
			}
		}
	}
	return results, nil
}
