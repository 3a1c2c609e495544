package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"communityhub/internal/auth"
	"communityhub/internal/httperr"
	"communityhub/internal/model"
	"communityhub/internal/repository"
)

// MockPollRepository is a mock implementation of PollRepository.
type MockPollRepository struct {
	mock.Mock
}

func (m *MockPollRepository) Create(ctx context.Context, poll *model.Poll) error {
	args := m.Called(ctx, poll)
	return args.Error(0)
}

func (m *MockPollRepository) Save(ctx context.Context, poll *model.Poll) error {
	args := m.Called(ctx, poll)
	return args.Error(0)
}

func (m *MockPollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPollRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Poll), args.Error(1)
}

func (m *MockPollRepository) List(ctx context.Context) ([]model.Poll, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Poll), args.Error(1)
}

func (m *MockPollRepository) CreateVote(ctx context.Context, vote *model.PollVote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockPollRepository) IncrementOptionVotes(ctx context.Context, optionID uuid.UUID) error {
	args := m.Called(ctx, optionID)
	return args.Error(0)
}

func (m *MockPollRepository) ListVotes(ctx context.Context, pollID uuid.UUID) ([]model.PollVote, error) {
	args := m.Called(ctx, pollID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PollVote), args.Error(1)
}

func (m *MockPollRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.PollRepository) error) error {
	m.Called(ctx, fn)
	return fn(ctx, m)
}

func openPoll() *model.Poll {
	return &model.Poll{
		ID:        uuid.New(),
		Question:  "Where should the annual meetup happen?",
		ExpiresAt: time.Now().Add(48 * time.Hour),
		Options: []model.PollOption{
			{ID: uuid.New(), Position: 0, Text: "Community hall", Votes: 3},
			{ID: uuid.New(), Position: 1, Text: "Riverside park", Votes: 1},
		},
	}
}

func member() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Username: "jdoe", Role: model.RoleMember}
}

func TestVote_Success(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	poll := openPoll()
	caller := member()
	repo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateVote", mock.Anything, mock.MatchedBy(func(v *model.PollVote) bool {
		return v.PollID == poll.ID && v.UserID == caller.UserID && v.OptionID == poll.Options[1].ID
	})).Return(nil)
	repo.On("IncrementOptionVotes", mock.Anything, poll.Options[1].ID).Return(nil)

	got, err := svc.Vote(context.Background(), caller, poll.ID, 1)

	assert.NoError(t, err)
	assert.Equal(t, poll.ID, got.ID)
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "IncrementOptionVotes", 1)
}

func TestVote_Duplicate(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	poll := openPoll()
	repo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
	repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateVote", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Vote(context.Background(), member(), poll.ID, 0)

	assert.ErrorIs(t, err, httperr.ErrAlreadyVoted)
	repo.AssertNotCalled(t, "IncrementOptionVotes")
}

func TestVote_ExpiredPoll(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	poll := openPoll()
	poll.ExpiresAt = time.Now().Add(-time.Minute)
	repo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)

	_, err := svc.Vote(context.Background(), member(), poll.ID, 0)

	assert.ErrorIs(t, err, httperr.ErrPollExpired)
	repo.AssertNotCalled(t, "CreateVote")
}

func TestVote_InvalidOptionIndex(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	poll := openPoll()
	repo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)

	_, err := svc.Vote(context.Background(), member(), poll.ID, 5)

	assert.ErrorIs(t, err, httperr.ErrInvalidOption)
	repo.AssertNotCalled(t, "CreateVote")
}

func TestVote_PollNotFound(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Vote(context.Background(), member(), id, 0)

	assert.ErrorIs(t, err, httperr.ErrNotFound)
}

func TestCreatePoll_NeedsTwoOptions(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	_, err := svc.Create(context.Background(), member(), "One horse race?", []string{"yes"}, time.Now().Add(time.Hour))

	assert.ErrorIs(t, err, httperr.ErrInvalidOption)
	repo.AssertNotCalled(t, "Create")
}

func TestResults_MemberGetsNoVoterList(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	poll := openPoll()
	repo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)

	results, err := svc.Results(context.Background(), member(), poll.ID)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), results.TotalVotes)
	assert.Empty(t, results.Voters)
	repo.AssertNotCalled(t, "ListVotes")
}

func TestResults_AdminSeesVoters(t *testing.T) {
	repo := new(MockPollRepository)
	svc := NewPollService(repo)

	poll := openPoll()
	admin := auth.Identity{UserID: uuid.New(), Username: "root", Role: model.RoleAdmin}
	voter := model.User{ID: uuid.New(), Username: "jdoe"}
	repo.On("FindByID", mock.Anything, poll.ID).Return(poll, nil)
	repo.On("ListVotes", mock.Anything, poll.ID).Return([]model.PollVote{
		{PollID: poll.ID, UserID: voter.ID, User: &voter},
	}, nil)

	results, err := svc.Results(context.Background(), admin, poll.ID)

	assert.NoError(t, err)
	assert.Len(t, results.Voters, 1)
	assert.Equal(t, "jdoe", results.Voters[0].Username)
}
