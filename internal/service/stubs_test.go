package service

import (
	"context"

	"civicvoice/internal/models"
	"civicvoice/internal/repository"
	"civicvoice/internal/voting"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint, uint) (*models.Post, error)
	listFn       func(context.Context, repository.PostFilter, int, int, uint) ([]*models.Post, error)
	countFn      func(context.Context, repository.PostFilter) (int64, error)
	updateFn     func(context.Context, *models.Post) error
	softDeleteFn func(context.Context, uint) error
	setPinnedFn  func(context.Context, uint, bool) error
	castVoteFn   func(context.Context, uint, uint, voting.Stance) (*models.VoteResult, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, filter, limit, offset, currentUserID)
}
func (s *postRepoStub) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return s.countFn(ctx, filter)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}
func (s *postRepoStub) SetPinned(ctx context.Context, id uint, pinned bool) error {
	return s.setPinnedFn(ctx, id, pinned)
}
func (s *postRepoStub) CastVote(ctx context.Context, postID, userID uint, stance voting.Stance) (*models.VoteResult, error) {
	return s.castVoteFn(ctx, postID, userID, stance)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error { p.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, IsActive: true}, nil
		},
		listFn: func(_ context.Context, _ repository.PostFilter, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		countFn:      func(_ context.Context, _ repository.PostFilter) (int64, error) { return 0, nil },
		updateFn:     func(_ context.Context, _ *models.Post) error { return nil },
		softDeleteFn: func(_ context.Context, _ uint) error { return nil },
		setPinnedFn:  func(_ context.Context, _ uint, _ bool) error { return nil },
		castVoteFn: func(_ context.Context, _, _ uint, _ voting.Stance) (*models.VoteResult, error) {
			return &models.VoteResult{}, nil
		},
	}
}

// complaintRepoStub is a stub for repository.ComplaintRepository.
type complaintRepoStub struct {
	createFn           func(context.Context, *models.Complaint) error
	getByIDFn          func(context.Context, uint) (*models.Complaint, error)
	listFn             func(context.Context, repository.ComplaintFilter, int, int) ([]*models.Complaint, error)
	countFn            func(context.Context, repository.ComplaintFilter) (int64, error)
	updateFn           func(context.Context, *models.Complaint) error
	updateWithStatusFn func(context.Context, *models.Complaint, *models.StatusChange) error
	deleteFn           func(context.Context, uint) error
	toggleVoteFn       func(context.Context, uint, uint) (*models.ComplaintVoteResult, error)
}

func (s *complaintRepoStub) Create(ctx context.Context, complaint *models.Complaint) error {
	return s.createFn(ctx, complaint)
}
func (s *complaintRepoStub) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	return s.getByIDFn(ctx, id)
}
func (s *complaintRepoStub) List(ctx context.Context, filter repository.ComplaintFilter, limit, offset int) ([]*models.Complaint, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *complaintRepoStub) Count(ctx context.Context, filter repository.ComplaintFilter) (int64, error) {
	return s.countFn(ctx, filter)
}
func (s *complaintRepoStub) Update(ctx context.Context, complaint *models.Complaint) error {
	return s.updateFn(ctx, complaint)
}
func (s *complaintRepoStub) UpdateWithStatus(ctx context.Context, complaint *models.Complaint, change *models.StatusChange) error {
	return s.updateWithStatusFn(ctx, complaint, change)
}
func (s *complaintRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *complaintRepoStub) ToggleVote(ctx context.Context, complaintID, userID uint) (*models.ComplaintVoteResult, error) {
	return s.toggleVoteFn(ctx, complaintID, userID)
}

func noopComplaintRepo() *complaintRepoStub {
	return &complaintRepoStub{
		createFn: func(_ context.Context, c *models.Complaint) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Complaint, error) {
			return &models.Complaint{ID: id, Status: models.StatusPending}, nil
		},
		listFn: func(_ context.Context, _ repository.ComplaintFilter, _, _ int) ([]*models.Complaint, error) {
			return nil, nil
		},
		countFn:  func(_ context.Context, _ repository.ComplaintFilter) (int64, error) { return 0, nil },
		updateFn: func(_ context.Context, _ *models.Complaint) error { return nil },
		updateWithStatusFn: func(_ context.Context, _ *models.Complaint, _ *models.StatusChange) error {
			return nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		toggleVoteFn: func(_ context.Context, _, _ uint) (*models.ComplaintVoteResult, error) {
			return &models.ComplaintVoteResult{}, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn          func(context.Context, *models.Comment) error
	getByIDFn         func(context.Context, uint) (*models.Comment, error)
	listByPostFn      func(context.Context, uint, int, int) ([]*models.Comment, error)
	listByComplaintFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn          func(context.Context, *models.Comment) error
	softDeleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) ListByComplaint(ctx context.Context, complaintID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByComplaintFn(ctx, complaintID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: 1, IsActive: true}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		listByComplaintFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		softDeleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn     func(context.Context, *models.User) error
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	listFn       func(context.Context, int, int) ([]*models.User, error)
	listByRoleFn func(context.Context, models.Role, int, int) ([]*models.User, error)
	countFn      func(context.Context) (int64, error)
	updateFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) ListByRole(ctx context.Context, role models.Role, limit, offset int) ([]*models.User, error) {
	return s.listByRoleFn(ctx, role, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleEmployee, IsActive: true}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1, IsActive: true}, nil
		},
		listFn: func(_ context.Context, _, _ int) ([]*models.User, error) { return nil, nil },
		listByRoleFn: func(_ context.Context, _ models.Role, _, _ int) ([]*models.User, error) {
			return nil, nil
		},
		countFn:  func(_ context.Context) (int64, error) { return 0, nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func citizen(id uint) models.Caller {
	return models.Caller{ID: id, Role: models.RoleCitizen, IsActive: true}
}

func admin(id uint) models.Caller {
	return models.Caller{ID: id, Role: models.RoleAdmin, IsActive: true}
}
