package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amellouk/souq/internal/domain"
)

type CommentUC struct {
	Comments domain.CommentRepo
	Products domain.ProductRepo
	Users    domain.UserRepo
	Notifier domain.Notifier
}

type CreateCommentInput struct {
	Content   string
	ProductID string
}

func (uc *CommentUC) Create(ctx context.Context, in CreateCommentInput, author domain.Identity) (*domain.CommentView, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.Validationf("comment content is required")
	}
	if _, err := uc.Products.FindByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.Users.Ensure(ctx, domain.User{ID: author.UserID, Name: author.Name, Role: author.Role}); err != nil {
		return nil, domain.Internal("create comment", err)
	}
	c := &domain.Comment{
		ID:        uuid.NewString(),
		Content:   strings.TrimSpace(in.Content),
		ProductID: in.ProductID,
		UserID:    author.UserID,
	}
	if err := uc.Comments.Create(ctx, c); err != nil {
		return nil, domain.Internal("create comment", err)
	}
	uc.notify(ctx, "comment.created", c.ID, author.UserID)
	return uc.Get(ctx, c.ID)
}

func (uc *CommentUC) Get(ctx context.Context, id string) (*domain.CommentView, error) {
	c, err := uc.Comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := commentView(c)
	return &v, nil
}

func (uc *CommentUC) List(ctx context.Context, f domain.CommentFilter) ([]domain.CommentView, int64, error) {
	normalizePage(&f.Page, &f.Limit)
	comments, total, err := uc.Comments.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views := make([]domain.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, commentView(&comments[i]))
	}
	return views, total, nil
}

func (uc *CommentUC) Update(ctx context.Context, id, content string, caller domain.Identity) (*domain.CommentView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.Validationf("comment content is required")
	}
	c, err := uc.Comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.OwnerOrAdmin(c.UserID) {
		return nil, domain.ErrForbidden
	}
	c.Content = strings.TrimSpace(content)
	if err := uc.Comments.Update(ctx, c); err != nil {
		return nil, domain.Internal("update comment", err)
	}
	uc.notify(ctx, "comment.updated", id, caller.UserID)
	return uc.Get(ctx, id)
}

func (uc *CommentUC) Delete(ctx context.Context, id string, caller domain.Identity) error {
	c, err := uc.Comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.OwnerOrAdmin(c.UserID) {
		return domain.ErrForbidden
	}
	if err := uc.Comments.Delete(ctx, id); err != nil {
		return domain.Internal("delete comment", err)
	}
	uc.notify(ctx, "comment.deleted", id, caller.UserID)
	return nil
}

func (uc *CommentUC) notify(ctx context.Context, kind, entityID, userID string) {
	if uc.Notifier == nil {
		return
	}
	uc.Notifier.Notify(ctx, domain.Event{Kind: kind, EntityID: entityID, UserID: userID, At: time.Now()})
}

func commentView(c *domain.Comment) domain.CommentView {
	v := domain.CommentView{
		ID:        c.ID,
		Content:   c.Content,
		ProductID: c.ProductID,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		v.AuthorName = c.User.Name
	}
	return v
}
