package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/validation"
)

func (s *BlogService) CreatePost(ctx context.Context, actor domain.AuthContext, in ports.PostInput) (*ports.PostProjection, error) {
	// 1. Authentification puis validation
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	if err := rejectInvalid(validation.Post(in.Title, in.Content)); err != nil {
		return nil, err
	}

	// 2. Auteur
	account, err := s.loadActor(ctx, actor)
	if err != nil {
		return nil, err
	}

	// 3. Post + back-référence dans la même transaction
	post := domain.NewPost(in.Title, in.Content, in.ImageURL, account.ID)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.posts.Create(ctx, post); err != nil {
			return fmt.Errorf("save post: %w", err)
		}
		if err := s.accounts.AppendPost(ctx, account.ID, post.ID); err != nil {
			return fmt.Errorf("link post to account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	account.AttachPost(post.ID)
	post.Creator = account

	if err := s.publisher.PublishPostCreated(ctx, post); err != nil {
		s.logger.WarnContext(ctx, "publish post created failed", "post_id", post.ID, "error", err)
	}

	return projectPost(post), nil
}

// GetPosts pagine les posts (createdAt décroissant). Le total compte tous les posts, indépendamment de la page.
func (s *BlogService) GetPosts(ctx context.Context, actor domain.AuthContext, page int) (*ports.PostsPage, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	if page <= 0 {
		page = 1
	}

	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("get posts: count: %w", err)
	}

	posts, err := s.posts.List(ctx, (page-1)*s.postsPerPage, s.postsPerPage)
	if err != nil {
		return nil, fmt.Errorf("get posts: list: %w", err)
	}

	out := make([]ports.PostProjection, 0, len(posts))
	for _, p := range posts {
		out = append(out, *projectPost(p))
	}
	return &ports.PostsPage{Posts: out, TotalPosts: total}, nil
}

func (s *BlogService) Post(ctx context.Context, actor domain.AuthContext, postID string) (*ports.PostProjection, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	post, err := s.loadPost(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	return projectPost(post), nil
}

// UpdatePost : existence, puis propriété, puis validation.
// Un non-propriétaire reçoit 403 même si ses entrées sont invalides.
func (s *BlogService) UpdatePost(ctx context.Context, actor domain.AuthContext, postID string, in ports.PostInput) (*ports.PostProjection, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	post, err := s.loadPost(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(post, actor); err != nil {
		return nil, err
	}
	if err := rejectInvalid(validation.Post(in.Title, in.Content)); err != nil {
		return nil, err
	}

	post.Edit(in.Title, in.Content, in.ImageURL)
	if err := s.posts.Save(ctx, post); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFound(msgPostNotFound)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return projectPost(post), nil
}

func (s *BlogService) DeletePost(ctx context.Context, actor domain.AuthContext, postID string) (bool, error) {
	if err := requireAuth(actor); err != nil {
		return false, err
	}
	post, err := s.loadPost(ctx, postID, false)
	if err != nil {
		return false, err
	}
	if err := authorizeOwner(post, actor); err != nil {
		return false, err
	}

	// 1. Nettoyage du fichier : effet de bord best effort, jamais bloquant
	s.clearImage(ctx, post)

	// 2. Suppression + retrait de la back-référence, atomiques
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.posts.Delete(ctx, post.ID); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		if err := s.accounts.RemovePost(ctx, actor.AccountID, post.ID); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.NotFound(msgUserNotFound)
			}
			return fmt.Errorf("unlink post from account: %w", err)
		}
		return nil
	})
	if err != nil {
		if _, ok := domain.AsError(err); ok {
			return false, err
		}
		return false, fmt.Errorf("delete post: %w", err)
	}

	if err := s.publisher.PublishPostDeleted(ctx, post.ID, post.CreatorID); err != nil {
		s.logger.WarnContext(ctx, "publish post deleted failed", "post_id", post.ID, "error", err)
	}
	return true, nil
}

// --- HELPERS ---

func (s *BlogService) loadPost(ctx context.Context, postID string, withCreator bool) (*domain.Post, error) {
	var (
		post *domain.Post
		err  error
	)
	if withCreator {
		post, err = s.posts.FindByIDWithCreator(ctx, postID)
	} else {
		post, err = s.posts.FindByID(ctx, postID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFound(msgPostNotFound)
		}
		return nil, fmt.Errorf("load post %s: %w", postID, err)
	}
	return post, nil
}

func (s *BlogService) clearImage(ctx context.Context, post *domain.Post) {
	if post.ImageURL == "" {
		return
	}
	if err := s.assets.Delete(ctx, post.ImageURL); err != nil {
		s.logger.WarnContext(ctx, "asset cleanup failed, continuing",
			"post_id", post.ID,
			"image_url", post.ImageURL,
			"error", err,
		)
	}
}
