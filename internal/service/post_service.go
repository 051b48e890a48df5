package service

import (
	"context"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// PostService manages news posts and the question/answer board.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreateNewsPost publishes an announcement. Only admins may author one.
func (s *PostService) CreateNewsPost(ctx context.Context, author *domain.Profile, content domain.PostContent, tags []string) (*domain.NewsPost, error) {
	post, err := domain.NewNewsPost(author, content)
	if err != nil {
		return nil, err
	}
	post.SetTags(tags)
	if err := s.posts.AddNewsPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListNewsPosts returns the enterprize's live announcements, newest first.
func (s *PostService) ListNewsPosts(ctx context.Context, enterprize *domain.Enterprize) ([]*domain.NewsPost, error) {
	return s.posts.ListNewsPosts(ctx, enterprize)
}

// RetrieveNewsPost loads a single announcement by reference.
func (s *PostService) RetrieveNewsPost(ctx context.Context, reference string) (*domain.NewsPost, error) {
	return s.posts.RetrieveNewsPost(ctx, reference)
}

// RetrieveNewsPostsByTag lists the enterprize's live announcements carrying
// the tag.
func (s *PostService) RetrieveNewsPostsByTag(ctx context.Context, enterprize *domain.Enterprize, tag string) ([]*domain.NewsPost, error) {
	return s.posts.RetrieveNewsPostsByTag(ctx, enterprize, tag)
}

// DeleteNewsPost soft-deletes an announcement in the admin's enterprize. A
// post from another tenant, like a missing or already deleted one, reads as
// not found.
func (s *PostService) DeleteNewsPost(ctx context.Context, reference, adminUsername string) error {
	post, err := s.posts.RetrieveNewsPostByAdmin(ctx, reference, adminUsername)
	if err != nil {
		return err
	}
	if post.Deleted != nil {
		return domain.ErrPostNotFound
	}
	post.Delete()
	return s.posts.AddNewsPost(ctx, post)
}

// PostQuestion publishes a question. Any user may ask.
func (s *PostService) PostQuestion(ctx context.Context, author *domain.Profile, content domain.PostContent, tags []string) (*domain.Question, error) {
	question := domain.NewQuestion(author, content)
	question.SetTags(tags)
	if err := s.posts.AddQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListQuestions returns the enterprize's live questions, newest first.
func (s *PostService) ListQuestions(ctx context.Context, enterprize *domain.Enterprize) ([]*domain.Question, error) {
	return s.posts.ListQuestions(ctx, enterprize)
}

// RetrieveQuestion loads a question with its answers attached.
func (s *PostService) RetrieveQuestion(ctx context.Context, reference string) (*domain.Question, error) {
	return s.posts.RetrieveQuestion(ctx, reference)
}

// CreateAnswer posts an answer under the referenced question.
func (s *PostService) CreateAnswer(ctx context.Context, author *domain.Profile, questionReference string, content domain.PostContent) (*domain.Answer, error) {
	question, err := s.posts.RetrieveQuestion(ctx, questionReference)
	if err != nil {
		return nil, err
	}
	answer := domain.NewAnswer(author, question, content)
	if err := s.posts.AddAnswer(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// RetrieveAnswersForQuestion lists a question's answers in creation order.
func (s *PostService) RetrieveAnswersForQuestion(ctx context.Context, questionReference string) ([]*domain.Answer, error) {
	return s.posts.RetrieveAnswersForQuestion(ctx, questionReference)
}
