package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository"
)

// PostRepository is the in-memory post store. Admin-scoped retrieval needs
// to resolve admin usernames, so it borrows the profile store for lookups.
type PostRepository struct {
	mu        sync.Mutex
	profiles  *ProfileRepository
	news      map[string]*domain.NewsPost
	questions map[string]*domain.Question
	answers   map[string]*domain.Answer
}

// NewPostRepository creates an empty post store.
func NewPostRepository(profiles *ProfileRepository) *PostRepository {
	return &PostRepository{
		profiles:  profiles,
		news:      map[string]*domain.NewsPost{},
		questions: map[string]*domain.Question{},
		answers:   map[string]*domain.Answer{},
	}
}

var _ repository.PostRepository = (*PostRepository)(nil)

func (r *PostRepository) AddNewsPost(_ context.Context, post *domain.NewsPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.news[post.Reference] = post
	return nil
}

func (r *PostRepository) AddQuestion(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions[question.Reference] = question
	return nil
}

func (r *PostRepository) AddAnswer(_ context.Context, answer *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers[answer.Reference] = answer
	return nil
}

func (r *PostRepository) ListNewsPosts(_ context.Context, enterprize *domain.Enterprize) ([]*domain.NewsPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []*domain.NewsPost
	for _, post := range r.news {
		if post.Deleted == nil && post.Author.Enterprize.Equal(enterprize) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Created.After(posts[j].Created) })
	return posts, nil
}

func (r *PostRepository) ListQuestions(_ context.Context, enterprize *domain.Enterprize) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var questions []*domain.Question
	for _, question := range r.questions {
		if question.Deleted == nil && question.Author.Enterprize.Equal(enterprize) {
			questions = append(questions, question)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].Created.After(questions[j].Created) })
	return questions, nil
}

func (r *PostRepository) RetrieveNewsPost(_ context.Context, reference string) (*domain.NewsPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.news[reference]
	if !ok || post.Deleted != nil {
		return nil, fmt.Errorf("news post %q: %w", reference, domain.ErrPostNotFound)
	}
	return post, nil
}

func (r *PostRepository) RetrieveNewsPostByAdmin(ctx context.Context, reference, adminUsername string) (*domain.NewsPost, error) {
	admin, err := r.profiles.RetrieveByUsername(ctx, adminUsername)
	if err != nil {
		return nil, fmt.Errorf("news post %q: %w", reference, domain.ErrPostNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.news[reference]
	if !ok || !post.Author.Enterprize.Equal(admin.Enterprize) {
		return nil, fmt.Errorf("news post %q: %w", reference, domain.ErrPostNotFound)
	}
	return post, nil
}

func (r *PostRepository) RetrieveNewsPostsByTag(_ context.Context, enterprize *domain.Enterprize, tag string) ([]*domain.NewsPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var posts []*domain.NewsPost
	for _, post := range r.news {
		if post.Deleted != nil || !post.Author.Enterprize.Equal(enterprize) {
			continue
		}
		for _, candidate := range post.Tags {
			if candidate == tag {
				posts = append(posts, post)
				break
			}
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Created.After(posts[j].Created) })
	return posts, nil
}

func (r *PostRepository) RetrieveQuestion(_ context.Context, reference string) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	question, ok := r.questions[reference]
	if !ok {
		return nil, fmt.Errorf("question %q: %w", reference, domain.ErrPostNotFound)
	}
	return question, nil
}

func (r *PostRepository) RetrieveAnswersForQuestion(ctx context.Context, questionReference string) ([]*domain.Answer, error) {
	question, err := r.RetrieveQuestion(ctx, questionReference)
	if err != nil {
		return nil, err
	}
	return question.Answers, nil
}
