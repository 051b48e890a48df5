package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

// Post discriminators in storage. Answers technically permit nested answers
// in the model; storage keeps the single-level question link only.
const (
	postKindNews     = "news"
	postKindQuestion = "question"
	postKindAnswer   = "answer"
)

// PostRepository persists the post family: news posts, questions and answers.
// Admin-scoped retrievals join post, author and tenant so a wrong-tenant
// reference is indistinguishable from a nonexistent one.
type PostRepository interface {
	AddNewsPost(ctx context.Context, post *domain.NewsPost) error
	AddQuestion(ctx context.Context, question *domain.Question) error
	AddAnswer(ctx context.Context, answer *domain.Answer) error
	ListNewsPosts(ctx context.Context, enterprize *domain.Enterprize) ([]*domain.NewsPost, error)
	ListQuestions(ctx context.Context, enterprize *domain.Enterprize) ([]*domain.Question, error)
	RetrieveNewsPost(ctx context.Context, reference string) (*domain.NewsPost, error)
	RetrieveNewsPostByAdmin(ctx context.Context, reference, adminUsername string) (*domain.NewsPost, error)
	RetrieveNewsPostsByTag(ctx context.Context, enterprize *domain.Enterprize, tag string) ([]*domain.NewsPost, error)
	RetrieveQuestion(ctx context.Context, reference string) (*domain.Question, error)
	RetrieveAnswersForQuestion(ctx context.Context, questionReference string) ([]*domain.Answer, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postColumns = `
        ps.reference, ps.created, ps.deleted, ps.title, ps.body, ps.tags,
        a.reference, a.first_name, a.last_name,
        u.username, u.role,
        e.reference, e.name, e.subdomain, e.created`

const postFrom = `
        FROM posts ps
        JOIN profiles a ON a.reference = ps.author_reference
        JOIN enterprizes e ON e.reference = a.enterprize_reference
        LEFT JOIN users u ON u.profile_reference = a.reference`

const upsertPost = `
        INSERT INTO posts (reference, kind, created, deleted, author_reference, question_reference, title, body, tags)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (reference) DO UPDATE SET
            deleted=EXCLUDED.deleted, title=EXCLUDED.title, body=EXCLUDED.body, tags=EXCLUDED.tags`

func (r *postRepository) AddNewsPost(ctx context.Context, post *domain.NewsPost) error {
	return r.upsert(ctx, &post.Post, postKindNews, nil)
}

func (r *postRepository) AddQuestion(ctx context.Context, question *domain.Question) error {
	return r.upsert(ctx, &question.Post, postKindQuestion, nil)
}

func (r *postRepository) AddAnswer(ctx context.Context, answer *domain.Answer) error {
	questionRef := answer.Question.Reference
	return r.upsert(ctx, &answer.Post, postKindAnswer, &questionRef)
}

func (r *postRepository) upsert(ctx context.Context, post *domain.Post, kind string, questionRef *string) error {
	_, err := r.pool.Exec(ctx, upsertPost,
		post.Reference,
		kind,
		post.Created,
		post.Deleted,
		post.Author.Reference,
		questionRef,
		post.Content.Title,
		post.Content.Body,
		post.Tags,
	)
	return err
}

func (r *postRepository) ListNewsPosts(ctx context.Context, enterprize *domain.Enterprize) ([]*domain.NewsPost, error) {
	query := "SELECT" + postColumns + postFrom + `
        WHERE ps.kind=$1 AND e.reference=$2 AND ps.deleted IS NULL
        ORDER BY ps.created DESC`

	posts, err := r.fetchMany(ctx, query, postKindNews, enterprize.Reference)
	if err != nil {
		return nil, err
	}
	return asNewsPosts(posts), nil
}

func (r *postRepository) ListQuestions(ctx context.Context, enterprize *domain.Enterprize) ([]*domain.Question, error) {
	query := "SELECT" + postColumns + postFrom + `
        WHERE ps.kind=$1 AND e.reference=$2 AND ps.deleted IS NULL
        ORDER BY ps.created DESC`

	posts, err := r.fetchMany(ctx, query, postKindQuestion, enterprize.Reference)
	if err != nil {
		return nil, err
	}
	questions := make([]*domain.Question, 0, len(posts))
	for _, post := range posts {
		questions = append(questions, &domain.Question{Post: *post})
	}
	return questions, nil
}

func (r *postRepository) RetrieveNewsPost(ctx context.Context, reference string) (*domain.NewsPost, error) {
	query := "SELECT" + postColumns + postFrom + " WHERE ps.reference=$1 AND ps.kind=$2 AND ps.deleted IS NULL"
	post, err := r.fetchSingle(ctx, query, reference, postKindNews)
	if err != nil {
		return nil, err
	}
	return &domain.NewsPost{Post: *post}, nil
}

func (r *postRepository) RetrieveNewsPostByAdmin(ctx context.Context, reference, adminUsername string) (*domain.NewsPost, error) {
	// The admin's tenant is matched against the author's tenant inside the
	// query, so a cross-tenant reference reads as not-found.
	query := "SELECT" + postColumns + postFrom + `
        WHERE ps.reference=$1 AND ps.kind=$2 AND e.reference = (
            SELECT e2.reference
            FROM users u2
            JOIN profiles p2 ON p2.reference = u2.profile_reference
            JOIN enterprizes e2 ON e2.reference = p2.enterprize_reference
            WHERE LOWER(u2.username)=LOWER($3)
        )`

	post, err := r.fetchSingle(ctx, query, reference, postKindNews, adminUsername)
	if err != nil {
		return nil, err
	}
	return &domain.NewsPost{Post: *post}, nil
}

func (r *postRepository) RetrieveNewsPostsByTag(ctx context.Context, enterprize *domain.Enterprize, tag string) ([]*domain.NewsPost, error) {
	query := "SELECT" + postColumns + postFrom + `
        WHERE ps.kind=$1 AND e.reference=$2 AND $3 = ANY(ps.tags) AND ps.deleted IS NULL
        ORDER BY ps.created DESC`

	posts, err := r.fetchMany(ctx, query, postKindNews, enterprize.Reference, tag)
	if err != nil {
		return nil, err
	}
	return asNewsPosts(posts), nil
}

func (r *postRepository) RetrieveQuestion(ctx context.Context, reference string) (*domain.Question, error) {
	query := "SELECT" + postColumns + postFrom + " WHERE ps.reference=$1 AND ps.kind=$2"
	post, err := r.fetchSingle(ctx, query, reference, postKindQuestion)
	if err != nil {
		return nil, err
	}

	question := &domain.Question{Post: *post}
	if err := r.attachAnswers(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (r *postRepository) RetrieveAnswersForQuestion(ctx context.Context, questionReference string) ([]*domain.Answer, error) {
	question, err := r.RetrieveQuestion(ctx, questionReference)
	if err != nil {
		return nil, err
	}
	return question.Answers, nil
}

// attachAnswers reconstitutes the bidirectional question/answer link.
func (r *postRepository) attachAnswers(ctx context.Context, question *domain.Question) error {
	query := "SELECT" + postColumns + postFrom + `
        WHERE ps.kind=$1 AND ps.question_reference=$2 AND ps.deleted IS NULL
        ORDER BY ps.created ASC`

	posts, err := r.fetchMany(ctx, query, postKindAnswer, question.Reference)
	if err != nil {
		return err
	}
	for _, post := range posts {
		question.Answers = append(question.Answers, &domain.Answer{Post: *post, Question: question})
	}
	return nil
}

func (r *postRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Post, error) {
	post, err := scanPost(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("post: %w", domain.ErrPostNotFound)
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepository) fetchMany(ctx context.Context, query string, args ...any) ([]*domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		post       domain.Post
		author     domain.Profile
		enterprize domain.Enterprize

		firstName, lastName *string
		username, role      *string
	)

	if err := row.Scan(
		&post.Reference, &post.Created, &post.Deleted,
		&post.Content.Title, &post.Content.Body, &post.Tags,
		&author.Reference, &firstName, &lastName,
		&username, &role,
		&enterprize.Reference, &enterprize.Name, &enterprize.Subdomain, &enterprize.Created,
	); err != nil {
		return nil, err
	}

	if firstName != nil || lastName != nil {
		name := domain.FullName{}
		if firstName != nil {
			name.FirstName = *firstName
		}
		if lastName != nil {
			name.LastName = *lastName
		}
		author.FullName = &name
	}
	if username != nil {
		author.User = &domain.User{Username: *username, Role: domain.Role(*role)}
	}
	author.Enterprize = &enterprize
	post.Author = &author
	return &post, nil
}

func asNewsPosts(posts []*domain.Post) []*domain.NewsPost {
	news := make([]*domain.NewsPost, 0, len(posts))
	for _, post := range posts {
		news = append(news, &domain.NewsPost{Post: *post})
	}
	return news
}
