package dto

import (
	"time"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

// PostCreateRequest payload for news posts and questions.
type PostCreateRequest struct {
	Title *string  `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// AnswerCreateRequest payload for answers.
type AnswerCreateRequest struct {
	Title *string `json:"title"`
	Body  string  `json:"body"`
}

// PostResponse is the shared representation of authored content.
type PostResponse struct {
	Reference string   `json:"reference"`
	Created   time.Time `json:"created"`
	Author    string   `json:"author,omitempty"`
	Title     *string  `json:"title,omitempty"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags,omitempty"`
}

func newPostResponse(post domain.Post) PostResponse {
	resp := PostResponse{
		Reference: post.Reference,
		Created:   post.Created,
		Title:     post.Content.Title,
		Body:      post.Content.Body,
		Tags:      post.Tags,
	}
	if post.Author != nil {
		resp.Author = post.Author.Username()
	}
	return resp
}

// NewNewsPostResponse maps a news post.
func NewNewsPostResponse(post *domain.NewsPost) PostResponse {
	return newPostResponse(post.Post)
}

// NewNewsPostResponses maps a list of news posts.
func NewNewsPostResponses(posts []*domain.NewsPost) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, NewNewsPostResponse(post))
	}
	return responses
}

// QuestionResponse represents a question with its answers.
type QuestionResponse struct {
	PostResponse
	Answers []PostResponse `json:"answers"`
}

// NewQuestionResponse maps a question and its answer list.
func NewQuestionResponse(question *domain.Question) QuestionResponse {
	answers := make([]PostResponse, 0, len(question.Answers))
	for _, answer := range question.Answers {
		answers = append(answers, newPostResponse(answer.Post))
	}
	return QuestionResponse{PostResponse: newPostResponse(question.Post), Answers: answers}
}

// NewQuestionResponses maps a list of questions.
func NewQuestionResponses(questions []*domain.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, NewQuestionResponse(question))
	}
	return responses
}

// NewAnswerResponse maps an answer.
func NewAnswerResponse(answer *domain.Answer) PostResponse {
	return newPostResponse(answer.Post)
}

// NewAnswerResponses maps a list of answers.
func NewAnswerResponses(answers []*domain.Answer) []PostResponse {
	responses := make([]PostResponse, 0, len(answers))
	for _, answer := range answers {
		responses = append(responses, NewAnswerResponse(answer))
	}
	return responses
}
