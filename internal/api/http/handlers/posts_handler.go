package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/enterprize-service/internal/api/dto"
	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/service"
)

// PostsHandler exposes news posts and the question board.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// CreateNewsPost handles POST /news. Admin only.
func (h *PostsHandler) CreateNewsPost(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Body == "" {
		return fiber.NewError(http.StatusBadRequest, "body required")
	}

	content := domain.PostContent{Title: req.Title, Body: req.Body}
	post, err := h.posts.CreateNewsPost(c.Context(), principal.Profile, content, req.Tags)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewNewsPostResponse(post)})
}

// ListNewsPosts handles GET /news. The tag query narrows to tagged posts.
func (h *PostsHandler) ListNewsPosts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if tag := c.Query("tag"); tag != "" {
		posts, err := h.posts.RetrieveNewsPostsByTag(c.Context(), principal.Profile.Enterprize, tag)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": dto.NewNewsPostResponses(posts)})
	}

	posts, err := h.posts.ListNewsPosts(c.Context(), principal.Profile.Enterprize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsPostResponses(posts)})
}

// GetNewsPost handles GET /news/:reference.
func (h *PostsHandler) GetNewsPost(c *fiber.Ctx) error {
	post, err := h.posts.RetrieveNewsPost(c.Context(), c.Params("reference"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNewsPostResponse(post)})
}

// DeleteNewsPost handles DELETE /news/:reference. Admin only; posts of other
// enterprizes read as not found.
func (h *PostsHandler) DeleteNewsPost(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.posts.DeleteNewsPost(c.Context(), c.Params("reference"), principal.Username()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// PostQuestion handles POST /questions.
func (h *PostsHandler) PostQuestion(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Body == "" {
		return fiber.NewError(http.StatusBadRequest, "body required")
	}

	content := domain.PostContent{Title: req.Title, Body: req.Body}
	question, err := h.posts.PostQuestion(c.Context(), principal.Profile, content, req.Tags)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewQuestionResponse(question)})
}

// ListQuestions handles GET /questions.
func (h *PostsHandler) ListQuestions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	questions, err := h.posts.ListQuestions(c.Context(), principal.Profile.Enterprize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQuestionResponses(questions)})
}

// GetQuestion handles GET /questions/:reference.
func (h *PostsHandler) GetQuestion(c *fiber.Ctx) error {
	question, err := h.posts.RetrieveQuestion(c.Context(), c.Params("reference"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQuestionResponse(question)})
}

// CreateAnswer handles POST /questions/:reference/answers.
func (h *PostsHandler) CreateAnswer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.AnswerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Body == "" {
		return fiber.NewError(http.StatusBadRequest, "body required")
	}

	content := domain.PostContent{Title: req.Title, Body: req.Body}
	answer, err := h.posts.CreateAnswer(c.Context(), principal.Profile, c.Params("reference"), content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAnswerResponse(answer)})
}

// ListAnswers handles GET /questions/:reference/answers.
func (h *PostsHandler) ListAnswers(c *fiber.Ctx) error {
	answers, err := h.posts.RetrieveAnswersForQuestion(c.Context(), c.Params("reference"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnswerResponses(answers)})
}
