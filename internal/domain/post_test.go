package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

func newAdminProfile(t *testing.T, enterprize *domain.Enterprize) *domain.Profile {
	t.Helper()
	admin := domain.NewProfile(enterprize, nil)
	require.NoError(t, admin.RegisterUser("admin@acme.test", "hash"))
	admin.User.Role = domain.RoleAdmin
	return admin
}

func newUserProfile(t *testing.T, enterprize *domain.Enterprize, username string) *domain.Profile {
	t.Helper()
	profile := domain.NewProfile(enterprize, nil)
	require.NoError(t, profile.RegisterUser(username, "hash"))
	return profile
}

func TestNewNewsPostRequiresAdmin(t *testing.T) {
	enterprize := newTestEnterprize()
	plain := newUserProfile(t, enterprize, "user@acme.test")

	_, err := domain.NewNewsPost(plain, domain.PostContent{Body: "hello"})
	assert.ErrorIs(t, err, domain.ErrUserNotAdmin)

	noUser := domain.NewProfile(enterprize, nil)
	_, err = domain.NewNewsPost(noUser, domain.PostContent{Body: "hello"})
	assert.ErrorIs(t, err, domain.ErrUserNotAdmin)

	post, err := domain.NewNewsPost(newAdminProfile(t, enterprize), domain.PostContent{Body: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content.Body)
}

func TestSetTagsDeduplicatesKeepingOrder(t *testing.T) {
	enterprize := newTestEnterprize()
	post, err := domain.NewNewsPost(newAdminProfile(t, enterprize), domain.PostContent{Body: "b"})
	require.NoError(t, err)

	post.SetTags([]string{"go", "news", "go", "hr"})
	assert.Equal(t, []string{"go", "news", "hr"}, post.Tags)

	post.SetTags(nil)
	assert.Nil(t, post.Tags)
}

func TestDeleteIsIdempotentOnTheEntity(t *testing.T) {
	enterprize := newTestEnterprize()
	post, err := domain.NewNewsPost(newAdminProfile(t, enterprize), domain.PostContent{Body: "b"})
	require.NoError(t, err)

	post.Delete()
	first := post.Deleted
	require.NotNil(t, first)

	post.Delete()
	assert.Equal(t, first, post.Deleted)
}

func TestNewAnswerLinksBackToQuestion(t *testing.T) {
	enterprize := newTestEnterprize()
	asker := newUserProfile(t, enterprize, "asker@acme.test")
	responder := newUserProfile(t, enterprize, "responder@acme.test")

	question := domain.NewQuestion(asker, domain.PostContent{Body: "how?"})
	answer := domain.NewAnswer(responder, question, domain.PostContent{Body: "like this"})

	require.Len(t, question.Answers, 1)
	assert.Same(t, answer, question.Answers[0])
	assert.Same(t, question, answer.Question)
}

func TestNewEventRequiresAdmin(t *testing.T) {
	enterprize := newTestEnterprize()
	plain := newUserProfile(t, enterprize, "user2@acme.test")

	_, err := domain.NewEvent(plain, domain.EventContent{Title: "standup"})
	assert.ErrorIs(t, err, domain.ErrUserNotAdmin)

	event, err := domain.NewEvent(newAdminProfile(t, enterprize), domain.EventContent{Title: "standup"})
	require.NoError(t, err)
	assert.Equal(t, "standup", event.Content.Title)

	event.Delete()
	first := event.Deleted
	event.Delete()
	assert.Equal(t, first, event.Deleted)
}
