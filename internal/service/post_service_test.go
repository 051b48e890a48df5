package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/domain"
	"github.com/spec-kit/enterprize-service/internal/repository/memory"
	"github.com/spec-kit/enterprize-service/internal/service"
)

type postFixture struct {
	svc      *service.PostService
	profiles *memory.ProfileRepository
	acme     *domain.Enterprize
	other    *domain.Enterprize
}

func newPostFixture(t *testing.T) postFixture {
	t.Helper()
	enterprizes := memory.NewEnterprizeRepository()
	profiles := memory.NewProfileRepository()
	posts := memory.NewPostRepository(profiles)
	return postFixture{
		svc:      service.NewPostService(posts),
		profiles: profiles,
		acme:     seedEnterprize(t, enterprizes, "acme"),
		other:    seedEnterprize(t, enterprizes, "other"),
	}
}

func TestCreateNewsPostRequiresAdmin(t *testing.T) {
	f := newPostFixture(t)
	plain := seedActiveUser(t, f.profiles, f.acme, "user@acme.test", "hash", domain.RoleUser)

	_, err := f.svc.CreateNewsPost(context.Background(), plain, domain.PostContent{Body: "hi"}, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotAdmin)
}

func TestDeleteNewsPostConflatesWrongTenantWithNotFound(t *testing.T) {
	f := newPostFixture(t)
	acmeAdmin := seedActiveUser(t, f.profiles, f.acme, "admin@acme.test", "hash", domain.RoleAdmin)
	seedActiveUser(t, f.profiles, f.other, "admin@other.test", "hash", domain.RoleAdmin)

	post, err := f.svc.CreateNewsPost(context.Background(), acmeAdmin, domain.PostContent{Body: "hi"}, nil)
	require.NoError(t, err)

	// An admin of another enterprize cannot even see the post.
	err = f.svc.DeleteNewsPost(context.Background(), post.Reference, "admin@other.test")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	// The owning tenant's admin can; the second delete reads as not found.
	require.NoError(t, f.svc.DeleteNewsPost(context.Background(), post.Reference, "admin@acme.test"))
	err = f.svc.DeleteNewsPost(context.Background(), post.Reference, "admin@acme.test")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestListNewsPostsSkipsDeleted(t *testing.T) {
	f := newPostFixture(t)
	admin := seedActiveUser(t, f.profiles, f.acme, "admin@acme.test", "hash", domain.RoleAdmin)

	kept, err := f.svc.CreateNewsPost(context.Background(), admin, domain.PostContent{Body: "keep"}, nil)
	require.NoError(t, err)
	dropped, err := f.svc.CreateNewsPost(context.Background(), admin, domain.PostContent{Body: "drop"}, nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteNewsPost(context.Background(), dropped.Reference, "admin@acme.test"))

	listed, err := f.svc.ListNewsPosts(context.Background(), f.acme)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, kept.Reference, listed[0].Reference)
}

func TestRetrieveNewsPostsByTag(t *testing.T) {
	f := newPostFixture(t)
	admin := seedActiveUser(t, f.profiles, f.acme, "admin@acme.test", "hash", domain.RoleAdmin)

	tagged, err := f.svc.CreateNewsPost(context.Background(), admin, domain.PostContent{Body: "a"}, []string{"hr", "go"})
	require.NoError(t, err)
	_, err = f.svc.CreateNewsPost(context.Background(), admin, domain.PostContent{Body: "b"}, []string{"misc"})
	require.NoError(t, err)

	found, err := f.svc.RetrieveNewsPostsByTag(context.Background(), f.acme, "go")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, tagged.Reference, found[0].Reference)
}

func TestRetrieveNewsPostsByTagScopesToTenant(t *testing.T) {
	f := newPostFixture(t)
	acmeAdmin := seedActiveUser(t, f.profiles, f.acme, "admin@acme.test", "hash", domain.RoleAdmin)
	otherAdmin := seedActiveUser(t, f.profiles, f.other, "admin@other.test", "hash", domain.RoleAdmin)

	ours, err := f.svc.CreateNewsPost(context.Background(), acmeAdmin, domain.PostContent{Body: "acme news"}, []string{"hr"})
	require.NoError(t, err)
	_, err = f.svc.CreateNewsPost(context.Background(), otherAdmin, domain.PostContent{Body: "other news"}, []string{"hr"})
	require.NoError(t, err)

	found, err := f.svc.RetrieveNewsPostsByTag(context.Background(), f.acme, "hr")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ours.Reference, found[0].Reference)
}

func TestRetrieveNewsPostExcludesDeleted(t *testing.T) {
	f := newPostFixture(t)
	admin := seedActiveUser(t, f.profiles, f.acme, "admin@acme.test", "hash", domain.RoleAdmin)

	post, err := f.svc.CreateNewsPost(context.Background(), admin, domain.PostContent{Body: "hi"}, nil)
	require.NoError(t, err)

	_, err = f.svc.RetrieveNewsPost(context.Background(), post.Reference)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteNewsPost(context.Background(), post.Reference, "admin@acme.test"))
	_, err = f.svc.RetrieveNewsPost(context.Background(), post.Reference)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestQuestionAnswerFlow(t *testing.T) {
	f := newPostFixture(t)
	asker := seedActiveUser(t, f.profiles, f.acme, "asker@acme.test", "hash", domain.RoleUser)
	responder := seedActiveUser(t, f.profiles, f.acme, "responder@acme.test", "hash", domain.RoleUser)

	question, err := f.svc.PostQuestion(context.Background(), asker, domain.PostContent{Body: "how?"}, []string{"go"})
	require.NoError(t, err)

	answer, err := f.svc.CreateAnswer(context.Background(), responder, question.Reference, domain.PostContent{Body: "like this"})
	require.NoError(t, err)
	assert.Equal(t, question.Reference, answer.Question.Reference)

	answers, err := f.svc.RetrieveAnswersForQuestion(context.Background(), question.Reference)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, answer.Reference, answers[0].Reference)

	_, err = f.svc.CreateAnswer(context.Background(), responder, "missing", domain.PostContent{Body: "?"})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}
