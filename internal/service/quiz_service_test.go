package service

import (
	"context"
	"testing"

	"quiz-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, adminA := f.approvedTenant(t, "A", "admin@a.test")
	_, adminB := f.approvedTenant(t, "B", "admin@b.test")
	memberA := f.member(t, adminA, "m@a.test")

	draftA, err := f.quizzes.CreateQuizSet(ctx, adminA, QuizSetInput{Name: "draft A", Questions: radioQuestions(1)})
	require.NoError(t, err)
	liveA, err := f.quizzes.CreateQuizSet(ctx, adminA, QuizSetInput{Name: "live A", Questions: radioQuestions(1), IsPublished: true})
	require.NoError(t, err)
	liveB, err := f.quizzes.CreateQuizSet(ctx, adminB, QuizSetInput{Name: "live B", Questions: radioQuestions(1), IsPublished: true})
	require.NoError(t, err)
	shared, err := f.quizzes.CreateQuizSet(ctx, f.root, QuizSetInput{Name: "shared", Questions: radioQuestions(1), IsPublished: true})
	require.NoError(t, err)
	assert.Empty(t, shared.TenantID)

	names := func(sets []*domain.QuizSet) []string {
		out := make([]string, 0, len(sets))
		for _, qs := range sets {
			out = append(out, qs.Name)
		}
		return out
	}

	memberView, err := f.quizzes.ListQuizSets(ctx, memberA)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"live A", "shared"}, names(memberView))

	adminView, err := f.quizzes.ListQuizSets(ctx, adminA)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"draft A", "live A", "shared"}, names(adminView))

	rootView, err := f.quizzes.ListQuizSets(ctx, f.root)
	require.NoError(t, err)
	assert.Len(t, rootView, 4)

	_, err = f.quizzes.GetQuizSet(ctx, memberA, draftA.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.quizzes.GetQuizSet(ctx, memberA, liveB.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := f.quizzes.GetQuizSet(ctx, memberA, liveA.ID)
	require.NoError(t, err)
	assert.Len(t, got.Questions, 1)
}

func TestQuizAuthoringPermissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, adminA := f.approvedTenant(t, "A", "admin@a.test")
	_, adminB := f.approvedTenant(t, "B", "admin@b.test")
	memberA := f.member(t, adminA, "m@a.test")

	_, err := f.quizzes.CreateQuizSet(ctx, memberA, QuizSetInput{Name: "nope", Questions: radioQuestions(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	qs, err := f.quizzes.CreateQuizSet(ctx, adminA, QuizSetInput{Name: "Q1", Questions: radioQuestions(3)})
	require.NoError(t, err)

	_, err = f.quizzes.PublishQuiz(ctx, adminB, qs.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	published, err := f.quizzes.PublishQuiz(ctx, adminA, qs.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	live, err := f.quizzes.GetPublishedQuizzes(ctx, memberA)
	require.NoError(t, err)
	require.Len(t, live, 1)

	_, err = f.quizzes.UnpublishQuiz(ctx, adminA, qs.ID)
	require.NoError(t, err)
	live, err = f.quizzes.GetPublishedQuizzes(ctx, memberA)
	require.NoError(t, err)
	assert.Empty(t, live)

	name := "Q1 v2"
	updated, err := f.quizzes.UpdateQuizSet(ctx, adminA, qs.ID, domain.QuizSetUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	shared, err := f.quizzes.CreateQuizSet(ctx, f.root, QuizSetInput{Name: "shared", Questions: radioQuestions(1), IsPublished: true})
	require.NoError(t, err)
	assert.ErrorIs(t, f.quizzes.DeleteQuizSet(ctx, adminA, shared.ID), domain.ErrForbidden)

	require.NoError(t, f.quizzes.DeleteQuizSet(ctx, adminA, qs.ID))
	questions, _ := f.store.GetQuestionsByQuizSet(ctx, qs.ID)
	assert.Empty(t, questions)
}

func TestQuizLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, admin, err := f.tenants.CreateApprovedTenant(ctx, f.root, CreateTenantInput{
		Name: "Tiny", Settings: &domain.TenantSettings{MaxQuizzes: 1, MaxAdmins: 1},
		AdminName: "A", AdminEmail: "a@tiny.test", AdminPassword: "pw",
	})
	require.NoError(t, err)
	actor := ActorFromUser(admin)

	_, err = f.quizzes.CreateQuizSet(ctx, actor, QuizSetInput{Name: "one", Questions: radioQuestions(1)})
	require.NoError(t, err)
	_, err = f.quizzes.CreateQuizSet(ctx, actor, QuizSetInput{Name: "two", Questions: radioQuestions(1)})
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
}
