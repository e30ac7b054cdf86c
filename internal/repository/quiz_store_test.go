package repository

import (
	"context"
	"testing"

	"quiz-hub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuizSetKeepsQuestionOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant := mustTenant(t, s, "Acme", domain.TenantApproved)

	questions := []domain.QuestionInput{
		{Question: "first", ChoiceType: domain.ChoiceRadio, Options: []string{"a", "b"}, CorrectAnswer: domain.AnswerValue{"a"}},
		{Question: "second", ChoiceType: domain.ChoiceMultiple, Options: []string{"a", "b", "c"}, CorrectAnswer: domain.AnswerValue{"a", "c"}},
		{Question: "third", ChoiceType: domain.ChoiceRadio, Options: []string{"x", "y"}, CorrectAnswer: domain.AnswerValue{"y"}},
	}
	qs, err := s.CreateQuizSet(ctx, domain.NewQuizSet{
		Name: "Q1", Questions: questions, CreatedBy: "author", TenantID: tenant.ID,
	})
	require.NoError(t, err)
	require.Len(t, qs.Questions, 3)

	got, err := s.GetQuestionsByQuizSet(ctx, qs.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, q := range got {
		assert.Equal(t, i, q.OrderIndex)
		assert.Equal(t, qs.ID, q.QuizSetID)
		assert.Equal(t, questions[i].Question, q.Question)
	}
	assert.Equal(t, []string{"a", "c"}, got[1].CorrectAnswer)
}

func TestCreateQuizSetValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.CreateQuizSet(ctx, domain.NewQuizSet{
		Name:      "bad",
		CreatedBy: "author",
		Questions: []domain.QuestionInput{{
			Question: "q", ChoiceType: domain.ChoiceRadio, Options: []string{"a", "b"}, CorrectAnswer: domain.AnswerValue{"z"},
		}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.CreateQuizSet(ctx, domain.NewQuizSet{Name: "orphan", CreatedBy: "author", TenantID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, _ := s.GetAllQuizSets(ctx, "")
	assert.Empty(t, all)
	assert.Empty(t, s.data.QuizQuestions)
}

func TestPublishUnpublishScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	tenant := mustTenant(t, s, "Acme", domain.TenantApproved)
	q1 := mustQuizSet(t, s, "Q1", tenant.ID, "author", 3)

	published, err := s.GetPublishedQuizzes(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, published)

	_, err = s.PublishQuiz(ctx, q1.ID)
	require.NoError(t, err)
	published, err = s.GetPublishedQuizzes(ctx, "")
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, q1.ID, published[0].ID)
	assert.Len(t, published[0].Questions, 3)

	_, err = s.UnpublishQuiz(ctx, q1.ID)
	require.NoError(t, err)
	published, err = s.GetPublishedQuizzes(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, published)

	missing, err := s.PublishQuiz(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuizSetListingIsScoped(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	a := mustTenant(t, s, "A", domain.TenantApproved)
	b := mustTenant(t, s, "B", domain.TenantApproved)
	qa := mustQuizSet(t, s, "QA", a.ID, "author", 1)
	mustQuizSet(t, s, "QB", b.ID, "author", 1)
	_, err := s.PublishQuiz(ctx, qa.ID)
	require.NoError(t, err)

	scoped, err := s.GetAllQuizSets(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "QA", scoped[0].Name)

	all, err := s.GetAllQuizSets(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	publishedB, err := s.GetPublishedQuizzes(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, publishedB)
}

func TestUpdateQuizSetReplacesQuestions(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	qs := mustQuizSet(t, s, "Q", "", "author", 3)

	desc := "new description"
	replacement := sampleQuestions(2)
	updated, err := s.UpdateQuizSet(ctx, qs.ID, domain.QuizSetUpdate{Description: &desc, Questions: &replacement})
	require.NoError(t, err)
	assert.Equal(t, "Q", updated.Name)
	assert.Equal(t, desc, updated.Description)
	require.Len(t, updated.Questions, 2)
	assert.Len(t, s.data.QuizQuestions, 2)
	for i, q := range updated.Questions {
		assert.Equal(t, i, q.OrderIndex)
	}

	bad := []domain.QuestionInput{{Question: "", ChoiceType: domain.ChoiceRadio}}
	_, err = s.UpdateQuizSet(ctx, qs.ID, domain.QuizSetUpdate{Questions: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, s.data.QuizQuestions, 2)
}

func TestDeleteQuizSetRemovesQuestions(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	doomed := mustQuizSet(t, s, "doomed", "", "author", 4)
	kept := mustQuizSet(t, s, "kept", "", "author", 2)

	ok, err := s.DeleteQuizSet(ctx, doomed.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, q := range s.data.QuizQuestions {
		assert.NotEqual(t, doomed.ID, q.QuizSetID)
	}
	remaining, _ := s.GetQuestionsByQuizSet(ctx, kept.ID)
	assert.Len(t, remaining, 2)

	got, err := s.GetQuizSetByID(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = s.DeleteQuizSet(ctx, doomed.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
