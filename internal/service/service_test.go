package service

import (
	"context"
	"testing"

	"quiz-hub/internal/adapter/snapshot"
	"quiz-hub/internal/config"
	"quiz-hub/internal/domain"
	"quiz-hub/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	rootEmail    = "root@quizhub.test"
	rootPassword = "rootpw"
)

type fixture struct {
	store    *repository.LocalStore
	tenants  TenantService
	users    UserService
	quizzes  QuizService
	attempts AttemptService
	auth     AuthService
	root     Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	store := repository.NewLocalStore(snapshot.NewMemoryPersister(), logger, repository.Options{
		BcryptCost: bcrypt.MinCost,
		SeedAdmin:  &repository.SeedAdmin{Name: "Root", Email: rootEmail, Password: rootPassword},
	})
	require.NoError(t, store.Initialize(ctx))

	auth, err := NewAuthService(store, store, config.JWTConfig{SecretKey: "0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)

	root, err := store.GetUserByEmail(ctx, rootEmail)
	require.NoError(t, err)
	require.NotNil(t, root)

	return &fixture{
		store:    store,
		tenants:  NewTenantService(store, logger),
		users:    NewUserService(store, logger),
		quizzes:  NewQuizService(store, store, logger),
		attempts: NewAttemptService(store, store, logger),
		auth:     auth,
		root:     ActorFromUser(root),
	}
}

// approvedTenant creates an approved tenant with an active admin and returns
// the admin as an actor.
func (f *fixture) approvedTenant(t *testing.T, name, adminEmail string) (*domain.Tenant, Actor) {
	t.Helper()
	tenant, admin, err := f.tenants.CreateApprovedTenant(context.Background(), f.root, CreateTenantInput{
		Name: name, AdminName: "Admin", AdminEmail: adminEmail, AdminPassword: "adminpw",
	})
	require.NoError(t, err)
	require.NotNil(t, admin)
	return tenant, ActorFromUser(admin)
}

func (f *fixture) member(t *testing.T, admin Actor, email string) Actor {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), admin, CreateUserInput{
		Name: "Member", Email: email, Password: "memberpw", Role: domain.RoleUser,
	})
	require.NoError(t, err)
	return ActorFromUser(u)
}

func radioQuestions(n int) []domain.QuestionInput {
	out := make([]domain.QuestionInput, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.QuestionInput{
			Question:      "Pick a",
			ChoiceType:    domain.ChoiceRadio,
			Options:       []string{"a", "b"},
			CorrectAnswer: domain.AnswerValue{"a"},
		})
	}
	return out
}
