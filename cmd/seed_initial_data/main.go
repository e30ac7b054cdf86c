package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"quiz-hub/cmd/seed_initial_data/internal/seedmodels"
	"quiz-hub/internal/adapter/snapshot"
	"quiz-hub/internal/config"
	"quiz-hub/internal/domain"
	"quiz-hub/internal/logger"
	"quiz-hub/internal/repository"
	"quiz-hub/internal/service"

	"go.uber.org/zap"
)

const (
	seedFilePath = "configs/seed_data/demo_data.json"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // Ensure logs are flushed
	log := logger.Get()

	log.Info("Starting demo data seeding process...")
	persister, err := snapshot.NewPersister(ctx, log, cfg.Storage)
	if err != nil {
		log.Fatal("Failed to open snapshot storage", zap.Error(err))
	}
	store := repository.NewLocalStore(persister, log, repository.Options{
		Version:    cfg.Store.Version,
		BcryptCost: cfg.Store.BcryptCost,
		SeedAdmin: &repository.SeedAdmin{
			Name:     cfg.Store.SeedAdmin.Name,
			Email:    cfg.Store.SeedAdmin.Email,
			Password: cfg.Store.SeedAdmin.Password,
		},
	})
	if err := store.Initialize(ctx); err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer store.Close(ctx)

	root, err := store.GetUserByEmail(ctx, cfg.Store.SeedAdmin.Email)
	if err != nil || root == nil {
		log.Fatal("Product admin not found; check store.seed_admin.email", zap.Error(err))
	}

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}
	var seed seedmodels.SeedFile
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}

	s := &seeder{
		log:     log,
		tenants: service.NewTenantService(store, log),
		quizzes: service.NewQuizService(store, store, log),
	}
	rootActor := service.ActorFromUser(root)
	s.seedQuizSets(ctx, rootActor, "shared", seed.SharedQuizSets)
	for _, st := range seed.Tenants {
		if err := s.seedTenant(ctx, rootActor, st); err != nil {
			// Continue with the other tenants.
			log.Error("Error seeding tenant", zap.String("tenant", st.Name), zap.Error(err))
		}
	}
	log.Info("Demo data seeding process completed.")
}

type seeder struct {
	log     *zap.Logger
	tenants service.TenantService
	quizzes service.QuizService
}

func (s *seeder) seedTenant(ctx context.Context, root service.Actor, st seedmodels.SeedTenant) error {
	s.log.Info("Processing tenant", zap.String("name", st.Name))
	tenant, admin, err := s.tenants.CreateApprovedTenant(ctx, root, service.CreateTenantInput{
		Name:          st.Name,
		Description:   st.Description,
		Domain:        st.Domain,
		AdminName:     st.Admin.Name,
		AdminEmail:    st.Admin.Email,
		AdminPassword: st.Admin.Password,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		s.log.Info("Tenant admin already exists, skipping tenant.", zap.String("email", st.Admin.Email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create tenant %s: %w", st.Name, err)
	}
	s.log.Info("Created tenant.", zap.String("id", tenant.ID), zap.String("name", tenant.Name))
	s.seedQuizSets(ctx, service.ActorFromUser(admin), tenant.Name, st.QuizSets)
	return nil
}

func (s *seeder) seedQuizSets(ctx context.Context, actor service.Actor, owner string, sets []seedmodels.SeedQuizSet) {
	for _, sq := range sets {
		qs, err := s.quizzes.CreateQuizSet(ctx, actor, service.QuizSetInput{
			Name:        sq.Name,
			Description: sq.Description,
			Questions:   sq.Questions,
			IsPublished: sq.Published,
		})
		if err != nil {
			s.log.Error("Failed to create quiz set", zap.String("owner", owner), zap.String("name", sq.Name), zap.Error(err))
			continue
		}
		s.log.Info("Created quiz set.", zap.String("owner", owner), zap.String("id", qs.ID), zap.Int("questions", len(qs.Questions)))
	}
}
