package main

import (
	"careerai/internal/cache"
	"careerai/internal/config"
	"careerai/internal/ikigai"
	"careerai/internal/model"
	"careerai/internal/repository"
	"careerai/internal/service"
	"careerai/internal/store"
	"context"
	"errors"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Seeds a demo account with a completed Ikigai result so the dashboard,
// results and explore pages can be exercised without an AI provider.
func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg := config.Load()
	email := getEnv("SEED_EMAIL", "demo@careerai.dev")
	password := getEnv("SEED_PASSWORD", "demo-password")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDatabase)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	users := repository.NewUserRepo(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to create user indexes", zap.Error(err))
	}
	history := repository.NewResultRepo(db)
	authSvc := service.NewAuthService(users, cache.NewTokenCache(rdb), cfg.JWTSecret, cfg.TokenTTL, logger)

	creds := model.CredentialsRequest{Email: email, Password: password}
	session, err := authSvc.Signup(ctx, creds)
	if errors.Is(err, service.ErrEmailTaken) {
		session, err = authSvc.Login(ctx, creds)
	}
	if err != nil {
		logger.Fatal("failed to create demo account", zap.Error(err))
	}

	answers := model.NewQuestionnaireResponse()
	answers[model.CategoryLove].Selected = []string{"Helping others", "Learning new things"}
	answers[model.CategoryGoodAt].Summary = "Explaining difficult ideas simply"
	answers[model.CategoryWorldNeeds].Summary = "Better access to education"
	answers[model.CategoryPaidFor].Summary = "Teaching and curriculum design"

	result := &model.IkigaiResult{
		Summary:     "You light up when helping others learn, and you turn complex topics into clear lessons.",
		Sentiment:   "Motivated",
		Themes:      []string{"Teaching", "Communication", "Access to education"},
		Suggestions: []string{"Instructional Designer", "Developer Advocate", "Learning Experience Designer"},
		Paths:       []string{"Build a portfolio of short courses", "Volunteer as a mentor in a bootcamp"},
	}

	backend := cache.NewSliceCache(rdb)
	if err := store.NewResultStore(backend).Set(ctx, session.UserID, result); err != nil {
		logger.Fatal("failed to store result", zap.Error(err))
	}
	if _, err := store.NewChecklistStore(backend).UpdateStatus(ctx, session.UserID, model.TaskFindIkigai, model.StatusDone); err != nil {
		logger.Fatal("failed to update checklist", zap.Error(err))
	}

	record := &model.ResultRecord{
		UserID:    session.UserID,
		Request:   ikigai.BuildRequest(answers),
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}
	if err := history.Archive(ctx, record); err != nil {
		logger.Fatal("failed to archive result", zap.Error(err))
	}

	logger.Info("seeded demo account",
		zap.String("email", session.Email),
		zap.String("userId", session.UserID),
		zap.String("token", session.Token),
	)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
