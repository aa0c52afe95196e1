//go:build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"sunnah-steps/config"
	"sunnah-steps/handlers"
	"sunnah-steps/helper"
	"sunnah-steps/middleware"
	"sunnah-steps/models"
	"sunnah-steps/repositories"
	"sunnah-steps/services"
	"sunnah-steps/session"
)

type IntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	router    *gin.Engine
	token     string
	userID    string
}

type envelope struct {
	Code        int             `json:"code"`
	CodeMessage string          `json:"code_message"`
	CodeType    string          `json:"code_type"`
	Data        json.RawMessage `json:"data"`
}

func (suite *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sunnah_steps_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	suite.Require().NoError(err, "failed to start postgres container")
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := config.InitDB(ctx, &config.Config{DatabaseURL: dsn}, log)
	suite.Require().NoError(err)
	suite.db = db

	suite.setupRouter(log)
}

func (suite *IntegrationTestSuite) setupRouter(log *logrus.Logger) {
	gin.SetMode(gin.TestMode)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(suite.db)
	articleRepo := repositories.NewArticleRepository(suite.db)
	progressRepo := repositories.NewProgressRepository(suite.db)

	// Initialize services
	tokenService := services.NewTokenService([]byte("test-secret"), time.Hour)
	authService := services.NewAuthService(userRepo, tokenService)

	registry := prometheus.NewRegistry()
	suite.router = handlers.NewRouter(handlers.RouterDeps{
		AuthService:     authService,
		TokenService:    tokenService,
		ProgressService: services.NewProgressService(progressRepo, articleRepo, time.UTC),
		ArticleService:  services.NewArticleService(articleRepo),
		Helper:          helper.NewHTTPHelper(log),
		Logger:          log,
		Metrics:         middleware.NewMetrics(registry),
		Gatherer:        registry,
	})
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := suite.container.Terminate(ctx); err != nil {
		suite.T().Logf("failed to terminate container: %v", err)
	}
}

func (suite *IntegrationTestSuite) SetupTest() {
	// Clean all tables before each test
	suite.db.Exec("TRUNCATE TABLE quiz_results, bookmarks, read_events, progresses, articles, users RESTART IDENTITY CASCADE")

	suite.registerTestUser()
}

func (suite *IntegrationTestSuite) do(method, path, token string, body interface{}) (int, envelope) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (suite *IntegrationTestSuite) registerTestUser() {
	code, env := suite.do(http.MethodPost, "/auth/signup", "", models.RegisterRequest{
		Name:     "Amina",
		Email:    "Amina@Example.com",
		Password: "password123",
	})
	suite.Require().Equal(http.StatusCreated, code, env.CodeMessage)

	var resp models.AuthResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &resp))
	suite.token = resp.Token
	suite.userID = resp.User.ID
}

func (suite *IntegrationTestSuite) createArticle(title string) models.Article {
	code, env := suite.do(http.MethodPost, "/articles", suite.token, models.CreateArticleRequest{
		Title:    title,
		Excerpt:  "An excerpt",
		Content:  "<p>Body</p>",
		Category: "Seerah",
		Image:    "https://img.example.com/a.png",
		Tags:     []string{"Seerah", "Prophet"},
	})
	suite.Require().Equal(http.StatusCreated, code, env.CodeMessage)

	var created struct {
		Article models.Article `json:"article"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &created))
	return created.Article
}

func (suite *IntegrationTestSuite) TestAuthFlow() {
	code, env := suite.do(http.MethodPost, "/auth/signup", "", models.RegisterRequest{
		Name: "Copy", Email: "amina@example.com", Password: "password123",
	})
	suite.Equal(http.StatusConflict, code)
	suite.Equal("User already exists with this email", env.CodeMessage)

	code, env = suite.do(http.MethodPost, "/auth/login", "", models.LoginRequest{Email: "AMINA@example.com", Password: "password123"})
	suite.Require().Equal(http.StatusOK, code)

	var login models.AuthResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &login))
	suite.NotEmpty(login.Token)
	suite.Equal(suite.userID, login.User.ID)

	code, env = suite.do(http.MethodPost, "/auth/login", "", models.LoginRequest{Email: "amina@example.com", Password: "wrong-password"})
	suite.Equal(http.StatusUnauthorized, code)
	suite.Equal("Invalid email or password", env.CodeMessage)
}

func (suite *IntegrationTestSuite) TestGetProfile() {
	code, env := suite.do(http.MethodGet, "/auth/me", suite.token, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.NotContains(string(env.Data), "password")

	var profile models.ProfileResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &profile))
	suite.Equal("Amina", profile.User.Name)
	suite.Equal("amina@example.com", profile.User.Email)
}

func (suite *IntegrationTestSuite) TestCreateAndGetArticle() {
	article := suite.createArticle("Test Article")
	suite.Equal(suite.userID, article.AuthorID)
	suite.Equal([]string{"seerah", "prophet"}, []string(article.Tags))

	code, env := suite.do(http.MethodGet, "/articles/"+article.Slug, "", nil)
	suite.Require().Equal(http.StatusOK, code)

	var got struct {
		Article models.Article `json:"article"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &got))
	suite.Equal(article.ID, got.Article.ID)
	suite.EqualValues(1, got.Article.Views)
	suite.Require().NotNil(got.Article.Author)
	suite.Equal("Amina", got.Article.Author.Name)

	code, _ = suite.do(http.MethodGet, "/articles?category=Seerah&page=1&limit=5", "", nil)
	suite.Equal(http.StatusOK, code)
}

func (suite *IntegrationTestSuite) TestDashboardFlow() {
	article := suite.createArticle("Daily Adhkar")

	code, env := suite.do(http.MethodPost, "/dashboard/bookmark", suite.token, models.BookmarkRequest{ArticleID: article.ID})
	suite.Require().Equal(http.StatusOK, code, env.CodeMessage)
	suite.Equal("Bookmark added", env.CodeMessage)

	code, env = suite.do(http.MethodPost, "/dashboard/read", suite.token, models.RecordReadRequest{ArticleID: article.ID, TimeSpent: 7})
	suite.Require().Equal(http.StatusOK, code, env.CodeMessage)

	var progress models.ProgressResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &progress))
	suite.Equal(1, progress.Progress.Streak)
	suite.Equal(7, progress.Progress.TotalReadingTime)
	suite.Len(progress.Progress.BookmarkedArticles, 1)
	suite.Equal("Daily Adhkar", progress.Progress.BookmarkedArticles[0].Article.Title)

	code, env = suite.do(http.MethodPost, "/dashboard/bookmark", suite.token, models.BookmarkRequest{ArticleID: uuid.NewString()})
	suite.Equal(http.StatusNotFound, code)
	suite.Equal("Article not found", env.CodeMessage)
}

func (suite *IntegrationTestSuite) TestClientSession() {
	srv := httptest.NewServer(suite.router)
	defer srv.Close()

	ctx := context.Background()
	dir := suite.T().TempDir()
	api := session.NewHTTPClient(srv.URL, srv.Client())

	store, err := session.OpenBoltStore(dir)
	suite.Require().NoError(err)
	sess := session.New(api, store)

	suite.Require().NoError(sess.Login(ctx, "amina@example.com", "password123"))
	suite.Equal(session.Authenticated, sess.State())
	suite.True(sess.ShouldShowIntroduction())
	suite.Require().NoError(sess.Close())

	store, err = session.OpenBoltStore(dir)
	suite.Require().NoError(err)
	restarted := session.New(api, store)
	defer restarted.Close()

	suite.Require().NoError(restarted.Start(ctx))
	suite.Equal(session.Authenticated, restarted.State())
	suite.Equal(suite.userID, restarted.User().ID)

	progress, err := api.Progress(ctx, restarted.Token())
	suite.Require().NoError(err)
	suite.Equal(0, progress.Streak)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
