package main

import (
	"bytes"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/handlers"
	"github.com/sbilibin2017/gw-movie-tracker/internal/middlewares"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	assert.Equal(t, "Starting service version v1.0.0, commit abcd1234, build 2025-09-26\n", buf.String())
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.AppHost)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)

	assert.Equal(t, "localhost", cfg.PGHost)
	assert.Equal(t, 5432, cfg.PGPort)
	assert.Equal(t, 16, cfg.PGMaxOpenConns)
	assert.Equal(t, 8, cfg.PGMaxIdleConns)

	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Equal(t, 2, cfg.RedisMinIdleConns)

	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "movie-engagement", cfg.KafkaTopic)

	assert.Equal(t, "my_super_secret_key", cfg.JWTSecretKey)
	assert.Equal(t, 86400, cfg.JWTExpSecond)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, "uploads/avatars", cfg.AvatarDir)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_LOG_FILE", "/var/log/tracker.log")

	t.Setenv("POSTGRES_HOST", "pg.example.com")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "admin")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "mydb")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "20")
	t.Setenv("POSTGRES_MAX_IDLE_CONNS", "10")

	t.Setenv("REDIS_HOST", "redis.example.com")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_PASSWORD", "redispass")
	t.Setenv("REDIS_POOL_SIZE", "15")
	t.Setenv("REDIS_MIN_IDLE_CONNS", "5")

	t.Setenv("KAFKA_BROKERS", "kafka1:9092, kafka2:9092,")
	t.Setenv("KAFKA_TOPIC", "events")

	t.Setenv("JWT_SECRET_KEY", "supersecret")
	t.Setenv("JWT_EXP_SECOND", "0")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("AVATAR_DIR", "/data/avatars")

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, config{
		AppHost:           "127.0.0.1",
		AppPort:           "9090",
		LogLevel:          "debug",
		LogFile:           "/var/log/tracker.log",
		PGHost:            "pg.example.com",
		PGPort:            5433,
		PGUser:            "admin",
		PGPassword:        "secret",
		PGDB:              "mydb",
		PGMaxOpenConns:    20,
		PGMaxIdleConns:    10,
		RedisHost:         "redis.example.com",
		RedisPort:         6380,
		RedisDB:           2,
		RedisPassword:     "redispass",
		RedisPoolSize:     15,
		RedisMinIdleConns: 5,
		KafkaBrokers:      []string{"kafka1:9092", "kafka2:9092"},
		KafkaTopic:        "events",
		JWTSecretKey:      "supersecret",
		JWTExpSecond:      0,
		BcryptCost:        12,
		AvatarDir:         "/data/avatars",
	}, cfg)
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	t.Setenv("POSTGRES_PORT", "not-a-port")

	_, err := parseConfig("nonexistent.env")
	assert.ErrorContains(t, err, "POSTGRES_PORT")
}

func TestParseConfig_FromFile(t *testing.T) {
	path := t.TempDir() + "/test.env"
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nKAFKA_BROKERS=localhost:9092\n"), 0o600))
	t.Setenv("APP_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	os.Unsetenv("APP_PORT")
	os.Unsetenv("KAFKA_BROKERS")

	cfg, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

type fakeUsers struct {
	*handlers.MockRegisterer
	*handlers.MockAuthenticator
	*handlers.MockUserFinder
}

type fakeEngagement struct {
	*handlers.MockWatchlistManager
	*handlers.MockLikesManager
	*handlers.MockReviewManager
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	me := &models.Identity{UserID: uuid.New(), Username: "alice"}

	resolver := middlewares.NewMockIdentityResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "good").Return(me).AnyTimes()
	resolver.EXPECT().Resolve(gomock.Any(), "stale").Return(nil).AnyTimes()

	watchlist := handlers.NewMockWatchlistManager(ctrl)
	watchlist.EXPECT().ListWatchlist(gomock.Any(), me.UserID).Return(result.Ok([]int64{550}))

	reviews := handlers.NewMockReviewManager(ctrl)
	reviews.EXPECT().ListReviewsByMovie(gomock.Any(), int64(550)).Return(result.Ok([]models.ReviewView{}))

	users := fakeUsers{
		MockRegisterer:    handlers.NewMockRegisterer(ctrl),
		MockAuthenticator: handlers.NewMockAuthenticator(ctrl),
		MockUserFinder:    handlers.NewMockUserFinder(ctrl),
	}
	engagement := fakeEngagement{
		MockWatchlistManager: watchlist,
		MockLikesManager:     handlers.NewMockLikesManager(ctrl),
		MockReviewManager:    reviews,
	}

	router := newRouter(zap.NewNop().Sugar(), resolver, handlers.NewMockTokenRevoker(ctrl),
		users, engagement, handlers.NewMockAvatarStore(ctrl), "http://localhost:8080/swagger/doc.json")

	tests := []struct {
		name         string
		method       string
		path         string
		token        string
		expectedCode int
	}{
		{name: "protected without token", method: http.MethodGet, path: "/watchlist", expectedCode: http.StatusUnauthorized},
		{name: "protected with stale token", method: http.MethodPut, path: "/likes/1", token: "stale", expectedCode: http.StatusUnauthorized},
		{name: "protected with valid token", method: http.MethodGet, path: "/watchlist", token: "good", expectedCode: http.StatusOK},
		{name: "public route", method: http.MethodGet, path: "/movies/550/reviews", expectedCode: http.StatusOK},
		{name: "logout requires identity", method: http.MethodPost, path: "/logout", token: "stale", expectedCode: http.StatusUnauthorized},
		{name: "swagger spec", method: http.MethodGet, path: "/swagger/doc.json", expectedCode: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/wallet", expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}
