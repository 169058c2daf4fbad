package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/sbilibin2017/gw-auth-service/internal/repositories"
	"github.com/sbilibin2017/gw-auth-service/internal/tokens"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

var configKeys = []string{
	"APP_HOST", "APP_PORT", "APP_LOG_LEVEL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"POSTGRES_MAX_OPEN_CONNS", "POSTGRES_MAX_IDLE_CONNS",
	"REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT", "REDIS_DB", "REDIS_PASSWORD",
	"REDIS_POOL_SIZE", "REDIS_MIN_IDLE_CONNS", "REDIS_EXP_SECOND",
	"BCRYPT_COST", "TOKEN_BYTES",
	"ADMIN_SEED_ENABLED", "ADMIN_USERNAME", "ADMIN_EMAIL", "ADMIN_PASSWORD",
}

// resetEnv blanks the env vars used by parseConfig for the duration of the test.
// An empty value counts as unset.
func resetEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
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

	output := buf.String()
	assert.Contains(t, output, "version v1.0.0")
	assert.Contains(t, output, "commit abcd1234")
	assert.Contains(t, output, "build 2025-09-26")
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv(t)

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, config{
		AppHost:           "localhost",
		AppPort:           "8080",
		LogLevel:          "info",
		PGHost:            "localhost",
		PGPort:            5432,
		PGUser:            "user",
		PGPassword:        "password",
		PGDB:              "database",
		PGMaxOpenConns:    16,
		PGMaxIdleConns:    8,
		RedisHost:         "localhost",
		RedisPort:         6379,
		RedisPoolSize:     10,
		RedisMinIdleConns: 2,
		RedisExpSecond:    300,
		BcryptCost:        10,
		TokenBytes:        32,
		AdminUsername:     "admin",
		AdminEmail:        "admin@localhost",
	}, cfg)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv(t)
	env := map[string]string{
		"APP_HOST":                "127.0.0.1",
		"APP_PORT":                "9090",
		"APP_LOG_LEVEL":           "debug",
		"POSTGRES_HOST":           "pg.example.com",
		"POSTGRES_PORT":           "5433",
		"POSTGRES_USER":           "admin",
		"POSTGRES_PASSWORD":       "secret",
		"POSTGRES_DB":             "mydb",
		"POSTGRES_MAX_OPEN_CONNS": "20",
		"POSTGRES_MAX_IDLE_CONNS": "10",
		"REDIS_ENABLED":           "true",
		"REDIS_HOST":              "redis.example.com",
		"REDIS_PORT":              "6380",
		"REDIS_DB":                "2",
		"REDIS_PASSWORD":          "redispass",
		"REDIS_POOL_SIZE":         "15",
		"REDIS_MIN_IDLE_CONNS":    "5",
		"REDIS_EXP_SECOND":        "120",
		"BCRYPT_COST":             "12",
		"TOKEN_BYTES":             "48",
		"ADMIN_SEED_ENABLED":      "true",
		"ADMIN_USERNAME":          "root",
		"ADMIN_EMAIL":             "root@example.com",
		"ADMIN_PASSWORD":          "s3cret",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, config{
		AppHost:           "127.0.0.1",
		AppPort:           "9090",
		LogLevel:          "debug",
		PGHost:            "pg.example.com",
		PGPort:            5433,
		PGUser:            "admin",
		PGPassword:        "secret",
		PGDB:              "mydb",
		PGMaxOpenConns:    20,
		PGMaxIdleConns:    10,
		RedisEnabled:      true,
		RedisHost:         "redis.example.com",
		RedisPort:         6380,
		RedisDB:           2,
		RedisPassword:     "redispass",
		RedisPoolSize:     15,
		RedisMinIdleConns: 5,
		RedisExpSecond:    120,
		BcryptCost:        12,
		TokenBytes:        48,
		AdminSeedEnabled:  true,
		AdminUsername:     "root",
		AdminEmail:        "root@example.com",
		AdminPassword:     "s3cret",
	}, cfg)
}

func TestParseConfig_FromFile(t *testing.T) {
	resetEnv(t)
	// godotenv never overrides a variable that exists, even when empty
	os.Unsetenv("APP_PORT")
	os.Unsetenv("TOKEN_BYTES")

	path := t.TempDir() + "/test.env"
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nTOKEN_BYTES=24\n"), 0o600))

	cfg, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
	assert.Equal(t, 24, cfg.TokenBytes)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad postgres port", env: map[string]string{"POSTGRES_PORT": "abc"}},
		{name: "bad redis flag", env: map[string]string{"REDIS_ENABLED": "maybe"}},
		{name: "bad bcrypt cost", env: map[string]string{"BCRYPT_COST": "high"}},
		{name: "seed without password", env: map[string]string{"ADMIN_SEED_ENABLED": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := parseConfig("nonexistent.env")
			assert.Error(t, err)
		})
	}
}

// ------------------ Integration ------------------

func startPostgres(t *testing.T, ctx context.Context) (host string, port int) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { c.Terminate(context.Background()) })

	host, err = c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, "5432")
	require.NoError(t, err)
	return host, mapped.Int()
}

func startRedis(t *testing.T, ctx context.Context) (host string, port int) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { c.Terminate(context.Background()) })

	host, err = c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return host, mapped.Int()
}

func freePort(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return fmt.Sprint(lis.Addr().(*net.TCPAddr).Port)
}

func doRequest(t *testing.T, method, url string, body io.Reader, auth func(r *http.Request)) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if auth != nil {
		auth(req)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func basic(username, password string) func(r *http.Request) {
	return func(r *http.Request) { r.SetBasicAuth(username, password) }
}

func bearer(token string) func(r *http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestAuthFlow(t *testing.T) {
	ctx := context.Background()
	pgHost, pgPort := startPostgres(t, ctx)
	redisHost, redisPort := startRedis(t, ctx)

	dsn := fmt.Sprintf("postgres://user:password@%s:%d/testdb?sslmode=disable", pgHost, pgPort)
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, repositories.Migrate(ctx, db))

	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%d", redisHost, redisPort)})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	cfg := config{BcryptCost: 4, TokenBytes: 32}
	svc := newAuthService(db, repositories.NewTokenCacheRepository(rdb, time.Minute), cfg)
	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "admin", "admin-pass"))
	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "admin", "other"), "seeding twice is harmless")

	srv := httptest.NewServer(newRouter(db, svc, tokens.New(cfg.TokenBytes), prometheus.NewRegistry()))
	defer srv.Close()
	base := srv.URL + "/auth/users"

	// Register
	resp, body := doRequest(t, http.MethodPost, base,
		bytes.NewBufferString(`{"email":"alice@example.com","username":"alice","passwd":"wonderland","profilePic":"https://example.com/alice.png"}`), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var alice models.UserPublic
	require.NoError(t, json.Unmarshal(body, &alice))
	assert.Equal(t, "alice", alice.Username)
	assert.False(t, alice.IsAdmin)
	assert.NotContains(t, string(body), "wonderland")

	resp, _ = doRequest(t, http.MethodPost, base,
		bytes.NewBufferString(`{"email":"other@example.com","username":"alice","passwd":"x"}`), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Basic login
	resp, _ = doRequest(t, http.MethodPost, base+"/login", nil, basic("alice", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodPost, base+"/login", nil, basic("nobody", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodPost, base+"/login", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doRequest(t, http.MethodPost, base+"/login", nil, basic("alice", "wonderland"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var aliceToken models.TokenDB
	require.NoError(t, json.Unmarshal(body, &aliceToken))
	assert.Equal(t, alice.ID, aliceToken.UserID)
	assert.NotEmpty(t, aliceToken.Value)

	// A second login keeps the first token valid
	resp, _ = doRequest(t, http.MethodPost, base+"/login", nil, basic("alice", "wonderland"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Bearer routes, twice to exercise the cache
	for i := 0; i < 2; i++ {
		resp, _ = doRequest(t, http.MethodPost, base+"/login/token", nil, bearer(aliceToken.Value))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, _ = doRequest(t, http.MethodPost, base+"/login/token", nil, bearer("bogus"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodGet, base+"/details", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = doRequest(t, http.MethodGet, base+"/profilePic", nil, bearer(aliceToken.Value))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://example.com/alice.png", string(body))

	resp, body = doRequest(t, http.MethodGet, base, nil, bearer(aliceToken.Value))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.UserPublic
	require.NoError(t, json.Unmarshal(body, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)

	// Admin promotion
	resp, _ = doRequest(t, http.MethodPost, base+"/makeAdmin?name=alice", nil, bearer(aliceToken.Value))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = doRequest(t, http.MethodPost, base+"/login", nil, basic("admin", "admin-pass"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var adminToken models.TokenDB
	require.NoError(t, json.Unmarshal(body, &adminToken))

	resp, _ = doRequest(t, http.MethodPost, base+"/makeAdmin", nil, bearer(adminToken.Value))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodPost, base+"/makeAdmin?name=ghost", nil, bearer(adminToken.Value))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodPost, base+"/makeAdmin?name=alice", nil, bearer(adminToken.Value))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The promotion is visible on the next request with the same cached token
	resp, body = doRequest(t, http.MethodGet, base+"/details", nil, bearer(aliceToken.Value))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var details models.UserPublic
	require.NoError(t, json.Unmarshal(body, &details))
	assert.Equal(t, alice.ID, details.ID)
	assert.True(t, details.IsAdmin)

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `auth_http_requests_total{method="POST",route="/auth/users/makeAdmin",status="403"} 1`)
}

func TestRun_Success(t *testing.T) {
	ctx := context.Background()
	pgHost, pgPort := startPostgres(t, ctx)
	redisHost, redisPort := startRedis(t, ctx)

	cfg := config{
		AppHost:           "127.0.0.1",
		AppPort:           freePort(t),
		LogLevel:          "debug",
		PGHost:            pgHost,
		PGPort:            pgPort,
		PGUser:            "user",
		PGPassword:        "password",
		PGDB:              "testdb",
		PGMaxOpenConns:    5,
		PGMaxIdleConns:    2,
		RedisEnabled:      true,
		RedisHost:         redisHost,
		RedisPort:         redisPort,
		RedisPoolSize:     10,
		RedisMinIdleConns: 2,
		RedisExpSecond:    60,
		BcryptCost:        4,
		TokenBytes:        32,
		AdminSeedEnabled:  true,
		AdminUsername:     "admin",
		AdminEmail:        "admin@example.com",
		AdminPassword:     "admin-pass",
	}

	testCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- run(testCtx, cfg) }()

	url := fmt.Sprintf("http://%s:%s/auth/users/login", cfg.AppHost, cfg.AppPort)
	require.Eventually(t, func() bool {
		req, _ := http.NewRequest(http.MethodPost, url, nil)
		req.SetBasicAuth("admin", "admin-pass")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 20*time.Second, 200*time.Millisecond)

	cancel()

	select {
	case <-time.After(15 * time.Second):
		t.Fatal("run did not stop after cancel")
	case err := <-errCh:
		assert.NoError(t, err)
	}
}
