package ratelimit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chess-fen/internal/shared/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func hit(t *testing.T, app *fiber.App) int {
	return hitFrom(t, app, "203.0.113.7")
}

func hitFrom(t *testing.T, app *fiber.App, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, forwardedFor)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestLimiter_InMemory(t *testing.T) {
	app := fiber.New()
	app.Post("/login", ratelimit.New(ratelimit.Config{Max: 2, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, hit(t, app))
	assert.Equal(t, http.StatusOK, hit(t, app))
	assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
}

func TestLimiter_IgnoresSpoofedForwardedFor(t *testing.T) {
	app := fiber.New()
	app.Post("/login", ratelimit.New(ratelimit.Config{Max: 2, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, hitFrom(t, app, "198.51.100.1"))
	assert.Equal(t, http.StatusOK, hitFrom(t, app, "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(t, app, "198.51.100.3"))
}

func TestLimiter_UsesConfiguredProxyHeader(t *testing.T) {
	app := fiber.New(fiber.Config{ProxyHeader: fiber.HeaderXForwardedFor})
	app.Post("/login", ratelimit.New(ratelimit.Config{Max: 1, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, hitFrom(t, app, "198.51.100.1"))
	assert.Equal(t, http.StatusOK, hitFrom(t, app, "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(t, app, "198.51.100.1"))
}

func TestLimiter_Disabled(t *testing.T) {
	app := fiber.New()
	app.Post("/login", ratelimit.New(ratelimit.Config{Max: 0}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(t, app))
	}
}

type RedisStorageTestSuite struct {
	suite.Suite
	client  *redis.Client
	storage *ratelimit.RedisStorage
}

func (suite *RedisStorageTestSuite) SetupSuite() {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		suite.T().Skip("Redis not available for testing")
		return
	}
	suite.client = client
	suite.storage = ratelimit.NewRedisStorage(client)
}

func (suite *RedisStorageTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.storage.Reset()
		_ = suite.client.Close()
	}
}

func (suite *RedisStorageTestSuite) TestSetGetDelete() {
	require.NoError(suite.T(), suite.storage.Set("k1", []byte("v1"), time.Minute))

	val, err := suite.storage.Get("k1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []byte("v1"), val)

	require.NoError(suite.T(), suite.storage.Delete("k1"))
	val, err = suite.storage.Get("k1")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), val)
}

func (suite *RedisStorageTestSuite) TestReset() {
	require.NoError(suite.T(), suite.storage.Set("a", []byte("1"), time.Minute))
	require.NoError(suite.T(), suite.storage.Set("b", []byte("2"), time.Minute))
	require.NoError(suite.T(), suite.storage.Reset())

	val, err := suite.storage.Get("a")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), val)
}

func TestRedisStorageTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStorageTestSuite))
}
