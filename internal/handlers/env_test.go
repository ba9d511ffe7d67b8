package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/models"
)

var testSecret = []byte("test-secret")

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: decoded})
	return nil
}

func (p *fakePublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	A        *handlers.AuthHandler
	P        *handlers.ProductHandler
	O        *handlers.OrderHandler
	Producer *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}, &models.Order{}, &models.OrderItem{}))

	prod := &fakePublisher{}
	env := &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Producer: prod,
		A:        &handlers.AuthHandler{DB: db, JWTSecret: testSecret, Producer: prod},
		P:        &handlers.ProductHandler{DB: db, Producer: prod},
		O:        &handlers.OrderHandler{DB: db, Producer: prod},
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func signTestToken(t *testing.T, username, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func (env *testEnv) createProduct(p models.Product) models.Product {
	env.T.Helper()
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func (env *testEnv) lastEvent() publishedEvent {
	env.T.Helper()
	events := env.Producer.Events()
	require.NotEmpty(env.T, events)
	return events[len(events)-1]
}
