package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/supplier-ledger/internal/bookkeeping"
	"github.com/supplier-ledger/internal/domain/collection"
)

var testNow = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return testNow }

type sequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (s *sequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

// recordingStore keeps the last saved copy of each collection
type recordingStore struct {
	mu    sync.Mutex
	saved map[collection.Name][]byte
}

func (s *recordingStore) Load(context.Context, collection.Name, any) (bool, error) {
	return false, nil
}

func (s *recordingStore) Save(_ context.Context, name collection.Name, items any) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[collection.Name][]byte)
	}
	s.saved[name] = raw
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// newTestState builds an in-memory bookkeeper; with a store its mutations are mirrored
func newTestState(t *testing.T, store collection.Store) *bookkeeping.State {
	t.Helper()
	deps := bookkeeping.Deps{
		Store:       store,
		Clock:       fixedClock{},
		IDs:         &sequentialIDs{prefix: "id"},
		ActivityIDs: &sequentialIDs{prefix: "act"},
	}
	if store != nil {
		mirror, err := bookkeeping.NewMirror(store, nil, nil, bookkeeping.MirrorConfig{PoolSize: 2, SaveTimeout: time.Second}, discardLogger())
		require.NoError(t, err)
		t.Cleanup(mirror.Shutdown)
		deps.Mirror = mirror
	}
	return bookkeeping.New(discardLogger(), deps)
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// decodeData unmarshals the envelope and then its data field into dst
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) Response {
	t.Helper()
	var envelope Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope), "Failed to unmarshal top-level response")
	if dst != nil {
		require.NotNil(t, envelope.Data, "'data' field should not be nil")
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dst))
	}
	return envelope
}
