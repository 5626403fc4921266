package worker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QuizBot/internal/integrations/botapi"
)

func newBotAPIPoller(t *testing.T, url string) (*Poller, *recordingHandler, *recordingLogger) {
	t.Helper()

	log := &recordingLogger{}
	handler := &recordingHandler{}
	client := botapi.NewClient(url+"/bot", "TOKEN", time.Second, log, nil)
	return NewPoller(client, handler, log, nil), handler, log
}

func TestPoller_BotAPI_Batch(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("offset"))
		if len(offsets) == 1 {
			fmt.Fprint(w, `{"ok":true,"result":[{"update_id":5},{"update_id":3},{"update_id":7}]}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":[]}`)
	}))
	t.Cleanup(srv.Close)

	p, handler, _ := newBotAPIPoller(t, srv.URL)

	p.RunCycle(context.Background())
	p.RunCycle(context.Background())

	assert.Equal(t, []int64{3, 5, 7}, handler.sorted())
	assert.Equal(t, int64(8), p.LastID())
	assert.Equal(t, []string{"0", "8"}, offsets)
}

func TestPoller_BotAPI_TransportFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p, handler, log := newBotAPIPoller(t, srv.URL)
	p.SetLastID(42)

	assert.NotPanics(t, func() { p.RunCycle(context.Background()) })

	assert.Equal(t, int64(42), p.LastID())
	assert.Empty(t, handler.sorted())
	assert.Equal(t, 1, log.count("error"))
}

func TestPoller_BotAPI_ApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	t.Cleanup(srv.Close)

	p, handler, log := newBotAPIPoller(t, srv.URL)
	p.SetLastID(7)

	p.RunCycle(context.Background())

	assert.Equal(t, int64(7), p.LastID())
	assert.Empty(t, handler.sorted())
	require.Equal(t, 1, log.count("warn"))

	log.mu.Lock()
	defer log.mu.Unlock()
	for _, r := range log.records {
		if r.level == "warn" {
			assert.True(t, strings.Contains(r.msg, "401") && strings.Contains(r.msg, "Unauthorized"), r.msg)
		}
	}
}

func TestPoller_BotAPI_NullResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true,"result":null}`)
	}))
	t.Cleanup(srv.Close)

	p, handler, log := newBotAPIPoller(t, srv.URL)
	p.SetLastID(3)

	p.RunCycle(context.Background())

	assert.Equal(t, int64(3), p.LastID())
	assert.Empty(t, handler.sorted())
	assert.Equal(t, 0, log.count("warn"))
	assert.Equal(t, 0, log.count("error"))
}
