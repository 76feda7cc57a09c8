package transport_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debater/internal/stub"
	"debater/internal/transport"
)

func TestClient_AgainstStubBackend(t *testing.T) {
	srv := httptest.NewServer(stub.NewHandler(nil))
	defer srv.Close()
	client := transport.NewClient(srv.URL, nil)
	ctx := context.Background()

	t.Run("classify greeting as chat", func(t *testing.T) {
		intent, err := client.Classify(ctx, "Hello")
		require.NoError(t, err)
		assert.Equal(t, transport.IntentChat, intent)
	})

	t.Run("classify concrete idea as analysis", func(t *testing.T) {
		intent, err := client.Classify(ctx, "A marketplace for renting tools")
		require.NoError(t, err)
		assert.Equal(t, transport.IntentAnalysis, intent)
	})

	t.Run("chat returns a reply", func(t *testing.T) {
		reply, err := client.Chat(ctx, "Hello")
		require.NoError(t, err)
		assert.NotEmpty(t, reply)
	})

	t.Run("analyze returns all five fields", func(t *testing.T) {
		report, err := client.Analyze(ctx, "A marketplace for renting tools")
		require.NoError(t, err)
		assert.NotEmpty(t, report.Advocate)
		assert.NotEmpty(t, report.Critic)
		assert.NotEmpty(t, report.Research)
		assert.NotEmpty(t, report.Conversational)
		assert.NotEmpty(t, report.Conclusion)
	})
}

func TestClient_NonSuccessStatusBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"model overloaded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()
	client := transport.NewClient(srv.URL, nil)

	_, err := client.Classify(context.Background(), "anything at all here")
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "classify", terr.Op)
	assert.Contains(t, terr.Message, "500")
}

func TestClient_UnreachableBackendBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	client := transport.NewClient(srv.URL, nil)
	_, err := client.Chat(context.Background(), "Hello")

	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "chat", terr.Op)
	assert.Contains(t, terr.Message, "unreachable")
	assert.Error(t, terr.Unwrap())
}

func TestClient_MalformedBodyBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()
	client := transport.NewClient(srv.URL, nil)

	_, err := client.Analyze(context.Background(), "a perfectly fine idea")
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Message, "malformed")
}

func TestClient_UnknownClassificationBecomesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"poem"}`))
	}))
	defer srv.Close()
	client := transport.NewClient(srv.URL, nil)

	_, err := client.Classify(context.Background(), "classify me please now")
	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Message, "poem")
}

func TestClient_SendsIdeaPayload(t *testing.T) {
	var gotBody string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"ok"}`))
	}))
	defer srv.Close()
	client := transport.NewClient(srv.URL+"/", nil) // trailing slash is trimmed

	_, err := client.Chat(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "/chat", gotPath)
	assert.JSONEq(t, `{"idea":"Hello"}`, gotBody)
}
