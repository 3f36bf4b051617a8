package restapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot/internal/backend/restapi"
	"taskpilot/internal/config"
	"taskpilot/internal/service"
	"taskpilot/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, store.Set("test-token"))
	return store
}

func newClient(t *testing.T, handler http.Handler) (*restapi.Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := newStore(t)
	return restapi.NewWithHTTPClient(srv.URL, srv.Client(), store), store
}

func TestNew_NoToken(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	cfg := &config.Config{Server: "http://localhost:8000"}

	_, err := restapi.New(context.Background(), cfg, store)

	require.ErrorIs(t, err, service.ErrAuthMissing)
}

func TestListTasks_FoldsDescriptionSentinel(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		io.WriteString(w, `[
			{"id": 1, "title": "a", "due_date": "2025-01-01T00:00:00", "description": " "},
			{"id": 2, "title": "b", "due_date": "2025-01-02T00:00:00", "description": "real notes"}
		]`)
	}))

	tasks, err := client.ListTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "", tasks[0].Description, "sentinel should fold to empty")
	assert.Equal(t, "real notes", tasks[1].Description)
}

func TestUpdateTask_EmptyDescriptionSendsSentinel(t *testing.T) {
	var body map[string]any
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tasks/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, `{"id": 7, "title": "a", "due_date": "2025-01-01T00:00:00", "description": " "}`)
	}))

	empty := ""
	updated, err := client.UpdateTask(context.Background(), 7, service.TaskPatch{Description: &empty})

	require.NoError(t, err)
	assert.Equal(t, " ", body["description"], "empty description should be sent as the sentinel")
	assert.Equal(t, "", updated.Description, "response sentinel should fold back to empty")
}

func TestUpdateTask_PatchCarriesOnlySetFields(t *testing.T) {
	var body map[string]any
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		io.WriteString(w, `{"id": 1, "title": "a", "due_date": "2025-01-01T00:00:00"}`)
	}))

	tags := []string{}
	_, err := client.UpdateTask(context.Background(), 1, service.TaskPatch{Tags: &tags})

	require.NoError(t, err)
	require.Len(t, body, 1, "only the tags field should be present")
	// A pointer to an empty slice marshals as [], never null: this is how
	// the last tag is removed.
	assert.Equal(t, []any{}, body["tags"])
}

func TestDo_UnauthorizedClearsSessionOnce(t *testing.T) {
	client, store := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	cleared := 0
	store.NotifyClear(func() { cleared++ })

	_, err := client.ListTasks(context.Background())
	require.ErrorIs(t, err, service.ErrSessionExpired)

	_, err = client.ListTasks(context.Background())
	require.ErrorIs(t, err, service.ErrSessionExpired)

	assert.Equal(t, 1, cleared, "a burst of 401s should clear the session once")
	_, ok := store.Get()
	assert.False(t, ok, "token should be gone")
}

func TestDo_NotFound(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.DeleteTask(context.Background(), 42)

	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestDo_SurfacesDetailMessage(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail": "Tag already exists"}`)
	}))

	_, err := client.CreateTask(context.Background(), service.NewTask{Title: "a", DueDate: "2025-01-01T00:00:00"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tag already exists")
}

func TestDo_OpaqueErrorWithoutDetail(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "boom")
	}))

	_, err := client.ListTasks(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSummary_DecodesReport(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agent/summary", r.URL.Path)
		io.WriteString(w, `{
			"summary": "All on track.",
			"metadata": {"total_tasks": 5, "completed_tasks": 2, "pending_tasks": 3, "completion_rate": 40.0},
			"generated_at": "2025-01-01T10:00:00",
			"prompt_type": "summary"
		}`)
	}))

	report, err := client.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "All on track.", report.Summary)
	assert.Equal(t, 5, report.Metadata.TotalTasks)
	assert.Equal(t, "summary", report.PromptType)
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		// The login endpoint takes the OAuth2 password grant form.
		assert.Equal(t, "/users/login", r.URL.Path)
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token": "tok-123", "token_type": "bearer"}`)
	}))
	defer srv.Close()

	cfg := &config.Config{Server: srv.URL}
	token, err := restapi.Login(context.Background(), cfg, "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail": "Incorrect username or password"}`)
	}))
	defer srv.Close()

	cfg := &config.Config{Server: srv.URL}
	_, err := restapi.Login(context.Background(), cfg, "alice", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect username or password")
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/register", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bob", body["username"])
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 1, "username": "bob"}`)
	}))
	defer srv.Close()

	cfg := &config.Config{Server: srv.URL}
	err := restapi.Register(context.Background(), cfg, "bob", "secret")

	require.NoError(t, err)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail": "Username already registered"}`)
	}))
	defer srv.Close()

	cfg := &config.Config{Server: srv.URL}
	err := restapi.Register(context.Background(), cfg, "bob", "secret")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username already registered")
}

func TestDo_ContextCancelled(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListTasks(ctx)

	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrSessionExpired)
}
