package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luiz1745/jogo-de-matematica/internal/drill"
	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/llm"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
)

const wrongAnswer = "999999999999999"

type testEnv struct {
	srv   *Server
	http  *httptest.Server
	store *store.Store
	mock  *llm.MockProvider
}

func newTestEnv(t *testing.T, withLLM bool) *testEnv {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger, _ := test.NewNullLogger()
	cfg := Config{
		NewGenerator: func() *drill.Generator { return drill.NewSeededGenerator(42) },
		Repo:         st.EventRepo(),
		Log:          logrus.NewEntry(logger),
		MaxSessions:  3,
		IdleTimeout:  time.Minute,
	}

	env := &testEnv{store: st}
	if withLLM {
		env.mock = llm.NewMockProvider()
		cfg.Explainer = explain.NewService(env.mock, explain.DefaultConfig())
	}
	env.srv = New(cfg)
	env.http = httptest.NewServer(env.srv.Handler())
	t.Cleanup(env.http.Close)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.http.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

func (e *testEnv) createSession(t *testing.T) (string, map[string]any) {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id, body
}

// currentAnswer reads the canonical answer of the live question directly
// from the controller.
func (e *testEnv) currentAnswer(t *testing.T, id string) string {
	t.Helper()
	ls, err := e.srv.get(id)
	require.NoError(t, err)
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.ctrl.CurrentQuestion().Answer.String()
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, false)
	resp, body := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["explain"])
}

func TestCreateAndGetSession(t *testing.T) {
	env := newTestEnv(t, false)
	id, body := env.createSession(t)

	snap := body["snapshot"].(map[string]any)
	assert.Equal(t, float64(1), snap["level"])
	assert.Equal(t, float64(0), snap["score"])
	assert.Equal(t, float64(1), snap["question_index"])
	assert.Equal(t, "question-live", snap["phase"])
	q := body["question"].(map[string]any)
	assert.Contains(t, q["text"], "Fórmula:")

	resp, got := env.do(t, http.MethodGet, "/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, q["text"], got["question"].(map[string]any)["text"])
}

func TestGetSession_NotFound(t *testing.T) {
	env := newTestEnv(t, false)
	resp, body := env.do(t, http.MethodGet, "/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, ErrSessionNotFound.Error(), body["error"])
}

func TestSubmitAnswer_Correct(t *testing.T) {
	env := newTestEnv(t, false)
	id, _ := env.createSession(t)

	resp, body := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers",
		map[string]string{"answer": env.currentAnswer(t, id)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	verdict := body["verdict"].(map[string]any)
	assert.Equal(t, "correct", verdict["kind"])
	assert.Equal(t, "Correto! +10 Pontos", verdict["message"])
	snap := body["snapshot"].(map[string]any)
	assert.Equal(t, float64(10), snap["score"])
	assert.Equal(t, float64(2), snap["question_index"])
	assert.NotEmpty(t, body["next_question"].(map[string]any)["text"])
	assert.Nil(t, body["level_up"])
}

func TestSubmitAnswer_InvalidAndIncorrect(t *testing.T) {
	env := newTestEnv(t, false)
	id, _ := env.createSession(t)

	_, body := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": "abc"})
	assert.Equal(t, "invalid", body["verdict"].(map[string]any)["kind"])
	assert.Equal(t, "Resposta inválida. Tente novamente!", body["verdict"].(map[string]any)["message"])

	_, body = env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": wrongAnswer})
	assert.Equal(t, "incorrect", body["verdict"].(map[string]any)["kind"])
	assert.NotEmpty(t, body["correct_answer"])
	snap := body["snapshot"].(map[string]any)
	assert.Equal(t, float64(1), snap["level"])
	assert.Equal(t, float64(0), snap["score"])
}

func TestSubmitAnswer_Validation(t *testing.T) {
	env := newTestEnv(t, false)
	id, _ := env.createSession(t)

	resp, body := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation failed", body["error"])
	assert.Contains(t, body["fields"], "answer")

	resp, _ = env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"resposta": "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": strings.Repeat("9", maxBodyBytes)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/v1/sessions/missing/answers", map[string]string{"answer": "1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitAnswer_EmptyAndLongAnswersAreGraded(t *testing.T) {
	env := newTestEnv(t, false)
	id, _ := env.createSession(t)

	resp, body := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "invalid", body["verdict"].(map[string]any)["kind"])
	assert.Equal(t, float64(1), body["snapshot"].(map[string]any)["answered"])
	assert.Equal(t, float64(2), body["snapshot"].(map[string]any)["question_index"])

	resp, body = env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": strings.Repeat("7", 200)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, "correct", body["verdict"].(map[string]any)["kind"])
	assert.Equal(t, float64(2), body["snapshot"].(map[string]any)["answered"])
}

func TestSubmitAnswer_LevelUpAfterBlock(t *testing.T) {
	env := newTestEnv(t, false)
	id, _ := env.createSession(t)

	var levelUp map[string]any
	for i := 1; i <= 99; i++ {
		_, body := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers",
			map[string]string{"answer": env.currentAnswer(t, id)})
		if lu, ok := body["level_up"].(map[string]any); ok {
			require.Equal(t, 99, i, "level-up on submission %d", i)
			levelUp = lu
		}
	}
	require.NotNil(t, levelUp)
	assert.Equal(t, float64(2), levelUp["level"])
	assert.Equal(t, "Parabéns! Você avançou para o nível 2.", levelUp["message"])
}

func TestExplain(t *testing.T) {
	t.Run("no provider", func(t *testing.T) {
		env := newTestEnv(t, false)
		id, _ := env.createSession(t)
		resp, _ := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/explain", nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("nothing missed", func(t *testing.T) {
		env := newTestEnv(t, true)
		id, _ := env.createSession(t)
		resp, _ := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/explain", nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, 0, env.mock.CallCount())
	})

	t.Run("after a miss", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.mock.AddResponse(llm.MockResponse{
			Content: json.RawMessage(`{"title":"Passo a passo","steps":["a","b"],"tip":"c"}`),
		})
		id, _ := env.createSession(t)
		ls, _ := env.srv.get(id)
		missed := ls.ctrl.CurrentQuestion()

		env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": wrongAnswer})
		resp, body := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/explain", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Passo a passo", body["title"])
		assert.Equal(t, missed.Answer.String(), body["answer"])
		assert.Contains(t, env.mock.Calls[0].Messages[0].Content, wrongAnswer)
	})

	t.Run("provider failure", func(t *testing.T) {
		env := newTestEnv(t, true)
		env.mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
		id, _ := env.createSession(t)
		env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": wrongAnswer})
		resp, _ := env.do(t, http.MethodPost, "/v1/sessions/"+id+"/explain", nil)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t, false)
	id, _ := env.createSession(t)
	env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": env.currentAnswer(t, id)})

	resp, body := env.do(t, http.MethodDelete, "/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), body["score"])
	assert.Equal(t, float64(1), body["answered"])
	assert.Equal(t, 0, env.srv.Len())

	resp, _ = env.do(t, http.MethodDelete, "/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMaxSessions(t *testing.T) {
	env := newTestEnv(t, false)
	for range 3 {
		env.createSession(t)
	}
	resp, _ := env.do(t, http.MethodPost, "/v1/sessions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t, false)
	id, _ := env.createSession(t)
	env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": "abc"})
	env.do(t, http.MethodPost, "/v1/sessions/"+id+"/answers", map[string]string{"answer": wrongAnswer})

	req, err := http.NewRequest(http.MethodGet, env.http.URL+"/v1/history?limit=1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "incorrect", records[0]["verdict"], "newest first")
	assert.Equal(t, wrongAnswer, records[0]["learner_answer"])
	assert.Equal(t, id, records[0]["session_id"])

	resp2, _ := env.do(t, http.MethodGet, "/v1/history?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestReap(t *testing.T) {
	env := newTestEnv(t, false)
	now := time.Now()
	env.srv.now = func() time.Time { return now }

	env.createSession(t)
	keep, _ := env.createSession(t)

	now = now.Add(45 * time.Second)
	env.do(t, http.MethodGet, "/v1/sessions/"+keep, nil)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, env.srv.Reap(context.Background()))
	assert.Equal(t, 1, env.srv.Len())
	_, err := env.srv.get(keep)
	assert.NoError(t, err)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, false)
	req, err := http.NewRequest(http.MethodOptions, env.http.URL+"/v1/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://escola.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
