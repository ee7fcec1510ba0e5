package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agari/common/cache"
	comhttp "agari/common/http"
	"agari/core/infrastructure/message"
	"agari/core/infrastructure/persistence"
	"agari/gate/application/service/impl"
	"agari/runtime/game/quiz"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *comhttp.HttpServer {
	t.Helper()
	repo, err := persistence.NewMemoryHistoryRepository(10)
	if err != nil {
		t.Fatal(err)
	}
	c, err := cache.NewResultCache(100, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Close)

	s := comhttp.NewHttpServer(comhttp.WithMode(gin.TestMode))
	s.Use(comhttp.RecoveryMiddleware())
	RegisterRoutes(s, impl.NewScoreService(repo, c, message.NopPublisher{}, quiz.NewGenerator(3), impl.WithQuizMaxCount(5)))
	return s
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, s *comhttp.HttpServer, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad body %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

const pinfuTsumoBody = `{"hand":["1m","1m","2m","3m","4m","5p","6p","6s","7s","8s","2s","3s","4s"],"win":"4p","tsumo":true,"roundWind":"E","seatWind":"S"}`

func TestScoreRoute(t *testing.T) {
	s := newTestServer(t)

	status, env := do(t, s, http.MethodPost, "/api/v1/score", pinfuTsumoBody)
	if status != http.StatusOK || env.Code != comhttp.CodeSuccess {
		t.Fatalf("expected success, got %d %+v", status, env)
	}
	var data struct {
		Result struct {
			Han            int    `json:"han"`
			Fu             int    `json:"fu"`
			FormattedScore string `json:"formattedScore"`
		} `json:"result"`
		HistoryID string `json:"historyId"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Result.Han != 2 || data.Result.Fu != 20 || data.Result.FormattedScore != "400 non-dealer / 700 dealer (total 1500)" {
		t.Fatalf("unexpected result %+v", data.Result)
	}

	status, env = do(t, s, http.MethodGet, "/api/v1/history?limit=5", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var page struct {
		List []struct {
			ID    string `json:"id"`
			Score string `json:"score"`
		} `json:"list"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.List[0].ID != data.HistoryID {
		t.Fatalf("unexpected history page %+v", page)
	}

	if status, _ = do(t, s, http.MethodDelete, "/api/v1/history", ""); status != http.StatusOK {
		t.Fatalf("expected 200 on clear, got %d", status)
	}
	_, env = do(t, s, http.MethodGet, "/api/v1/history", "")
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 0 {
		t.Fatalf("expected empty history, got %d", page.Total)
	}
}

func TestScoreRoute_EngineErrors(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		body string
		code int
		kind string
	}{
		{`{"hand":["1m"],"win":"2m"}`, 20001, "WrongHandSize"},
		{`{"hand":["1m","1m","2m","3m","4m","5p","6p","6s","7s","8s","2s","3s","4s"],"win":"9s"}`, 20003, "NotAWinningShape"},
		{`{"hand":["1m","1m","2m","3m","4m","5p","6p","6s","7s","8s","2s","3s","zz"],"win":"4p"}`, 20005, "InvalidTile"},
	}
	for _, tc := range cases {
		status, env := do(t, s, http.MethodPost, "/api/v1/score", tc.body)
		if status != http.StatusBadRequest || env.Code != tc.code {
			t.Fatalf("%s: expected 400/%d, got %d/%d", tc.kind, tc.code, status, env.Code)
		}
		var data map[string]string
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatal(err)
		}
		if data["kind"] != tc.kind {
			t.Fatalf("expected kind %s, got %v", tc.kind, data)
		}
	}

	// 非法 JSON 由绑定阶段拒绝
	if status, env := do(t, s, http.MethodPost, "/api/v1/score", `{"hand":`); status != http.StatusBadRequest || env.Code != comhttp.CodeInvalidParam {
		t.Fatalf("expected 400 invalid param, got %d %+v", status, env)
	}
}

func TestHelperRoutes(t *testing.T) {
	s := newTestServer(t)

	status, env := do(t, s, http.MethodPost, "/api/v1/agari", `{"tiles":["1m","1m","2m","3m","4m","5p","6p","6s","7s","8s","2s","3s","4s"]}`)
	if status != http.StatusOK {
		t.Fatalf("agari: expected 200, got %d", status)
	}
	var agari struct {
		Waits []string `json:"waits"`
	}
	if err := json.Unmarshal(env.Data, &agari); err != nil {
		t.Fatal(err)
	}
	if len(agari.Waits) != 2 || agari.Waits[0] != "4p" || agari.Waits[1] != "7p" {
		t.Fatalf("unexpected waits %v", agari.Waits)
	}

	_, env = do(t, s, http.MethodPost, "/api/v1/yaku", pinfuTsumoBody)
	var yaku struct {
		Han int `json:"han"`
	}
	if err := json.Unmarshal(env.Data, &yaku); err != nil {
		t.Fatal(err)
	}
	if yaku.Han != 2 {
		t.Fatalf("expected 2 han, got %d", yaku.Han)
	}

	_, env = do(t, s, http.MethodPost, "/api/v1/fu", pinfuTsumoBody)
	var fu struct {
		Fu int `json:"fu"`
	}
	if err := json.Unmarshal(env.Data, &fu); err != nil {
		t.Fatal(err)
	}
	if fu.Fu != 20 {
		t.Fatalf("expected pinfu tsumo 20 fu, got %d", fu.Fu)
	}

	_, env = do(t, s, http.MethodPost, "/api/v1/points", `{"han":4,"fu":30,"dealer":true,"tsumo":true,"honba":1}`)
	var points struct {
		BaseText  string `json:"baseText"`
		HonbaText string `json:"honbaText"`
	}
	if err := json.Unmarshal(env.Data, &points); err != nil {
		t.Fatal(err)
	}
	if points.BaseText != "3900 all (total 11700)" || points.HonbaText != "Honba +100 each (total 300)" {
		t.Fatalf("unexpected points %+v", points)
	}

	if status, _ := do(t, s, http.MethodPost, "/api/v1/points", `{"han":0,"fu":30}`); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero han, got %d", status)
	}
}

func TestQuizAndHealthRoutes(t *testing.T) {
	s := newTestServer(t)

	status, env := do(t, s, http.MethodGet, "/api/v1/quiz?count=2", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	var page struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 questions, got %d", page.Total)
	}

	for _, q := range []string{"count=abc", "count=9"} {
		if status, _ := do(t, s, http.MethodGet, "/api/v1/quiz?"+q, ""); status != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, status)
		}
	}

	if status, env := do(t, s, http.MethodGet, "/health", ""); status != http.StatusOK || env.Code != comhttp.CodeSuccess {
		t.Fatalf("expected healthy, got %d %+v", status, env)
	}
	if status, _ := do(t, s, http.MethodGet, "/ping", ""); status != http.StatusOK {
		t.Fatalf("expected pong, got %d", status)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	status, env := do(t, s, http.MethodGet, "/api/v1/nope", "")
	if status != http.StatusNotFound || env.Code != comhttp.CodeNotFound || env.Message != comhttp.MsgNotFound {
		t.Fatalf("expected 404 envelope, got %d %+v", status, env)
	}
}
