package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahhal10/Final-Backend/internal/adapter/inference"
	"github.com/rahhal10/Final-Backend/internal/config"
	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/internal/repository"
	"github.com/rahhal10/Final-Backend/internal/service"
	"github.com/rahhal10/Final-Backend/policy"
	"github.com/rahhal10/Final-Backend/tests/helpers"
)

func newTestHandler(t *testing.T, db store.Store, endpoint string, cfgFn func(*config.Config)) *Handler {
	t.Helper()

	cfg := config.Default()
	cfg.InferenceURL = endpoint
	if cfgFn != nil {
		cfgFn(cfg)
	}
	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	client := inference.NewHTTPClient(cfg.InferenceURL, "", time.Second)
	return NewHandler(service.New(db, client, cfg, policyEngine))
}

func postChat(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/ai-chat", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Chat(c))
	return rec
}

func TestChatRecommendCourse(t *testing.T) {
	upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"Try course X","actions":[]}`)
	stub := &helpers.DatasetStub{Rows: map[domain.DatasetName][]domain.Record{
		domain.DatasetCatalog:     helpers.Rows(3),
		domain.DatasetEnrollments: helpers.Rows(1),
		domain.DatasetCartItems:   helpers.Rows(2),
	}}
	h := newTestHandler(t, stub, upstream.URL, nil)

	rec := postChat(t, h, `{"message":"recommend a course","email":"a@x.com","username":"alice"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"Try course X","actions":[]}`, rec.Body.String())
	assert.Equal(t, 1, upstream.Calls())
}

func TestChatRejectsMissingMessage(t *testing.T) {
	for name, body := range map[string]string{
		"empty message":   `{"message":""}`,
		"missing message": `{"email":"a@x.com"}`,
		"empty body":      ``,
	} {
		t.Run(name, func(t *testing.T) {
			upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"unused"}`)
			stub := &helpers.DatasetStub{}
			h := newTestHandler(t, stub, upstream.URL, nil)

			rec := postChat(t, h, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Message is required"}`, rec.Body.String())
			assert.Empty(t, stub.Calls())
			assert.Equal(t, 0, upstream.Calls())
		})
	}
}

func TestChatInvalidJSON(t *testing.T) {
	stub := &helpers.DatasetStub{}
	h := newTestHandler(t, stub, "http://unused", nil)

	rec := postChat(t, h, `{"message":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
	assert.Empty(t, stub.Calls())
}

func TestChatAnonymousSkipsUserDatasets(t *testing.T) {
	upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"ok"}`)
	stub := &helpers.DatasetStub{Rows: map[domain.DatasetName][]domain.Record{
		domain.DatasetEnrollments: helpers.Rows(4),
		domain.DatasetCartItems:   helpers.Rows(4),
	}}
	h := newTestHandler(t, stub, upstream.URL, nil)

	rec := postChat(t, h, `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.False(t, stub.Called(domain.DatasetEnrollments))
	assert.False(t, stub.Called(domain.DatasetCartItems))

	var sent struct {
		DBData map[string][]json.RawMessage `json:"dbData"`
	}
	require.NoError(t, json.Unmarshal(upstream.LastRequest(), &sent))
	assert.NotNil(t, sent.DBData["enrollments"])
	assert.Empty(t, sent.DBData["enrollments"])
	assert.NotNil(t, sent.DBData["cartItems"])
	assert.Empty(t, sent.DBData["cartItems"])
}

func TestChatDatasetFailure(t *testing.T) {
	for _, name := range domain.DatasetNames {
		t.Run(string(name), func(t *testing.T) {
			upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"unused"}`)
			stub := &helpers.DatasetStub{Fail: map[domain.DatasetName]error{name: errors.New("boom")}}
			h := newTestHandler(t, stub, upstream.URL, nil)

			rec := postChat(t, h, `{"message":"hi","email":"a@x.com"}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var resp domain.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Server error", resp.Error)
			assert.Contains(t, resp.Details, string(name))
			assert.Equal(t, 0, upstream.Calls())
		})
	}
}

func TestChatDatasetFailureWithoutDetails(t *testing.T) {
	upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"unused"}`)
	stub := &helpers.DatasetStub{Fail: map[domain.DatasetName]error{domain.DatasetCatalog: errors.New("boom")}}
	h := newTestHandler(t, stub, upstream.URL, func(cfg *config.Config) {
		cfg.ExposeErrorDetails = false
	})

	rec := postChat(t, h, `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, rec.Body.String())
	assert.Equal(t, 0, upstream.Calls())
}

func TestChatRowCaps(t *testing.T) {
	upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"ok"}`)
	stub := &helpers.DatasetStub{Rows: map[domain.DatasetName][]domain.Record{
		domain.DatasetCatalog:     helpers.Rows(80),
		domain.DatasetTasks:       helpers.Rows(60),
		domain.DatasetEnrollments: helpers.Rows(15),
		domain.DatasetCartItems:   helpers.Rows(12),
	}}
	h := newTestHandler(t, stub, upstream.URL, nil)

	rec := postChat(t, h, `{"message":"hi","username":"alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sent struct {
		DBData map[string][]json.RawMessage `json:"dbData"`
	}
	require.NoError(t, json.Unmarshal(upstream.LastRequest(), &sent))
	require.Len(t, sent.DBData, 4)
	assert.Len(t, sent.DBData["catalog"], 50)
	assert.Len(t, sent.DBData["tasks"], 50)
	assert.Len(t, sent.DBData["enrollments"], 10)
	assert.Len(t, sent.DBData["cartItems"], 10)
}

func TestChatUpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "non-success status",
			status: http.StatusBadGateway,
			body:   `model overloaded`,
			want:   `{"error":"Inference service error","details":"model overloaded"}`,
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"answer":"hi"}`,
			want:   `{"error":"Invalid inference service response","details":"reply is missing or not a string"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := helpers.NewUpstreamStub(t, tt.status, tt.body)
			h := newTestHandler(t, &helpers.DatasetStub{}, upstream.URL, nil)

			rec := postChat(t, h, `{"message":"hi"}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestChatMissingInferenceURL(t *testing.T) {
	stub := &helpers.DatasetStub{}
	h := newTestHandler(t, stub, "", nil)

	rec := postChat(t, h, `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"INFERENCE_URL is not set"}`, rec.Body.String())
}

func TestChatPolicyBlocked(t *testing.T) {
	upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"unused"}`)
	stub := &helpers.DatasetStub{}
	h := newTestHandler(t, stub, upstream.URL, func(cfg *config.Config) {
		cfg.MaxMessageLength = 3
	})

	rec := postChat(t, h, `{"message":"hello"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Request blocked by policy","details":"message exceeds maximum length"}`, rec.Body.String())
	assert.Empty(t, stub.Calls())
	assert.Equal(t, 0, upstream.Calls())
}

func TestChatIsIdempotent(t *testing.T) {
	upstream := helpers.NewUpstreamStub(t, http.StatusOK, `{"reply":"Try course X","actions":[{"type":"ADD_TO_CART","id":1}]}`)
	db := helpers.NewTestSQLiteStore(t)
	h := newTestHandler(t, db, upstream.URL, nil)

	body := `{"message":"recommend a course","email":"a@x.com","username":"alice","context":[{"role":"user","content":"hi"}]}`
	first := postChat(t, h, body)
	second := postChat(t, h, body)

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 2, upstream.Calls())
}
