package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/domain/challenge"
	"github.com/crossbind/goapi/stores/challenge/repository"
	"github.com/crossbind/goapi/stores/challenge/usecase"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, usecase.New(repository.NewMemoryNonceRepo(), time.Minute))
	return e
}

func postChallenge(t *testing.T, e *echo.Echo, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, "/challenge", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIssueChallenge(t *testing.T) {
	req := require.New(t)
	e := newTestServer()

	rec := postChallenge(t, e, `{"ensName":"alice.eth","chain":"bitcoin","address":"bc1qexample"}`)
	req.Equal(nethttp.StatusOK, rec.Code)

	ch := challenge.Challenge{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &ch))
	req.Equal("alice.eth", ch.EnsName)
	req.Equal(challenge.Purpose, ch.Purpose)
	req.NotEmpty(ch.Nonce)
}

func TestIssueChallengeErrors(t *testing.T) {
	req := require.New(t)
	e := newTestServer()

	cases := []struct {
		body string
		kind string
	}{
		{`{"ensName":"","chain":"bitcoin","address":"a"}`, "MissingFields"},
		{`{"ensName":"alice.eth","chain":"dogecoin","address":"a"}`, "UnsupportedChain"},
		{`{"ensName":"alice.com","chain":"bitcoin","address":"a"}`, "InvalidEnsName"},
	}

	for _, tc := range cases {
		rec := postChallenge(t, e, tc.body)
		req.Equal(nethttp.StatusBadRequest, rec.Code, tc.body)

		resp := map[string]string{}
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		req.Equal(tc.kind, resp["error"], tc.body)
		req.NotEmpty(resp["message"], tc.body)
	}
}
