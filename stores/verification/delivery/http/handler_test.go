package http

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/ethereum"
	"github.com/crossbind/goapi/domain/challenge"
	"github.com/crossbind/goapi/domain/proof"
	challenge_delivery "github.com/crossbind/goapi/stores/challenge/delivery/http"
	challenge_repository "github.com/crossbind/goapi/stores/challenge/repository"
	challenge_usecase "github.com/crossbind/goapi/stores/challenge/usecase"
	verification_usecase "github.com/crossbind/goapi/stores/verification/usecase"
)

type stubStorage struct{}

func (stubStorage) Store(c ctx.Ctx, p *proof.Proof) (string, error) {
	return "QmStub", nil
}

func (stubStorage) Name() string {
	return "stub"
}

func newTestServer(storage proof.Storage) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	nonces := challenge_repository.NewMemoryNonceRepo()
	challenge_delivery.New(e, challenge_usecase.New(nonces, time.Minute))
	New(e, verification_usecase.New(nonces, storage))
	return e
}

func post(t *testing.T, e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestChallengeThenVerify(t *testing.T) {
	req := require.New(t)
	e := newTestServer(nil)

	privateKey, publicKey, err := ethereum.GenerateKey()
	req.NoError(err)
	address := crypto.PubkeyToAddress(*publicKey).Hex()

	// issue a challenge for the address
	rec := post(t, e, "/challenge", fmt.Sprintf(
		`{"ensName":"alice.eth","chain":"ethereum","address":"%s"}`, address))
	req.Equal(nethttp.StatusOK, rec.Code)

	ch := challenge.Challenge{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &ch))

	// the wallet signs the serialized challenge
	message, err := json.Marshal(ch)
	req.NoError(err)
	sig, err := crypto.Sign(accounts.TextHash(message), privateKey)
	req.NoError(err)

	verifyBody, err := json.Marshal(map[string]string{
		"chain":     "ethereum",
		"address":   address,
		"signature": hexutil.Encode(sig),
		"nonce":     ch.Nonce,
		"message":   string(message),
	})
	req.NoError(err)

	rec = post(t, e, "/verify", string(verifyBody))
	req.Equal(nethttp.StatusOK, rec.Code)

	result := map[string]interface{}{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	req.Equal(true, result["success"])
	req.NotEmpty(result["proofHash"])
	req.Nil(result["ipfsHash"])

	// a second submission of the same nonce is rejected
	rec = post(t, e, "/verify", string(verifyBody))
	req.Equal(nethttp.StatusBadRequest, rec.Code)

	errResp := map[string]string{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &errResp))
	req.Equal("InvalidNonce", errResp["error"])
}

func TestVerifyWithStorage(t *testing.T) {
	req := require.New(t)
	e := newTestServer(stubStorage{})

	privateKey, publicKey, err := ethereum.GenerateKey()
	req.NoError(err)
	address := crypto.PubkeyToAddress(*publicKey).Hex()

	rec := post(t, e, "/challenge", fmt.Sprintf(
		`{"ensName":"alice.eth","chain":"ethereum","address":"%s"}`, address))
	req.Equal(nethttp.StatusOK, rec.Code)

	ch := challenge.Challenge{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &ch))

	message, err := json.Marshal(ch)
	req.NoError(err)
	sig, err := crypto.Sign(accounts.TextHash(message), privateKey)
	req.NoError(err)

	verifyBody, err := json.Marshal(map[string]string{
		"chain":     "ethereum",
		"address":   address,
		"signature": hexutil.Encode(sig),
		"nonce":     ch.Nonce,
		"message":   string(message),
	})
	req.NoError(err)

	rec = post(t, e, "/verify", string(verifyBody))
	req.Equal(nethttp.StatusOK, rec.Code)

	result := map[string]interface{}{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	req.Equal(true, result["success"])
	req.Equal("QmStub", result["ipfsHash"])
}

func TestVerifyBadSignature(t *testing.T) {
	req := require.New(t)
	e := newTestServer(nil)

	_, publicKey, err := ethereum.GenerateKey()
	req.NoError(err)
	address := crypto.PubkeyToAddress(*publicKey).Hex()

	rec := post(t, e, "/challenge", fmt.Sprintf(
		`{"ensName":"alice.eth","chain":"ethereum","address":"%s"}`, address))
	req.Equal(nethttp.StatusOK, rec.Code)

	ch := challenge.Challenge{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &ch))

	otherKey, _, err := ethereum.GenerateKey()
	req.NoError(err)
	sig, err := crypto.Sign(accounts.TextHash([]byte("some message")), otherKey)
	req.NoError(err)

	verifyBody, err := json.Marshal(map[string]string{
		"chain":     "ethereum",
		"address":   address,
		"signature": hexutil.Encode(sig),
		"nonce":     ch.Nonce,
		"message":   "some message",
	})
	req.NoError(err)

	rec = post(t, e, "/verify", string(verifyBody))
	req.Equal(nethttp.StatusBadRequest, rec.Code)

	errResp := map[string]string{}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &errResp))
	req.Equal("InvalidSignature", errResp["error"])
}
