package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/likecoin/likerid-ens-gateway/api"
	"github.com/likecoin/likerid-ens-gateway/ccip"
	"github.com/likecoin/likerid-ens-gateway/ens"
	"github.com/likecoin/likerid-ens-gateway/interfaces"
	"github.com/likecoin/likerid-ens-gateway/kms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	testSender  = common.HexToAddress("0x1234567890123456789012345678901234567890")
	testAddress = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testNow     = time.Unix(1700000000, 0)
)

type mapResolver map[interfaces.RecordType]string

func (m mapResolver) Resolve(_ context.Context, q interfaces.Query) interfaces.ResolutionResult {
	return interfaces.ResolutionResult{Value: []byte(m[q.Type]), TTL: 300}
}

type failingKey struct{}

func (failingKey) Address() common.Address { return common.Address{} }
func (failingKey) SignDigest([32]byte) ([]byte, error) {
	return nil, errors.New("hsm unavailable")
}

func testRouter(t *testing.T, key interfaces.ResponseSigner) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := mapResolver{
		interfaces.RecordAddr: testAddress.Hex(),
		interfaces.RecordText: "Alice",
	}
	signer := ccip.NewSigner(key).WithClock(func() time.Time { return testNow })
	handler := NewHandler(ccip.NewService(resolver, signer), logger)

	mux := chi.NewRouter()
	handler.RegisterRoutes(mux)
	return mux
}

func testKey(t *testing.T) *kms.SigningKey {
	key, err := kms.ParseSigningKey(testKeyHex)
	require.NoError(t, err)
	return key
}

func resolveCalldata(t *testing.T, name string, inner []byte) []byte {
	bytesType, err := abi.NewType("bytes", "", nil)
	require.NoError(t, err)
	encodedName, err := ens.EncodeDNSName(name)
	require.NoError(t, err)

	packed, err := abi.Arguments{{Type: bytesType}, {Type: bytesType}}.Pack(encodedName, inner)
	require.NoError(t, err)
	return append(append([]byte{}, ccip.Selector(ccip.SigResolve)...), packed...)
}

func serve(router http.Handler, req *http.Request) (*http.Response, []byte) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, body
}

func decodeEnvelope(t *testing.T, body []byte) interfaces.SignedResponse {
	var lookup api.LookupResponse
	require.NoError(t, json.Unmarshal(body, &lookup), string(body))
	raw, err := hexutil.Decode(lookup.Data)
	require.NoError(t, err)
	resp, err := ccip.DecodeResponse(raw)
	require.NoError(t, err)
	return resp
}

func errorMessage(t *testing.T, body []byte) string {
	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), string(body))
	return errResp.Message
}

func TestHandleGet(t *testing.T) {
	router := testRouter(t, testKey(t))
	data, err := ccip.EncodeCall(interfaces.AddrQuery("alice.id.like.co", big.NewInt(60)))
	require.NoError(t, err)

	for _, suffix := range []string{".json", ""} {
		req := httptest.NewRequest(http.MethodGet, "/"+testSender.Hex()+"/"+hexutil.Encode(data)+suffix, nil)
		resp, body := serve(router, req)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		envelope := decodeEnvelope(t, body)
		assert.Equal(t, uint64(testNow.Unix())+300, envelope.Expires)

		signer, err := ccip.VerifyResponse(ccip.Request{Sender: testSender, Data: data}, envelope)
		require.NoError(t, err)
		assert.Equal(t, testAddress, signer)

		value, err := ccip.DecodeResult(ccip.SigAddr, envelope.Result)
		require.NoError(t, err)
		assert.Equal(t, testAddress, value)
	}
}

func TestHandlePost_MatchesGet(t *testing.T) {
	router := testRouter(t, testKey(t))
	data, err := ccip.EncodeCall(interfaces.TextQuery("alice.id.like.co", "display"))
	require.NoError(t, err)

	body, err := json.Marshal(api.LookupRequest{Sender: testSender.Hex(), Data: hexutil.Encode(data)})
	require.NoError(t, err)
	postResp, postBody := serve(router, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, postResp.StatusCode, string(postBody))

	getResp, getBody := serve(router, httptest.NewRequest(http.MethodGet, "/"+testSender.Hex()+"/"+hexutil.Encode(data)+".json", nil))
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	assert.JSONEq(t, string(getBody), string(postBody))

	value, err := ccip.DecodeResult(ccip.SigText, decodeEnvelope(t, postBody).Result)
	require.NoError(t, err)
	assert.Equal(t, "Alice", value)
}

func TestHandler_RequestErrors(t *testing.T) {
	router := testRouter(t, testKey(t))
	valid, err := ccip.EncodeCall(interfaces.ContenthashQuery("alice.id.like.co"))
	require.NoError(t, err)

	unknownInner := resolveCalldata(t, "alice.id.like.co", append([]byte{0xde, 0xad, 0xbe, 0xef}, make([]byte, 32)...))

	wrongNode := ens.NameHash("bob.id.like.co")
	mismatch := resolveCalldata(t, "alice.id.like.co", append(append([]byte{}, ccip.Selector(ccip.SigContenthash)...), wrongNode[:]...))

	cases := []struct {
		name   string
		path   string
		status int
	}{
		{"invalid sender", "/0x1234/" + hexutil.Encode(valid) + ".json", http.StatusBadRequest},
		{"invalid hex", "/" + testSender.Hex() + "/0xzz.json", http.StatusBadRequest},
		{"missing prefix", "/" + testSender.Hex() + "/" + strings.TrimPrefix(hexutil.Encode(valid), "0x"), http.StatusBadRequest},
		{"truncated calldata", "/" + testSender.Hex() + "/" + hexutil.Encode(valid[:10]) + ".json", http.StatusBadRequest},
		{"unknown outer selector", "/" + testSender.Hex() + "/0xdeadbeef.json", http.StatusNotFound},
		{"unknown inner selector", "/" + testSender.Hex() + "/" + hexutil.Encode(unknownInner) + ".json", http.StatusNotFound},
		{"namehash mismatch", "/" + testSender.Hex() + "/" + hexutil.Encode(mismatch) + ".json", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := serve(router, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			assert.NotEmpty(t, errorMessage(t, body))
		})
	}
}

func TestHandlePost_InvalidBody(t *testing.T) {
	router := testRouter(t, testKey(t))

	resp, body := serve(router, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, body), "invalid request body")
}

func TestHandler_SigningFailure(t *testing.T) {
	router := testRouter(t, failingKey{})
	data, err := ccip.EncodeCall(interfaces.ContenthashQuery("alice.id.like.co"))
	require.NoError(t, err)

	resp, body := serve(router, httptest.NewRequest(http.MethodGet, "/"+testSender.Hex()+"/"+hexutil.Encode(data)+".json", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", errorMessage(t, body))
}

func TestClient_Resolve(t *testing.T) {
	srv := httptest.NewServer(testRouter(t, testKey(t)))
	defer srv.Close()

	urls := []string{
		srv.URL,
		srv.URL + "/{sender}/{data}.json",
	}

	for _, url := range urls {
		client := NewClient(url, 5*time.Second)

		res, err := client.Resolve(context.Background(), testSender, interfaces.AddrQuery("alice.id.like.co", big.NewInt(60)))
		require.NoError(t, err, url)
		assert.Equal(t, testAddress, res.Signer)
		assert.Equal(t, ccip.SigAddr, res.Function)
		assert.Equal(t, testAddress, res.Value)
		assert.True(t, testNow.Add(300*time.Second).Equal(res.Expires))

		res, err = client.Resolve(context.Background(), testSender, interfaces.TextQuery("alice.id.like.co", "display"))
		require.NoError(t, err, url)
		assert.Equal(t, "Alice", res.Value)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(testRouter(t, testKey(t)))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Lookup(context.Background(), ccip.Request{Sender: testSender, Data: []byte{0xde, 0xad, 0xbe, 0xef}})
	require.Error(t, err)

	var reqErr *api.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Contains(t, reqErr.Error(), "unsupported function")
}
