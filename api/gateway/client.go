package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/likecoin/likerid-ens-gateway/api"
	"github.com/likecoin/likerid-ens-gateway/ccip"
	"github.com/likecoin/likerid-ens-gateway/interfaces"
)

// Client performs lookups against a gateway the way a CCIP-read client does.
//
// The gateway URL follows EIP-3668 templating: when it contains "{data}" the
// lookup is a GET with "{sender}" and "{data}" substituted, otherwise the
// request is POSTed to the URL as JSON.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Resolution is a verified gateway answer to a single query.
type Resolution struct {
	// Signer is the address recovered from the response signature.
	Signer common.Address

	// Expires is the end of the response validity window.
	Expires time.Time

	// Function is the signature of the inner resolver call.
	Function string

	// Value is the decoded inner result, see ccip.DecodeResult.
	Value interface{}

	Response interfaces.SignedResponse
}

// Resolve encodes q as resolve(bytes,bytes) calldata on behalf of sender,
// performs the lookup and checks the response signature.
func (c *Client) Resolve(ctx context.Context, sender common.Address, q interfaces.Query) (*Resolution, error) {
	data, err := ccip.EncodeCall(q)
	if err != nil {
		return nil, fmt.Errorf("could not encode query: %w", err)
	}

	call, err := ccip.DecodeCall(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode query: %w", err)
	}

	req := ccip.Request{Sender: sender, Data: data}
	resp, err := c.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	signer, err := ccip.VerifyResponse(req, resp)
	if err != nil {
		return nil, fmt.Errorf("could not verify response: %w", err)
	}

	value, err := ccip.DecodeResult(call.Signature(), resp.Result)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Signer:   signer,
		Expires:  time.Unix(int64(resp.Expires), 0),
		Function: call.Signature(),
		Value:    value,
		Response: resp,
	}, nil
}

// Lookup relays req to the gateway and decodes the returned envelope.
// Non-2xx answers are returned as *api.RequestError.
func (c *Client) Lookup(ctx context.Context, req ccip.Request) (interfaces.SignedResponse, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return interfaces.SignedResponse{}, fmt.Errorf("could not initialize request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return interfaces.SignedResponse{}, fmt.Errorf("could not reach gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return interfaces.SignedResponse{}, fmt.Errorf("could not read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
			errResp.Message = resp.Status
		}
		return interfaces.SignedResponse{}, &api.RequestError{
			StatusCode: resp.StatusCode,
			Err:        errors.New(errResp.Message),
		}
	}

	var lookupResp api.LookupResponse
	if err := json.Unmarshal(body, &lookupResp); err != nil {
		return interfaces.SignedResponse{}, fmt.Errorf("could not parse gateway response: %w", err)
	}

	envelope, err := hexutil.Decode(lookupResp.Data)
	if err != nil {
		return interfaces.SignedResponse{}, fmt.Errorf("could not parse gateway response: %w", err)
	}

	return ccip.DecodeResponse(envelope)
}

func (c *Client) newRequest(ctx context.Context, req ccip.Request) (*http.Request, error) {
	sender := strings.ToLower(req.Sender.Hex())
	data := hexutil.Encode(req.Data)

	if strings.Contains(c.url, "{data}") {
		target := strings.NewReplacer("{sender}", sender, "{data}", data).Replace(c.url)
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	}

	body, err := json.Marshal(api.LookupRequest{Sender: sender, Data: data})
	if err != nil {
		return nil, err
	}

	target := strings.ReplaceAll(c.url, "{sender}", sender)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}
