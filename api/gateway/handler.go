package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/likecoin/likerid-ens-gateway/api"
	"github.com/likecoin/likerid-ens-gateway/ccip"
	"github.com/likecoin/likerid-ens-gateway/metrics"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// Handler answers off-chain lookups with responses signed by the service.
type Handler struct {
	service *ccip.Service
	log     *slog.Logger
}

func NewHandler(service *ccip.Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes configures the router with the lookup endpoints:
//   - GET /{sender}/{call_data} - callData may carry a ".json" suffix
//   - POST / - JSON encoded api.LookupRequest
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/{sender}/{call_data}", h.HandleGet)
	r.Post("/", h.HandlePost)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	callData := strings.TrimSuffix(chi.URLParam(r, "call_data"), ".json")
	h.lookup(w, r, chi.URLParam(r, "sender"), callData)
}

func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	var body api.LookupRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := decoder.Decode(&body); err != nil {
		h.writeError(w, &api.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid request body: %w", err),
		}, "malformed_request")
		return
	}

	h.lookup(w, r, body.Sender, body.Data)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, sender string, callData string) {
	req, badRequest := parseRequest(sender, callData)
	if badRequest != nil {
		h.writeError(w, badRequest, "malformed_request")
		return
	}

	resp, err := h.service.Handle(r.Context(), req)
	if err != nil {
		reqErr, reason := classify(err)
		if reqErr.StatusCode >= http.StatusInternalServerError {
			h.log.Error("Failed to answer lookup", "err", err, "sender", req.Sender.Hex())
		} else {
			h.log.Debug("Rejected lookup", "err", err, "sender", req.Sender.Hex())
		}
		h.writeError(w, reqErr, reason)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.LookupResponse{Data: hexutil.Encode(resp)}); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func parseRequest(sender string, callData string) (ccip.Request, *api.RequestError) {
	if !common.IsHexAddress(sender) {
		return ccip.Request{}, &api.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid sender address %q", sender),
		}
	}

	data, err := hexutil.Decode(callData)
	if err != nil {
		return ccip.Request{}, &api.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Errorf("invalid call data: %w", err),
		}
	}

	return ccip.Request{Sender: common.HexToAddress(sender), Data: data}, nil
}

// classify maps service errors to their HTTP status and metrics reason.
func classify(err error) (*api.RequestError, string) {
	switch {
	case errors.Is(err, ccip.ErrUnsupportedFunction):
		return &api.RequestError{StatusCode: http.StatusNotFound, Err: err}, "unsupported_function"
	case errors.Is(err, ccip.ErrNameMismatch):
		return &api.RequestError{StatusCode: http.StatusBadRequest, Err: err}, "name_mismatch"
	case errors.Is(err, ccip.ErrMalformedRequest):
		return &api.RequestError{StatusCode: http.StatusBadRequest, Err: err}, "malformed_request"
	default:
		return &api.RequestError{
			StatusCode: http.StatusInternalServerError,
			Err:        errors.New("internal server error"),
		}, "internal"
	}
}

func (h *Handler) writeError(w http.ResponseWriter, reqErr *api.RequestError, reason string) {
	metrics.IncRequestFailed(reason)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reqErr.StatusCode)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Message: reqErr.Error()}); err != nil {
		h.log.Error("Failed to encode error response", "err", err)
	}
}
