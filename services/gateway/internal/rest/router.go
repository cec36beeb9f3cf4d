// Package rest translates the gateway's REST surface into named contract
// invocations.
package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/pkg/httpx"
)

const maxPayloadBytes = 1 << 20

// Invoker submits or evaluates a named contract invocation. Submit orders a
// transaction; Evaluate reads without ordering.
type Invoker interface {
	Submit(ctx context.Context, name string, args ...string) ([]byte, error)
	Evaluate(ctx context.Context, name string, args ...string) ([]byte, error)
}

type handler struct {
	invoker Invoker
	log     *zap.Logger
}

func NewRouter(invoker Invoker, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handler{invoker: invoker, log: log}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/accounts", h.createAsset("createAccount"))
	r.Get("/accounts/{id}", h.getAsset)
	r.Post("/accounts/{id}/deposits", h.deposit)

	r.Post("/real_estate", h.createAsset("createRealEstate"))
	r.Get("/real_estate/{id}", h.getAsset)
	r.Post("/real_estate/{id}/transfers", h.transfer)

	r.Post("/offers", h.createAsset("createOffer"))
	r.Get("/offers/{id}", h.getAsset)
	r.Post("/offers/{id}/signatures", h.addSignature)

	return r
}

// createAsset forwards the request body untouched; the contract owns
// payload parsing, including its raw-string fallback.
func (h *handler) createAsset(operation string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
		if err != nil {
			httpx.WriteError(w, 400, string(contract.CodeValidation), "failed to read request body", nil)
			return
		}
		h.submit(w, r, 201, operation, string(body))
	}
}

func (h *handler) getAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.invoker.Evaluate(r.Context(), "getAssetById", id)
	observeInvocation("getAssetById", err)
	if err != nil {
		h.writeInvokeError(w, "getAssetById", err)
		return
	}
	httpx.WriteRaw(w, 200, result)
}

func (h *handler) deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Amount contract.Number `json:"amount"`
	}
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(w, 400, string(contract.CodeValidation), err.Error(), nil)
		return
	}
	amount := strconv.FormatFloat(float64(req.Amount), 'f', -1, 64)
	h.submit(w, r, 200, "depositToAccount", id, amount)
}

func (h *handler) transfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		OfferID string `json:"offerId"`
	}
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(w, 400, string(contract.CodeValidation), err.Error(), nil)
		return
	}
	if req.OfferID == "" {
		httpx.WriteError(w, 400, string(contract.CodeValidation), "offerId is required", nil)
		return
	}
	h.submit(w, r, 200, "transferRealEstateOwnership", id, req.OfferID)
}

func (h *handler) addSignature(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Signee string `json:"signee"`
	}
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(w, 400, string(contract.CodeValidation), err.Error(), nil)
		return
	}
	switch req.Signee {
	case "buyer":
		h.submit(w, r, 200, "addBuyerSignatureToOffer", id)
	case "seller":
		h.submit(w, r, 200, "addSellerSignatureToOffer", id)
	default:
		httpx.WriteError(w, 400, string(contract.CodeValidation), `signee must be "buyer" or "seller"`, nil)
	}
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request, status int, operation string, args ...string) {
	result, err := h.invoker.Submit(r.Context(), operation, args...)
	observeInvocation(operation, err)
	if err != nil {
		h.writeInvokeError(w, operation, err)
		return
	}
	httpx.WriteRaw(w, status, result)
}

func (h *handler) writeInvokeError(w http.ResponseWriter, operation string, err error) {
	code := contract.CodeOf(err)
	if code == contract.CodeStore {
		// Errors that crossed the platform boundary arrive flattened.
		code = contract.ParseCode(err.Error())
	}
	h.log.Error("invocation failed",
		zap.String("operation", operation),
		zap.String("code", string(code)),
		zap.Error(err),
	)
	httpx.WriteError(w, statusForCode(code), string(code), err.Error(), nil)
}

func statusForCode(code contract.Code) int {
	switch code {
	case contract.CodeValidation:
		return 400
	case contract.CodeNotFound:
		return 404
	case contract.CodeConflict, contract.CodeConcurrencyConflict:
		return 409
	case contract.CodePreconditionFailed:
		return 412
	case contract.CodeInsufficientFunds:
		return 422
	default:
		return 500
	}
}
