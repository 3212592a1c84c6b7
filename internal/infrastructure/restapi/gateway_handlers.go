package restapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sequencer_gateway/internal/app/port"
	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIErrorResponse is returned for every failed request.
type APIErrorResponse struct {
	Error             string                            `json:"error"`
	Code              string                            `json:"code,omitempty"`
	GatewayStatusCode int                               `json:"gateway_status_code,omitempty"`
	TransactionStatus *entity.TransactionStatusResponse `json:"transaction_status,omitempty"`
}

// WaitManyRequest is the body of the batch wait endpoint.
type WaitManyRequest struct {
	TransactionHashes []string `json:"transaction_hashes" binding:"required,min=1,dive,required"`
	IntervalMillis    int64    `json:"interval_ms" binding:"gte=0"`
}

// GatewayHandler exposes the sequencer gateway read side over HTTP.
type GatewayHandler struct {
	gateway  port.SequencerReader
	networks port.NetworkDefinitionProvider
	maxWait  time.Duration
	logger   *zap.Logger
}

// NewGatewayHandler creates a handler. maxWait bounds every wait request.
func NewGatewayHandler(gateway port.SequencerReader, networks port.NetworkDefinitionProvider, maxWait time.Duration, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway:  gateway,
		networks: networks,
		maxWait:  maxWait,
		logger:   logger.Named("GatewayHandler"),
	}
}

// HealthHandler reports liveness.
func (h *GatewayHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "chain_id": h.gateway.ChainID()})
}

// GetNetworksHandler lists the built-in networks.
func (h *GatewayHandler) GetNetworksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"networks": h.networks.GetAllNetworkDefinitions()})
}

// GetContractAddressesHandler returns the L1 core contract addresses.
func (h *GatewayHandler) GetContractAddressesHandler(c *gin.Context) {
	res, err := h.gateway.GetContractAddresses(c.Request.Context())
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetBlockHandler returns a block. The :block parameter is pending, latest, a number or a hash;
// the bare route lets the gateway pick.
func (h *GatewayHandler) GetBlockHandler(c *gin.Context) {
	block, err := entity.ParseBlockIdentifier(c.Param("block"))
	if err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.gateway.GetBlock(c.Request.Context(), block)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTransactionHandler returns a transaction.
func (h *GatewayHandler) GetTransactionHandler(c *gin.Context) {
	hash, ok := txHashParam(c)
	if !ok {
		return
	}
	res, err := h.gateway.GetTransaction(c.Request.Context(), hash)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTransactionStatusHandler returns the lifecycle status of a transaction.
func (h *GatewayHandler) GetTransactionStatusHandler(c *gin.Context) {
	hash, ok := txHashParam(c)
	if !ok {
		return
	}
	res, err := h.gateway.GetTransactionStatus(c.Request.Context(), hash)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTransactionReceiptHandler returns a transaction receipt.
func (h *GatewayHandler) GetTransactionReceiptHandler(c *gin.Context) {
	hash, ok := txHashParam(c)
	if !ok {
		return
	}
	res, err := h.gateway.GetTransactionReceipt(c.Request.Context(), hash)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTransactionTraceHandler returns a transaction trace.
func (h *GatewayHandler) GetTransactionTraceHandler(c *gin.Context) {
	hash, ok := txHashParam(c)
	if !ok {
		return
	}
	res, err := h.gateway.GetTransactionTrace(c.Request.Context(), hash)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// WaitForTransactionHandler blocks until the transaction settles, then returns its status.
// The optional interval query parameter is a Go duration.
func (h *GatewayHandler) WaitForTransactionHandler(c *gin.Context) {
	hash, ok := txHashParam(c)
	if !ok {
		return
	}
	interval, err := durationQuery(c, "interval")
	if err != nil {
		badRequest(c, err)
		return
	}

	ctx, cancel := h.waitContext(c.Request.Context())
	defer cancel()
	if err := h.gateway.WaitForTransaction(ctx, hash, interval); err != nil {
		h.abort(c, err)
		return
	}
	res, err := h.gateway.GetTransactionStatus(ctx, hash)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// WaitForTransactionsHandler waits for several transactions at once.
func (h *GatewayHandler) WaitForTransactionsHandler(c *gin.Context) {
	var req WaitManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	hashes := make([]string, 0, len(req.TransactionHashes))
	for _, raw := range req.TransactionHashes {
		hash, err := utils.NormalizeHex(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		hashes = append(hashes, hash)
	}

	ctx, cancel := h.waitContext(c.Request.Context())
	defer cancel()
	interval := time.Duration(req.IntervalMillis) * time.Millisecond
	if err := h.gateway.WaitForTransactions(ctx, hashes, interval); err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction_hashes": hashes})
}

// GetStorageAtHandler reads one storage slot. The key is decimal or hex.
func (h *GatewayHandler) GetStorageAtHandler(c *gin.Context) {
	block, ok := blockQuery(c)
	if !ok {
		return
	}
	key, err := utils.ParseBigInt(c.Param("key"))
	if err != nil {
		badRequest(c, err)
		return
	}
	value, err := h.gateway.GetStorageAt(c.Request.Context(), c.Param("address"), key, block)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value})
}

// GetClassHashAtHandler returns the class hash of a deployed contract.
func (h *GatewayHandler) GetClassHashAtHandler(c *gin.Context) {
	block, ok := blockQuery(c)
	if !ok {
		return
	}
	classHash, err := h.gateway.GetClassHashAt(c.Request.Context(), c.Param("address"), block)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"class_hash": classHash})
}

// GetCodeHandler returns the bytecode and ABI of a deployed contract.
func (h *GatewayHandler) GetCodeHandler(c *gin.Context) {
	block, ok := blockQuery(c)
	if !ok {
		return
	}
	res, err := h.gateway.GetCode(c.Request.Context(), c.Param("address"), block)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GatewayHandler) waitContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.maxWait <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.maxWait)
}

// abort maps client errors onto HTTP statuses.
func (h *GatewayHandler) abort(c *gin.Context, err error) {
	var (
		gwErr     *entity.GatewayError
		httpErr   *entity.HTTPError
		failedErr *entity.TransactionFailedError
	)
	switch {
	case errors.As(err, &failedErr):
		status := failedErr.Response
		c.AbortWithStatusJSON(http.StatusConflict, APIErrorResponse{Error: err.Error(), TransactionStatus: &status})
	case errors.As(err, &gwErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, APIErrorResponse{Error: gwErr.Message, Code: gwErr.Code})
	case errors.As(err, &httpErr):
		c.AbortWithStatusJSON(http.StatusBadGateway, APIErrorResponse{Error: err.Error(), GatewayStatusCode: httpErr.StatusCode})
	case errors.Is(err, context.DeadlineExceeded):
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, APIErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Gateway request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, APIErrorResponse{Error: err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIErrorResponse{Error: err.Error()})
}

func txHashParam(c *gin.Context) (string, bool) {
	hash, err := utils.NormalizeHex(c.Param("hash"))
	if err != nil {
		badRequest(c, err)
		return "", false
	}
	return hash, true
}

func blockQuery(c *gin.Context) (*entity.BlockIdentifier, bool) {
	block, err := entity.ParseBlockIdentifier(c.Query("block"))
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return block, true
}

func durationQuery(c *gin.Context, name string) (time.Duration, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}
