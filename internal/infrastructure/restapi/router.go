package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterOptions configure the optional parts of the router.
type RouterOptions struct {
	CORSAllowedOrigins []string
	// MetricsPath is served by MetricsHandler when both are set.
	MetricsPath    string
	MetricsHandler http.Handler
}

// SetupRouter wires the gateway handler into a gin engine.
func SetupRouter(h *GatewayHandler, opts RouterOptions) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	if len(opts.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = opts.CORSAllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	router.GET("/health", h.HealthHandler)
	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		router.GET(opts.MetricsPath, gin.WrapH(opts.MetricsHandler))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", h.GetNetworksHandler)
		v1.GET("/contract-addresses", h.GetContractAddressesHandler)

		v1.GET("/blocks", h.GetBlockHandler)
		v1.GET("/blocks/:block", h.GetBlockHandler)

		v1.POST("/transactions/wait", h.WaitForTransactionsHandler)
		v1.GET("/transactions/:hash", h.GetTransactionHandler)
		v1.GET("/transactions/:hash/status", h.GetTransactionStatusHandler)
		v1.GET("/transactions/:hash/receipt", h.GetTransactionReceiptHandler)
		v1.GET("/transactions/:hash/trace", h.GetTransactionTraceHandler)
		v1.POST("/transactions/:hash/wait", h.WaitForTransactionHandler)

		v1.GET("/contracts/:address/storage/:key", h.GetStorageAtHandler)
		v1.GET("/contracts/:address/class-hash", h.GetClassHashAtHandler)
		v1.GET("/contracts/:address/code", h.GetCodeHandler)
	}

	return router
}
