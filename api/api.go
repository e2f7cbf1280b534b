package api

import (
	"database/sql"
	"fmt"
	"time"

	"assetgraph/internal/app"
	"assetgraph/internal/calculator"
	"assetgraph/internal/logger"
	"assetgraph/internal/repository"
	"assetgraph/internal/service"
	"assetgraph/internal/stream"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ApiHandler struct {
	Db                   *sql.DB
	ValuationService     service.ValuationService
	SyntheticService     calculator.SyntheticService
	ReconcilerHandler    app.ReconcilerHandler
	PriceEventRepository repository.PriceEventRepository
	ValuationRepository  repository.NodeValuationRepository
	HoldingRepository    repository.HoldingRepository
	GptRepository        repository.GptRepository
	Hub                  *stream.Hub
	JwtSigningKey        string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to assetgraph"})
	})

	router.GET("/snapshot", m.snapshot)
	router.GET("/nodeValue", m.nodeValue)
	router.GET("/breakdown", m.breakdown)
	router.GET("/priceHistory", m.priceHistory)
	router.GET("/nodeStats", m.nodeStats)
	router.GET("/holdings", m.holdings)
	router.GET("/describeNode", m.describeNode)
	router.GET("/stream", m.streamValuations)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/updatePrice", m.requireAuth, m.updatePrice)
	router.POST("/registerSynthetic", m.requireAuth, m.registerSynthetic)
	router.POST("/reconcile", m.requireAuth, m.reconcile)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	fmt.Println(err.Error())
	c.AbortWithStatusJSON(500, gin.H{
		"error": err.Error(),
	})
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	fmt.Println(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func logRequestMiddleware(ctx *gin.Context) {
	start := time.Now().UTC()

	ctx.Next()

	logger.Info(
		"%s %s -> %d in %dms",
		ctx.Request.Method,
		ctx.Request.URL.Path,
		ctx.Writer.Status(),
		time.Since(start).Milliseconds(),
	)
}
