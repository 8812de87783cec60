package api

import (
	"fmt"
	"net/http"
	"time"

	"fundrebalance/internal/domain"
	"fundrebalance/internal/logger"
	"fundrebalance/internal/repository"
	"fundrebalance/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	AllocationService   service.AllocationService
	QuoteService        service.QuoteService
	OrderBookRepository repository.OrderBookRepository
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "fund rebalancer is running"})
	})
	router.POST("/rebalance", m.rebalance)
	router.GET("/price", m.price)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

// each allocation error kind gets its own status so callers can tell a
// bad request from a flaky oracle without string-matching messages
func statusFromErrorCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrorCodeInvalidInput:
		return http.StatusBadRequest
	case domain.ErrorCodeInfeasible:
		return http.StatusUnprocessableEntity
	case domain.ErrorCodePriceUnavailable:
		return http.StatusBadGateway
	case domain.ErrorCodeDivisionByZeroPrice:
		return http.StatusBadGateway
	case domain.ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	code, ok := domain.ErrorCodeOf(err)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"code":  "internal",
		})
		return
	}
	c.AbortWithStatusJSON(statusFromErrorCode(code), gin.H{
		"error": err.Error(),
		"code":  string(code),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	log := zap.S().With(
		"requestID", requestID,
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	ctx.Request = ctx.Request.WithContext(
		logger.NewContext(ctx.Request.Context(), log),
	)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("handled request",
		"ip", ctx.ClientIP(),
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
