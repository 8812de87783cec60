package api

import (
	"fmt"
	"strconv"

	"fundrebalance/internal/domain"

	"github.com/gin-gonic/gin"
)

type PriceResponse struct {
	Price float64 `json:"price"`
}

// price quotes the cost of converting a usdt amount into the fund
// currency off the live order book. amount defaults to 1 usdt.
func (m ApiHandler) price(c *gin.Context) {
	amountParam := c.DefaultQuery("usdt", "1")
	amount, err := strconv.ParseFloat(amountParam, 64)
	if err != nil {
		returnErrorJson(domain.NewInvalidInputError(fmt.Sprintf("usdt must be a number, got %q", amountParam)), c)
		return
	}

	converted, err := m.QuoteService.Quote(c.Request.Context(), amount)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, PriceResponse{Price: converted})
}
