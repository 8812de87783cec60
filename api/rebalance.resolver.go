package api

import (
	"fundrebalance/internal/domain"

	"github.com/gin-gonic/gin"
)

type RebalanceRequest struct {
	AssetCap     float64                 `json:"asset_cap"`
	TotalCapital float64                 `json:"total_capital"`
	Assets       []RebalanceRequestAsset `json:"assets"`
}

type RebalanceRequestAsset struct {
	Symbol string  `json:"symbol"`
	Mcap   float64 `json:"mcap"`
}

type RebalanceResponseAsset struct {
	Symbol          string  `json:"symbol"`
	Price           float64 `json:"price"`
	Amount          float64 `json:"amount"`
	UsdValue        float64 `json:"usd_value"`
	FinalPercentage float64 `json:"final_percentage"`
}

func (m ApiHandler) rebalance(c *gin.Context) {
	var requestBody RebalanceRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(domain.NewInvalidInputError(err.Error()), c)
		return
	}

	assets := []domain.AssetSpec{}
	for _, asset := range requestBody.Assets {
		assets = append(assets, domain.AssetSpec{
			Symbol:    asset.Symbol,
			MarketCap: asset.Mcap,
		})
	}

	allocations, err := m.AllocationService.Allocate(c.Request.Context(), domain.AllocationRequest{
		AssetCap:     requestBody.AssetCap,
		TotalCapital: requestBody.TotalCapital,
		Assets:       assets,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	// response rows keep the request's asset order
	out := []RebalanceResponseAsset{}
	for _, allocation := range allocations {
		out = append(out, RebalanceResponseAsset{
			Symbol:          allocation.Symbol,
			Price:           allocation.Price.InexactFloat64(),
			Amount:          allocation.Amount.InexactFloat64(),
			UsdValue:        allocation.USDValue.InexactFloat64(),
			FinalPercentage: allocation.FinalPercentage,
		})
	}

	c.JSON(200, out)
}
