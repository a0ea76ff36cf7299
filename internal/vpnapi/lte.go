package vpnapi

import (
	"context"
	"fmt"
	"net/http"
)

// LteInfo возвращает состояние LTE-дополнения и доступные пакеты.
func (c *Client) LteInfo(ctx context.Context, subscriptionID int64) (*LteDetailInfo, error) {
	var info LteDetailInfo
	path := fmt.Sprintf("/subscriptions/%d/lte", subscriptionID)
	if err := c.getData(ctx, path, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// PurchaseLteResult — итог покупки пакета: сообщение бэкенда и новый баланс.
type PurchaseLteResult struct {
	Message string
	Balance float64
}

// PurchaseLte покупает пакет LTE-трафика с баланса.
func (c *Client) PurchaseLte(ctx context.Context, subscriptionID, packageID int64) (*PurchaseLteResult, error) {
	var resp struct {
		Message string `json:"message"`
		Data    struct {
			Balance float64 `json:"balance"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/subscriptions/%d/lte/purchase", subscriptionID)
	body := map[string]int64{"package_id": packageID}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &PurchaseLteResult{Message: resp.Message, Balance: resp.Data.Balance}, nil
}
