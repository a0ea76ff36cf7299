package vpnapi

import (
	"context"
	"net/http"
)

// Referrals возвращает реферальную сводку.
func (c *Client) Referrals(ctx context.Context) (*Referral, error) {
	var r Referral
	if err := c.getData(ctx, "/referrals", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Withdraw подаёт заявку на вывод реферального баланса.
// Возвращает сообщение бэкенда.
func (c *Client) Withdraw(ctx context.Context, req WithdrawRequest) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/referrals/withdraw", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
