package vpnapi

import (
	"context"
	"net/http"
)

// TransactionsPage — страница истории операций.
type TransactionsPage struct {
	Data []Transaction `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// Transactions возвращает страницу операций; typeFilter пустой — все типы.
func (c *Client) Transactions(ctx context.Context, page, perPage int, typeFilter string) (*TransactionsPage, error) {
	q := pageQuery(page, perPage)
	if typeFilter != "" {
		q.Set("type", typeFilter)
	}
	var out TransactionsPage
	if err := c.do(ctx, http.MethodGet, "/transactions", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
