package vpnapi

import (
	"context"
	"fmt"
	"net/http"
)

// PaymentsPage — страница платежей.
type PaymentsPage struct {
	Data []Payment `json:"data"`
	Meta PageMeta  `json:"meta"`
}

// Payments возвращает страницу истории платежей.
func (c *Client) Payments(ctx context.Context, page, perPage int) (*PaymentsPage, error) {
	var out PaymentsPage
	if err := c.do(ctx, http.MethodGet, "/payments", pageQuery(page, perPage), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Payment возвращает один платёж; экран пополнения опрашивает его,
// пока статус pending.
func (c *Client) Payment(ctx context.Context, id int64) (*Payment, error) {
	var p Payment
	if err := c.getData(ctx, fmt.Sprintf("/payments/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayment создаёт платёж пополнения и возвращает ссылку на оплату.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	var p Payment
	if err := c.postData(ctx, "/payments", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
