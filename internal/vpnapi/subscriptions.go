package vpnapi

import (
	"context"
	"fmt"
	"net/http"
)

// SubscriptionsList — список подписок с метой лимита.
type SubscriptionsList struct {
	Data []Subscription    `json:"data"`
	Meta SubscriptionsMeta `json:"meta"`
}

// Subscriptions возвращает список подписок пользователя.
func (c *Client) Subscriptions(ctx context.Context) (*SubscriptionsList, error) {
	var list SubscriptionsList
	if err := c.do(ctx, http.MethodGet, "/subscriptions", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Subscription возвращает детали подписки.
func (c *Client) Subscription(ctx context.Context, id int64) (*SubscriptionDetail, error) {
	var d SubscriptionDetail
	if err := c.getData(ctx, fmt.Sprintf("/subscriptions/%d", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateSubscription создаёт подписку (опционально сразу с LTE).
func (c *Client) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*SubscriptionDetail, error) {
	var d SubscriptionDetail
	if err := c.postData(ctx, "/subscriptions", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RenameSubscription меняет имя подписки (PATCH).
func (c *Client) RenameSubscription(ctx context.Context, id int64, name string) (*SubscriptionDetail, error) {
	var env envelope
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/subscriptions/%d", id), nil,
		UpdateSubscriptionRequest{Name: name}, &env)
	if err != nil {
		return nil, err
	}
	var d SubscriptionDetail
	if err = decodeData(env, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteSubscription удаляет подписку.
func (c *Client) DeleteSubscription(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/subscriptions/%d", id), nil, nil, nil)
}

// ToggleLte включает или выключает LTE-дополнение подписки.
func (c *Client) ToggleLte(ctx context.Context, id int64, enable bool) (bool, error) {
	var out struct {
		LteIsActive bool `json:"lte_is_active"`
	}
	body := map[string]bool{"enable": enable}
	if err := c.postData(ctx, fmt.Sprintf("/subscriptions/%d/lte/toggle", id), body, &out); err != nil {
		return false, err
	}
	return out.LteIsActive, nil
}
