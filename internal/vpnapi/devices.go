package vpnapi

import (
	"context"
	"fmt"
	"net/http"
)

// DevicesList — устройства подписки с метой лимита.
type DevicesList struct {
	Data []Device    `json:"data"`
	Meta DevicesMeta `json:"meta"`
}

// Devices возвращает устройства подписки.
func (c *Client) Devices(ctx context.Context, subscriptionID int64) (*DevicesList, error) {
	var list DevicesList
	path := fmt.Sprintf("/subscriptions/%d/devices", subscriptionID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteDevice отключает одно устройство по индексу.
func (c *Client) DeleteDevice(ctx context.Context, subscriptionID int64, index int) error {
	path := fmt.Sprintf("/subscriptions/%d/devices/%d", subscriptionID, index)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// DeleteAllDevices отключает все устройства подписки.
func (c *Client) DeleteAllDevices(ctx context.Context, subscriptionID int64) error {
	path := fmt.Sprintf("/subscriptions/%d/devices", subscriptionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
