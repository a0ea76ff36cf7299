package vpnapi

import "context"

// Tariffs возвращает тарифы, скидки и бонусы пополнения.
func (c *Client) Tariffs(ctx context.Context) (*TariffInfo, error) {
	var info TariffInfo
	if err := c.getData(ctx, "/tariffs", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Platforms возвращает приложения VPN по платформам.
func (c *Client) Platforms(ctx context.Context) (*PlatformsResponse, error) {
	var resp PlatformsResponse
	if err := c.getData(ctx, "/platforms", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
