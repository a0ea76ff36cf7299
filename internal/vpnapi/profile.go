package vpnapi

import "context"

// Profile возвращает сводку по аккаунту (GET /me).
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.getData(ctx, "/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DirectLink выдаёт токен и ссылку для входа вне Telegram
// (GET /auth/direct-link, требует авторизации).
func (c *Client) DirectLink(ctx context.Context) (*DirectLink, error) {
	var dl DirectLink
	if err := c.getData(ctx, "/auth/direct-link", nil, &dl); err != nil {
		return nil, err
	}
	return &dl, nil
}
