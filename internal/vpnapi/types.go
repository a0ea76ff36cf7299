package vpnapi

// Типы ответов бэкенда. Поля повторяют контракт REST API; клиент ничего
// не пересчитывает, только отображает.

// Profile — сводка по аккаунту для главного экрана.
type Profile struct {
	ID               int64             `json:"id"`
	TelegramID       int64             `json:"telegram_id"`
	Name             string            `json:"name"`
	TelegramUsername string            `json:"telegram_username"`
	Balance          float64           `json:"balance"`
	DaysLeft         int               `json:"days_left"`
	Status           string            `json:"status"` // active | suspended
	Tariff           ProfileTariff     `json:"tariff"`
	Subscriptions    SubscriptionUsage `json:"subscriptions"`
	Referral         ReferralSummary   `json:"referral"`
	CreatedAt        string            `json:"created_at"`
}

// ProfileTariff — тарифные ставки в профиле.
type ProfileTariff struct {
	PricePerMonth     float64 `json:"price_per_month"`
	LtePricePerMonth  float64 `json:"lte_price_per_month"`
	FullPricePerMonth float64 `json:"full_price_per_month"`
	Name              string  `json:"name"`
}

// SubscriptionUsage — использование лимита подписок.
type SubscriptionUsage struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// ReferralSummary — реферальный блок профиля.
type ReferralSummary struct {
	Link     string  `json:"link"`
	Code     string  `json:"code"`
	Invited  int     `json:"invited"`
	Earnings float64 `json:"earnings"`
	Percent  float64 `json:"percent"`
}

// Subscription — элемент списка подписок.
type Subscription struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	UserNumber   int    `json:"user_number"`
	DisplayName  string `json:"display_name"`
	IsActive     bool   `json:"is_active"`
	LteIsActive  bool   `json:"lte_is_active"`
	DaysLeft     int    `json:"days_left"`
	DevicesCount int    `json:"devices_count"`
	DevicesLimit int    `json:"devices_limit"`
	CreatedAt    string `json:"created_at"`
}

// SubscriptionDetail — подписка с URL, устройствами, трафиком и LTE.
type SubscriptionDetail struct {
	Subscription
	SubscriptionURL string       `json:"subscription_url"`
	QRCodeURL       string       `json:"qr_code_url"`
	Devices         []Device     `json:"devices"`
	Traffic         *TrafficInfo `json:"traffic"`
	LteAvailable    bool         `json:"lte_available"`
	Lte             *LteInfo     `json:"lte"`
	UpdatedAt       string       `json:"updated_at"`
}

// TrafficInfo — потребление трафика по подписке.
type TrafficInfo struct {
	UsedBytes     int64  `json:"used_bytes"`
	LimitBytes    int64  `json:"limit_bytes"`
	ResetStrategy string `json:"reset_strategy"` // WEEK | MONTH | NO_RESET
}

// Device — подключённое устройство.
type Device struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	OS         string `json:"os"`
	App        string `json:"app"`
	DeviceType string `json:"device_type"`
	CreatedAt  string `json:"created_at"`
}

// CreateSubscriptionRequest — параметры создания подписки.
type CreateSubscriptionRequest struct {
	Name    string `json:"name,omitempty"`
	WithLte bool   `json:"with_lte,omitempty"`
}

// UpdateSubscriptionRequest — переименование подписки.
type UpdateSubscriptionRequest struct {
	Name string `json:"name"`
}

// LteInfo — краткое состояние LTE-дополнения в деталях подписки.
type LteInfo struct {
	IsActive         bool  `json:"is_active"`
	TrafficUsed      int64 `json:"traffic_used"`
	TrafficLimit     int64 `json:"traffic_limit"`
	PurchasedBytes   int64 `json:"purchased_bytes"`
	FreeMonthlyBytes int64 `json:"free_monthly_bytes"`
	ResetDay         int   `json:"reset_day,omitempty"`
}

// LteDetailInfo — полный экран LTE: трафик и доступные пакеты.
type LteDetailInfo struct {
	IsActive       bool         `json:"is_active"`
	Traffic        LteTraffic   `json:"traffic"`
	PurchasedBytes int64        `json:"purchased_bytes"`
	FreeMonthlyGB  float64      `json:"free_monthly_gb"`
	ResetDay       int          `json:"reset_day"`
	Packages       []LtePackage `json:"packages"`
}

// LteTraffic — потребление LTE-трафика.
type LteTraffic struct {
	UsedBytes  int64   `json:"used_bytes"`
	LimitBytes int64   `json:"limit_bytes"`
	UsedGB     float64 `json:"used_gb"`
	LimitGB    float64 `json:"limit_gb"`
}

// LtePackage — покупаемый пакет LTE-трафика.
type LtePackage struct {
	ID        int64   `json:"id"`
	SizeGB    float64 `json:"size_gb"`
	SizeBytes int64   `json:"size_bytes"`
	Price     float64 `json:"price"`
}

// Transaction — запись истории операций.
type Transaction struct {
	ID            int64    `json:"id"`
	Amount        float64  `json:"amount"`
	Type          string   `json:"type"`
	TypeLabel     string   `json:"type_label"`
	Status        string   `json:"status"`
	StatusLabel   string   `json:"status_label"`
	Description   string   `json:"description"`
	PaymentMethod string   `json:"payment_method"`
	BalanceBefore *float64 `json:"balance_before"`
	BalanceAfter  *float64 `json:"balance_after"`
	CreatedAt     string   `json:"created_at"`
}

// Payment — платёж пополнения баланса.
type Payment struct {
	ID          int64   `json:"id"`
	PaymentID   string  `json:"payment_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Provider    string  `json:"provider"`
	Method      string  `json:"method"` // sbp | card | crypto
	MethodLabel string  `json:"method_label"`
	Status      string  `json:"status"` // pending | completed | failed | cancelled
	StatusLabel string  `json:"status_label"`
	PaymentURL  string  `json:"payment_url"`
	PaidAt      string  `json:"paid_at"`
	CreatedAt   string  `json:"created_at"`
}

// CreatePaymentRequest — создание платежа.
type CreatePaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// Referral — реферальный экран: ссылка, статистика, условия, выводы.
type Referral struct {
	Link        string               `json:"link"`
	Code        string               `json:"code"`
	Statistics  ReferralStatistics   `json:"statistics"`
	Conditions  ReferralConditions   `json:"conditions"`
	CanWithdraw bool                 `json:"can_withdraw"`
	Withdrawals []ReferralWithdrawal `json:"withdrawals"`
}

// ReferralStatistics — агрегаты по приглашённым.
type ReferralStatistics struct {
	TotalReferrals   int     `json:"total_referrals"`
	TotalEarnings    float64 `json:"total_earnings"`
	AvailableBalance float64 `json:"available_balance"`
}

// ReferralConditions — условия программы.
type ReferralConditions struct {
	Percent           float64  `json:"percent"`
	MinWithdrawal     float64  `json:"min_withdrawal"`
	WithdrawalMethods []string `json:"withdrawal_methods"`
}

// ReferralWithdrawal — заявка на вывод реферального баланса.
type ReferralWithdrawal struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	MethodLabel string  `json:"method_label"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt string  `json:"processed_at"`
}

// WithdrawRequest — запрос вывода средств.
type WithdrawRequest struct {
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"` // card | usdt
	Details string  `json:"details"`
}

// TariffInfo — публичные тарифы, скидки и бонусы пополнения.
type TariffInfo struct {
	Tariffs         []Tariff         `json:"tariffs"`
	Discounts       []TariffDiscount `json:"discounts"`
	TopupBonuses    []TopupBonus     `json:"topup_bonuses"`
	LtePackages     []LtePackage     `json:"lte_packages"`
	ReferralPercent float64          `json:"referral_percent"`
	MinWithdrawal   float64          `json:"min_withdrawal"`
}

// Tariff — тарифный план.
type Tariff struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PricePerMonth float64  `json:"price_per_month"`
	Features      []string `json:"features"`
	IsDefault     bool     `json:"is_default"`
}

// TariffDiscount — скидка за количество подписок.
type TariffDiscount struct {
	Subscriptions int     `json:"subscriptions"`
	Percent       float64 `json:"percent"`
	Description   string  `json:"description"`
}

// TopupBonus — бонус за сумму пополнения.
type TopupBonus struct {
	MinAmount   float64 `json:"min_amount"`
	Bonus       float64 `json:"bonus"`
	Description string  `json:"description"`
}

// VpnApp — клиентское приложение VPN для платформы.
type VpnApp struct {
	ID                int64  `json:"id"`
	Slug              string `json:"slug"`
	Name              string `json:"name"`
	Image             string `json:"image"`
	PlatformSupport   string `json:"platform_support"`
	DownloadURL       string `json:"download_url"`
	ImportURLTemplate string `json:"import_url_template"`
	IsPaid            bool   `json:"is_paid"`
	IsRecommended     bool   `json:"is_recommended"`
	HasInstruction    bool   `json:"has_instruction"`
}

// PlatformApps — платформа со списком приложений.
type PlatformApps struct {
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	RecommendedApp *VpnApp  `json:"recommended_app"`
	Apps           []VpnApp `json:"apps"`
}

// PlatformsResponse — текущая платформа и остальные.
type PlatformsResponse struct {
	CurrentPlatform *PlatformApps  `json:"current_platform"`
	OtherPlatforms  []PlatformApps `json:"other_platforms"`
}

// DirectLink — токен и ссылка для входа вне Telegram.
type DirectLink struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// PageMeta — метаданные пагинированных списков.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// SubscriptionsMeta — метаданные списка подписок.
type SubscriptionsMeta struct {
	Total  int  `json:"total"`
	Limit  int  `json:"limit"`
	CanAdd bool `json:"can_add"`
}

// DevicesMeta — метаданные списка устройств.
type DevicesMeta struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}
