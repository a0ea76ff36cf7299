package web

import (
	"fmt"
	"html/template"
	"time"

	"chillguy-miniapp/internal/infra/config"
)

// templateFuncs — хелперы форматирования для шаблонов.
var templateFuncs = template.FuncMap{
	"gb":   formatGB,
	"rub":  formatRub,
	"date": formatDate,
	"inc":  func(v int) int { return v + 1 },
	"dec":  func(v int) int { return v - 1 },
}

// formatGB переводит байты в гигабайты для вывода.
func formatGB(bytes int64) string {
	const gib = 1 << 30
	return fmt.Sprintf("%.1f ГБ", float64(bytes)/gib)
}

// formatRub печатает сумму без копеек, если они нулевые.
func formatRub(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%.0f ₽", amount)
	}
	return fmt.Sprintf("%.2f ₽", amount)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatDate приводит дату бэкенда к виду «02.01.2006 15:04» в таймзоне
// приложения. Неразобранную строку возвращает как есть.
func formatDate(raw string) string {
	if raw == "" {
		return "—"
	}
	loc := config.AppLocation
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc).Format("02.01.2006 15:04")
		}
	}
	return raw
}

// layoutTemplate - шапка и подвал всех защищённых экранов
const layoutTemplate = `{{define "page_head"}}
<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.}} - ChillGuy VPN</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
</head>
<body class="bg-gray-50">
    <nav class="bg-white shadow-lg">
        <div class="max-w-3xl mx-auto px-4">
            <div class="flex items-center h-14 gap-4 overflow-x-auto text-sm font-medium text-gray-700">
                <a href="/" class="px-2 py-1 rounded hover:bg-gray-100 whitespace-nowrap">🏠 Главная</a>
                <a href="/subscriptions" class="px-2 py-1 rounded hover:bg-gray-100 whitespace-nowrap">Подписки</a>
                <a href="/top-up" class="px-2 py-1 rounded hover:bg-gray-100 whitespace-nowrap">Пополнить</a>
                <a href="/transactions" class="px-2 py-1 rounded hover:bg-gray-100 whitespace-nowrap">Операции</a>
                <a href="/referrals" class="px-2 py-1 rounded hover:bg-gray-100 whitespace-nowrap">Рефералы</a>
                <a href="/tariffs" class="px-2 py-1 rounded hover:bg-gray-100 whitespace-nowrap">Тарифы</a>
                <a href="/connect" class="px-2 py-1 rounded hover:bg-gray-100 whitespace-nowrap">Подключение</a>
            </div>
        </div>
    </nav>
    <main class="max-w-3xl mx-auto px-4 py-6">
{{end}}

{{define "page_foot"}}
    </main>
</body>
</html>
{{end}}`

// authTemplate - экран авторизации с платформенным шимом.
// Шим собирает initData из Telegram WebApp (если он есть), складывает
// всё в скрытую форму и запускает /auth/start; дальше статус живёт
// в #auth-status и опрашивается фрагментом auth_status.
const authTemplate = `{{define "auth"}}
<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Вход - ChillGuy VPN</title>
    <script src="https://telegram.org/js/telegram-web-app.js"></script>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
</head>
<body class="bg-gray-900 text-white min-h-screen flex items-center justify-center">
    <div class="w-full max-w-sm px-6 text-center">
        <div class="text-5xl mb-4">🛡️</div>
        <h1 class="text-2xl font-bold mb-6">ChillGuy VPN</h1>

        <form id="auth-form"
              hx-post="/auth/start"
              hx-target="#auth-status"
              hx-swap="innerHTML"
              hx-trigger="load">
            <input type="hidden" name="token" value="{{.Token}}">
            <input type="hidden" name="inside" id="auth-inside" value="0">
            <input type="hidden" name="tg_data" id="auth-tg-data" value="">
        </form>

        <div id="auth-status">
            <p class="text-gray-400">Загрузка…</p>
        </div>
    </div>

    <script>
        // Шим выполняется синхронно до инициализации htmx: к моменту
        // hx-trigger="load" скрытые поля уже заполнены. Поля обновляются
        // перед каждым запросом: initData мог появиться после
        // задержавшегося рукопожатия платформы, и повтор обязан увидеть
        // свежие данные. Внутри Telegram inside=1 даже при пустом initData.
        (function () {
            var webApp = window.Telegram && window.Telegram.WebApp;

            function syncPlatformFields() {
                if (!webApp) {
                    return;
                }
                document.getElementById('auth-inside').value = '1';
                document.getElementById('auth-tg-data').value = webApp.initData || '';
            }

            syncPlatformFields();
            if (webApp) {
                webApp.ready();
            }

            document.body.addEventListener('htmx:configRequest', function (evt) {
                syncPlatformFields();
                evt.detail.parameters.inside = document.getElementById('auth-inside').value;
                evt.detail.parameters.tg_data = document.getElementById('auth-tg-data').value;
            });
        })();
    </script>
</body>
</html>
{{end}}`

// authStatusTemplate - фрагмент состояния авторизации (HTMX-опрос)
const authStatusTemplate = `{{define "auth_status"}}
{{if .Failed}}
<div class="space-y-4">
    <p class="text-red-400">{{.Message}}</p>
    <button hx-post="/auth/retry"
            hx-include="#auth-form"
            hx-target="#auth-status"
            hx-swap="innerHTML"
            class="w-full bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded transition">
        Попробовать снова
    </button>
    {{if .ShowBotLink}}
    <a href="{{.BotLink}}" class="block text-blue-400 hover:underline">Открыть бота в Telegram</a>
    {{end}}
</div>
{{else}}
<div hx-get="/auth/status"
     hx-include="#auth-form"
     hx-target="#auth-status"
     hx-swap="innerHTML"
     hx-trigger="load delay:1s">
    <p class="text-gray-400 animate-pulse">Авторизуемся…</p>
</div>
{{end}}
{{end}}`

// dashboardTemplate - главный экран: баланс, тариф, рефералка
const dashboardTemplate = `{{define "dashboard"}}
{{template "page_head" "Главная"}}
<div class="space-y-6">
    <div class="bg-white rounded-lg shadow-md p-6">
        <div class="flex items-center justify-between">
            <div>
                <h1 class="text-2xl font-bold text-gray-900">{{.Profile.Name}}</h1>
                {{if .Profile.TelegramUsername}}<p class="text-gray-500">@{{.Profile.TelegramUsername}}</p>{{end}}
            </div>
            <span class="px-3 py-1 rounded-full text-sm {{if eq .Profile.Status "active"}}bg-green-100 text-green-700{{else}}bg-red-100 text-red-700{{end}}">
                {{if eq .Profile.Status "active"}}Активен{{else}}Приостановлен{{end}}
            </span>
        </div>
        <div class="mt-4 grid grid-cols-2 gap-4">
            <div>
                <p class="text-sm text-gray-500">Баланс</p>
                <p class="text-xl font-bold">{{rub .Profile.Balance}}</p>
            </div>
            <div>
                <p class="text-sm text-gray-500">Осталось дней</p>
                <p class="text-xl font-bold">{{.Profile.DaysLeft}}</p>
            </div>
        </div>
        <a href="/top-up" class="mt-4 block text-center bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded transition">Пополнить баланс</a>
    </div>

    <div class="bg-white rounded-lg shadow-md p-6">
        <h2 class="text-lg font-bold mb-2">Тариф «{{.Profile.Tariff.Name}}»</h2>
        <p class="text-gray-600">Подписка: {{rub .Profile.Tariff.PricePerMonth}}/мес</p>
        <p class="text-gray-600">LTE: {{rub .Profile.Tariff.LtePricePerMonth}}/мес</p>
        <p class="text-gray-600">Подписок: {{.Profile.Subscriptions.Count}} из {{.Profile.Subscriptions.Limit}}</p>
    </div>

    <div class="bg-white rounded-lg shadow-md p-6">
        <h2 class="text-lg font-bold mb-2">Реферальная программа</h2>
        <p class="text-gray-600">Приглашено: {{.Profile.Referral.Invited}} · Заработано: {{rub .Profile.Referral.Earnings}}</p>
        <a href="/referrals" class="text-blue-600 hover:underline">Подробнее →</a>
    </div>

    <div class="bg-white rounded-lg shadow-md p-6 space-y-3">
        <button hx-get="/direct-link" hx-target="#direct-link" hx-swap="innerHTML"
                class="w-full bg-gray-100 hover:bg-gray-200 text-gray-800 px-4 py-2 rounded transition">
            Ссылка для входа в браузере
        </button>
        <p id="direct-link" class="text-sm text-gray-600 break-all"></p>
        <form hx-post="/prefs/music" hx-swap="none">
            <input type="hidden" name="enabled" value="{{if .MusicEnabled}}0{{else}}1{{end}}">
            <button type="submit" class="w-full bg-gray-100 hover:bg-gray-200 text-gray-800 px-4 py-2 rounded transition">
                {{if .MusicEnabled}}🔊 Музыка включена{{else}}🔇 Музыка выключена{{end}}
            </button>
        </form>
        <form method="post" action="/logout">
            <button type="submit" class="w-full text-red-600 hover:bg-red-50 px-4 py-2 rounded transition">Выйти</button>
        </form>
    </div>
</div>
{{template "page_foot"}}
{{end}}`

// subscriptionsTemplate - список подписок
const subscriptionsTemplate = `{{define "subscriptions"}}
{{template "page_head" "Подписки"}}
<div class="space-y-4">
    <div class="flex items-center justify-between">
        <h1 class="text-2xl font-bold text-gray-900">Подписки</h1>
        <span class="text-sm text-gray-500">{{.Meta.Total}} из {{.Meta.Limit}}</span>
    </div>

    {{range .Data}}
    <a href="/subscriptions/{{.ID}}" class="block bg-white rounded-lg shadow-md p-4 hover:shadow-lg transition">
        <div class="flex items-center justify-between">
            <span class="font-bold">{{.DisplayName}}</span>
            <span class="text-sm {{if .IsActive}}text-green-600{{else}}text-red-600{{end}}">
                {{if .IsActive}}активна{{else}}неактивна{{end}}
            </span>
        </div>
        <p class="text-sm text-gray-500 mt-1">
            Осталось дней: {{.DaysLeft}} · Устройств: {{.DevicesCount}}/{{.DevicesLimit}}{{if .LteIsActive}} · LTE{{end}}
        </p>
    </a>
    {{else}}
    <p class="text-gray-500">Подписок пока нет.</p>
    {{end}}

    {{if .Meta.CanAdd}}
    <form method="post" action="/subscriptions" class="bg-white rounded-lg shadow-md p-4 space-y-3">
        <h2 class="font-bold">Новая подписка</h2>
        <input type="text" name="name" placeholder="Название (необязательно)" class="w-full border rounded px-3 py-2">
        <label class="flex items-center gap-2 text-sm text-gray-600">
            <input type="checkbox" name="with_lte" value="1"> Сразу подключить LTE
        </label>
        <button type="submit" class="w-full bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded transition">Создать</button>
    </form>
    {{end}}
</div>
{{template "page_foot"}}
{{end}}`

// subscriptionDetailTemplate - подписка: ссылка, трафик, устройства, LTE
const subscriptionDetailTemplate = `{{define "subscription_detail"}}
{{template "page_head" "Подписка"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">{{.DisplayName}}</h1>

    <div class="bg-white rounded-lg shadow-md p-4 space-y-2">
        <p class="text-sm text-gray-500">Ссылка подписки</p>
        <p class="text-sm break-all font-mono">{{.SubscriptionURL}}</p>
        {{if .QRCodeURL}}<img src="{{.QRCodeURL}}" alt="QR" class="mx-auto w-40 h-40">{{end}}
    </div>

    {{if .Traffic}}
    <div class="bg-white rounded-lg shadow-md p-4">
        <h2 class="font-bold mb-1">Трафик</h2>
        <p class="text-gray-600">{{gb .Traffic.UsedBytes}} из {{gb .Traffic.LimitBytes}}</p>
    </div>
    {{end}}

    <div class="bg-white rounded-lg shadow-md p-4 space-y-2">
        <div class="flex items-center justify-between">
            <h2 class="font-bold">Устройства</h2>
            <button hx-get="/subscriptions/{{.ID}}/devices"
                    hx-target="#device-list"
                    hx-swap="innerHTML"
                    class="text-sm text-blue-600 hover:underline">Обновить</button>
        </div>
        <div id="device-list"
             hx-get="/subscriptions/{{.ID}}/devices"
             hx-trigger="load"
             hx-swap="innerHTML">
            <p class="text-gray-500 text-sm">Загрузка…</p>
        </div>
    </div>

    {{if .LteAvailable}}
    <div class="bg-white rounded-lg shadow-md p-4 space-y-2">
        <h2 class="font-bold">LTE</h2>
        {{if .Lte}}{{if .Lte.IsActive}}
        <p class="text-gray-600">{{gb .Lte.TrafficUsed}} из {{gb .Lte.TrafficLimit}}</p>
        {{end}}{{end}}
        <div class="flex gap-2">
            <form method="post" action="/subscriptions/{{.ID}}/lte/toggle">
                <input type="hidden" name="enable" value="{{if and .Lte .Lte.IsActive}}0{{else}}1{{end}}">
                <button type="submit" class="bg-gray-100 hover:bg-gray-200 px-3 py-1 rounded text-sm">
                    {{if and .Lte .Lte.IsActive}}Отключить LTE{{else}}Включить LTE{{end}}
                </button>
            </form>
            <a href="/subscriptions/{{.ID}}/lte" class="bg-gray-100 hover:bg-gray-200 px-3 py-1 rounded text-sm">Пакеты трафика</a>
        </div>
    </div>
    {{end}}

    <div class="bg-white rounded-lg shadow-md p-4 space-y-3">
        <form method="post" action="/subscriptions/{{.ID}}/rename" class="flex gap-2">
            <input type="text" name="name" value="{{.Name}}" class="flex-1 border rounded px-3 py-2" placeholder="Название">
            <button type="submit" class="bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded transition">Сохранить</button>
        </form>
        <form method="post" action="/subscriptions/{{.ID}}/delete"
              onsubmit="return confirm('Удалить подписку? Действие необратимо.')">
            <button type="submit" class="w-full text-red-600 hover:bg-red-50 px-4 py-2 rounded transition">Удалить подписку</button>
        </form>
    </div>
</div>
{{template "page_foot"}}
{{end}}

{{define "device_list"}}
<p class="text-sm text-gray-500">Подключено: {{len .Devices}} из {{.Limit}}</p>
{{range .Devices}}
<div class="flex items-center justify-between border-t pt-2">
    <div>
        <p class="font-medium">{{.Name}}</p>
        <p class="text-sm text-gray-500">{{.OS}} · {{.App}} · {{date .CreatedAt}}</p>
    </div>
    <form method="post" action="/subscriptions/{{$.SubscriptionID}}/devices/{{.Index}}/delete">
        <button type="submit" class="text-red-600 hover:underline text-sm">Отключить</button>
    </form>
</div>
{{else}}
<p class="text-gray-500 text-sm">Подключённых устройств нет.</p>
{{end}}
{{if .Devices}}
<form method="post" action="/subscriptions/{{.SubscriptionID}}/devices/delete-all" class="pt-2">
    <button type="submit" class="text-sm text-red-600 hover:underline">Отключить все устройства</button>
</form>
{{end}}
{{end}}`

// lteTemplate - трафик LTE и покупка пакетов
const lteTemplate = `{{define "lte"}}
{{template "page_head" "LTE"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">Мобильный интернет</h1>

    {{if .Message}}
    <p class="bg-green-100 text-green-800 rounded px-4 py-2">{{.Message}}</p>
    {{end}}

    <div class="bg-white rounded-lg shadow-md p-4">
        <h2 class="font-bold mb-1">Трафик в этом месяце</h2>
        <p class="text-gray-600">{{printf "%.1f" .Info.Traffic.UsedGB}} из {{printf "%.1f" .Info.Traffic.LimitGB}} ГБ</p>
        <p class="text-sm text-gray-500">Бесплатный лимит обновляется {{.Info.ResetDay}}-го числа.</p>
    </div>

    <div class="bg-white rounded-lg shadow-md p-4 space-y-2">
        <h2 class="font-bold">Дополнительные пакеты</h2>
        {{range .Info.Packages}}
        <form method="post" action="/subscriptions/{{$.SubscriptionID}}/lte/purchase"
              class="flex items-center justify-between border-t pt-2">
            <span>{{printf "%.0f" .SizeGB}} ГБ — {{rub .Price}}</span>
            <input type="hidden" name="package_id" value="{{.ID}}">
            <button type="submit" class="bg-blue-600 hover:bg-blue-700 text-white px-3 py-1 rounded text-sm transition">Купить</button>
        </form>
        {{else}}
        <p class="text-gray-500 text-sm">Пакеты недоступны.</p>
        {{end}}
    </div>

    <a href="/subscriptions/{{.SubscriptionID}}" class="block text-blue-600 hover:underline">← К подписке</a>
</div>
{{template "page_foot"}}
{{end}}`

// topUpTemplate - пополнение баланса + фрагмент опроса платежа
const topUpTemplate = `{{define "top_up"}}
{{template "page_head" "Пополнение"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">Пополнение баланса</h1>

    {{if .Payment}}
    <div class="bg-white rounded-lg shadow-md p-4 space-y-3">
        <p class="font-bold">Платёж на {{rub .Payment.Amount}}</p>
        {{if .Payment.PaymentURL}}
        <a href="{{.Payment.PaymentURL}}" target="_blank"
           class="block text-center bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded transition">Перейти к оплате</a>
        {{end}}
        <div id="payment-status">{{template "payment_status" .Payment}}</div>
    </div>
    {{end}}

    <form method="post" action="/payments" class="bg-white rounded-lg shadow-md p-4 space-y-3">
        <label class="block text-sm text-gray-600">Сумма, ₽
            <input type="number" name="amount" min="1" step="1" required class="w-full border rounded px-3 py-2 mt-1">
        </label>
        <label class="block text-sm text-gray-600">Способ оплаты
            <select name="method" class="w-full border rounded px-3 py-2 mt-1">
                <option value="sbp">СБП</option>
                <option value="card">Банковская карта</option>
                <option value="crypto">Криптовалюта</option>
            </select>
        </label>
        <button type="submit" class="w-full bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded transition">Создать платёж</button>
    </form>

    <a href="/payments" class="block text-blue-600 hover:underline">История платежей →</a>
</div>
{{template "page_foot"}}
{{end}}

{{define "payment_status"}}
{{if eq .Status "pending"}}
<p class="text-gray-500 animate-pulse"
   hx-get="/payments/{{.ID}}/status"
   hx-target="#payment-status"
   hx-swap="innerHTML"
   hx-trigger="load delay:3s">Ожидаем оплату…</p>
{{else if eq .Status "completed"}}
<p class="text-green-600 font-medium">✅ Оплачено</p>
{{else}}
<p class="text-red-600">{{.StatusLabel}}</p>
{{end}}
{{end}}`

// paymentsTemplate - история платежей
const paymentsTemplate = `{{define "payments"}}
{{template "page_head" "Платежи"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">Платежи</h1>

    <div class="bg-white rounded-lg shadow-md divide-y">
        {{range .Data}}
        <div class="p-4 flex items-center justify-between">
            <div>
                <p class="font-medium">{{rub .Amount}} · {{.MethodLabel}}</p>
                <p class="text-sm text-gray-500">{{date .CreatedAt}}</p>
            </div>
            <span class="text-sm {{if eq .Status "completed"}}text-green-600{{else if eq .Status "pending"}}text-gray-500{{else}}text-red-600{{end}}">{{.StatusLabel}}</span>
        </div>
        {{else}}
        <p class="p-4 text-gray-500">Платежей пока нет.</p>
        {{end}}
    </div>

    {{if gt .Meta.LastPage 1}}
    <div class="flex justify-between text-sm">
        {{if gt .Meta.CurrentPage 1}}<a href="/payments?page={{dec .Meta.CurrentPage}}" class="text-blue-600 hover:underline">← Назад</a>{{else}}<span></span>{{end}}
        {{if lt .Meta.CurrentPage .Meta.LastPage}}<a href="/payments?page={{inc .Meta.CurrentPage}}" class="text-blue-600 hover:underline">Вперёд →</a>{{end}}
    </div>
    {{end}}
</div>
{{template "page_foot"}}
{{end}}`

// transactionsTemplate - история операций с фильтром по типу
const transactionsTemplate = `{{define "transactions"}}
{{template "page_head" "Операции"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">Операции</h1>

    <div class="flex gap-2 text-sm">
        <a href="/transactions" class="px-3 py-1 rounded {{if eq .TypeFilter ""}}bg-blue-100 text-blue-700{{else}}bg-gray-100 text-gray-700{{end}}">Все</a>
        <a href="/transactions?type=deposit" class="px-3 py-1 rounded {{if eq .TypeFilter "deposit"}}bg-blue-100 text-blue-700{{else}}bg-gray-100 text-gray-700{{end}}">Пополнения</a>
        <a href="/transactions?type=payment" class="px-3 py-1 rounded {{if eq .TypeFilter "payment"}}bg-blue-100 text-blue-700{{else}}bg-gray-100 text-gray-700{{end}}">Списания</a>
    </div>

    <div class="bg-white rounded-lg shadow-md divide-y">
        {{range .Page.Data}}
        <div class="p-4 flex items-center justify-between">
            <div>
                <p class="font-medium">{{.TypeLabel}}</p>
                <p class="text-sm text-gray-500">{{.Description}}</p>
                <p class="text-sm text-gray-400">{{date .CreatedAt}}</p>
            </div>
            <span class="font-bold {{if gt .Amount 0.0}}text-green-600{{else}}text-gray-900{{end}}">{{rub .Amount}}</span>
        </div>
        {{else}}
        <p class="p-4 text-gray-500">Операций пока нет.</p>
        {{end}}
    </div>

    {{if gt .Page.Meta.LastPage 1}}
    <div class="flex justify-between text-sm">
        {{if gt .Page.Meta.CurrentPage 1}}<a href="/transactions?page={{dec .Page.Meta.CurrentPage}}&type={{.TypeFilter}}" class="text-blue-600 hover:underline">← Назад</a>{{else}}<span></span>{{end}}
        {{if lt .Page.Meta.CurrentPage .Page.Meta.LastPage}}<a href="/transactions?page={{inc .Page.Meta.CurrentPage}}&type={{.TypeFilter}}" class="text-blue-600 hover:underline">Вперёд →</a>{{end}}
    </div>
    {{end}}
</div>
{{template "page_foot"}}
{{end}}`

// referralsTemplate - реферальный экран: ссылка, статистика, вывод средств
const referralsTemplate = `{{define "referrals"}}
{{template "page_head" "Рефералы"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">Реферальная программа</h1>

    {{if .Message}}
    <p class="bg-green-100 text-green-800 rounded px-4 py-2">{{.Message}}</p>
    {{end}}

    <div class="bg-white rounded-lg shadow-md p-4 space-y-2">
        <p class="text-sm text-gray-500">Ваша ссылка</p>
        <p class="text-sm break-all font-mono">{{.Referral.Link}}</p>
        <p class="text-sm text-gray-500">Доля с платежей приглашённых: {{printf "%.0f" .Referral.Conditions.Percent}}%</p>
    </div>

    <div class="bg-white rounded-lg shadow-md p-4 grid grid-cols-3 gap-2 text-center">
        <div>
            <p class="text-xl font-bold">{{.Referral.Statistics.TotalReferrals}}</p>
            <p class="text-sm text-gray-500">приглашено</p>
        </div>
        <div>
            <p class="text-xl font-bold">{{rub .Referral.Statistics.TotalEarnings}}</p>
            <p class="text-sm text-gray-500">заработано</p>
        </div>
        <div>
            <p class="text-xl font-bold">{{rub .Referral.Statistics.AvailableBalance}}</p>
            <p class="text-sm text-gray-500">доступно</p>
        </div>
    </div>

    {{if .Referral.CanWithdraw}}
    <form method="post" action="/referrals/withdraw" class="bg-white rounded-lg shadow-md p-4 space-y-3">
        <h2 class="font-bold">Вывод средств</h2>
        <p class="text-sm text-gray-500">Минимум {{rub .Referral.Conditions.MinWithdrawal}}</p>
        <input type="number" name="amount" min="1" step="1" required placeholder="Сумма, ₽" class="w-full border rounded px-3 py-2">
        <select name="method" class="w-full border rounded px-3 py-2">
            {{range .Referral.Conditions.WithdrawalMethods}}
            <option value="{{.}}">{{.}}</option>
            {{end}}
        </select>
        <input type="text" name="details" required placeholder="Реквизиты" class="w-full border rounded px-3 py-2">
        <button type="submit" class="w-full bg-blue-600 hover:bg-blue-700 text-white px-4 py-2 rounded transition">Вывести</button>
    </form>
    {{end}}

    {{if .Referral.Withdrawals}}
    <div class="bg-white rounded-lg shadow-md divide-y">
        {{range .Referral.Withdrawals}}
        <div class="p-4 flex items-center justify-between">
            <div>
                <p class="font-medium">{{rub .Amount}} · {{.MethodLabel}}</p>
                <p class="text-sm text-gray-500">{{date .CreatedAt}}</p>
            </div>
            <span class="text-sm text-gray-500">{{.StatusLabel}}</span>
        </div>
        {{end}}
    </div>
    {{end}}
</div>
{{template "page_foot"}}
{{end}}`

// tariffsTemplate - тарифы, скидки и бонусы пополнения
const tariffsTemplate = `{{define "tariffs"}}
{{template "page_head" "Тарифы"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">Тарифы</h1>

    {{range .Tariffs}}
    <div class="bg-white rounded-lg shadow-md p-4 {{if .IsDefault}}ring-2 ring-blue-500{{end}}">
        <div class="flex items-center justify-between">
            <h2 class="font-bold">{{.Name}}</h2>
            <span class="font-bold">{{rub .PricePerMonth}}/мес</span>
        </div>
        <ul class="mt-2 text-sm text-gray-600 list-disc list-inside">
            {{range .Features}}<li>{{.}}</li>{{end}}
        </ul>
    </div>
    {{end}}

    {{if .Discounts}}
    <div class="bg-white rounded-lg shadow-md p-4">
        <h2 class="font-bold mb-2">Скидки за подписки</h2>
        {{range .Discounts}}
        <p class="text-sm text-gray-600">{{.Description}}</p>
        {{end}}
    </div>
    {{end}}

    {{if .TopupBonuses}}
    <div class="bg-white rounded-lg shadow-md p-4">
        <h2 class="font-bold mb-2">Бонусы за пополнение</h2>
        {{range .TopupBonuses}}
        <p class="text-sm text-gray-600">{{.Description}}</p>
        {{end}}
    </div>
    {{end}}
</div>
{{template "page_foot"}}
{{end}}`

// connectTemplate - приложения для подключения по платформам
const connectTemplate = `{{define "connect"}}
{{template "page_head" "Подключение"}}
<div class="space-y-4">
    <h1 class="text-2xl font-bold text-gray-900">Подключение</h1>

    {{if .CurrentPlatform}}
    <div class="bg-white rounded-lg shadow-md p-4 space-y-2">
        <h2 class="font-bold">{{.CurrentPlatform.Name}}</h2>
        {{range .CurrentPlatform.Apps}}
        <div class="flex items-center justify-between border-t pt-2">
            <div>
                <p class="font-medium">{{.Name}}{{if .IsRecommended}} <span class="text-xs bg-blue-100 text-blue-700 px-1 rounded">рекомендуем</span>{{end}}</p>
            </div>
            <a href="{{.DownloadURL}}" target="_blank" class="text-blue-600 hover:underline text-sm">Скачать</a>
        </div>
        {{end}}
    </div>
    {{end}}

    {{range .OtherPlatforms}}
    <div class="bg-white rounded-lg shadow-md p-4 space-y-2">
        <h2 class="font-bold text-gray-500">{{.Name}}</h2>
        {{range .Apps}}
        <div class="flex items-center justify-between border-t pt-2">
            <p class="font-medium">{{.Name}}</p>
            <a href="{{.DownloadURL}}" target="_blank" class="text-blue-600 hover:underline text-sm">Скачать</a>
        </div>
        {{end}}
    </div>
    {{end}}
</div>
{{template "page_foot"}}
{{end}}`
