package web

import (
	"net/http"
	"net/url"
	"strconv"

	"chillguy-miniapp/internal/infra/logger"
	"chillguy-miniapp/internal/vpnapi"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const defaultPerPage = 20

// render отрисовывает именованный шаблон внутри layout.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("web: template render failed", zap.String("template", name), zap.Error(err))
	}
}

// renderFragment отрисовывает HTMX-фрагмент без layout.
func (s *Server) renderFragment(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("web: fragment render failed", zap.String("template", name), zap.Error(err))
	}
}

// fail обрабатывает ошибку вызова бэкенда. 401 уже очистил сессию в
// перехватчике vpnapi — остаётся только увести пользователя на /auth.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, vpnapi.ErrUnauthorized) {
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}
	var apiErr *vpnapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		http.Error(w, apiErr.Message, http.StatusBadGateway)
		return
	}
	logger.Error("web: backend call failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Сервис временно недоступен. Попробуйте позже.", http.StatusBadGateway)
}

// pathID достаёт числовой сегмент пути (Go 1.22 мультиплексор).
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

// ==== Главный экран ====

type dashboardView struct {
	Profile      *vpnapi.Profile
	MusicEnabled bool
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	profile, err := s.api.Profile(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "dashboard", dashboardView{
		Profile:      profile,
		MusicEnabled: s.session.MusicEnabled(),
	})
}

// ==== Подписки ====

func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	list, err := s.api.Subscriptions(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "subscriptions", list)
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	req := vpnapi.CreateSubscriptionRequest{
		Name:    r.FormValue("name"),
		WithLte: r.FormValue("with_lte") == "1",
	}
	detail, err := s.api.CreateSubscription(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/subscriptions/"+strconv.FormatInt(detail.ID, 10), http.StatusSeeOther)
}

func (s *Server) handleSubscriptionDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	detail, err := s.api.Subscription(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "subscription_detail", detail)
}

func (s *Server) handleRenameSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := s.api.RenameSubscription(r.Context(), id, r.FormValue("name")); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/subscriptions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.api.DeleteSubscription(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
}

func (s *Server) handleToggleLte(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	enable := r.FormValue("enable") == "1"
	if _, err := s.api.ToggleLte(r.Context(), id, enable); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/subscriptions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// ==== Устройства ====

type deviceListView struct {
	SubscriptionID int64
	Devices        []vpnapi.Device
	Limit          int
}

// handleDevices — HTMX-фрагмент списка устройств (кнопка «обновить»
// на экране подписки).
func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	list, err := s.api.Devices(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderFragment(w, "device_list", deviceListView{
		SubscriptionID: id,
		Devices:        list.Data,
		Limit:          list.Meta.Limit,
	})
}

func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err = s.api.DeleteDevice(r.Context(), id, index); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/subscriptions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (s *Server) handleDeleteAllDevices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.api.DeleteAllDevices(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/subscriptions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// ==== LTE ====

type lteView struct {
	SubscriptionID int64
	Info           *vpnapi.LteDetailInfo
	Message        string
}

func (s *Server) handleLtePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	info, err := s.api.LteInfo(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "lte", lteView{SubscriptionID: id, Info: info, Message: r.URL.Query().Get("msg")})
}

func (s *Server) handlePurchaseLte(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	packageID, err := strconv.ParseInt(r.FormValue("package_id"), 10, 64)
	if err != nil || packageID <= 0 {
		http.Error(w, "bad package id", http.StatusBadRequest)
		return
	}
	result, err := s.api.PurchaseLte(r.Context(), id, packageID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	target := "/subscriptions/" + strconv.FormatInt(id, 10) + "/lte?msg=" + url.QueryEscape(result.Message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ==== Пополнение и платежи ====

type topUpView struct {
	Payment *vpnapi.Payment // свежесозданный платёж для опроса статуса
}

func (s *Server) handleTopUp(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "top_up", topUpView{})
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		http.Error(w, "bad amount", http.StatusBadRequest)
		return
	}
	payment, err := s.api.CreatePayment(r.Context(), vpnapi.CreatePaymentRequest{
		Amount: amount,
		Method: r.FormValue("method"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "top_up", topUpView{Payment: payment})
}

func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	list, err := s.api.Payments(r.Context(), page, defaultPerPage)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "payments", list)
}

// handlePaymentStatus — HTMX-опрос платежа: пока статус pending,
// фрагмент продолжает опрашиваться каждые 3 секунды.
func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	payment, err := s.api.Payment(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.renderFragment(w, "payment_status", payment)
}

// ==== Операции ====

type transactionsView struct {
	Page       *vpnapi.TransactionsPage
	TypeFilter string
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := s.api.Transactions(r.Context(), pageParam(r), defaultPerPage, r.URL.Query().Get("type"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "transactions", transactionsView{Page: page, TypeFilter: r.URL.Query().Get("type")})
}

// ==== Рефералы ====

type referralsView struct {
	Referral *vpnapi.Referral
	Message  string
}

func (s *Server) handleReferrals(w http.ResponseWriter, r *http.Request) {
	ref, err := s.api.Referrals(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "referrals", referralsView{Referral: ref, Message: r.URL.Query().Get("msg")})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil || amount <= 0 {
		http.Error(w, "bad amount", http.StatusBadRequest)
		return
	}
	msg, err := s.api.Withdraw(r.Context(), vpnapi.WithdrawRequest{
		Amount:  amount,
		Method:  r.FormValue("method"),
		Details: r.FormValue("details"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/referrals?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

// ==== Тарифы и подключение ====

func (s *Server) handleTariffs(w http.ResponseWriter, r *http.Request) {
	info, err := s.api.Tariffs(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "tariffs", info)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	platforms, err := s.api.Platforms(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "connect", platforms)
}

// handleDirectLink выдаёт ссылку для входа вне Telegram (text/plain:
// её показывает и копирует кнопка на главном экране).
func (s *Server) handleDirectLink(w http.ResponseWriter, r *http.Request) {
	dl, err := s.api.DirectLink(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writeResponse(w, []byte(dl.URL))
}

// ==== Настройки и выход ====

func (s *Server) handleMusicToggle(w http.ResponseWriter, r *http.Request) {
	enabled := r.FormValue("enabled") == "1"
	if err := s.session.SetMusicEnabled(enabled); err != nil {
		logger.Warn("web: music flag persist failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLogout очищает сессию; guard отправит на /auth.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Clear(); err != nil {
		logger.Error("web: logout failed", zap.Error(err))
	}
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

// pageParam читает номер страницы из query (минимум 1).
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
