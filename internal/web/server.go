// Package web — локальный веб-сервер мини-аппа: экран авторизации,
// защищённые экраны (баланс, подписки, платежи, рефералы, LTE) и
// HTMX-эндпоинты для частичных обновлений. Слой тонкий: данные приходят
// из vpnapi, состояние авторизации — из session/controller.
package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"chillguy-miniapp/internal/auth/controller"
	"chillguy-miniapp/internal/auth/session"
	"chillguy-miniapp/internal/infra/logger"
	"chillguy-miniapp/internal/vpnapi"

	"go.uber.org/zap"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// Server представляет веб-сервер мини-аппа.
type Server struct {
	srv     *http.Server
	tmpl    *template.Template
	session *session.Store
	api     *vpnapi.Client
	auth    *controller.Controller
	botLink string
}

// NewServer собирает сервер: маршруты, route guard и шаблоны.
func NewServer(addr, botLink string, sess *session.Store, api *vpnapi.Client, auth *controller.Controller) *Server {
	s := &Server{
		session: sess,
		api:     api,
		auth:    auth,
		botLink: botLink,
	}
	s.loadTemplates()

	mux := http.NewServeMux()

	// Публичные эндпоинты: экран авторизации и health.
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/auth", s.handleAuthPage)
	mux.HandleFunc("/auth/start", s.handleAuthStart)
	mux.HandleFunc("/auth/status", s.handleAuthStatus)
	mux.HandleFunc("/auth/retry", s.handleAuthRetry)

	// Защищённые экраны: guard отрабатывает синхронно, до загрузки данных.
	protected := http.NewServeMux()
	protected.HandleFunc("GET /{$}", s.handleDashboard)
	protected.HandleFunc("GET /subscriptions", s.handleSubscriptions)
	protected.HandleFunc("POST /subscriptions", s.handleCreateSubscription)
	protected.HandleFunc("GET /subscriptions/{id}", s.handleSubscriptionDetail)
	protected.HandleFunc("POST /subscriptions/{id}/rename", s.handleRenameSubscription)
	protected.HandleFunc("POST /subscriptions/{id}/delete", s.handleDeleteSubscription)
	protected.HandleFunc("POST /subscriptions/{id}/lte/toggle", s.handleToggleLte)
	protected.HandleFunc("GET /subscriptions/{id}/lte", s.handleLtePage)
	protected.HandleFunc("POST /subscriptions/{id}/lte/purchase", s.handlePurchaseLte)
	protected.HandleFunc("GET /subscriptions/{id}/devices", s.handleDevices)
	protected.HandleFunc("POST /subscriptions/{id}/devices/{index}/delete", s.handleDeleteDevice)
	protected.HandleFunc("POST /subscriptions/{id}/devices/delete-all", s.handleDeleteAllDevices)
	protected.HandleFunc("GET /top-up", s.handleTopUp)
	protected.HandleFunc("GET /payments", s.handlePayments)
	protected.HandleFunc("POST /payments", s.handleCreatePayment)
	protected.HandleFunc("GET /payments/{id}/status", s.handlePaymentStatus)
	protected.HandleFunc("GET /transactions", s.handleTransactions)
	protected.HandleFunc("GET /referrals", s.handleReferrals)
	protected.HandleFunc("POST /referrals/withdraw", s.handleWithdraw)
	protected.HandleFunc("GET /tariffs", s.handleTariffs)
	protected.HandleFunc("GET /connect", s.handleConnect)
	protected.HandleFunc("GET /direct-link", s.handleDirectLink)
	protected.HandleFunc("POST /prefs/music", s.handleMusicToggle)
	protected.HandleFunc("POST /logout", s.handleLogout)

	// Всё, что не зарегистрировано выше, идёт через route guard.
	mux.Handle("/", s.requireSession(protected))

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      loggingMiddleware(mux),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Start блокируется до остановки сервера.
func (s *Server) Start() error {
	logger.Info("Starting web server", zap.String("address", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}

// Shutdown корректно останавливает веб-сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down web server...")
	return s.srv.Shutdown(ctx)
}

// Handler отдаёт корневой http.Handler сервера (маршруты + middleware).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// handleHealth — проверка живости сервера.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	writeResponse(w, []byte("OK"))
}

// loadTemplates разбирает HTML-шаблоны всех экранов.
func (s *Server) loadTemplates() {
	t := template.New("").Funcs(templateFuncs)
	template.Must(t.Parse(layoutTemplate))
	template.Must(t.Parse(authTemplate))
	template.Must(t.Parse(authStatusTemplate))
	template.Must(t.Parse(dashboardTemplate))
	template.Must(t.Parse(subscriptionsTemplate))
	template.Must(t.Parse(subscriptionDetailTemplate))
	template.Must(t.Parse(lteTemplate))
	template.Must(t.Parse(topUpTemplate))
	template.Must(t.Parse(paymentsTemplate))
	template.Must(t.Parse(transactionsTemplate))
	template.Must(t.Parse(referralsTemplate))
	template.Must(t.Parse(tariffsTemplate))
	template.Must(t.Parse(connectTemplate))
	s.tmpl = t
}
