// Файл runner.go — точка оркестрации: запуск сервисов в правильном порядке
// и корректный graceful shutdown. Веб-сервер гасится первым, чтобы не принять
// запрос в закрывающееся хранилище сессии; контроллер авторизации — следом,
// чтобы фоновая серия обмена не писала в закрытый Store.
package app

import (
	"context"
	"time"

	"chillguy-miniapp/internal/auth/controller"
	"chillguy-miniapp/internal/auth/session"
	"chillguy-miniapp/internal/infra/config"
	"chillguy-miniapp/internal/infra/logger"
	"chillguy-miniapp/internal/vpnapi"
	"chillguy-miniapp/internal/web"
)

const webServerShutdownTimeout = 10 * time.Second

// Runner инкапсулирует сценарий запуска и остановки мини-аппа.
type Runner struct {
	mainCtx    context.Context    // Внешний контекст процесса: отменяется по Ctrl+C/сигналам.
	mainCancel context.CancelFunc // Функция, инициирующая общий shutdown.
	session    *session.Store
	auth       *controller.Controller
	api        *vpnapi.Client
	webServer  *web.Server
}

// NewRunner подготавливает Runner с собранными зависимостями.
func NewRunner(
	mainCtx context.Context,
	mainCancel context.CancelFunc,
	sess *session.Store,
	auth *controller.Controller,
	api *vpnapi.Client,
) *Runner {
	return &Runner{
		mainCtx:    mainCtx,
		mainCancel: mainCancel,
		session:    sess,
		auth:       auth,
		api:        api,
	}
}

// Run запускает веб-сервер и блокируется до отмены mainCtx либо ошибки
// самого сервера. Останавливает сервисы в обратном порядке.
func (r *Runner) Run() error {
	logger.Info("Miniapp running...")

	r.webServer = web.NewServer(
		config.Env().ListenAddress,
		config.Env().BotLink,
		r.session,
		r.api,
		r.auth,
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- r.webServer.Start()
	}()

	var runErr error
	select {
	case <-r.mainCtx.Done():
		logger.Debug("Shutdown signal received, stopping runner...")
	case err := <-serverErr:
		// Сервер упал сам — инициируем общий shutdown.
		runErr = err
		r.mainCancel()
	}

	r.stopAllServices()
	return runErr
}

func (r *Runner) stopAllServices() {
	// Останавливаем в обратном порядке.

	// web_server
	logger.Debug("stopping service web_server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), webServerShutdownTimeout)
	defer cancel()
	if err := r.webServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("failed to stop web_server: %v", err)
	}
	logger.Debug("service web_server stopped")

	// auth_controller
	logger.Debug("stopping service auth_controller")
	r.auth.Stop()
	logger.Debug("service auth_controller stopped")

	// session_store
	logger.Debug("stopping service session_store")
	if err := r.session.Close(); err != nil {
		logger.Errorf("failed to close session store: %v", err)
	}
	logger.Debug("service session_store stopped")
}
