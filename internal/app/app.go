// Package app — верхний уровень сборки мини-аппа. Здесь связываются
// хранилище сессии, клиент обмена учётных данных, контроллер авторизации,
// клиент REST-бэкенда и веб-сервер, а Runner оркестрирует их жизненный цикл.
package app

import (
	"context"
	"fmt"

	"chillguy-miniapp/internal/auth/controller"
	"chillguy-miniapp/internal/auth/exchange"
	"chillguy-miniapp/internal/auth/session"
	"chillguy-miniapp/internal/infra/config"
	"chillguy-miniapp/internal/infra/logger"
	"chillguy-miniapp/internal/vpnapi"
)

// App агрегирует зависимости мини-аппа и управляет их связью.
// Отвечает за:
//   - хранилище сессии (bbolt) и его гидратацию при старте,
//   - контроллер авторизации и клиент обмена учётных данных,
//   - клиент REST-бэкенда с Bearer-токеном из сессии,
//   - запуск Runner, который оркестрирует веб-сервер и graceful shutdown.
type App struct {
	mainCtx    context.Context    // Контекст жизненного цикла приложения.
	mainCancel context.CancelFunc // Инициирует отмену mainCtx.
	session    *session.Store     // Персистентная сессия: токен и настройки.
	auth       *controller.Controller
	api        *vpnapi.Client
	runner     *Runner
}

// NewApp создаёт пустой каркас приложения. Фактическая сборка выполняется в Run().
func NewApp(mainCtx context.Context, mainCancel context.CancelFunc) *App {
	return &App{
		mainCtx:    mainCtx,
		mainCancel: mainCancel,
	}
}

// Run собирает все подсистемы и запускает Runner. Блокируется до остановки
// приложения и возвращает ошибку, если что-то пошло не так.
func (a *App) Run() error {
	logger.Info("Miniapp initializing...")
	env := config.Env()

	// Хранилище сессии: единственный источник токена для всего процесса.
	// Open сам создаёт каталог файла состояния.
	sess, err := session.Open(env.StateFile)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	a.session = sess

	// Контроллер авторизации поверх клиента обмена учётных данных.
	// Сброс сессии (logout или 401) возвращает машину авторизации в Idle.
	a.auth = controller.New(sess, exchange.NewClient(env.AuthBaseURL))
	sess.OnInvalidate(a.auth.Reset)

	// Клиент бэкенда читает токен из сессии на каждый запрос; 401 сбрасывает
	// сессию через тот же Store.
	a.api = vpnapi.NewClient(env.APIBaseURL, env.APIRPS, sess)

	a.runner = NewRunner(a.mainCtx, a.mainCancel, sess, a.auth, a.api)
	return a.runner.Run()
}
