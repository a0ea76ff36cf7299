package web

import (
	"net/http"

	"chillguy-miniapp/internal/auth/controller"
	"chillguy-miniapp/internal/auth/credential"
	"chillguy-miniapp/internal/infra/logger"

	"go.uber.org/zap"
)

// authView — данные экрана авторизации.
type authView struct {
	Token   string // токен из URL, прокидывается в форму запуска
	BotLink string
}

// authStatusView — данные HTMX-фрагмента статуса.
type authStatusView struct {
	State          string
	Message        string
	Failed         bool
	ShowBotLink    bool
	BotLink        string
	InsideTelegram bool
}

// handleAuthPage отдаёт экран авторизации. Платформенный шим на странице
// сразу отправляет initData на /auth/start; дальше страница опрашивает
// /auth/status до редиректа либо ошибки.
func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	// Уже авторизован — на главный экран, Authorizing не начинается.
	if s.session.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "auth", authView{
		Token:   r.URL.Query().Get("token"),
		BotLink: s.botLink,
	})
}

// platformContextFromForm восстанавливает окружение запуска из полей,
// которые прислал шим: inside=1 — страница открыта внутри Telegram,
// tg_data — сырой initData (байт-в-байт, без разбора на сервере).
func platformContextFromForm(r *http.Request) credential.PlatformContext {
	return credential.PlatformContext{
		InsideTelegram: r.FormValue("inside") == "1",
		InitData:       r.FormValue("tg_data"),
	}
}

// handleAuthStart запускает серию авторизации с нуля.
func (s *Server) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pc := platformContextFromForm(r)
	logger.Debug("auth: start requested", zap.Bool("inside_telegram", pc.InsideTelegram))
	s.auth.Begin(r.FormValue("token"), pc)
	s.renderAuthStatus(w, pc.InsideTelegram)
}

// handleAuthRetry — пользовательский повтор: сбрасывает счётчик попыток
// и заново разрешает источник учётных данных (initData мог появиться
// после задержавшегося рукопожатия платформы).
func (s *Server) handleAuthRetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pc := platformContextFromForm(r)
	s.auth.Retry(r.FormValue("token"), pc)
	s.renderAuthStatus(w, pc.InsideTelegram)
}

// handleAuthStatus — HTMX-опрос состояния. Authorized отдаёт HX-Redirect
// на главный экран.
func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.auth.Snapshot()
	if snap.State == controller.StateAuthorized {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	s.renderAuthStatus(w, r.FormValue("inside") == "1")
}

// renderAuthStatus отрисовывает фрагмент статуса по текущему снимку.
func (s *Server) renderAuthStatus(w http.ResponseWriter, insideTelegram bool) {
	snap := s.auth.Snapshot()

	view := authStatusView{
		State:          snap.State.String(),
		InsideTelegram: insideTelegram,
		BotLink:        s.botLink,
	}
	if snap.State == controller.StateFailed && snap.Failure != nil {
		view.Failed = true
		view.Message = snap.Failure.UserMessage()
		// Вне Telegram ручной повтор без источника данных не поможет —
		// дополнительно предлагаем открыть бота.
		view.ShowBotLink = !insideTelegram
	}
	s.renderFragment(w, "auth_status", view)
}
