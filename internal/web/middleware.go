package web

import (
	"net/http"

	"chillguy-miniapp/internal/infra/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requireSession — route guard защищённых маршрутов. Проверка выполняется
// синхронно, до обработчика экрана: неавторизованный переход обрывается
// редиректом на /auth раньше, чем начнётся загрузка данных (ни вспышки
// защищённого контента, ни лишних запросов к бэкенду).
//
// Параметры целевого маршрута при редиректе отбрасываются — «вернуться
// после входа» сознательно не поддерживается. Авторизация бинарна:
// с токеном проходят все маршруты без уровней доступа.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.session.IsAuthenticated() {
			logger.Debug("guard: unauthenticated, redirecting to /auth",
				zap.String("path", r.URL.Path))
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware логирует запросы; request id попадает и в ответ,
// чтобы связывать жалобы пользователей с логами.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New().String()
		w.Header().Set("X-Request-Id", reqID)
		logger.Debugf("HTTP %s %s from %s rid=%s", r.Method, r.URL.Path, r.RemoteAddr, reqID)
		next.ServeHTTP(w, r)
	})
}

// writeResponse пишет тело ответа, логируя ошибку записи.
func writeResponse(w http.ResponseWriter, data []byte) {
	if _, err := w.Write(data); err != nil {
		logger.Warn("web: response write failed", zap.Error(err))
	}
}
