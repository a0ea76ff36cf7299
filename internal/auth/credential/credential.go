// Пакет credential определяет источники учётных данных мини-аппа и порядок
// их разрешения. Возможны три источника: одноразовый токен из URL (прямые
// ссылки), initData от Telegram (подписанный платформой блоб) и отсутствие
// данных (открытие в обычном браузере). Источник моделируется закрытой
// суммой типов, чтобы switch по виду учётных данных был исчерпывающим.
package credential

import "github.com/go-faster/errors"

// ErrHostIdentityUnavailable — фатальная ошибка разрешения: приложение
// запущено внутри Telegram, но платформа не передала initData. Падать в
// None здесь нельзя: ручной вход не поможет, нужен перезапуск мини-аппа.
var ErrHostIdentityUnavailable = errors.New("host identity unavailable")

// Credential — учётные данные, пригодные для обмена на токен сессии.
// Реализации: UrlToken, PlatformIdentity, None.
type Credential interface {
	isCredential()
}

// UrlToken — одноразовый токен из параметра ссылки. Самый низкий уровень
// доверия, но явный: поддерживает сценарии тестирования и саппорта.
type UrlToken struct {
	Value string
}

// PlatformIdentity — сырой initData от Telegram. Передаётся на бэкенд
// байт-в-байт: целостность подписи зависит от точного содержимого, поэтому
// клиент его никогда не разбирает и не пересобирает.
type PlatformIdentity struct {
	Raw string
}

// None — учётных данных нет (обычный браузер без ссылки с токеном).
// Это не ошибка, а состояние «показать инструкцию по входу».
type None struct{}

func (UrlToken) isCredential()         {}
func (PlatformIdentity) isCredential() {}
func (None) isCredential()             {}

// PlatformContext описывает окружение запуска: находимся ли мы внутри
// Telegram и какой initData передала платформа.
type PlatformContext struct {
	InsideTelegram bool
	InitData       string
}

// Resolve выбирает источник учётных данных. Первый подошедший выигрывает:
//  1. непустой токен из URL;
//  2. внутри Telegram с непустым initData — PlatformIdentity;
//  3. внутри Telegram с пустым initData — ErrHostIdentityUnavailable;
//  4. вне Telegram без токена — None.
//
// Явная ссылка перекрывает окружение платформы; окружение платформы
// предпочтительнее отсутствия данных.
func Resolve(urlToken string, pc PlatformContext) (Credential, error) {
	if urlToken != "" {
		return UrlToken{Value: urlToken}, nil
	}
	if pc.InsideTelegram {
		if pc.InitData != "" {
			return PlatformIdentity{Raw: pc.InitData}, nil
		}
		return nil, ErrHostIdentityUnavailable
	}
	return None{}, nil
}
