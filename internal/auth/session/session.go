// Пакет session — единственное на процесс хранилище токена сессии.
// Цели:
//   - один источник правды для route guard, API-клиента и контроллера
//     авторизации (никаких локальных копий токена по компонентам);
//   - атомарное с точки зрения читателей обновление памяти и диска;
//   - персист в bbolt, переживающий перезапуск процесса.
//
// Токен пишут ровно два места: клиент обмена учётных данных (успех) и
// глобальный перехватчик 401 (сброс). Оба выполняют цельную замену
// значения, инкрементальных обновлений нет.
package session

import (
	"sync"
	"time"

	"chillguy-miniapp/internal/infra/logger"
	"chillguy-miniapp/internal/infra/storage"

	"github.com/go-faster/errors"
	bolt "go.etcd.io/bbolt"
)

// Ключи хранения. tokenKey совпадает с ключом localStorage веб-версии,
// чтобы формат состояния оставался узнаваемым при миграциях.
const (
	authBucket  = "auth"
	prefsBucket = "prefs"
	tokenKey    = "chillguy_vpn_token"
	musicKey    = "chillguy-music-enabled"

	openTimeout = 5 * time.Second
)

// Store — процессное хранилище токена. Все операции потокобезопасны;
// значение в памяти и на диске меняется под одним мьютексом, поэтому
// читатель не может увидеть «записано на диск, но не в память» и наоборот.
type Store struct {
	mu           sync.Mutex
	db           *bolt.DB
	token        string
	onInvalidate []func()
}

// Open открывает (или создаёт) файл состояния и гидрирует токен с диска.
// Отсутствующий файл или пустой bucket означают неавторизованный старт.
func Open(path string) (*Store, error) {
	if err := storage.EnsureDir(path); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, errors.Wrap(err, "open state file")
	}

	s := &Store{db: db}
	err = db.Update(func(tx *bolt.Tx) error {
		auth, txErr := tx.CreateBucketIfNotExists([]byte(authBucket))
		if txErr != nil {
			return txErr
		}
		if _, txErr = tx.CreateBucketIfNotExists([]byte(prefsBucket)); txErr != nil {
			return txErr
		}
		// Гидрация выполняется один раз, в той же транзакции, что и
		// создание bucket'ов.
		s.token = string(auth.Get([]byte(tokenKey)))
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "prepare state buckets")
	}
	if s.token != "" {
		logger.Debug("session: token hydrated from state file")
	}
	return s, nil
}

// Close закрывает файл состояния.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get возвращает текущий токен (пустая строка — не авторизованы).
func (s *Store) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated сообщает, есть ли действующий токен.
// Инвариант: IsAuthenticated() == (Get() != "").
func (s *Store) IsAuthenticated() bool {
	return s.Get() != ""
}

// Set сохраняет токен на диск и в память. При ошибке записи память не
// меняется: лучше остаться в прежнем состоянии, чем разъехаться с диском.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Put([]byte(tokenKey), []byte(token))
	})
	if err != nil {
		return errors.Wrap(err, "persist token")
	}
	s.token = token
	return nil
}

// Clear удаляет токен с диска и из памяти и уведомляет подписчиков.
// Это единственное действие восстановления после любого 401: вызывается и
// при logout, и из глобального перехватчика ответов API.
func (s *Store) Clear() error {
	s.mu.Lock()
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Delete([]byte(tokenKey))
	})
	if err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "clear token")
	}
	s.token = ""
	subs := make([]func(), len(s.onInvalidate))
	copy(subs, s.onInvalidate)
	s.mu.Unlock()

	// Подписчики зовутся вне мьютекса: им может понадобиться Store.
	for _, fn := range subs {
		fn()
	}
	return nil
}

// OnInvalidate регистрирует обработчик сброса сессии (например, принудительный
// редирект на экран авторизации). Обработчики вызываются после Clear.
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = append(s.onInvalidate, fn)
}

// MusicEnabled читает флаг фоновой музыки UI. Отсутствие значения — музыка
// включена (поведение веб-версии по умолчанию).
func (s *Store) MusicEnabled() bool {
	var raw string
	_ = s.db.View(func(tx *bolt.Tx) error {
		raw = string(tx.Bucket([]byte(prefsBucket)).Get([]byte(musicKey)))
		return nil
	})
	return raw != "false"
}

// SetMusicEnabled сохраняет флаг фоновой музыки. Значение хранится строкой
// "true"/"false" — так же, как его писала веб-версия в localStorage.
func (s *Store) SetMusicEnabled(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(prefsBucket)).Put([]byte(musicKey), []byte(value))
	})
	return errors.Wrap(err, "persist music flag")
}
