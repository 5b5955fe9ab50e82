package service

import "sync"

// UserLocks - реестр мьютексов по пользователям.
//
// Размещение и расчет ставок должны быть сериализованы в пределах одного
// банкролла: параллельный расчет двух ставок не должен гонять
// current_balance и счетчики. Банкроллы независимы, поэтому блокировка
// берется только на конкретного пользователя.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocks создает пустой реестр блокировок
func NewUserLocks() *UserLocks {
	return &UserLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Get возвращает мьютекс пользователя, создавая его при первом обращении.
// Мьютексы не удаляются: количество пользователей ограничено и мьютекс
// дешевле логики подсчета ссылок.
func (l *UserLocks) Get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
