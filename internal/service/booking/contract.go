package booking

import (
	"context"
	"time"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Listener получает уведомления после каждого изменения слотов.
// Вызывается вне блокировок слотов.
type Listener interface {
	SlotsChanged(ctx context.Context, change Change)
}

// ListenerFunc адаптер функции к Listener
type ListenerFunc func(ctx context.Context, change Change)

func (f ListenerFunc) SlotsChanged(ctx context.Context, change Change) {
	f(ctx, change)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
