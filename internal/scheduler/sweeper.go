package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped возвращается при запуске остановленного планировщика
var ErrStopped = errors.New("scheduler: sweeper is stopped")

// Sweepable доска, у которой можно снять истекшие блокировки
type Sweepable interface {
	CompetitionID() int64
	SweepExpired(ctx context.Context) int
}

// BoardSource источник досок для обхода. Список читается на каждом тике.
type BoardSource func() []Sweepable

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически возвращает истекшие блокировки в Free.
// Истечение проверяется и лениво при каждом обращении к слоту, тикер лишь
// освобождает слоты, к которым никто не обращается.
type Sweeper struct {
	source   BoardSource
	interval time.Duration
	logger   Logger

	mu       sync.Mutex
	started  bool
	stopped  bool
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewSweeper создает планировщик снятия блокировок
func NewSweeper(source BoardSource, interval time.Duration, logger Logger) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &Sweeper{
		source:   source,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start запускает фоновый обход. Повторный вызов ничего не делает.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return nil
	}
	s.started = true

	go s.run()
	s.logger.Info("Sweeper: started with interval %s", s.interval)
	return nil
}

// Stop останавливает обход и ждет завершения текущего тика
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		started := s.started
		s.mu.Unlock()

		s.cancel()
		if started {
			<-s.done
		}
		s.logger.Info("Sweeper: stopped")
	})
}

// SweepOnce обходит все доски один раз, возвращает число снятых блокировок
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	total := 0
	for _, board := range s.source() {
		if n := board.SweepExpired(ctx); n > 0 {
			s.logger.Info("Sweeper: released %d expired locks in competition id=%d", n, board.CompetitionID())
			total += n
		}
	}
	return total
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(s.ctx)
		}
	}
}
