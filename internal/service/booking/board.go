package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/schedule"
)

// slotCell слот со своим мьютексом. Карта ячеек не меняется после создания доски.
type slotCell struct {
	targetID string // неизменяем, читается без мьютекса
	mu       sync.Mutex
	slot     domain.TimeSlot
}

// Board единственный писатель состояния слотов одного соревнования.
// Переходы: Free -> Locked -> Booked, Free -> Booked, Locked -> Free.
type Board struct {
	competitionID int64
	targets       []domain.Target
	dates         []time.Time
	cells         map[string]*slotCell
	order         map[string][]string // targetID -> slot IDs по порядку
	booked        atomic.Int64

	lockTTL      time.Duration
	timeProvider TimeProvider
	listeners    []Listener
	newID        func() string
}

// Option настройка доски
type Option func(*Board)

// WithLockTTL задает время жизни блокировки
func WithLockTTL(ttl time.Duration) Option {
	return func(b *Board) {
		if ttl > 0 {
			b.lockTTL = ttl
		}
	}
}

// WithTimeProvider подменяет источник времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(b *Board) {
		if tp != nil {
			b.timeProvider = tp
		}
	}
}

// WithListener добавляет получателя уведомлений об изменениях
func WithListener(l Listener) Option {
	return func(b *Board) {
		if l != nil {
			b.listeners = append(b.listeners, l)
		}
	}
}

// WithIDGenerator подменяет генератор идентификаторов броней
func WithIDGenerator(fn func() string) Option {
	return func(b *Board) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// NewBoard создает доску из сгенерированного скелета. Все слоты начинают в состоянии Free.
func NewBoard(competitionID int64, layout *schedule.Layout, opts ...Option) *Board {
	b := &Board{
		competitionID: competitionID,
		targets:       append([]domain.Target(nil), layout.Targets...),
		dates:         append([]time.Time(nil), layout.Dates...),
		cells:         make(map[string]*slotCell, layout.SlotCount()),
		order:         make(map[string][]string, len(layout.Targets)),
		lockTTL:       domain.DefaultLockTTL,
		timeProvider:  &RealTimeProvider{},
		newID:         func() string { return uuid.New().String() },
	}

	for _, target := range layout.Targets {
		slots := layout.Slots[target.ID]
		ids := make([]string, 0, len(slots))
		for _, s := range slots {
			slot := s.Clone()
			slot.IsBooked, slot.IsLocked = false, false
			b.cells[slot.ID] = &slotCell{targetID: slot.TargetID, slot: slot}
			ids = append(ids, slot.ID)
		}
		b.order[target.ID] = ids
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// CompetitionID идентификатор соревнования
func (b *Board) CompetitionID() int64 {
	return b.competitionID
}

// LockTTL время жизни блокировки
func (b *Board) LockTTL() time.Duration {
	return b.lockTTL
}

// Book бронирует один слот. Блокировка, принадлежащая ActorID, поглощается.
func (b *Board) Book(ctx context.Context, req BookRequest) (*domain.TimeSlot, error) {
	const op = "book"

	if err := validateBooker(req.BookerName); err != nil {
		return nil, newError(op, []Failure{{Key: domain.SlotKey{SlotID: req.SlotID}, Err: err}})
	}

	cell, ok := b.cells[req.SlotID]
	if !ok {
		return nil, newError(op, []Failure{{Key: domain.SlotKey{SlotID: req.SlotID}, Err: ErrNotFound}})
	}

	now := b.timeProvider.Now()
	var (
		expired []domain.TimeSlot
		result  domain.TimeSlot
		record  domain.Booking
	)

	cell.mu.Lock()
	if expireLocked(&cell.slot, now) {
		expired = append(expired, cell.slot.Clone())
	}
	if err := checkBookable(&cell.slot, req.ActorID, req.BookerClass); err != nil {
		key := domain.SlotKey{TargetID: cell.slot.TargetID, SlotID: cell.slot.ID}
		cell.mu.Unlock()
		b.notify(ctx, ChangeExpired, expired, nil)
		return nil, newError(op, []Failure{{Key: key, Err: err}})
	}
	record = b.apply(&cell.slot, req.ActorID, req.BookerName, req.BookerClass, now)
	result = cell.slot.Clone()
	cell.mu.Unlock()

	b.notify(ctx, ChangeExpired, expired, nil)
	b.notify(ctx, ChangeBooked, []domain.TimeSlot{result}, []domain.Booking{record})

	return &result, nil
}

// BookMany бронирует все слоты или ни одного. Мьютексы берутся в порядке ID слотов.
func (b *Board) BookMany(ctx context.Context, req BookManyRequest) ([]domain.TimeSlot, error) {
	const op = "book many"

	if len(req.Keys) == 0 {
		return nil, newError(op, []Failure{{Err: fmt.Errorf("%w: no slots requested", ErrInvalidInput)}})
	}
	if err := validateBooker(req.BookerName); err != nil {
		return nil, newError(op, []Failure{{Key: req.Keys[0], Err: err}})
	}

	// 1. Убираем дубликаты и проверяем принадлежность слота мишени
	var failures []Failure
	seen := make(map[domain.SlotKey]struct{}, len(req.Keys))
	resolved := make([]*slotCell, 0, len(req.Keys))
	taken := make(map[string]struct{}, len(req.Keys))

	for _, key := range req.Keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		cell, ok := b.cells[key.SlotID]
		if !ok || cell.targetID != key.TargetID {
			failures = append(failures, Failure{Key: key, Err: ErrNotFound})
			continue
		}
		if _, dup := taken[key.SlotID]; dup {
			continue
		}
		taken[key.SlotID] = struct{}{}
		resolved = append(resolved, cell)
	}

	// 2. Берем мьютексы в детерминированном порядке
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].slot.ID < resolved[j].slot.ID })
	for _, cell := range resolved {
		cell.mu.Lock()
	}
	unlockAll := func() {
		for i := len(resolved) - 1; i >= 0; i-- {
			resolved[i].mu.Unlock()
		}
	}

	// 3. Проверяем все предусловия до каких-либо изменений
	now := b.timeProvider.Now()
	var expired []domain.TimeSlot
	for _, cell := range resolved {
		if expireLocked(&cell.slot, now) {
			expired = append(expired, cell.slot.Clone())
		}
		if err := checkBookable(&cell.slot, req.ActorID, req.BookerClass); err != nil {
			failures = append(failures, Failure{
				Key: domain.SlotKey{TargetID: cell.slot.TargetID, SlotID: cell.slot.ID},
				Err: err,
			})
		}
	}

	if len(failures) > 0 {
		unlockAll()
		b.notify(ctx, ChangeExpired, expired, nil)
		return nil, newError(op, failures)
	}

	// 4. Применяем все изменения
	slots := make([]domain.TimeSlot, 0, len(resolved))
	records := make([]domain.Booking, 0, len(resolved))
	for _, cell := range resolved {
		records = append(records, b.apply(&cell.slot, req.ActorID, req.BookerName, req.BookerClass, now))
		slots = append(slots, cell.slot.Clone())
	}
	unlockAll()

	b.notify(ctx, ChangeExpired, expired, nil)
	b.notify(ctx, ChangeBooked, slots, records)

	return slots, nil
}

// Lock удерживает свободный слот за участником на время TTL.
// Повторная блокировка тем же участником продлевает срок.
func (b *Board) Lock(ctx context.Context, slotID string, actor *domain.Actor) (*SlotLock, error) {
	const op = "lock"
	key := domain.SlotKey{SlotID: slotID}

	if !actor.IsAuthenticated() {
		return nil, newError(op, []Failure{{Key: key, Err: ErrUnauthenticated}})
	}

	cell, ok := b.cells[slotID]
	if !ok {
		return nil, newError(op, []Failure{{Key: key, Err: ErrNotFound}})
	}
	key.TargetID = cell.targetID

	now := b.timeProvider.Now()
	var expired []domain.TimeSlot

	cell.mu.Lock()
	if expireLocked(&cell.slot, now) {
		expired = append(expired, cell.slot.Clone())
	}

	var err error
	switch {
	case cell.slot.IsBooked:
		err = fmt.Errorf("%w: already booked", ErrConflict)
	case cell.slot.IsLocked && cell.slot.LockedBy != actor.ID:
		err = fmt.Errorf("%w: locked by another actor", ErrConflict)
	case !cell.slot.Allows(actor.EligibilitySet()):
		err = fmt.Errorf("%w: requires one of %s", ErrIneligible, joinClasses(cell.slot.AllowedClasses))
	}
	if err != nil {
		cell.mu.Unlock()
		b.notify(ctx, ChangeExpired, expired, nil)
		return nil, newError(op, []Failure{{Key: key, Err: err}})
	}

	cell.slot.IsLocked = true
	cell.slot.LockedBy = actor.ID
	cell.slot.LockExpiresAt = now.Add(b.lockTTL)
	lock := &SlotLock{SlotID: slotID, ActorID: actor.ID, ExpiresAt: cell.slot.LockExpiresAt}
	locked := cell.slot.Clone()
	cell.mu.Unlock()

	b.notify(ctx, ChangeExpired, expired, nil)
	b.notify(ctx, ChangeLocked, []domain.TimeSlot{locked}, nil)

	return lock, nil
}

// ReleaseLock снимает блокировку участника. Свободный или истекший слот не ошибка.
func (b *Board) ReleaseLock(ctx context.Context, slotID string, actorID string) error {
	const op = "release"
	key := domain.SlotKey{SlotID: slotID}

	cell, ok := b.cells[slotID]
	if !ok {
		return newError(op, []Failure{{Key: key, Err: ErrNotFound}})
	}
	key.TargetID = cell.targetID

	now := b.timeProvider.Now()
	var expired []domain.TimeSlot

	cell.mu.Lock()
	if expireLocked(&cell.slot, now) {
		expired = append(expired, cell.slot.Clone())
	}

	if !cell.slot.IsLocked {
		cell.mu.Unlock()
		b.notify(ctx, ChangeExpired, expired, nil)
		return nil
	}
	if cell.slot.LockedBy != actorID {
		cell.mu.Unlock()
		return newError(op, []Failure{{Key: key, Err: fmt.Errorf("%w: locked by another actor", ErrConflict)}})
	}

	clearLock(&cell.slot)
	released := cell.slot.Clone()
	cell.mu.Unlock()

	b.notify(ctx, ChangeReleased, []domain.TimeSlot{released}, nil)
	return nil
}

// SweepExpired возвращает в Free все истекшие блокировки
func (b *Board) SweepExpired(ctx context.Context) int {
	now := b.timeProvider.Now()
	var expired []domain.TimeSlot

	for _, cell := range b.cells {
		cell.mu.Lock()
		if expireLocked(&cell.slot, now) {
			expired = append(expired, cell.slot.Clone())
		}
		cell.mu.Unlock()
	}

	b.notify(ctx, ChangeExpired, expired, nil)
	return len(expired)
}

// Restore переводит слоты из журнала в Booked. Уже забронированные слоты пропускаются.
// Неизвестные слоты возвращаются в ошибке, остальные восстанавливаются.
func (b *Board) Restore(ctx context.Context, bookings []domain.Booking) (int, error) {
	var (
		failures []Failure
		slots    []domain.TimeSlot
		records  []domain.Booking
	)

	for _, record := range bookings {
		cell, ok := b.cells[record.SlotID]
		if !ok || cell.targetID != record.TargetID {
			failures = append(failures, Failure{Key: record.Key(), Err: ErrNotFound})
			continue
		}

		cell.mu.Lock()
		if cell.slot.IsBooked {
			cell.mu.Unlock()
			continue
		}
		cell.slot.IsBooked = true
		clearLock(&cell.slot)
		cell.slot.BookedByName = record.BookerName
		cell.slot.BookedByClass = record.BookerClass
		cell.slot.BookedByActorID = record.ActorID
		b.booked.Add(1)
		slots = append(slots, cell.slot.Clone())
		records = append(records, record)
		cell.mu.Unlock()
	}

	b.notify(ctx, ChangeRestored, slots, records)

	if len(failures) > 0 {
		return len(slots), newError("restore", failures)
	}
	return len(slots), nil
}

// Slot возвращает копию слота с учетом истечения блокировки
func (b *Board) Slot(ctx context.Context, slotID string) (domain.TimeSlot, bool) {
	cell, ok := b.cells[slotID]
	if !ok {
		return domain.TimeSlot{}, false
	}

	now := b.timeProvider.Now()
	var expired []domain.TimeSlot

	cell.mu.Lock()
	if expireLocked(&cell.slot, now) {
		expired = append(expired, cell.slot.Clone())
	}
	slot := cell.slot.Clone()
	cell.mu.Unlock()

	b.notify(ctx, ChangeExpired, expired, nil)
	return slot, true
}

// Snapshot возвращает копии всех слотов по мишеням. Каждый слот читается под своим
// мьютексом, снимок в целом не атомарен.
func (b *Board) Snapshot(ctx context.Context) map[string][]domain.TimeSlot {
	now := b.timeProvider.Now()
	var expired []domain.TimeSlot

	result := make(map[string][]domain.TimeSlot, len(b.order))
	for targetID, ids := range b.order {
		slots := make([]domain.TimeSlot, 0, len(ids))
		for _, id := range ids {
			cell := b.cells[id]
			cell.mu.Lock()
			if expireLocked(&cell.slot, now) {
				expired = append(expired, cell.slot.Clone())
			}
			slots = append(slots, cell.slot.Clone())
			cell.mu.Unlock()
		}
		result[targetID] = slots
	}

	b.notify(ctx, ChangeExpired, expired, nil)
	return result
}

// Targets мишени соревнования по порядку
func (b *Board) Targets() []domain.Target {
	return append([]domain.Target(nil), b.targets...)
}

// Dates даты соревнования по порядку
func (b *Board) Dates() []time.Time {
	return append([]time.Time(nil), b.dates...)
}

// SlotCount общее количество слотов
func (b *Board) SlotCount() int {
	return len(b.cells)
}

// Unbooked количество слотов без брони (свободные и заблокированные)
func (b *Board) Unbooked() int {
	return len(b.cells) - int(b.booked.Load())
}

func (b *Board) apply(slot *domain.TimeSlot, actorID, bookerName string, bookerClass domain.Class, now time.Time) domain.Booking {
	slot.IsBooked = true
	clearLock(slot)
	slot.BookedByName = strings.TrimSpace(bookerName)
	slot.BookedByClass = bookerClass
	slot.BookedByActorID = actorID
	b.booked.Add(1)

	return domain.Booking{
		ID:            b.newID(),
		CompetitionID: b.competitionID,
		TargetID:      slot.TargetID,
		SlotID:        slot.ID,
		Date:          slot.Date,
		Time:          slot.Time,
		BookerName:    slot.BookedByName,
		BookerClass:   bookerClass,
		ActorID:       actorID,
		BookedAt:      now,
	}
}

func (b *Board) notify(ctx context.Context, kind ChangeKind, slots []domain.TimeSlot, bookings []domain.Booking) {
	if len(slots) == 0 || len(b.listeners) == 0 {
		return
	}
	change := Change{
		CompetitionID: b.competitionID,
		Kind:          kind,
		Slots:         slots,
		Bookings:      bookings,
		Unbooked:      b.Unbooked(),
	}
	for _, l := range b.listeners {
		l.SlotsChanged(ctx, change)
	}
}

// checkBookable проверяет предусловия бронирования: Conflict раньше Ineligible
func checkBookable(slot *domain.TimeSlot, actorID string, bookerClass domain.Class) error {
	if slot.IsBooked {
		return fmt.Errorf("%w: already booked", ErrConflict)
	}
	if slot.IsLocked && slot.LockedBy != actorID {
		return fmt.Errorf("%w: locked by another actor", ErrConflict)
	}
	if !domain.IsValidClass(bookerClass) {
		return fmt.Errorf("%w: unknown class %q", ErrIneligible, bookerClass)
	}
	if !slot.Allows([]domain.Class{bookerClass}) {
		return fmt.Errorf("%w: requires one of %s", ErrIneligible, joinClasses(slot.AllowedClasses))
	}
	return nil
}

func validateBooker(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: booker name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxBookerNameLength {
		return fmt.Errorf("%w: booker name is too long", ErrInvalidInput)
	}
	return nil
}

// expireLocked снимает истекшую блокировку, вызывается под мьютексом слота
func expireLocked(slot *domain.TimeSlot, now time.Time) bool {
	if !slot.IsLocked || now.Before(slot.LockExpiresAt) {
		return false
	}
	clearLock(slot)
	return true
}

func clearLock(slot *domain.TimeSlot) {
	slot.IsLocked = false
	slot.LockedBy = ""
	slot.LockExpiresAt = time.Time{}
}

func joinClasses(classes []domain.Class) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
