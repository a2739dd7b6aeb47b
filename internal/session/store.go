package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound черновик не найден, истёк или принадлежит другому пользователю
	ErrNotFound = errors.New("session: draft not found")

	// ErrInvalidInput некорректные поля черновика
	ErrInvalidInput = errors.New("session: invalid input data")
)

// Draft черновик брони, который пользователь заполняет по шагам
type Draft struct {
	ID        string
	UserID    int64
	Team      string
	Count     int
	Date      string
	StartTime string
	EndTime   string
	External  bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Patch изменения черновика; nil поля не меняются
type Patch struct {
	Team      *string
	Count     *int
	Date      *string
	StartTime *string
	EndTime   *string
	External  *bool
}

type key struct {
	userID int64
	id     string
}

// Store хранилище черновиков в памяти с истечением по TTL
// Каждое изменение продлевает срок жизни
type Store struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[key]Draft
	now    func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Store{
		ttl:    ttl,
		drafts: make(map[key]Draft),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
}

// Create создает черновик пользователя
func (s *Store) Create(userID int64, p Patch) (Draft, error) {
	if userID <= 0 {
		return Draft{}, ErrInvalidInput
	}

	now := s.now()
	d := Draft{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := apply(&d, p); err != nil {
		return Draft{}, err
	}

	s.mu.Lock()
	s.drafts[key{userID, d.ID}] = d
	s.mu.Unlock()

	return d, nil
}

// Get возвращает действующий черновик
func (s *Store) Get(userID int64, id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(userID, id)
}

// Update применяет изменения и продлевает срок жизни
func (s *Store) Update(userID int64, id string, p Patch) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.getLocked(userID, id)
	if err != nil {
		return Draft{}, err
	}
	if err := apply(&d, p); err != nil {
		return Draft{}, err
	}
	d.ExpiresAt = s.now().Add(s.ttl)
	s.drafts[key{userID, id}] = d

	return d, nil
}

// Delete удаляет черновик (после успешной отправки)
func (s *Store) Delete(userID int64, id string) {
	s.mu.Lock()
	delete(s.drafts, key{userID, id})
	s.mu.Unlock()
}

// Sweep удаляет истёкшие черновики и возвращает их количество
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, d := range s.drafts {
		if !now.Before(d.ExpiresAt) {
			delete(s.drafts, k)
			removed++
		}
	}
	return removed
}

// Len количество черновиков, включая ещё не удалённые истёкшие
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// Start запускает периодическую очистку
func (s *Store) Start(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Stop останавливает очистку
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Store) getLocked(userID int64, id string) (Draft, error) {
	k := key{userID, id}
	d, ok := s.drafts[k]
	if !ok {
		return Draft{}, ErrNotFound
	}
	if !s.now().Before(d.ExpiresAt) {
		delete(s.drafts, k)
		return Draft{}, ErrNotFound
	}
	return d, nil
}

func apply(d *Draft, p Patch) error {
	if p.Count != nil {
		if *p.Count < 0 {
			return ErrInvalidInput
		}
		d.Count = *p.Count
	}
	if p.Team != nil {
		d.Team = *p.Team
	}
	if p.Date != nil {
		d.Date = *p.Date
	}
	if p.StartTime != nil {
		d.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		d.EndTime = *p.EndTime
	}
	if p.External != nil {
		d.External = *p.External
	}
	return nil
}
