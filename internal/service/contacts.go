package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/therohansaxena/AddressBook/internal/cache"
	"github.com/therohansaxena/AddressBook/internal/domain/contact"
	"github.com/therohansaxena/AddressBook/internal/observability"
)

// ValidationError carries every failed field check so the client gets the
// whole list in one response.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// ContactStore is the slice of the repository the contact service needs.
type ContactStore interface {
	List(ctx context.Context) ([]contact.Contact, error)
	GetByID(ctx context.Context, id int64) (contact.Contact, error)
	Create(ctx context.Context, c contact.Contact) (contact.Contact, error)
	Update(ctx context.Context, id int64, c contact.Contact) (contact.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type ContactService struct {
	store   ContactStore
	cache   cache.Store
	log     *slog.Logger
	metrics *observability.Prom
}

// metrics may be nil (tests); everything else is required.
func NewContactService(store ContactStore, cacheStore cache.Store, log *slog.Logger, metrics *observability.Prom) *ContactService {
	return &ContactService{
		store:   store,
		cache:   cacheStore,
		log:     log,
		metrics: metrics,
	}
}

// ListAll returns every contact, read-through cached under a single
// whole-collection key.

func (s *ContactService) ListAll(ctx context.Context) ([]contact.ContactDTO, error) {
	var cached []contact.ContactDTO

	hit, err := s.cache.Get(ctx, cache.KeyAllContacts, &cached)

	if err != nil {
		// cache trouble is never fatal for a read
		s.log.Warn("cache get failed", "key", cache.KeyAllContacts, "err", err)
	}

	if hit {
		s.countCache("all", true)
		return cached, nil
	}

	s.countCache("all", false)

	var items []contact.Contact

	err = s.observeDB("contacts.list", func() error {
		var dbErr error
		items, dbErr = s.store.List(ctx)
		return dbErr
	})

	if err != nil {
		return nil, err
	}

	dtos := make([]contact.ContactDTO, 0, len(items))

	for _, c := range items {
		dtos = append(dtos, contact.ToDTO(c))
	}

	err = s.cache.Set(ctx, cache.KeyAllContacts, dtos)

	if err != nil {
		s.log.Warn("cache set failed", "key", cache.KeyAllContacts, "err", err)
	}

	return dtos, nil
}

func (s *ContactService) GetByID(ctx context.Context, id int64) (contact.ContactDTO, error) {
	key := cache.KeyContactByID(id)

	var cached contact.ContactDTO

	hit, err := s.cache.Get(ctx, key, &cached)

	if err != nil {
		s.log.Warn("cache get failed", "key", key, "err", err)
	}

	if hit {
		s.countCache("id", true)
		return cached, nil
	}

	s.countCache("id", false)

	var c contact.Contact

	err = s.observeDB("contacts.get", func() error {
		var dbErr error
		c, dbErr = s.store.GetByID(ctx, id)
		return dbErr
	})

	if err != nil {
		return contact.ContactDTO{}, err
	}

	dto := contact.ToDTO(c)

	err = s.cache.Set(ctx, key, dto)

	if err != nil {
		s.log.Warn("cache set failed", "key", key, "err", err)
	}

	return dto, nil
}

// Create validates, persists and invalidates. Validation always runs before
// any store call.

func (s *ContactService) Create(ctx context.Context, dto contact.ContactDTO) (contact.ContactDTO, error) {
	errs := contact.Validate(dto)

	if len(errs) > 0 {
		return contact.ContactDTO{}, &ValidationError{Errors: errs}
	}

	var saved contact.Contact

	err := s.observeDB("contacts.create", func() error {
		var dbErr error
		saved, dbErr = s.store.Create(ctx, contact.FromDTO(dto))
		return dbErr
	})

	if err != nil {
		return contact.ContactDTO{}, err
	}

	// invalidate strictly after the successful write
	s.invalidate(ctx, saved.ID)

	return contact.ToDTO(saved), nil
}

func (s *ContactService) Update(ctx context.Context, id int64, dto contact.ContactDTO) (contact.ContactDTO, error) {
	// existence check comes before validation so a missing id reports
	// not-found even when the payload is also bad
	err := s.observeDB("contacts.get", func() error {
		_, dbErr := s.store.GetByID(ctx, id)
		return dbErr
	})

	if err != nil {
		return contact.ContactDTO{}, err
	}

	errs := contact.Validate(dto)

	if len(errs) > 0 {
		return contact.ContactDTO{}, &ValidationError{Errors: errs}
	}

	var saved contact.Contact

	err = s.observeDB("contacts.update", func() error {
		var dbErr error
		saved, dbErr = s.store.Update(ctx, id, contact.FromDTO(dto))
		return dbErr
	})

	if err != nil {
		return contact.ContactDTO{}, err
	}

	s.invalidate(ctx, id)

	return contact.ToDTO(saved), nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	err := s.observeDB("contacts.delete", func() error {
		return s.store.Delete(ctx, id)
	})

	if err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

// invalidate drops both the collection entry and the per-id entry. Simplest
// coherent policy: any mutation clears both.

func (s *ContactService) invalidate(ctx context.Context, id int64) {
	err := s.cache.Delete(ctx, cache.KeyAllContacts, cache.KeyContactByID(id))

	if err != nil {
		s.log.Warn("cache invalidation failed", "id", id, "err", err)
	}
}

func (s *ContactService) observeDB(op string, fn func() error) error {
	if s.metrics == nil {
		return fn()
	}

	return s.metrics.ObserveDB(op, fn)
}

func (s *ContactService) countCache(key string, hit bool) {
	if s.metrics == nil {
		return
	}

	if hit {
		s.metrics.CacheHits.WithLabelValues(key).Inc()
		return
	}

	s.metrics.CacheMisses.WithLabelValues(key).Inc()
}
