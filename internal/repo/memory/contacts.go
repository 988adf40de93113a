package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/therohansaxena/AddressBook/internal/domain/contact"
)

// ContactsRepo is the in-memory counterpart of the postgres repo. It backs
// the service tests and the no-database dev mode.
type ContactsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]contact.Contact
}

func NewContactsRepo() *ContactsRepo {
	return &ContactsRepo{
		nextID: 1,
		items:  make(map[int64]contact.Contact),
	}
}

func (r *ContactsRepo) List(ctx context.Context) ([]contact.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]contact.Contact, 0, len(r.items))

	for _, c := range r.items {
		output = append(output, c)
	}

	// id order, same as the postgres repo
	sort.Slice(output, func(i, j int) bool { return output[i].ID < output[j].ID })

	return output, nil
}

func (r *ContactsRepo) GetByID(ctx context.Context, id int64) (contact.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]

	if !ok {
		return contact.Contact{}, contact.ErrNotFound
	}

	return c, nil
}

func (r *ContactsRepo) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextID
	r.nextID++
	r.items[c.ID] = c

	return c, nil
}

func (r *ContactsRepo) Update(ctx context.Context, id int64, c contact.Contact) (contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]

	if !ok {
		return contact.Contact{}, contact.ErrNotFound
	}

	c.ID = id
	r.items[id] = c

	return c, nil
}

func (r *ContactsRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]

	if !ok {
		return contact.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
