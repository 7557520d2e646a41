package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

// memDirectory is a Directory for tests.
type memDirectory struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]Account
	failErr error
}

func newMemDirectory() *memDirectory {
	return &memDirectory{byID: map[string]Account{}}
}

func (d *memDirectory) FindPrincipalByID(_ context.Context, id string) (Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failErr != nil {
		return Account{}, d.failErr
	}
	a, ok := d.byID[id]
	if !ok {
		return Account{}, ErrUnknownPrincipal
	}
	return a, nil
}

func (d *memDirectory) FindPrincipalByEmail(_ context.Context, email string) (Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failErr != nil {
		return Account{}, d.failErr
	}
	for _, a := range d.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return Account{}, ErrUnknownPrincipal
}

func (d *memDirectory) CreatePrincipal(_ context.Context, n NewAccount) (Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.byID {
		if a.Email == n.Email {
			return Account{}, ErrEmailTaken
		}
	}
	d.seq++
	role := n.Role
	if role == "" {
		role = "regular"
	}
	a := Account{ID: "user-" + strconv.Itoa(d.seq), Email: n.Email, PasswordHash: n.PasswordHash, Role: role}
	d.byID[a.ID] = a
	return a, nil
}

func (d *memDirectory) setRole(id, role string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := d.byID[id]
	a.Role = role
	d.byID[id] = a
}

func (d *memDirectory) remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.byID, id)
}

var errStorageDown = errors.New("storage down")
