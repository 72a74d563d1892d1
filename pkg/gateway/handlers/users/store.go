/*
 * Copyright 2025 The Halgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package users

import (
	"sort"
	"sync"
	"time"

	"github.com/halgateway/halgate/pkg/errors"
)

// User is the user resource
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles,omitempty"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is the in-process user repository. Real deployments substitute an
// external repository; the gateway only ever sees these methods.
type Store struct {
	mtx   sync.RWMutex
	users map[string]*User
}

// NewStore returns an empty Store
func NewStore() *Store {
	return &Store{users: make(map[string]*User)}
}

// Create inserts a new user. A duplicate id or email is a conflict.
func (s *Store) Create(u *User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return errors.NewConflictError("a user with this id already exists")
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return errors.NewConflictError("a user with this email already exists")
		}
	}
	now := time.Now().UTC()
	u.Version = 1
	u.CreatedAt = now
	u.UpdatedAt = now
	c := *u
	s.users[u.ID] = &c
	return nil
}

// Get returns the user by id
func (s *Store) Get(id string) (*User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("no such user")
	}
	c := *u
	return &c, nil
}

// Delete removes the user by id
func (s *Store) Delete(id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.users[id]; !ok {
		return errors.NewNotFoundError("no such user")
	}
	delete(s.users, id)
	return nil
}

// List returns up to limit users ordered by id, starting after cursor. It
// also reports the total user count and the most recent update time across
// the whole collection, which parameterize the collection ETag.
func (s *Store) List(cursor string, limit int) (page []*User, nextCursor string,
	total int, maxUpdated time.Time) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	ids := make([]string, 0, len(s.users))
	for id, u := range s.users {
		ids = append(ids, id)
		if u.UpdatedAt.After(maxUpdated) {
			maxUpdated = u.UpdatedAt
		}
	}
	sort.Strings(ids)
	total = len(ids)
	for _, id := range ids {
		if cursor != "" && id <= cursor {
			continue
		}
		if len(page) == limit {
			nextCursor = page[len(page)-1].ID
			return page, nextCursor, total, maxUpdated
		}
		c := *s.users[id]
		page = append(page, &c)
	}
	return page, "", total, maxUpdated
}
