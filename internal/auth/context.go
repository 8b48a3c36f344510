// Package auth owns session state: who the current visitor is, the
// role derived from their profile, and the cookie-session plumbing
// used to sign in and out.
package auth

import (
	"sync"

	"github.com/hotiphone/storefront/internal/models"
)

// Context carries the resolved session state for one request: the
// current profile (nil while anonymous), a loading flag that stays
// true until resolution finishes, and the derived role. It is passed
// by reference to the navigation controller and the views instead of
// being read from a global.
type Context struct {
	mu        sync.RWMutex
	profile   *models.Profile
	loading   bool
	nextID    int
	listeners map[int]func(*models.Profile)
}

func NewContext() *Context {
	return &Context{
		loading:   true,
		listeners: make(map[int]func(*models.Profile)),
	}
}

// Set records the resolved profile (nil for an anonymous visitor),
// clears the loading flag and notifies subscribers.
func (c *Context) Set(p *models.Profile) {
	c.mu.Lock()
	c.profile = p
	c.loading = false
	fns := make([]func(*models.Profile), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// Subscribe registers a listener for profile changes and returns its
// teardown. Callers must invoke the returned func when done.
func (c *Context) Subscribe(fn func(*models.Profile)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Context) Profile() *models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile
}

// SessionPresent reports whether an authenticated user backs this
// request.
func (c *Context) SessionPresent() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile != nil
}

// Role is the access tier derived from the profile record; empty
// while anonymous, so it never matches a guarded page's requirement.
func (c *Context) Role() models.Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return ""
	}
	return c.profile.Role
}

func (c *Context) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}
