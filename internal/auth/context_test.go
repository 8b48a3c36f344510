package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hotiphone/storefront/internal/models"
)

func TestContextStartsLoading(t *testing.T) {
	ctx := NewContext()
	assert.True(t, ctx.Loading())
	assert.False(t, ctx.SessionPresent())
	assert.Equal(t, models.Role(""), ctx.Role())
}

func TestSetResolvesProfileAndRole(t *testing.T) {
	ctx := NewContext()
	ctx.Set(&models.Profile{ID: 7, Role: models.RoleAdmin})

	assert.False(t, ctx.Loading())
	assert.True(t, ctx.SessionPresent())
	assert.Equal(t, models.RoleAdmin, ctx.Role())
}

func TestSetNilResolvesAnonymous(t *testing.T) {
	ctx := NewContext()
	ctx.Set(nil)

	assert.False(t, ctx.Loading())
	assert.False(t, ctx.SessionPresent())
}

func TestSubscribeNotifiesAndUnsubscribeStops(t *testing.T) {
	ctx := NewContext()
	var seen []*models.Profile
	unsubscribe := ctx.Subscribe(func(p *models.Profile) { seen = append(seen, p) })

	p := &models.Profile{ID: 1}
	ctx.Set(p)
	assert.Len(t, seen, 1)
	assert.Same(t, p, seen[0])

	unsubscribe()
	ctx.Set(nil)
	assert.Len(t, seen, 1)
}
