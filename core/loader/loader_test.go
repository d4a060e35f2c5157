package loader

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	s.loaded = true
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager(t *testing.T) {
	t.Run("Loads enabled features only", func(t *testing.T) {
		app := fiber.New()
		mgr := NewManager()
		on := &stubFeature{name: "statistics", enabled: true}
		off := &stubFeature{name: "skills"}
		mgr.Register(on)
		mgr.Register(off)

		require.NoError(t, mgr.LoadAll(app))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Len(t, mgr.Features(), 2)

		resp, err := app.Test(httptest.NewRequest("GET", "/statistics", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Stops at failing feature", func(t *testing.T) {
		mgr := NewManager()
		mgr.Register(&stubFeature{name: "member", enabled: true, err: errors.New("no db")})

		err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "failed to load feature member: no db")
	})
}
