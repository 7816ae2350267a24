package reembed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at the configured interval", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 10, 5)
		tracker.Start()

		tracker.Update(2)
		assert.Empty(t, out.String())

		tracker.Update(5)
		assert.Contains(t, out.String(), "5/10")

		tracker.Finish()
		assert.Contains(t, out.String(), "10/10 (100.0%)")
	})

	t.Run("caps progress at total", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 4, 1)
		tracker.Start()

		tracker.Update(9)
		assert.Contains(t, out.String(), "4/4")
	})

	t.Run("silent until started", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 4, 1)

		tracker.Update(2)
		tracker.Finish()
		assert.Empty(t, strings.TrimSpace(out.String()))
		assert.Zero(t, tracker.Elapsed())
	})
}
