package reconcile

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule(t *testing.T) {
	c := cron.New()
	sweeper := newFixture().sweeper

	id, err := Schedule(c, "@every 10m", sweeper, time.Minute)
	require.NoError(t, err)
	assert.True(t, c.Entry(id).Valid())

	_, err = Schedule(c, "not a schedule", sweeper, time.Minute)
	assert.Error(t, err)
}
