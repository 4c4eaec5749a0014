package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, loadLocation(""))
	assert.Equal(t, time.UTC, loadLocation("Mars/Olympus_Mons"))
	assert.Equal(t, "UTC", loadLocation("UTC").String())
}
