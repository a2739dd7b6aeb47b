package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("CST", -6*3600)

// labPool 10 main-room desks in two blocks, two back-room desks and the streaming station
func labPool(t *testing.T) *ResourcePool {
	t.Helper()

	var resources []Resource
	for i := 1; i <= 10; i++ {
		block := 1
		if i > 5 {
			block = 2
		}
		resources = append(resources, Resource{ID: ResourceID(i), Name: fmt.Sprintf("Desk %03d", i), Zone: ZoneMain, Block: block})
	}
	resources = append(resources,
		Resource{ID: 11, Name: "Desk 011", Zone: ZoneBack},
		Resource{ID: 12, Name: "Desk 012", Zone: ZoneBack},
		Resource{ID: 13, Name: "Desk 000 - Streaming", Zone: ZoneBack, Streaming: true},
	)

	pool, err := NewResourcePool(PoolOptions{
		Resources:   resources,
		MainCeiling: 5,
		BackOrder:   []ResourceID{12, 11, 13},
		Suppressed:  map[time.Weekday][]Zone{time.Tuesday: {ZoneBack}},
	})
	require.NoError(t, err)
	return pool
}
