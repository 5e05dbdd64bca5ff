package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The listing order is part of the API contract: newest change first,
// worker name breaking ties between same-second entries.
func TestListQueries_OrderByLastChangeThenWorker(t *testing.T) {
	assert.Contains(t, listAllQuery, "ORDER BY w.lastchange DESC, w.worker ASC")
	assert.Contains(t, listUserQuery, "ORDER BY w.lastchange DESC, w.worker ASC")
	assert.Contains(t, listLatestQuery, "ORDER BY lastchange DESC, worker ASC")
}

func TestListLatestQuery_PicksOpenEntryPerWorker(t *testing.T) {
	// Within a worker's partition the open entry (endtime 0) must win a
	// lastchange tie, so a just-started task outranks the stop before it.
	assert.Contains(t, listLatestQuery, "PARTITION BY w.worker")
	assert.Contains(t, listLatestQuery, "ORDER BY w.lastchange DESC, w.endtime ASC")
	assert.Equal(t, 1, strings.Count(listLatestQuery, "WHERE rn = 1"))
}
