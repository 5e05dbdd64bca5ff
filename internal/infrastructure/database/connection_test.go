package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"worklog/internal/shared/config"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(&config.DatabaseConfig{
		Host:     "db.local",
		Port:     3306,
		Username: "worklog",
		Password: "secret",
		Database: "worklog_dev",
	})

	assert.Contains(t, dsn, "worklog:secret@tcp(db.local:3306)/worklog_dev?")
	assert.Contains(t, dsn, "parseTime=true")

	// Saving a ticket with unchanged fields must still count as a match,
	// or the store would report the ticket as missing.
	assert.Contains(t, dsn, "clientFoundRows=true")
}
