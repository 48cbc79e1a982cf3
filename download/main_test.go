package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	r := dbRow{
		startMoment:       time.Date(2025, 3, 7, 9, 5, 1, 0, time.UTC),
		user:              "vali",
		simulationVersion: 1,
		inputVersion:      2,
	}
	assert.Equal(t, "vali/20250307-090501.cutrope-1-2", r.FileName())
}
