package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyTrackingSetsShipped(t *testing.T) {
	o := &Order{Status: StatusPaid}
	o.ApplyTracking("BR123456789")

	assert.Equal(t, "BR123456789", o.TrackingCode)
	assert.Equal(t, StatusShipped, o.Status)
}

func TestApplyTrackingEmptyCodeKeepsStatus(t *testing.T) {
	o := &Order{Status: StatusPaid, TrackingCode: "OLD"}
	o.ApplyTracking("")

	assert.Equal(t, "", o.TrackingCode)
	assert.Equal(t, StatusPaid, o.Status)
}

func TestApplyTrackingOverridesAnyStatus(t *testing.T) {
	for _, status := range []string{StatusPlaced, StatusPreparing, StatusDelivered} {
		o := &Order{Status: status}
		o.ApplyTracking("BR000000001")
		assert.Equal(t, StatusShipped, o.Status, "from %s", status)
	}
}
