package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordUpdate(t *testing.T) {
	Init()

	RecordUpdate("aws-test", nil, 250*time.Millisecond, 7)
	RecordUpdate("aws-test", errors.New("listing failed"), time.Second, 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(updateTotal.WithLabelValues("aws-test", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(updateTotal.WithLabelValues("aws-test", "failure")))

	// The gauge reflects the last successful cycle only.
	assert.Equal(t, float64(7), testutil.ToFloat64(secretsCached.WithLabelValues("aws-test")))
}

func TestRecordLookup(t *testing.T) {
	Init()

	RecordLookup("aws-lookup", true)
	RecordLookup("aws-lookup", true)
	RecordLookup("aws-lookup", false)

	assert.Equal(t, float64(2), testutil.ToFloat64(lookupTotal.WithLabelValues("aws-lookup", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(lookupTotal.WithLabelValues("aws-lookup", "miss")))
}

func TestRecordBeforeInitIsNoOp(t *testing.T) {
	// Guarded by nil checks; must not panic even if Init was never called
	// in this process (covered implicitly once Init has run).
	RecordUpdate("unregistered", nil, 0, 0)
	RecordLookup("unregistered", false)
}
