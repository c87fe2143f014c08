package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchMetrics_Counters(t *testing.T) {
	m := NewBatchMetrics("test")

	m.StartDocument()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsInFlight))
	m.FinishDocument("EXTRACTED", 20*time.Millisecond, []string{"chipset", "warranty"})
	m.StartDocument()
	m.FinishDocument("READ_ERROR", time.Millisecond, nil)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.documentsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsTotal.WithLabelValues("EXTRACTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsTotal.WithLabelValues("READ_ERROR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fieldMissTotal.WithLabelValues("chipset")))

	m.SkipDocument("SKIPPED")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsTotal.WithLabelValues("SKIPPED")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.documentsInFlight))

	m.SchemaViolations(3)
	m.SchemaViolations(0)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.violationsTotal))

	m.ListingParsed(nil)
	m.ListingParsed(errors.New("bad html"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.listingsTotal.WithLabelValues("error")))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestBatchMetrics_WriteTextfile(t *testing.T) {
	m := NewBatchMetrics("test")
	m.StartDocument()
	m.FinishDocument("EXTRACTED", time.Millisecond, []string{"power"})

	path := filepath.Join(t.TempDir(), "laptopspecs.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `laptopspecs_batch_documents_total{service="test",status="EXTRACTED"} 1`)
	assert.Contains(t, string(data), `laptopspecs_fields_miss_total{field="power",service="test"} 1`)
}
