package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlab/weft/internal/ir"
	"github.com/weftlab/weft/internal/verify"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSystem() *ir.SystemIR {
	return &ir.SystemIR{
		Name: "thermostat",
		Blocks: []ir.BlockRecord{
			{Name: "Sensor", ForwardOut: "Temperature"},
			{Name: "Controller", ForwardIn: "Temperature", ForwardOut: "Command"},
		},
		Wirings: []ir.WiringRecord{{
			Source: "Sensor", Target: "Controller", Label: "Temperature",
			Direction: ir.DirectionCovariant, IsTemporal: true,
			Category: ir.CategoryDataflow,
		}},
		Source: "Sensor >> Controller",
	}
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestSystemRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	orig := testSystem()
	hash, err := s.PutSystem(ctx, orig)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	back, err := s.GetSystem(ctx, hash)
	require.NoError(t, err)
	// Lossless round trip, flags and direction included.
	assert.Equal(t, orig, back)
}

func TestPutSystemIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	h1, err := s.PutSystem(ctx, testSystem())
	require.NoError(t, err)
	h2, err := s.PutSystem(ctx, testSystem())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestGetSystemNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetSystem(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	hash, err := s.PutSystem(ctx, testSystem())
	require.NoError(t, err)

	report := verify.Verify(testSystem())
	id1, err := s.PutReport(ctx, hash, report)
	require.NoError(t, err)
	id2, err := s.PutReport(ctx, hash, report)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	archived, err := s.ListReports(ctx, hash)
	require.NoError(t, err)
	require.Len(t, archived, 2)
	assert.ElementsMatch(t, []string{id1, id2}, []string{archived[0].ID, archived[1].ID})
	assert.Equal(t, report, archived[0].Report)
	assert.Equal(t, hash, archived[0].SystemHash)
}

func TestListReportsEmpty(t *testing.T) {
	s := openTestStore(t)
	hash, err := s.PutSystem(context.Background(), testSystem())
	require.NoError(t, err)

	archived, err := s.ListReports(context.Background(), hash)
	require.NoError(t, err)
	assert.Empty(t, archived)
}
