package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"longeda/domain/table"
	apperrors "longeda/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `subject_id,visit_month,bmi
A,0,21.5
A,6,21.9
B,0,
`

func TestFromReader(t *testing.T) {
	tbl, err := FromReader(strings.NewReader(sampleCSV), "visits")
	require.NoError(t, err)

	assert.Equal(t, "visits", tbl.Name())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"visit_month", "bmi"}, tbl.NumericColumns())

	// The empty bmi field becomes a missing cell, not a zero.
	assert.False(t, tbl.NumberAt(2, "bmi").Valid)
	assert.Equal(t, table.Some(21.9), tbl.NumberAt(1, "bmi"))
}

func TestFromReader_NoHeader(t *testing.T) {
	_, err := FromReader(strings.NewReader(""), "empty")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestFromReader_RaggedRecord(t *testing.T) {
	_, err := FromReader(strings.NewReader("a,b\n1\n"), "ragged")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSourceError, apperrors.GetCode(err))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cohort.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	tbl, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cohort", tbl.Name())
	assert.Equal(t, 3, tbl.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSourceError, apperrors.GetCode(err))
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("ignored.csv").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
