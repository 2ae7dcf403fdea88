/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package recorder

/*****************************************************************************************************************/

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quietloom/artrack/internal/augmentation"
	"github.com/quietloom/artrack/pkg/registry"
)

/*****************************************************************************************************************/

func openTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.sqlite")
	r, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

/*****************************************************************************************************************/

func TestRecordAndHistory(t *testing.T) {
	r := openTestRecorder(t)

	require.NoError(t, r.Record(registry.ID(1), augmentation.StatusInsufficientMatches))
	require.NoError(t, r.Record(registry.ID(1), augmentation.StatusOk))
	require.NoError(t, r.Record(registry.ID(2), augmentation.StatusOk))

	history, err := r.History(registry.ID(1))
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, int(augmentation.StatusInsufficientMatches), history[0].Status)
	require.Equal(t, int(augmentation.StatusOk), history[1].Status)
}

/*****************************************************************************************************************/

func TestHistoryIsScopedToInstanceAndSession(t *testing.T) {
	r := openTestRecorder(t)

	require.NoError(t, r.Record(registry.ID(1), augmentation.StatusOk))

	history, err := r.History(registry.ID(99))
	require.NoError(t, err)
	require.Empty(t, history)
}

/*****************************************************************************************************************/

func TestEachSessionGetsADistinctID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.sqlite")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Record(registry.ID(1), augmentation.StatusOk))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	// The second session must not see the first session's history, even
	// though they share the same database file and instance id.
	history, err := second.History(registry.ID(1))
	require.NoError(t, err)
	require.Empty(t, history)
}

/*****************************************************************************************************************/
