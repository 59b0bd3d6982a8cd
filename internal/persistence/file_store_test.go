package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/incident-desk/internal/config"
	"github.com/deskops/incident-desk/internal/domain"
	apperrors "github.com/deskops/incident-desk/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			ID:           3,
			Caller:       "sarah",
			Category:     "Network",
			State:        "On Hold",
			Priority:     "Urgent",
			Owner:        strPtr("zmei"),
			Name:         "vpn down",
			OnHoldReason: strPtr("Awaiting Vendor"),
			Notes:        []string{"reported", "investigating", "waiting on isp"},
		},
		{
			ID:               0,
			Caller:           "bob",
			Category:         "Inquiry",
			State:            "Canceled",
			Priority:         "Low",
			Name:             "printer question",
			CancellationCode: strPtr("Not an Incident"),
			Notes:            []string{"asked", "not ours"},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, name := range []string{"desk.yaml", "desk.json", "DESK.JSON"} {
		t.Run(name, func(t *testing.T) {
			store := NewFileStore(filepath.Join(t.TempDir(), "nested", name))
			require.NoError(t, store.Save(context.Background(), sampleRecords()))

			got, err := store.Load(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(sampleRecords(), got); diff != "" {
				t.Fatalf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileStoreFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonStore := NewFileStore(filepath.Join(dir, "desk.json"))
	require.NoError(t, jsonStore.Save(context.Background(), sampleRecords()[:1]))
	data, err := os.ReadFile(jsonStore.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"on_hold_reason": "Awaiting Vendor"`)

	yamlStore := NewFileStore(filepath.Join(dir, "desk.yml"))
	require.NoError(t, yamlStore.Save(context.Background(), sampleRecords()[:1]))
	data, err = os.ReadFile(yamlStore.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "on_hold_reason: Awaiting Vendor")
	assert.NotContains(t, string(data), "resolution_code")
}

func TestFileStoreMissingOrEmptyFile(t *testing.T) {
	dir := t.TempDir()
	records, err := NewFileStore(filepath.Join(dir, "absent.yaml")).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	records, err = NewFileStore(empty).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "decode")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewFileStore("desk.yaml").Decode([]byte("- id: [1"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestFileStoreSaveEmptyDesk(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "desk.json"))
	require.NoError(t, store.Save(context.Background(), nil))
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestOpenStore(t *testing.T) {
	store, err := OpenStore(config.StorageConfig{Backend: config.BackendMemory}, Backends{})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = OpenStore(config.StorageConfig{Backend: config.BackendFile, FilePath: "desk.yaml"}, Backends{})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	_, err = OpenStore(config.StorageConfig{Backend: config.BackendPostgres}, Backends{Postgres: &Postgres{}})
	assert.Error(t, err)

	_, err = OpenStore(config.StorageConfig{Backend: config.BackendRedis}, Backends{})
	assert.Error(t, err)

	_, err = OpenStore(config.StorageConfig{Backend: "tape"}, Backends{})
	assert.Error(t, err)
}
