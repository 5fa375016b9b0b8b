package adapter

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type rawOnly struct{}

func (rawOnly) ExecuteRaw(context.Context, any, string, []any) (any, error) { return nil, nil }

// fullAdapter combines every capability through the generated mocks.
type fullAdapter struct {
	*MockAdapter
	*MockRowFetcher
	*MockRowsFetcher
	*MockMutator
	*MockTxController
	*MockTransactionRunner
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(KindMySQL, rawOnly{}))

	a, err := r.Get(KindMySQL)
	require.NoError(t, err)
	assert.Equal(t, rawOnly{}, a)
	assert.True(t, r.IsRegistered(KindMySQL))
	assert.False(t, r.IsRegistered(KindSQLite))

	r.Unregister(KindMySQL)
	assert.False(t, r.IsRegistered(KindMySQL))
}

func TestRegistry_GetUnknownListsRegistered(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get(KindPostgres)
	require.ErrorIs(t, err, ErrAdapterNotFound)
	assert.Contains(t, err.Error(), `"postgres"`)
	assert.Contains(t, err.Error(), "registered: none")

	require.NoError(t, r.Register(KindSQLite, rawOnly{}))
	require.NoError(t, r.Register(KindMySQL, rawOnly{}))

	_, err = r.Get(KindPostgres)
	require.ErrorIs(t, err, ErrAdapterNotFound)
	assert.Contains(t, err.Error(), "registered: mysql, sqlite")
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Kind("oracle"), rawOnly{})
	require.ErrorIs(t, err, ErrUnknownKind)

	err = r.Register(KindMySQL, nil)
	require.ErrorIs(t, err, ErrNilAdapter)

	assert.Empty(t, r.Registered())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)

		i := i

		go func() {
			defer wg.Done()

			_ = r.Register(Kinds()[i%3], rawOnly{})
		}()

		go func() {
			defer wg.Done()

			_ = r.Registered()
		}()
	}

	wg.Wait()

	assert.Len(t, r.Registered(), 3)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		ok       bool
	}{
		{"mysql", KindMySQL, true},
		{"MariaDB", KindMySQL, true},
		{"postgres", KindPostgres, true},
		{" postgresql ", KindPostgres, true},
		{"supabase", KindPostgres, true},
		{"cockroachdb", KindPostgres, true},
		{"sqlite", KindSQLite, true},
		{"sqlite3", KindSQLite, true},
		{"oracle", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			k, ok := ParseKind(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, k)
		})
	}
}

func TestDescribe(t *testing.T) {
	ctrl := gomock.NewController(t)

	bare := Describe(rawOnly{})
	assert.False(t, bare.HasFetchOne())
	assert.False(t, bare.HasFetchAll())
	assert.False(t, bare.HasMutate())
	assert.False(t, bare.HasTransactions())
	assert.False(t, bare.HasManualTransactions())
	assert.Empty(t, bare.Names())

	full := Describe(fullAdapter{
		MockAdapter:           NewMockAdapter(ctrl),
		MockRowFetcher:        NewMockRowFetcher(ctrl),
		MockRowsFetcher:       NewMockRowsFetcher(ctrl),
		MockMutator:           NewMockMutator(ctrl),
		MockTxController:      NewMockTxController(ctrl),
		MockTransactionRunner: NewMockTransactionRunner(ctrl),
	})
	assert.True(t, full.HasFetchOne())
	assert.True(t, full.HasFetchAll())
	assert.True(t, full.HasMutate())
	assert.True(t, full.HasManualTransactions())
	assert.True(t, full.HasTransactions())
	assert.Equal(t, []string{"fetchOne", "fetchAll", "mutate", "begin", "commit", "rollback", "runInTransaction"},
		full.Names())

	runnerOnly := Describe(struct {
		*MockAdapter
		*MockTransactionRunner
	}{NewMockAdapter(ctrl), NewMockTransactionRunner(ctrl)})
	assert.True(t, runnerOnly.HasTransactions())
	assert.False(t, runnerOnly.HasManualTransactions())
}

func TestRegistry_MustGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(KindSQLite, rawOnly{}))

	assert.Equal(t, rawOnly{}, r.MustGet(KindSQLite))
	assert.Panics(t, func() { r.MustGet(KindMySQL) })
}
