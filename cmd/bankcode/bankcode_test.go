package bankcode

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"lldbank/lld-validator/cmd/root"
	"lldbank/lld-validator/internal/config"
	"lldbank/lld-validator/internal/container"
	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/reference"
	"lldbank/lld-validator/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, refStore store.ReferenceStore, args ...string) (string, error) {
	t.Helper()
	factory := root.NewContainer
	t.Cleanup(func() {
		root.NewContainer = factory
		search = ""
	})
	root.NewContainer = func(cfg *config.Config) (*container.Container, error) {
		return container.NewContainerWithStore(cfg, refStore, logging.NewMockLogger())
	}

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetArgs(append([]string{}, args...))
	err := Cmd.Execute()
	return out.String(), err
}

func newStore() *store.MockReferenceStore {
	return store.NewMockReferenceStore(&reference.Tables{BankCodes: map[string]string{
		"008": "BANK MANDIRI",
		"002": "BANK RAKYAT INDONESIA",
		"014": "BANK CENTRAL ASIA",
	}})
}

func TestBankCodeList(t *testing.T) {
	out, err := run(t, newStore(), "list")
	require.NoError(t, err)
	assert.Equal(t, "CODE  BANK\n002   BANK RAKYAT INDONESIA\n008   BANK MANDIRI\n014   BANK CENTRAL ASIA\n3 of 3 bank codes\n", out)

	out, err = run(t, newStore(), "list", "-s", "mandiri")
	require.NoError(t, err)
	assert.Contains(t, out, "008")
	assert.NotContains(t, out, "014")
	assert.Contains(t, out, "1 of 3 bank codes")
}

func TestBankCodeAddUpdateDelete(t *testing.T) {
	refStore := newStore()
	ctx := context.Background()

	out, err := run(t, refStore, "add", "009", "BANK NEGARA INDONESIA")
	require.NoError(t, err)
	assert.Equal(t, "OK: add bank code \"009\"\n", out)

	_, err = run(t, refStore, "update", "008", "PT BANK MANDIRI (PERSERO) TBK")
	require.NoError(t, err)

	_, err = run(t, refStore, "delete", "014")
	require.NoError(t, err)

	codes, err := refStore.BankCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"002": "BANK RAKYAT INDONESIA",
		"008": "PT BANK MANDIRI (PERSERO) TBK",
		"009": "BANK NEGARA INDONESIA",
	}, codes)
}

func TestBankCodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"not three digits", []string{"add", "8", "BANK MANDIRI"}, store.ErrInvalid},
		{"not numeric", []string{"add", "0A8", "BANK MANDIRI"}, store.ErrInvalid},
		{"blank name", []string{"add", "009", "  "}, store.ErrInvalid},
		{"duplicate", []string{"add", "008", "BANK MANDIRI"}, store.ErrDuplicate},
		{"update missing", []string{"update", "999", "UNKNOWN"}, store.ErrNotFound},
		{"delete missing", []string{"delete", "999"}, store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, newStore(), tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		refStore := newStore()
		refStore.SaveError = errors.New("disk full")
		_, err := run(t, refStore, "delete", "008")
		assert.EqualError(t, err, `failed to delete bank code "008": disk full`)
	})
}
