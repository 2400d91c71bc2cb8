package quub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quubnetwork/quub/cmd/quub"
	"github.com/quubnetwork/quub/internal/testutil"
)

func TestMineCmd(t *testing.T) {
	output, err := testutil.Execute(t, quub.RootCmd, "mine", "--blocks", "2", "--records", "2", "--difficulty", "1")
	require.NoError(t, err)

	assert.Contains(t, output, "Mined 2 blocks")
	assert.Contains(t, output, "Chain verified")
}

func TestMineCmdInvalidFlags(t *testing.T) {
	_, err := testutil.Execute(t, quub.RootCmd, "mine", "--blocks", "0", "--difficulty", "1")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "must mine at least one block")

	_, err = testutil.Execute(t, quub.RootCmd, "mine", "--blocks", "1", "--records", "0", "--difficulty", "1")
	assert.Error(t, err)
	assert.ErrorContains(t, err, "each block needs at least one record")
}

func TestMineCmdWithPrometheus(t *testing.T) {
	output, err := testutil.Execute(t, quub.RootCmd, "mine",
		"--blocks", "1", "--records", "1", "--difficulty", "1",
		"--enable-prometheus", "--prometheus-addr", "127.0.0.1:21121")
	require.NoError(t, err)

	assert.Contains(t, output, "Mined 1 blocks")
	assert.Contains(t, output, "Prometheus metrics server started")
}
