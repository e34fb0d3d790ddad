package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandParsing(t *testing.T) {
	c, ok := ParseCommand(5)
	require.True(t, ok)
	require.Equal(t, CommandRequest, c)
	require.True(t, c.IsClientCommand())

	_, ok = ParseCommand(12)
	require.False(t, ok, "12 is deprecated and must not parse")

	_, ok = ParseCommand(22)
	require.False(t, ok, "21-23 are deprecated and must not parse")
}

func TestOperationReservedBoundary(t *testing.T) {
	require.True(t, OperationRegister.IsVSRReserved())
	require.False(t, OperationCreateAccounts.IsVSRReserved())
	require.EqualValues(t, 128, VSROperationsReserved)
}

func TestOperationBatchableAndMultiBatch(t *testing.T) {
	require.True(t, OperationCreateAccounts.IsBatchable())
	require.True(t, OperationLookupTransfers.IsBatchable())
	require.False(t, OperationGetAccountTransfers.IsBatchable())

	require.True(t, OperationGetAccountTransfers.IsMultiBatch())
	require.True(t, OperationQueryAccounts.IsMultiBatch())
	require.False(t, OperationRegister.IsMultiBatch())
}

func TestEvictionReasonParsing(t *testing.T) {
	r, ok := ParseEvictionReason(1)
	require.True(t, ok)
	require.Equal(t, "no_session", r.String())

	_, ok = ParseEvictionReason(0)
	require.False(t, ok)

	_, ok = ParseEvictionReason(9)
	require.False(t, ok)
}
