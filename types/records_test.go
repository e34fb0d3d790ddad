package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountRoundTrip(t *testing.T) {
	a := Account{
		ID:         Uint128FromUint64(0x1),
		UserData64: 42,
		Ledger:     1,
		Code:       1,
		Flags:      AccountHistory | AccountLinked,
		Timestamp:  0,
	}
	buf := a.MarshalBinary()
	require.Len(t, buf, AccountSize)
	got := UnmarshalAccount(buf)
	require.Equal(t, a, got)
}

func TestTransferRoundTrip(t *testing.T) {
	tr := Transfer{
		ID:              Uint128FromUint64(0x2),
		DebitAccountID:  Uint128FromUint64(0x1),
		CreditAccountID: Uint128FromUint64(0x3),
		Amount:          Uint128FromUint64(100),
		Ledger:          1,
		Code:            1,
		Flags:           TransferPending,
	}
	buf := tr.MarshalBinary()
	require.Len(t, buf, TransferSize)
	got := UnmarshalTransfer(buf)
	require.Equal(t, tr, got)
}

func TestAccountFilterMarshalSize(t *testing.T) {
	f := AccountFilter{AccountID: Uint128FromUint64(1), Limit: 10, Flags: AccountFilterDebits}
	require.Len(t, f.MarshalBinary(), AccountFilterSize)
}

func TestQueryFilterMarshalSize(t *testing.T) {
	f := QueryFilter{Ledger: 1, Limit: 10}
	require.Len(t, f.MarshalBinary(), QueryFilterSize)
}

func TestUnmarshalAccountBalanceTimestamp(t *testing.T) {
	buf := make([]byte, AccountBalanceSize)
	buf[64] = 0x01
	b := UnmarshalAccountBalance(buf)
	require.EqualValues(t, 1, b.Timestamp)
}

func TestUnmarshalRegisterResultBatchSizeLimit(t *testing.T) {
	buf := make([]byte, RegisterResultSize)
	buf[0] = 0x00
	buf[1] = 0x00
	buf[2] = 0x10
	buf[3] = 0x00
	r := UnmarshalRegisterResult(buf)
	require.EqualValues(t, 1<<20, r.BatchSizeLimit)
}

func TestCreateAccountsResultRoundTrip(t *testing.T) {
	r := CreateAccountsResult{Index: 3, Result: CreateAccountExists}
	got := UnmarshalCreateAccountsResult(r.MarshalBinary())
	require.Equal(t, r, got)
}

func TestCreateTransfersResultRoundTrip(t *testing.T) {
	r := CreateTransfersResult{Index: 5, Result: CreateTransferExceedsCredits}
	got := UnmarshalCreateTransfersResult(r.MarshalBinary())
	require.Equal(t, r, got)
}

func TestResultCodeCounts(t *testing.T) {
	require.EqualValues(t, 26, CreateAccountImportedEventTimestampMustNotRegress)
	require.EqualValues(t, 0, CreateAccountOk)
}

// TestCreateTransferResultWireValues pins the transfer result codes that
// diverge from a contiguous renumbering of CreateAccountResult: the
// transfer enum has its own gaps (18 is a deprecated, never-emitted code)
// and its own ordering past FlagsAreMutuallyExclusive.
func TestCreateTransferResultWireValues(t *testing.T) {
	require.EqualValues(t, 0, CreateTransferOk)
	require.EqualValues(t, 4, CreateTransferReservedFlag)
	require.EqualValues(t, 7, CreateTransferFlagsAreMutuallyExclusive)
	require.EqualValues(t, 17, CreateTransferTimeoutReservedForPendingTransfer)
	require.EqualValues(t, 19, CreateTransferLedgerMustNotBeZero)
	require.EqualValues(t, 46, CreateTransferExists)
	require.EqualValues(t, 64, CreateTransferClosingTransferMustBePending)
	require.EqualValues(t, 67, CreateTransferExistsWithDifferentLedger)
	require.EqualValues(t, 68, CreateTransferIDAlreadyFailed)
}
