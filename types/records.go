package types

import "encoding/binary"

// AccountFlags is the bitfield carried in Account.Flags.
type AccountFlags uint16

const (
	AccountLinked                     AccountFlags = 1 << 0
	AccountDebitsMustNotExceedCredits AccountFlags = 1 << 1
	AccountCreditsMustNotExceedDebits AccountFlags = 1 << 2
	AccountHistory                    AccountFlags = 1 << 3
	AccountImported                   AccountFlags = 1 << 4
	AccountClosed                     AccountFlags = 1 << 5
)

// TransferFlags is the bitfield carried in Transfer.Flags.
type TransferFlags uint16

const (
	TransferLinked                TransferFlags = 1 << 0
	TransferPending                TransferFlags = 1 << 1
	TransferPostPendingTransfer    TransferFlags = 1 << 2
	TransferVoidPendingTransfer    TransferFlags = 1 << 3
	TransferBalancingDebit         TransferFlags = 1 << 4
	TransferBalancingCredit        TransferFlags = 1 << 5
	TransferClosingDebit           TransferFlags = 1 << 6
	TransferClosingCredit          TransferFlags = 1 << 7
	TransferImported               TransferFlags = 1 << 8
)

// AccountFilterFlags is the bitfield carried in AccountFilter.Flags.
type AccountFilterFlags uint32

const (
	AccountFilterDebits   AccountFilterFlags = 1 << 0
	AccountFilterCredits  AccountFilterFlags = 1 << 1
	AccountFilterReversed AccountFilterFlags = 1 << 2
)

// QueryFilterFlags is the bitfield carried in QueryFilter.Flags.
type QueryFilterFlags uint32

const (
	QueryFilterReversed QueryFilterFlags = 1 << 0
)

const (
	AccountSize       = 128
	TransferSize      = 128
	AccountFilterSize = 128
	AccountBalanceSize = 128
	QueryFilterSize   = 64
	ResultSize        = 8
)

// Account is the 128-byte fixed-layout record exchanged with CreateAccounts
// and LookupAccounts. Field order matches the server's wire layout exactly;
// Timestamp is assigned by the server and must be zero on a create request.
type Account struct {
	ID              Uint128
	DebitsPending   Uint128
	DebitsPosted    Uint128
	CreditsPending  Uint128
	CreditsPosted   Uint128
	UserData128     Uint128
	UserData64      uint64
	UserData32      uint32
	Reserved        uint32
	Ledger          uint32
	Code            uint16
	Flags           AccountFlags
	Timestamp       uint64
}

// MarshalBinary encodes the account into its 128-byte wire representation.
func (a Account) MarshalBinary() []byte {
	buf := make([]byte, AccountSize)
	copy(buf[0:16], a.ID[:])
	copy(buf[16:32], a.DebitsPending[:])
	copy(buf[32:48], a.DebitsPosted[:])
	copy(buf[48:64], a.CreditsPending[:])
	copy(buf[64:80], a.CreditsPosted[:])
	copy(buf[80:96], a.UserData128[:])
	binary.LittleEndian.PutUint64(buf[96:104], a.UserData64)
	binary.LittleEndian.PutUint32(buf[104:108], a.UserData32)
	binary.LittleEndian.PutUint32(buf[108:112], a.Reserved)
	binary.LittleEndian.PutUint32(buf[112:116], a.Ledger)
	binary.LittleEndian.PutUint16(buf[116:118], a.Code)
	binary.LittleEndian.PutUint16(buf[118:120], uint16(a.Flags))
	binary.LittleEndian.PutUint64(buf[120:128], a.Timestamp)
	return buf
}

// UnmarshalAccount decodes a 128-byte wire record into an Account.
func UnmarshalAccount(buf []byte) Account {
	var a Account
	copy(a.ID[:], buf[0:16])
	copy(a.DebitsPending[:], buf[16:32])
	copy(a.DebitsPosted[:], buf[32:48])
	copy(a.CreditsPending[:], buf[48:64])
	copy(a.CreditsPosted[:], buf[64:80])
	copy(a.UserData128[:], buf[80:96])
	a.UserData64 = binary.LittleEndian.Uint64(buf[96:104])
	a.UserData32 = binary.LittleEndian.Uint32(buf[104:108])
	a.Reserved = binary.LittleEndian.Uint32(buf[108:112])
	a.Ledger = binary.LittleEndian.Uint32(buf[112:116])
	a.Code = binary.LittleEndian.Uint16(buf[116:118])
	a.Flags = AccountFlags(binary.LittleEndian.Uint16(buf[118:120]))
	a.Timestamp = binary.LittleEndian.Uint64(buf[120:128])
	return a
}

// Transfer is the 128-byte fixed-layout record exchanged with
// CreateTransfers and LookupTransfers.
type Transfer struct {
	ID              Uint128
	DebitAccountID  Uint128
	CreditAccountID Uint128
	Amount          Uint128
	PendingID       Uint128
	UserData128     Uint128
	UserData64      uint64
	UserData32      uint32
	Timeout         uint32
	Ledger          uint32
	Code            uint16
	Flags           TransferFlags
	Timestamp       uint64
}

// MarshalBinary encodes the transfer into its 128-byte wire representation.
func (t Transfer) MarshalBinary() []byte {
	buf := make([]byte, TransferSize)
	copy(buf[0:16], t.ID[:])
	copy(buf[16:32], t.DebitAccountID[:])
	copy(buf[32:48], t.CreditAccountID[:])
	copy(buf[48:64], t.Amount[:])
	copy(buf[64:80], t.PendingID[:])
	copy(buf[80:96], t.UserData128[:])
	binary.LittleEndian.PutUint64(buf[96:104], t.UserData64)
	binary.LittleEndian.PutUint32(buf[104:108], t.UserData32)
	binary.LittleEndian.PutUint32(buf[108:112], t.Timeout)
	binary.LittleEndian.PutUint32(buf[112:116], t.Ledger)
	binary.LittleEndian.PutUint16(buf[116:118], t.Code)
	binary.LittleEndian.PutUint16(buf[118:120], uint16(t.Flags))
	binary.LittleEndian.PutUint64(buf[120:128], t.Timestamp)
	return buf
}

// UnmarshalTransfer decodes a 128-byte wire record into a Transfer.
func UnmarshalTransfer(buf []byte) Transfer {
	var t Transfer
	copy(t.ID[:], buf[0:16])
	copy(t.DebitAccountID[:], buf[16:32])
	copy(t.CreditAccountID[:], buf[32:48])
	copy(t.Amount[:], buf[48:64])
	copy(t.PendingID[:], buf[64:80])
	copy(t.UserData128[:], buf[80:96])
	t.UserData64 = binary.LittleEndian.Uint64(buf[96:104])
	t.UserData32 = binary.LittleEndian.Uint32(buf[104:108])
	t.Timeout = binary.LittleEndian.Uint32(buf[108:112])
	t.Ledger = binary.LittleEndian.Uint32(buf[112:116])
	t.Code = binary.LittleEndian.Uint16(buf[116:118])
	t.Flags = TransferFlags(binary.LittleEndian.Uint16(buf[118:120]))
	t.Timestamp = binary.LittleEndian.Uint64(buf[120:128])
	return t
}

// AccountFilter selects the transfers or balances to return from
// GetAccountTransfers/GetAccountBalances. Exactly one is sent per request.
type AccountFilter struct {
	AccountID    Uint128
	UserData128  Uint128
	UserData64   uint64
	UserData32   uint32
	Code         uint16
	Reserved     [58]byte
	TimestampMin uint64
	TimestampMax uint64
	Limit        uint32
	Flags        AccountFilterFlags
}

// MarshalBinary encodes the filter into its 128-byte wire representation.
func (f AccountFilter) MarshalBinary() []byte {
	buf := make([]byte, AccountFilterSize)
	copy(buf[0:16], f.AccountID[:])
	copy(buf[16:32], f.UserData128[:])
	binary.LittleEndian.PutUint64(buf[32:40], f.UserData64)
	binary.LittleEndian.PutUint32(buf[40:44], f.UserData32)
	binary.LittleEndian.PutUint16(buf[44:46], f.Code)
	copy(buf[46:104], f.Reserved[:])
	binary.LittleEndian.PutUint64(buf[104:112], f.TimestampMin)
	binary.LittleEndian.PutUint64(buf[112:120], f.TimestampMax)
	binary.LittleEndian.PutUint32(buf[120:124], f.Limit)
	binary.LittleEndian.PutUint32(buf[124:128], uint32(f.Flags))
	return buf
}

// QueryFilter selects the accounts or transfers to return from
// QueryAccounts/QueryTransfers. Exactly one is sent per request.
type QueryFilter struct {
	UserData128  Uint128
	UserData64   uint64
	UserData32   uint32
	Ledger       uint32
	Code         uint16
	Reserved     [6]byte
	TimestampMin uint64
	TimestampMax uint64
	Limit        uint32
	Flags        QueryFilterFlags
}

// MarshalBinary encodes the filter into its 64-byte wire representation.
func (f QueryFilter) MarshalBinary() []byte {
	buf := make([]byte, QueryFilterSize)
	copy(buf[0:16], f.UserData128[:])
	binary.LittleEndian.PutUint64(buf[16:24], f.UserData64)
	binary.LittleEndian.PutUint32(buf[24:28], f.UserData32)
	binary.LittleEndian.PutUint32(buf[28:32], f.Ledger)
	binary.LittleEndian.PutUint16(buf[32:34], f.Code)
	copy(buf[34:40], f.Reserved[:])
	binary.LittleEndian.PutUint64(buf[40:48], f.TimestampMin)
	binary.LittleEndian.PutUint64(buf[48:56], f.TimestampMax)
	binary.LittleEndian.PutUint32(buf[56:60], f.Limit)
	binary.LittleEndian.PutUint32(buf[60:64], uint32(f.Flags))
	return buf
}

// AccountBalance is a historical balance snapshot returned by
// GetAccountBalances when the account has AccountHistory set.
type AccountBalance struct {
	DebitsPending  Uint128
	DebitsPosted   Uint128
	CreditsPending Uint128
	CreditsPosted  Uint128
	Timestamp      uint64
	Reserved       [56]byte
}

// UnmarshalAccountBalance decodes a 128-byte wire record.
func UnmarshalAccountBalance(buf []byte) AccountBalance {
	var b AccountBalance
	copy(b.DebitsPending[:], buf[0:16])
	copy(b.DebitsPosted[:], buf[16:32])
	copy(b.CreditsPending[:], buf[32:48])
	copy(b.CreditsPosted[:], buf[48:64])
	b.Timestamp = binary.LittleEndian.Uint64(buf[64:72])
	copy(b.Reserved[:], buf[72:128])
	return b
}

// RegisterRequest is the zero-filled 256-byte body of the registration
// handshake request. It carries no fields beyond padding, reserved for
// future protocol negotiation.
type RegisterRequest struct {
	Reserved [256]byte
}

// MarshalBinary encodes the (always zero) register request body.
func (r RegisterRequest) MarshalBinary() []byte {
	return make([]byte, 256)
}

// RegisterResult is the 64-byte body of a successful registration reply.
type RegisterResult struct {
	BatchSizeLimit uint32
	Reserved       [60]byte
}

const RegisterResultSize = 64

// UnmarshalRegisterResult decodes a 64-byte wire record. The caller must
// verify buf has at least RegisterResultSize bytes before calling this.
func UnmarshalRegisterResult(buf []byte) RegisterResult {
	var r RegisterResult
	r.BatchSizeLimit = binary.LittleEndian.Uint32(buf[0:4])
	copy(r.Reserved[:], buf[4:64])
	return r
}
