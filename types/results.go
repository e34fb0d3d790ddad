package types

import "encoding/binary"

// CreateAccountResult enumerates why a CreateAccounts entry did or did not
// succeed. Integer values are part of the wire protocol and must never be
// renumbered.
type CreateAccountResult uint32

const (
	CreateAccountOk CreateAccountResult = iota
	CreateAccountLinkedEventFailed
	CreateAccountLinkedEventChainOpen
	CreateAccountTimestampMustBeZero
	CreateAccountReservedField
	CreateAccountReservedFlag
	CreateAccountIDMustNotBeZero
	CreateAccountIDMustNotBeIntMax
	CreateAccountFlagsAreMutuallyExclusive
	CreateAccountDebitsPendingMustBeZero
	CreateAccountDebitsPostedMustBeZero
	CreateAccountCreditsPendingMustBeZero
	CreateAccountCreditsPostedMustBeZero
	CreateAccountLedgerMustNotBeZero
	CreateAccountCodeMustNotBeZero
	CreateAccountExistsWithDifferentFlags
	CreateAccountExistsWithDifferentUserData128
	CreateAccountExistsWithDifferentUserData64
	CreateAccountExistsWithDifferentUserData32
	CreateAccountExistsWithDifferentLedger
	CreateAccountExistsWithDifferentCode
	CreateAccountExists
	CreateAccountImportedEventExpected
	CreateAccountImportedEventNotExpected
	CreateAccountImportedEventTimestampOutOfRange
	CreateAccountImportedEventTimestampMustNotAdvance
	CreateAccountImportedEventTimestampMustNotRegress
)

// CreateTransferResult enumerates why a CreateTransfers entry did or did
// not succeed. Integer values are part of the wire protocol and must never
// be renumbered; they are pinned explicitly (rather than via bare iota)
// because the transfer enum is not a contiguous renumbering of the account
// enum — it has its own reserved/deprecated gaps (18 is a deprecated
// amount_must_not_be_zero code and is never emitted).
type CreateTransferResult uint32

const (
	CreateTransferOk                                              CreateTransferResult = 0
	CreateTransferLinkedEventFailed                                CreateTransferResult = 1
	CreateTransferLinkedEventChainOpen                             CreateTransferResult = 2
	CreateTransferTimestampMustBeZero                              CreateTransferResult = 3
	CreateTransferReservedFlag                                     CreateTransferResult = 4
	CreateTransferIDMustNotBeZero                                  CreateTransferResult = 5
	CreateTransferIDMustNotBeIntMax                                CreateTransferResult = 6
	CreateTransferFlagsAreMutuallyExclusive                        CreateTransferResult = 7
	CreateTransferDebitAccountIDMustNotBeZero                      CreateTransferResult = 8
	CreateTransferDebitAccountIDMustNotBeIntMax                    CreateTransferResult = 9
	CreateTransferCreditAccountIDMustNotBeZero                     CreateTransferResult = 10
	CreateTransferCreditAccountIDMustNotBeIntMax                   CreateTransferResult = 11
	CreateTransferAccountsMustBeDifferent                          CreateTransferResult = 12
	CreateTransferPendingIDMustBeZero                              CreateTransferResult = 13
	CreateTransferPendingIDMustNotBeZero                           CreateTransferResult = 14
	CreateTransferPendingIDMustNotBeIntMax                         CreateTransferResult = 15
	CreateTransferPendingIDMustBeDifferent                         CreateTransferResult = 16
	CreateTransferTimeoutReservedForPendingTransfer                CreateTransferResult = 17
	// 18 is deprecated (amount_must_not_be_zero); never emitted.
	CreateTransferLedgerMustNotBeZero                              CreateTransferResult = 19
	CreateTransferCodeMustNotBeZero                                CreateTransferResult = 20
	CreateTransferDebitAccountNotFound                             CreateTransferResult = 21
	CreateTransferCreditAccountNotFound                            CreateTransferResult = 22
	CreateTransferAccountsMustHaveTheSameLedger                    CreateTransferResult = 23
	CreateTransferTransferMustHaveTheSameLedgerAsAccounts          CreateTransferResult = 24
	CreateTransferPendingTransferNotFound                          CreateTransferResult = 25
	CreateTransferPendingTransferNotPending                        CreateTransferResult = 26
	CreateTransferPendingTransferHasDifferentDebitAccountID        CreateTransferResult = 27
	CreateTransferPendingTransferHasDifferentCreditAccountID       CreateTransferResult = 28
	CreateTransferPendingTransferHasDifferentLedger                CreateTransferResult = 29
	CreateTransferPendingTransferHasDifferentCode                  CreateTransferResult = 30
	CreateTransferExceedsPendingTransferAmount                     CreateTransferResult = 31
	CreateTransferPendingTransferHasDifferentAmount                CreateTransferResult = 32
	CreateTransferPendingTransferAlreadyPosted                     CreateTransferResult = 33
	CreateTransferPendingTransferAlreadyVoided                     CreateTransferResult = 34
	CreateTransferPendingTransferExpired                           CreateTransferResult = 35
	CreateTransferExistsWithDifferentFlags                         CreateTransferResult = 36
	CreateTransferExistsWithDifferentDebitAccountID                CreateTransferResult = 37
	CreateTransferExistsWithDifferentCreditAccountID               CreateTransferResult = 38
	CreateTransferExistsWithDifferentAmount                        CreateTransferResult = 39
	CreateTransferExistsWithDifferentPendingID                     CreateTransferResult = 40
	CreateTransferExistsWithDifferentUserData128                   CreateTransferResult = 41
	CreateTransferExistsWithDifferentUserData64                    CreateTransferResult = 42
	CreateTransferExistsWithDifferentUserData32                    CreateTransferResult = 43
	CreateTransferExistsWithDifferentTimeout                       CreateTransferResult = 44
	CreateTransferExistsWithDifferentCode                          CreateTransferResult = 45
	CreateTransferExists                                           CreateTransferResult = 46
	CreateTransferOverflowsDebitsPending                           CreateTransferResult = 47
	CreateTransferOverflowsCreditsPending                          CreateTransferResult = 48
	CreateTransferOverflowsDebitsPosted                            CreateTransferResult = 49
	CreateTransferOverflowsCreditsPosted                           CreateTransferResult = 50
	CreateTransferOverflowsDebits                                  CreateTransferResult = 51
	CreateTransferOverflowsCredits                                 CreateTransferResult = 52
	CreateTransferOverflowsTimeout                                 CreateTransferResult = 53
	CreateTransferExceedsCredits                                   CreateTransferResult = 54
	CreateTransferExceedsDebits                                    CreateTransferResult = 55
	CreateTransferImportedEventExpected                            CreateTransferResult = 56
	CreateTransferImportedEventNotExpected                         CreateTransferResult = 57
	CreateTransferImportedEventTimestampOutOfRange                 CreateTransferResult = 58
	CreateTransferImportedEventTimestampMustNotAdvance             CreateTransferResult = 59
	CreateTransferImportedEventTimestampMustNotRegress             CreateTransferResult = 60
	CreateTransferImportedEventTimestampMustPostdateDebitAccount   CreateTransferResult = 61
	CreateTransferImportedEventTimestampMustPostdateCreditAccount  CreateTransferResult = 62
	CreateTransferImportedEventTimeoutMustBeZero                   CreateTransferResult = 63
	CreateTransferClosingTransferMustBePending                     CreateTransferResult = 64
	CreateTransferDebitAccountAlreadyClosed                        CreateTransferResult = 65
	CreateTransferCreditAccountAlreadyClosed                       CreateTransferResult = 66
	CreateTransferExistsWithDifferentLedger                        CreateTransferResult = 67
	CreateTransferIDAlreadyFailed                                  CreateTransferResult = 68
)

// CreateAccountsResult pairs a batch index with its outcome. An empty
// reply body means every account in the batch was created successfully.
type CreateAccountsResult struct {
	Index  uint32
	Result CreateAccountResult
}

// MarshalBinary encodes the 8-byte wire representation.
func (r CreateAccountsResult) MarshalBinary() []byte {
	buf := make([]byte, ResultSize)
	binary.LittleEndian.PutUint32(buf[0:4], r.Index)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(r.Result))
	return buf
}

// UnmarshalCreateAccountsResult decodes an 8-byte wire record.
func UnmarshalCreateAccountsResult(buf []byte) CreateAccountsResult {
	return CreateAccountsResult{
		Index:  binary.LittleEndian.Uint32(buf[0:4]),
		Result: CreateAccountResult(binary.LittleEndian.Uint32(buf[4:8])),
	}
}

// CreateTransfersResult pairs a batch index with its outcome. An empty
// reply body means every transfer in the batch was created successfully.
type CreateTransfersResult struct {
	Index  uint32
	Result CreateTransferResult
}

// MarshalBinary encodes the 8-byte wire representation.
func (r CreateTransfersResult) MarshalBinary() []byte {
	buf := make([]byte, ResultSize)
	binary.LittleEndian.PutUint32(buf[0:4], r.Index)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(r.Result))
	return buf
}

// UnmarshalCreateTransfersResult decodes an 8-byte wire record.
func UnmarshalCreateTransfersResult(buf []byte) CreateTransfersResult {
	return CreateTransfersResult{
		Index:  binary.LittleEndian.Uint32(buf[0:4]),
		Result: CreateTransferResult(binary.LittleEndian.Uint32(buf[4:8])),
	}
}
