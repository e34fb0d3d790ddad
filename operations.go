package ledgerclient

import (
	"context"

	"ledgerclient/internal/protocol"
	"ledgerclient/types"
)

// encodeSingleBatch wraps a flat concatenation of fixed-size elements in the
// multi-batch trailer format as a single logical batch, the layout every
// state-machine operation's request body carries.
func encodeSingleBatch(data []byte, elementSize, count int) ([]byte, error) {
	return protocol.EncodeMultiBatch(data, elementSize, []int{count})
}

// CreateAccounts submits a batch of accounts to be created and returns one
// result per account that failed or triggered a linked-chain effect; an
// account that succeeds outright has no corresponding entry.
func (c *Client) CreateAccounts(ctx context.Context, accounts []types.Account) ([]types.CreateAccountsResult, error) {
	data := make([]byte, 0, len(accounts)*types.AccountSize)
	for _, a := range accounts {
		data = append(data, a.MarshalBinary()...)
	}
	body, err := encodeSingleBatch(data, types.AccountSize, len(accounts))
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationCreateAccounts, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.ResultSize, types.UnmarshalCreateAccountsResult), nil
}

// CreateTransfers submits a batch of transfers to be created and returns one
// result per transfer that failed or triggered a linked-chain effect.
func (c *Client) CreateTransfers(ctx context.Context, transfers []types.Transfer) ([]types.CreateTransfersResult, error) {
	data := make([]byte, 0, len(transfers)*types.TransferSize)
	for _, t := range transfers {
		data = append(data, t.MarshalBinary()...)
	}
	body, err := encodeSingleBatch(data, types.TransferSize, len(transfers))
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationCreateTransfers, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.ResultSize, types.UnmarshalCreateTransfersResult), nil
}

// LookupAccounts returns the accounts matching the given IDs, in any order,
// skipping IDs that don't exist.
func (c *Client) LookupAccounts(ctx context.Context, ids []types.Uint128) ([]types.Account, error) {
	data := make([]byte, 0, len(ids)*16)
	for _, id := range ids {
		data = append(data, id[:]...)
	}
	body, err := encodeSingleBatch(data, 16, len(ids))
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationLookupAccounts, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.AccountSize, types.UnmarshalAccount), nil
}

// LookupTransfers returns the transfers matching the given IDs, in any
// order, skipping IDs that don't exist.
func (c *Client) LookupTransfers(ctx context.Context, ids []types.Uint128) ([]types.Transfer, error) {
	data := make([]byte, 0, len(ids)*16)
	for _, id := range ids {
		data = append(data, id[:]...)
	}
	body, err := encodeSingleBatch(data, 16, len(ids))
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationLookupTransfers, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.TransferSize, types.UnmarshalTransfer), nil
}

// GetAccountTransfers returns the transfers touching one account matching
// filter, ordered as the server chooses (newest or oldest first per
// filter.Flags.Reversed).
func (c *Client) GetAccountTransfers(ctx context.Context, filter types.AccountFilter) ([]types.Transfer, error) {
	body, err := encodeSingleBatch(filter.MarshalBinary(), types.AccountFilterSize, 1)
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationGetAccountTransfers, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.TransferSize, types.UnmarshalTransfer), nil
}

// GetAccountBalances returns the historical balance snapshots for one
// account matching filter. Requires the account to have been created with
// AccountHistory set; otherwise the server returns an empty result.
func (c *Client) GetAccountBalances(ctx context.Context, filter types.AccountFilter) ([]types.AccountBalance, error) {
	body, err := encodeSingleBatch(filter.MarshalBinary(), types.AccountFilterSize, 1)
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationGetAccountBalances, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.AccountBalanceSize, types.UnmarshalAccountBalance), nil
}

// QueryAccounts returns the accounts matching filter's user-data/ledger/code
// and timestamp-range predicates.
func (c *Client) QueryAccounts(ctx context.Context, filter types.QueryFilter) ([]types.Account, error) {
	body, err := encodeSingleBatch(filter.MarshalBinary(), types.QueryFilterSize, 1)
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationQueryAccounts, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.AccountSize, types.UnmarshalAccount), nil
}

// QueryTransfers returns the transfers matching filter's user-data/ledger/
// code and timestamp-range predicates.
func (c *Client) QueryTransfers(ctx context.Context, filter types.QueryFilter) ([]types.Transfer, error) {
	body, err := encodeSingleBatch(filter.MarshalBinary(), types.QueryFilterSize, 1)
	if err != nil {
		return nil, wrapProtocolErr(err)
	}

	replyBody, err := c.request(ctx, types.OperationQueryTransfers, body)
	if err != nil {
		return nil, err
	}
	return decodeResults(replyBody, types.TransferSize, types.UnmarshalTransfer), nil
}

// decodeResults strips the multi-batch trailer from a reply body and splits
// the remaining flat payload into fixed-size elements via unmarshal. A
// malformed or undersized trailer (the server's way of saying "no results")
// decodes to an empty slice rather than an error.
func decodeResults[T any](replyBody []byte, elementSize int, unmarshal func([]byte) T) []T {
	payload := protocol.DecodeSingleBatchPayload(replyBody, elementSize)
	if len(payload) == 0 || elementSize <= 0 {
		return nil
	}
	count := len(payload) / elementSize
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, unmarshal(payload[i*elementSize:(i+1)*elementSize]))
	}
	return out
}
