package ledgerclient

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ledgerclient/internal/protocol"
	"ledgerclient/types"
)

// replyWithBadChecksum builds a structurally valid Reply whose
// request_checksum does not match req — simulating a late reply from an
// earlier attempt rather than wire corruption (the header/body checksums
// are still internally consistent).
func replyWithBadChecksum(req *protocol.Message, commit uint64, body []byte) *protocol.Message {
	msg := replyTo(req, commit, body)
	overlay := msg.Header.AsReply()
	bad := overlay.RequestChecksum()
	bad[0] ^= 0xff
	overlay.SetRequestChecksum(bad)
	msg.Header.SetChecksum()
	return msg
}

// evictionMessage builds an Eviction header with the given reason. Clients
// never construct these themselves; only a cluster sends one.
func evictionMessage(reason types.EvictionReason) *protocol.Message {
	msg := protocol.NewMessage(nil)
	msg.Header.SetCommand(uint8(types.CommandEviction))
	msg.Header.Overlay()[127] = uint8(reason)
	msg.Finalize()
	return msg
}

func registerOn(t *testing.T, conn net.Conn, batchSizeLimit uint32) {
	t.Helper()
	req := readRequest(t, conn)
	require.Equal(t, uint8(types.OperationRegister), req.Header.AsRequest().Operation())
	result := types.RegisterResult{BatchSizeLimit: batchSizeLimit}
	reply := replyTo(req, 1, result.MarshalBinary())
	_, err := conn.Write(reply.Encode())
	require.NoError(t, err)
}

// TestClientRequestTooLargeRejection matches spec.md §8 scenario 3: with a
// registered batch_size_limit of 256 bytes, a 2-element CreateAccounts
// request (256 bytes of accounts + 128 bytes of trailer = 384) is rejected
// locally, without any bytes sent for it.
func TestClientRequestTooLargeRejection(t *testing.T) {
	cluster := types.Uint128FromUint64(1)

	addr, done := fakeReplica(t, func(t *testing.T, conn net.Conn) {
		registerOn(t, conn, 256)
	})

	client, err := NewBuilder(cluster, addr).
		ConnectTimeout(time.Second).
		RequestTimeout(200 * time.Millisecond).
		RequestTimeoutMax(time.Second).
		Connect(context.Background())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.CreateAccounts(context.Background(), []types.Account{
		{ID: types.Uint128FromUint64(1), Ledger: 1, Code: 1},
		{ID: types.Uint128FromUint64(2), Ledger: 1, Code: 1},
	})
	require.Error(t, err)
	tooLarge, ok := err.(*RequestTooLargeError)
	require.True(t, ok, "expected *RequestTooLargeError, got %T: %v", err, err)
	require.Equal(t, 384, tooLarge.Size)
	require.Equal(t, 256, tooLarge.Limit)

	<-done
}

// TestClientWrongReplySkipThenAccept matches spec.md §8 scenario 4: a
// reply whose request_checksum refers to a different request is discarded
// without advancing the hash chain, and the wait continues until the
// genuinely matching reply arrives.
func TestClientWrongReplySkipThenAccept(t *testing.T) {
	cluster := types.Uint128FromUint64(2)

	addr, done := fakeReplica(t, func(t *testing.T, conn net.Conn) {
		registerOn(t, conn, 1<<20)

		createReq := readRequest(t, conn)
		stale := replyWithBadChecksum(createReq, 1, nil)
		_, err := conn.Write(stale.Encode())
		require.NoError(t, err)

		good := replyTo(createReq, 1, nil)
		_, err = conn.Write(good.Encode())
		require.NoError(t, err)
	})

	client, err := NewBuilder(cluster, addr).
		ConnectTimeout(time.Second).
		RequestTimeout(500 * time.Millisecond).
		RequestTimeoutMax(2 * time.Second).
		Connect(context.Background())
	require.NoError(t, err)
	defer client.Close()

	results, err := client.CreateAccounts(context.Background(), []types.Account{
		{ID: types.Uint128FromUint64(10), Ledger: 1, Code: 1},
	})
	require.NoError(t, err)
	require.Empty(t, results)

	<-done
}

// TestClientEviction matches spec.md §8 scenario 5: an Eviction reply
// terminates the in-flight operation with EvictionError and its reason.
func TestClientEviction(t *testing.T) {
	cluster := types.Uint128FromUint64(3)

	addr, done := fakeReplica(t, func(t *testing.T, conn net.Conn) {
		registerOn(t, conn, 1<<20)

		_ = readRequest(t, conn) // the CreateAccounts request that gets evicted
		evict := evictionMessage(types.EvictionNoSession)
		_, err := conn.Write(evict.Encode())
		require.NoError(t, err)
	})

	client, err := NewBuilder(cluster, addr).
		ConnectTimeout(time.Second).
		RequestTimeout(500 * time.Millisecond).
		RequestTimeoutMax(2 * time.Second).
		Connect(context.Background())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.CreateAccounts(context.Background(), []types.Account{
		{ID: types.Uint128FromUint64(20), Ledger: 1, Code: 1},
	})
	require.Error(t, err)
	evicted, ok := err.(*EvictionError)
	require.True(t, ok, "expected *EvictionError, got %T: %v", err, err)
	require.Equal(t, types.EvictionNoSession, evicted.Reason)

	<-done
}

// TestClientHedgedSendToBothReplicas matches spec.md §8 scenario 6: with
// two replicas and view 0, the client sends byte-identical requests to the
// primary and to the chosen backup, and accepts the first valid reply (the
// primary's — the client never reads from the backup connection).
func TestClientHedgedSendToBothReplicas(t *testing.T) {
	cluster := types.Uint128FromUint64(4)

	var primaryRaw, backupRaw []byte

	primaryAddr, primaryDone := fakeReplica(t, func(t *testing.T, conn net.Conn) {
		registerOn(t, conn, 1<<20)

		createReq := readRequest(t, conn)
		primaryRaw = createReq.Encode()

		reply := replyTo(createReq, 1, nil)
		_, err := conn.Write(reply.Encode())
		require.NoError(t, err)
	})

	backupAddr, backupDone := fakeReplica(t, func(t *testing.T, conn net.Conn) {
		// Registration is hedged too, so its copy arrives first.
		registerReq := readRequest(t, conn)
		require.Equal(t, uint8(types.OperationRegister), registerReq.Header.AsRequest().Operation())

		createReq := readRequest(t, conn)
		backupRaw = createReq.Encode()
	})

	client, err := NewBuilder(cluster, primaryAddr+","+backupAddr).
		ConnectTimeout(time.Second).
		RequestTimeout(500 * time.Millisecond).
		RequestTimeoutMax(2 * time.Second).
		Connect(context.Background())
	require.NoError(t, err)
	defer client.Close()

	results, err := client.CreateAccounts(context.Background(), []types.Account{
		{ID: types.Uint128FromUint64(30), Ledger: 1, Code: 1},
	})
	require.NoError(t, err)
	require.Empty(t, results)

	<-primaryDone
	<-backupDone

	require.NotEmpty(t, primaryRaw)
	require.Equal(t, primaryRaw, backupRaw, "hedged send must deliver byte-identical requests to primary and backup")
}
