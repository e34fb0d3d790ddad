package ledgerclient

import (
	"context"
	"fmt"
	"time"

	"ledgerclient/internal/config"
	"ledgerclient/internal/logger"
	"ledgerclient/internal/protocol"
	"ledgerclient/internal/transport"
	"ledgerclient/types"
)

// ClientBuilder assembles a Client's configuration before the blocking
// Connect call that performs registration.
type ClientBuilder struct {
	cluster           types.Uint128
	addresses         string
	connectTimeout    time.Duration
	requestTimeout    time.Duration
	requestTimeoutMax time.Duration
	logCfg            *logger.Config
}

// NewBuilder starts a builder with the client library's defaults.
func NewBuilder(cluster types.Uint128, addresses string) *ClientBuilder {
	return &ClientBuilder{
		cluster:           cluster,
		addresses:         addresses,
		connectTimeout:    5 * time.Second,
		requestTimeout:    500 * time.Millisecond,
		requestTimeoutMax: 30 * time.Second,
		logCfg:            logger.DefaultConfig(),
	}
}

// FromConfig seeds a builder from a loaded config.Config, e.g. the result
// of config.NewLoader().Load().
func FromConfig(cfg *config.Config) *ClientBuilder {
	cluster := types.Uint128FromParts(cfg.ClusterLo, cfg.ClusterHi)
	b := NewBuilder(cluster, cfg.AddressList())
	b.connectTimeout = cfg.ConnectTimeout
	b.requestTimeout = cfg.RequestTimeout
	b.requestTimeoutMax = cfg.RequestTimeoutMax
	b.logCfg = cfg.ToLoggerConfig()
	return b
}

func (b *ClientBuilder) ConnectTimeout(d time.Duration) *ClientBuilder {
	b.connectTimeout = d
	return b
}

func (b *ClientBuilder) RequestTimeout(d time.Duration) *ClientBuilder {
	b.requestTimeout = d
	return b
}

func (b *ClientBuilder) RequestTimeoutMax(d time.Duration) *ClientBuilder {
	b.requestTimeoutMax = d
	return b
}

func (b *ClientBuilder) LogConfig(cfg *logger.Config) *ClientBuilder {
	b.logCfg = cfg
	return b
}

// Connect builds the Client, dials every replica, and blocks until
// registration completes (or fails). The returned Client is in state
// Ready.
func (b *ClientBuilder) Connect(ctx context.Context) (*Client, error) {
	if _, err := logger.Init(b.logCfg); err != nil {
		return nil, fmt.Errorf("ledgerclient: init logger: %w", err)
	}

	driver := transport.NewDriver(b.addresses, b.connectTimeout)
	c := &Client{
		id:                NewID(),
		cluster:           b.cluster,
		driver:            driver,
		requestTimeout:    b.requestTimeout,
		requestTimeoutMax: b.requestTimeoutMax,
		bufferPool:        transport.NewBufferPool(protocol.MessageSizeMax),
		state:             stateDisconnected,
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
