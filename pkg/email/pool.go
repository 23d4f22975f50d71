package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"cyber-contact-backend/internal/domain"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// TLSMode selects how the connection to the relay is secured.
type TLSMode string

const (
	TLSModeStartTLS TLSMode = "starttls"
	TLSModeImplicit TLSMode = "tls"
	TLSModeNone     TLSMode = "none"
)

// PoolConfig holds the SMTP relay settings and pool bounds.
type PoolConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLSMode  TLSMode
	// TLSConfig overrides the default (ServerName = Host)
	TLSConfig   *tls.Config
	DialTimeout time.Duration
	// MaxConnections caps concurrent connections; further sends wait for a free one
	MaxConnections int
	// MaxMessages recycles a connection after this many deliveries
	MaxMessages int
}

// Pool is a long-lived SMTP client that keeps a bounded set of authenticated
// connections and reuses them across requests. Send never retries.
type Pool struct {
	cfg   PoolConfig
	slots chan struct{}
	idle  chan *pooledConn
	now   func() time.Time

	mu     sync.Mutex
	closed bool
}

type pooledConn struct {
	client *smtp.Client
	sent   int
}

// NewPool creates a pool; no connection is opened until Verify or Send.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = 5
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 100
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSModeStartTLS
	}

	return &Pool{
		cfg:   cfg,
		slots: make(chan struct{}, cfg.MaxConnections),
		idle:  make(chan *pooledConn, cfg.MaxConnections),
		now:   time.Now,
	}
}

// Verify checks that the relay is reachable and accepts the credentials.
func (p *Pool) Verify(ctx context.Context) error {
	if p.cfg.Username == "" || p.cfg.Password == "" {
		return ErrMissingCredentials
	}

	client, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("smtp verify: %w", err)
	}
	if err := client.Quit(); err != nil {
		_ = client.Close()
	}
	return nil
}

// Send delivers doc over a pooled connection.
func (p *Pool) Send(ctx context.Context, doc domain.EmailDocument) error {
	msg, env, err := BuildMessage(doc, p.now())
	if err != nil {
		return err
	}

	pc, err := p.acquire(ctx)
	if err != nil {
		return err
	}

	if err := deliver(pc.client, env, msg); err != nil {
		// The connection state is unknown after a failed transaction
		_ = pc.client.Close()
		<-p.slots
		return fmt.Errorf("smtp send to %s: %w", env.To, err)
	}

	pc.sent++
	p.release(pc)
	return nil
}

// Close quits every idle connection. Sends after Close fail with ErrPoolClosed.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	for {
		select {
		case pc := <-p.idle:
			if err := pc.client.Quit(); err != nil {
				_ = pc.client.Close()
			}
		default:
			return nil
		}
	}
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// acquire blocks until a connection slot is free, then reuses an idle
// connection or dials a new one.
func (p *Pool) acquire(ctx context.Context) (*pooledConn, error) {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if p.isClosed() {
		<-p.slots
		return nil, ErrPoolClosed
	}

	for {
		select {
		case pc := <-p.idle:
			if pc.sent >= p.cfg.MaxMessages {
				_ = pc.client.Quit()
				continue
			}
			// Relays drop idle connections; RSET tells us before the real transaction starts
			if err := pc.client.Reset(); err != nil {
				_ = pc.client.Close()
				continue
			}
			return pc, nil
		default:
			client, err := p.dial(ctx)
			if err != nil {
				<-p.slots
				return nil, err
			}
			return &pooledConn{client: client}, nil
		}
	}
}

func (p *Pool) release(pc *pooledConn) {
	defer func() { <-p.slots }()

	if pc.sent >= p.cfg.MaxMessages || p.isClosed() {
		_ = pc.client.Quit()
		return
	}
	select {
	case p.idle <- pc:
	default:
		_ = pc.client.Quit()
	}
}

func (p *Pool) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(p.cfg.Host, strconv.Itoa(p.cfg.Port))
	dialer := &net.Dialer{Timeout: p.cfg.DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	tlsConfig := p.cfg.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: p.cfg.Host, MinVersion: tls.VersionTLS12}
	}

	var client *smtp.Client
	switch p.cfg.TLSMode {
	case TLSModeImplicit:
		client = smtp.NewClient(tls.Client(conn, tlsConfig))
	case TLSModeStartTLS:
		client, err = smtp.NewClientStartTLS(conn, tlsConfig)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("starttls %s: %w", addr, err)
		}
	default:
		client = smtp.NewClient(conn)
	}

	if p.cfg.Username != "" {
		if err := client.Auth(sasl.NewPlainClient("", p.cfg.Username, p.cfg.Password)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("auth %s: %w", addr, err)
		}
	}
	return client, nil
}

func deliver(client *smtp.Client, env Envelope, msg []byte) error {
	if err := client.Mail(env.From, nil); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(env.To, nil); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	return w.Close()
}
