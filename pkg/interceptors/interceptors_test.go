package interceptors

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/log"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// Unit-тесты интерсепторов служебного gRPC-порта (timeout.go, recover.go, logging.go).

// capHandler — slog.Handler, запоминающий последнюю запись и считающий сообщения.
// Дочерние логгеры (WithAttrs) пишут в общее состояние.
type capHandler struct {
	base  []slog.Attr
	state *capState
}

type capState struct {
	mu      sync.Mutex
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func newCap() *capHandler {
	return &capHandler{state: &capState{count: make(map[string]int)}}
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.count[r.Message]++
	h.state.lastMsg = r.Message
	h.state.lastLvl = r.Level
	h.state.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	base := append(append([]slog.Attr{}, h.base...), attrs...)
	return &capHandler{base: base, state: h.state}
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

const healthCheck = "/grpc.health.v1.Health/Check"

func TestLogging_UsesRequestIDAndPeer(t *testing.T) {
	t.Parallel()

	h := newCap()
	md := metadata.New(map[string]string{"x-request-id": "rid-123"})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	ctx = peer.NewContext(ctx, &peer.Peer{
		Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50051},
	})
	info := &grpc.UnaryServerInfo{FullMethod: healthCheck}

	resp, err := Logging(slog.New(h))(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
		time.Sleep(2 * time.Millisecond)
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp)

	require.Equal(t, "grpc", h.state.lastMsg)
	require.Equal(t, slog.LevelDebug, h.state.lastLvl)
	require.Equal(t, "rid-123", h.state.attrs["request_id"])
	require.Equal(t, healthCheck, h.state.attrs["method"])
	require.Equal(t, "127.0.0.1:50051", h.state.attrs["peer"])
	require.Equal(t, "OK", h.state.attrs["code"])

	d, ok := h.state.attrs["dur"].(time.Duration)
	require.True(t, ok)
	require.Greater(t, d, time.Duration(0))
}

func TestLogging_GeneratesUUIDAndWarnsOnError(t *testing.T) {
	t.Parallel()

	h := newCap()
	info := &grpc.UnaryServerInfo{FullMethod: healthCheck}

	_, err := Logging(slog.New(h))(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "unknown service")
	})
	require.Error(t, err)

	require.Equal(t, slog.LevelWarn, h.state.lastLvl)
	require.Equal(t, "NotFound", h.state.attrs["code"])
	require.Equal(t, "-", h.state.attrs["peer"])

	rid, _ := h.state.attrs["request_id"].(string)
	_, parseErr := uuid.Parse(rid)
	require.NoError(t, parseErr)
}

func TestLogging_PutsLoggerIntoContext(t *testing.T) {
	t.Parallel()

	h := newCap()
	md := metadata.New(map[string]string{"x-request-id": "abc"})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: healthCheck}

	_, err := Logging(slog.New(h))(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
		log.From(ctx).Info("handler")
		return "ok", nil
	})
	require.NoError(t, err)

	require.Equal(t, 1, h.state.count["handler"])
	require.Equal(t, "abc", h.state.attrs["request_id"])
}

func TestRecover_PanicBecomesInternal(t *testing.T) {
	t.Parallel()

	h := newCap()
	ctx := log.Into(context.Background(), slog.New(h))
	info := &grpc.UnaryServerInfo{FullMethod: healthCheck}

	resp, err := Recover()(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})

	require.Nil(t, resp)
	require.Equal(t, codes.Internal, status.Code(err))

	require.Equal(t, slog.LevelError, h.state.lastLvl)
	require.Equal(t, "panic_recovered", h.state.lastMsg)
	require.Equal(t, healthCheck, h.state.attrs["method"])
	require.NotEmpty(t, h.state.attrs["panic"])

	stack, ok := h.state.attrs["stack"].(string)
	require.True(t, ok)
	require.NotEmpty(t, stack)
}

func TestRecover_NoPanicPassThrough(t *testing.T) {
	t.Parallel()

	h := newCap()
	ctx := log.Into(context.Background(), slog.New(h))

	resp, err := Recover()(ctx, "req", &grpc.UnaryServerInfo{FullMethod: healthCheck}, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	require.Equal(t, "ok", resp)
	require.Empty(t, h.state.lastMsg)
}

// TestChain_LoggingSeesRecoveredPanic — в цепочке Logging -> Recover паника
// логируется в контекстный логгер и итоговая запись несёт код Internal.
func TestChain_LoggingSeesRecoveredPanic(t *testing.T) {
	t.Parallel()

	h := newCap()
	logging := Logging(slog.New(h))
	rec := Recover()
	info := &grpc.UnaryServerInfo{FullMethod: healthCheck}

	_, err := logging(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return rec(ctx, req, info, func(context.Context, any) (any, error) {
			panic("boom")
		})
	})

	require.Equal(t, codes.Internal, status.Code(err))
	require.Equal(t, 1, h.state.count["panic_recovered"])
	require.Equal(t, "grpc", h.state.lastMsg)
	require.Equal(t, "Internal", h.state.attrs["code"])
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	t.Parallel()

	const d = 40 * time.Millisecond

	start := time.Now()
	_, err := WithTimeout(d)(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: healthCheck},
		func(ctx context.Context, req any) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestWithTimeout_KeepsExistingDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	pdl, _ := parent.Deadline()

	var childDL time.Time
	_, err := WithTimeout(time.Second)(parent, "req", &grpc.UnaryServerInfo{FullMethod: healthCheck},
		func(ctx context.Context, req any) (any, error) {
			childDL, _ = ctx.Deadline()
			return "ok", nil
		},
	)

	require.NoError(t, err)
	require.WithinDuration(t, pdl, childDL, time.Millisecond)
}

func TestWithTimeout_ZeroIsNoop(t *testing.T) {
	t.Parallel()

	_, err := WithTimeout(0)(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: healthCheck},
		func(ctx context.Context, req any) (any, error) {
			_, hasDL := ctx.Deadline()
			require.False(t, hasDL)
			return "ok", nil
		},
	)

	require.NoError(t, err)
}
