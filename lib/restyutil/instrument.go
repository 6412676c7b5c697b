package restyutil

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

type messageIdKey struct{}

// InstrumentClient dumps every request/response pair to `output` while
// debug logging is enabled. `output` can be nil, in which case this is a
// no-op.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx := req.Context()
		if !slog.Default().Enabled(ctx, slog.LevelDebug) {
			return nil
		}
		messageId := strconv.FormatUint(atomic.AddUint64(&idcounter, 1), 10)
		slog.DebugContext(
			ctx, "start request",
			"method", req.Method,
			"url", req.URL,
			"message_id", messageId,
		)
		req.SetContext(context.WithValue(ctx, messageIdKey{}, messageId))
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		ctx := res.Request.Context()
		messageId, ok := ctx.Value(messageIdKey{}).(string)
		if !ok {
			return nil
		}
		output.Write(messageId, formatHttpMessage(res))
		slog.DebugContext(
			ctx, "request succeeded",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"message_id", messageId,
		)
		return nil
	})
}
