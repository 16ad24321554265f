// Package server exposes the entry, insight and tag surfaces as Connect RPC
// handlers carrying JSON messages.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/validation"
)

// UserIDHeader identifies the caller. Sessions are handled in front of this server.
const UserIDHeader = "X-User-ID"

// base holds what every handler needs to decode, validate and answer requests.
type base struct {
	validator *validation.Validator
	logger    *slog.Logger
}

func newBase(logger *slog.Logger) (base, error) {
	validate, err := validation.New("json")
	if err != nil {
		return base{}, fmt.Errorf("validation.New() > %w", err)
	}
	return base{validator: validate, logger: logger}, nil
}

// unary adapts fn into a connect handler function: it reads the caller from
// the user header, validates the request message and maps returned errors.
func unary[Req, Res any](b base, fn func(ctx context.Context, ownerID string, req *Req) (*Res, error)) func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error) {
	return func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
		ownerID := strings.TrimSpace(req.Header().Get(UserIDHeader))
		if ownerID == "" {
			return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing "+UserIDHeader+" header"))
		}
		violations, err := b.validator.Struct(req.Msg)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("validator.Struct() > %w", err))
		}
		if len(violations) > 0 {
			return nil, invalidRequest(violations)
		}

		res, err := fn(ctx, ownerID, req.Msg)
		if err != nil {
			return nil, toConnectError(err, b.logger)
		}
		return connect.NewResponse(res), nil
	}
}

// Registrar mounts the procedures of one service on a mux.
type Registrar interface {
	Register(mux *http.ServeMux, opts ...connect.HandlerOption)
}

// NewHandler serves the given handlers over HTTP/1.1 and h2c with CORS.
func NewHandler(cfg config.ServerConfig, handlers ...Registrar) http.Handler {
	mux := http.NewServeMux()
	for _, h := range handlers {
		h.Register(mux, connect.WithCodec(jsonCodec{}))
	}
	return corsMiddleware(cfg.CORS.AllowedOrigins, h2c.NewHandler(mux, &http2.Server{}))
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(allowedOrigins, origin) || slices.Contains(allowedOrigins, "*")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, "+UserIDHeader)
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Procedure returns the RPC path of a method, as in "/guanwo.v1.EntryService/SubmitEntry".
func Procedure(service, method string) string {
	return "/" + service + "/" + method
}

func handle[Req, Res any](mux *http.ServeMux, service, method string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts []connect.HandlerOption) {
	procedure := Procedure(service, method)
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}
