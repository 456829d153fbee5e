// Package mcp serves tools over the Model Context Protocol on a line-delimited
// JSON-RPC 2.0 stream (stdio).
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/metrics"
	"wordpress-posts/internal/common/observability"
)

// DefaultProtocolVersion is answered when the client does not send one.
const DefaultProtocolVersion = "2024-11-05"

const maxMessageSize = 16 << 20

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ServerOptions struct {
	Logger        logger.Logger
	Tracer        *observability.TracerProvider
	Observability *observability.Observability
	// CallTimeout returns the deadline applied to one call of a tool; zero
	// means no deadline beyond the transport's.
	CallTimeout func(tool string) time.Duration
}

type Server struct {
	info        ServerInfo
	log         logger.Logger
	tracer      *observability.TracerProvider
	obs         *observability.Observability
	callTimeout func(tool string) time.Duration

	mu    sync.RWMutex
	tools map[string]Tool
}

func NewServer(info ServerInfo, opts ServerOptions) *Server {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Tracer == nil {
		opts.Tracer = observability.NoopTracer()
	}
	if opts.CallTimeout == nil {
		opts.CallTimeout = func(string) time.Duration { return 0 }
	}
	return &Server{
		info:        info,
		log:         opts.Logger,
		tracer:      opts.Tracer,
		obs:         opts.Observability,
		callTimeout: opts.CallTimeout,
		tools:       map[string]Tool{},
	}
}

// Register adds tools; a later tool with the same name replaces the earlier one.
func (s *Server) Register(tools ...Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tools {
		s.tools[t.Descriptor().Name] = t
	}
}

// ToolSchemas lists registered tools sorted by name.
func (s *Server) ToolSchemas() []ToolSchema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ToolSchema, 0, len(s.tools))
	for _, t := range s.tools {
		d := t.Descriptor()
		out = append(out, ToolSchema{Name: d.Name, Description: d.Description, InputSchema: d.InputSchema})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Serve reads one message per line from in and writes responses to out until
// in is exhausted or ctx is done. Messages are handled one at a time in
// arrival order.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), maxMessageSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	s.log.Info("mcp server listening on stdio", map[string]interface{}{
		"name":    s.info.Name,
		"version": s.info.Version,
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read stdin: %w", err)
					}
				default:
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}
			resp := s.Handle(ctx, line)
			if resp == nil {
				continue
			}
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		}
	}
}

// Handle processes one raw message. It returns nil for notifications.
func (s *Server) Handle(ctx context.Context, raw []byte) *Response {
	req, err := UnmarshalRequest(raw)
	if err != nil {
		rpcErr, _ := err.(*RPCError)
		var id json.RawMessage
		if req != nil {
			id = req.ID
		}
		s.log.Warn("rejected malformed message", map[string]interface{}{"error": rpcErr.Message})
		return &Response{JSONRPC: JSONRPCVersion, ID: id, Error: rpcErr}
	}

	if req.IsNotification() {
		s.handleNotification(req)
		return nil
	}

	switch req.Method {
	case "initialize":
		return NewResponse(req.ID, s.initialize(req.Params))
	case "ping":
		return NewResponse(req.ID, map[string]interface{}{})
	case "tools/list":
		return NewResponse(req.ID, map[string]interface{}{"tools": s.ToolSchemas()})
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return NewErrorResponse(req.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

func (s *Server) handleNotification(req *Request) {
	switch req.Method {
	case "notifications/initialized":
		s.log.Debug("client initialized", nil)
	default:
		s.log.Debug("ignoring notification", map[string]interface{}{"method": req.Method})
	}
}

func (s *Server) initialize(params json.RawMessage) map[string]interface{} {
	var p struct {
		ProtocolVersion string `json:"protocolVersion"`
		ClientInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo"`
	}
	_ = json.Unmarshal(params, &p)

	version := p.ProtocolVersion
	if version == "" {
		version = DefaultProtocolVersion
	}

	s.log.Info("client connected", map[string]interface{}{
		"client":           p.ClientInfo.Name,
		"client_version":   p.ClientInfo.Version,
		"protocol_version": version,
	})

	return map[string]interface{}{
		"protocolVersion": version,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": s.info,
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if len(req.Params) == 0 {
		return NewErrorResponse(req.ID, InvalidParams, "Missing params", nil)
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return NewErrorResponse(req.ID, InvalidParams, "Invalid params", err.Error())
	}
	if params.Name == "" {
		return NewErrorResponse(req.ID, InvalidParams, "Missing tool name", nil)
	}

	s.mu.RLock()
	tool, ok := s.tools[params.Name]
	s.mu.RUnlock()
	if !ok {
		return NewErrorResponse(req.ID, InvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name), nil)
	}

	if params.Arguments == nil {
		params.Arguments = map[string]interface{}{}
	}
	return NewResponse(req.ID, s.callTool(ctx, tool, params.Name, params.Arguments))
}

func (s *Server) callTool(ctx context.Context, tool Tool, name string, args map[string]interface{}) (result *ToolCallResult) {
	requestID := uuid.NewString()
	log := s.log.WithFields(map[string]interface{}{"tool": name, "request_id": requestID})

	ctx, span := s.tracer.StartSpan(ctx, observability.SpanToolCall,
		attribute.String(observability.AttrTool, name),
		attribute.String("request_id", requestID),
	)
	if timeout := s.callTimeout(name); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	metrics.ToolCallsActive.WithLabelValues(name).Inc()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool call panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			result = ErrorResult(fmt.Sprintf("Error: internal error in %s", name))
		}

		elapsed := time.Since(start)
		outcome := "success"
		if result.IsError {
			outcome = "error"
			span.SetStatus(codes.Error, result.Text())
		}
		span.End()

		metrics.ToolCallsActive.WithLabelValues(name).Dec()
		metrics.ToolCallsTotal.WithLabelValues(name, outcome).Inc()
		metrics.ToolCallDuration.WithLabelValues(name).Observe(elapsed.Seconds())
		s.obs.RecordCall(ctx, name, outcome, elapsed)

		log.Info("tool call completed", map[string]interface{}{
			"outcome":     outcome,
			"duration_ms": elapsed.Milliseconds(),
		})
	}()

	result = tool.Call(ctx, args)
	if result == nil {
		result = ErrorResult(fmt.Sprintf("Error: %s returned no result", name))
	}
	return result
}
