package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"ledgerd/rpc/modules"
)

const (
	wsWriteTimeout = 10 * time.Second
)

// wsCommand is the envelope of a websocket request. The remaining members of
// the message are the command's parameters.
type wsCommand struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Command string          `json:"command"`
}

type wsResponse struct {
	ID           json.RawMessage `json:"id,omitempty"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Result       interface{}     `json:"result,omitempty"`
	Error        string          `json:"error,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.cfg.WSOriginPatterns})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "session closed")
	conn.SetReadLimit(maxRequestBytes)

	source := clientID(r)
	logger := s.logger.With(slog.String("request_id", RequestIDFromContext(r.Context())))
	if err := s.serveWS(r.Context(), conn, source); err != nil {
		if status := websocket.CloseStatus(err); status == -1 {
			logger.Debug("websocket session ended", slog.Any("error", err))
			_ = conn.Close(websocket.StatusInternalError, "session error")
		}
	}
}

func (s *Server) serveWS(ctx context.Context, conn *websocket.Conn, source string) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			continue
		}
		start := time.Now()
		resp, status := s.dispatchWS(ctx, data, source)
		s.metrics.Observe("ws", resp.command, status, time.Since(start))
		if err := writeWS(ctx, conn, resp.wsResponse); err != nil {
			return err
		}
	}
}

type wsOutcome struct {
	wsResponse
	command string
}

func (s *Server) dispatchWS(ctx context.Context, data []byte, source string) (wsOutcome, int) {
	var cmd wsCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return wsFailure(nil, "", "jsonInvalid", "Invalid JSON."), http.StatusBadRequest
	}
	if s.limiter.limit.RequestsPerMinute > 0 && !s.limiter.Allow(source) {
		s.metrics.RecordThrottle("ws", "rate_limit")
		return wsFailure(cmd.ID, cmd.Command, "slowDown", "You are placing too much load on the server."), http.StatusTooManyRequests
	}
	switch cmd.Command {
	case methodLedgerEntry:
		result, modErr := s.ledger.Entry(ctx, data)
		if modErr != nil {
			return wsModuleFailure(cmd.ID, cmd.Command, modErr), modErr.HTTPStatus
		}
		out := wsSuccess(cmd.ID, cmd.Command, result)
		if result.Failed() {
			out.Status = "error"
			out.Error = result.Error
			out.ErrorMessage = result.ErrorMessage
		}
		return out, http.StatusOK
	case methodLedgerClosed:
		result, modErr := s.ledger.Closed(ctx)
		if modErr != nil {
			return wsModuleFailure(cmd.ID, cmd.Command, modErr), modErr.HTTPStatus
		}
		return wsSuccess(cmd.ID, cmd.Command, result), http.StatusOK
	case "":
		return wsFailure(cmd.ID, "", "missingCommand", "Missing command entry."), http.StatusBadRequest
	default:
		return wsFailure(cmd.ID, "unknown", "unknownCmd", "Unknown method."), http.StatusNotFound
	}
}

func wsSuccess(id json.RawMessage, command string, result interface{}) wsOutcome {
	return wsOutcome{
		wsResponse: wsResponse{ID: id, Type: "response", Status: "success", Result: result},
		command:    command,
	}
}

func wsFailure(id json.RawMessage, command, code, message string) wsOutcome {
	return wsOutcome{
		wsResponse: wsResponse{ID: id, Type: "response", Status: "error", Error: code, ErrorMessage: message},
		command:    command,
	}
}

func wsModuleFailure(id json.RawMessage, command string, err *modules.ModuleError) wsOutcome {
	message := err.Message
	if err.Data != nil {
		message = fmt.Sprint(err.Data)
	}
	return wsFailure(id, command, err.Message, message)
}

func writeWS(ctx context.Context, conn *websocket.Conn, resp wsResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
