// Package bridge owns the tool catalogue: it validates and normalizes
// raw tool arguments, issues exactly one archive client call per
// invocation, and wraps every outcome in a uniform result envelope.
package bridge

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sudandigitalarchive/sda-mcp/internal/archive"
	"github.com/sudandigitalarchive/sda-mcp/internal/telemetry"
)

// ArchiveAPI is the client surface the dispatcher needs. Implemented by
// *archive.Client; tests substitute a stub.
type ArchiveAPI interface {
	ListAccessions(ctx context.Context, q archive.AccessionListQuery) (*archive.AccessionPage, error)
	ListPrivateAccessions(ctx context.Context, q archive.AccessionListQuery) (*archive.AccessionPage, error)
	GetAccession(ctx context.Context, id string) (*archive.AccessionDetail, error)
	GetPrivateAccession(ctx context.Context, id string) (*archive.AccessionDetail, error)
	UpdateAccession(ctx context.Context, id string, patch archive.AccessionPatch) (*archive.AccessionDetail, error)
	ListSubjects(ctx context.Context, q archive.SubjectListQuery) (*archive.SubjectPage, error)
	CreateSubject(ctx context.Context, in archive.SubjectInput) (*archive.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
}

// Handlers executes the normalize → call → format pipeline for every
// tool. All state is request-scoped; the client and logger are shared
// read-only.
type Handlers struct {
	client ArchiveAPI
	logger *slog.Logger
}

func NewHandlers(client ArchiveAPI, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{client: client, logger: logger}
}

// toolFunc is the inner pipeline of one tool: it returns the success
// payload or an error for MapError to classify.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (any, error)

// handle wraps a toolFunc into an mcp handler. It is a total function:
// every failure, of any origin, becomes an error envelope and the
// transport-level error stays nil so the protocol channel remains
// well-formed.
func (h *Handlers) handle(name string, fn toolFunc) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		traceID := uuid.NewString()
		start := time.Now()

		payload, err := fn(ctx, req)
		elapsed := time.Since(start)
		telemetry.ObserveToolDuration(name, elapsed)

		if err != nil {
			info := MapError(err)
			telemetry.IncToolCall(name, info.Code)
			h.logger.Error("tool call failed",
				"trace_id", traceID,
				"tool", name,
				"code", info.Code,
				"remote_status", info.StatusCode,
				"duration_ms", elapsed.Milliseconds(),
				"err", err,
			)
			return mcp.NewToolResultError(info.render()), nil
		}

		result, jsonErr := mcp.NewToolResultJSON(payload)
		if jsonErr != nil {
			info := ErrorInfo{Code: CodeInternal, Message: "encode result: " + jsonErr.Error()}
			telemetry.IncToolCall(name, info.Code)
			h.logger.Error("tool call failed", "trace_id", traceID, "tool", name, "code", info.Code, "err", jsonErr)
			return mcp.NewToolResultError(info.render()), nil
		}

		telemetry.IncToolCall(name, "ok")
		h.logger.Info("tool call completed",
			"trace_id", traceID,
			"tool", name,
			"duration_ms", elapsed.Milliseconds(),
		)
		return result, nil
	}
}

func bindArgs(req mcp.CallToolRequest, out any) error {
	if err := req.BindArguments(out); err != nil {
		return validationErrorf("invalid arguments: %s", err.Error())
	}
	return nil
}

func (h *Handlers) listAccessions(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	args := defaultListAccessionsArgs()
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	q, err := normalizeListAccessions(args)
	if err != nil {
		return nil, err
	}
	return h.client.ListAccessions(ctx, q)
}

func (h *Handlers) listPrivateAccessions(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	args := defaultListAccessionsArgs()
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	q, err := normalizeListAccessions(args)
	if err != nil {
		return nil, err
	}
	return h.client.ListPrivateAccessions(ctx, q)
}

func (h *Handlers) getAccession(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args idArgs
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	id, err := normalizeID(args.ID)
	if err != nil {
		return nil, err
	}
	return h.client.GetAccession(ctx, id)
}

func (h *Handlers) getPrivateAccession(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args idArgs
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	id, err := normalizeID(args.ID)
	if err != nil {
		return nil, err
	}
	return h.client.GetPrivateAccession(ctx, id)
}

func (h *Handlers) updateAccession(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args updateAccessionArgs
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	id, patch, err := normalizeUpdateAccession(args)
	if err != nil {
		return nil, err
	}
	return h.client.UpdateAccession(ctx, id, patch)
}

func (h *Handlers) listSubjects(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	args := defaultListSubjectsArgs()
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	q, err := normalizeListSubjects(args)
	if err != nil {
		return nil, err
	}
	return h.client.ListSubjects(ctx, q)
}

func (h *Handlers) createSubject(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args createSubjectArgs
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	in, err := normalizeCreateSubject(args)
	if err != nil {
		return nil, err
	}
	return h.client.CreateSubject(ctx, in)
}

func (h *Handlers) deleteSubject(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args idArgs
	if err := bindArgs(req, &args); err != nil {
		return nil, err
	}
	id, err := normalizeID(args.ID)
	if err != nil {
		return nil, err
	}
	if err := h.client.DeleteSubject(ctx, id); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true, "id": id}, nil
}
