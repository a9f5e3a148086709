package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/NERVsystems/kmapmcp/pkg/kakao"
)

// Fetcher performs one upstream GET. *kakao.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, req kakao.Request) (*kakao.Response, error)
}

// Definition is everything that distinguishes one tool from another.
type Definition struct {
	Spec     ToolSpec
	Endpoint string
	Params   []ParamMapping
	Shape    Shape
}

// Adapter exposes one Definition as an agent tool.
type Adapter struct {
	def       Definition
	validator *Validator
	fetcher   Fetcher
	logger    *slog.Logger
}

// NewAdapter checks def and binds it to fetcher.
func NewAdapter(def Definition, fetcher Fetcher, logger *slog.Logger) (*Adapter, error) {
	if def.Spec.Name == "" {
		return nil, fmt.Errorf("tool definition has no name")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("tool %s: nil fetcher", def.Spec.Name)
	}
	for _, m := range def.Params {
		if _, ok := def.Spec.Field(m.Field); !ok {
			return nil, fmt.Errorf("tool %s: parameter %q maps undeclared field %q", def.Spec.Name, m.Param, m.Field)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	validator, err := NewValidator(def.Spec)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		def:       def,
		validator: validator,
		fetcher:   fetcher,
		logger:    logger.With("tool", def.Spec.Name),
	}, nil
}

// Name returns the tool name.
func (a *Adapter) Name() string { return a.def.Spec.Name }

// Description returns the description shown to the agent.
func (a *Adapter) Description() string { return a.def.Spec.Description }

// Spec returns the tool's input descriptor.
func (a *Adapter) Spec() ToolSpec { return a.def.Spec }

// Endpoint returns the upstream endpoint path.
func (a *Adapter) Endpoint() string { return a.def.Endpoint }

// Invoke runs the tool and always returns a string: the formatted result or
// a description of what went wrong.
func (a *Adapter) Invoke(ctx context.Context, raw map[string]any) string {
	out, err := a.Call(ctx, raw)
	if err != nil {
		return Describe(err)
	}
	return out
}

// Call is Run with panics turned into errors.
func (a *Adapter) Call(ctx context.Context, raw map[string]any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("tool panicked", "panic", r)
			out, err = "", fmt.Errorf("internal error in %s: %v", a.Name(), r)
		}
	}()
	return a.Run(ctx, raw)
}

// Run validates raw, queries the upstream service and renders the result.
// Validation, transport and decode failures are returned as
// *ValidationError, *TransportError and *DecodeError respectively.
func (a *Adapter) Run(ctx context.Context, raw map[string]any) (string, error) {
	id := uuid.NewString()
	logger := a.logger.With("invocation_id", id)

	in, err := a.validator.Validate(raw)
	if err != nil {
		logger.Warn("rejected tool input", "error", err)
		return "", err
	}

	req := BuildRequest(a.def.Endpoint, a.def.Params, in)
	logger.Info("requesting upstream", "endpoint", req.Endpoint, "query", req.Encode())

	resp, err := a.fetcher.Fetch(kakao.WithRequestID(ctx, id), req)
	if err != nil {
		logger.Error("upstream request failed", "error", err)
		return "", newTransportError(req.Endpoint, err)
	}
	logger.Debug("upstream response", "status", resp.StatusCode, "body", string(resp.Body))

	if !resp.OK() {
		logger.Error("upstream returned error status", "status", resp.StatusCode)
		return "", newStatusError(req.Endpoint, resp)
	}

	doc, err := Decode(resp.Body)
	if err != nil {
		logger.Error("failed to decode response", "error", err, "body", string(resp.Body))
		return "", err
	}

	if len(doc.Entries()) == 0 {
		if et := doc.Get("errorType"); et.Exists() {
			logger.Warn("upstream reported an error",
				"error_type", et.String(),
				"message", doc.Get("message").String())
		} else {
			logger.Info("no documents in response")
		}
	}

	return Extract(doc, a.def.Shape), nil
}
