package minipar

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/interp"
)

// RunOption configures an Execute call.
type RunOption func(*runConfig)

type runConfig struct {
	output   io.Writer
	bindings map[string]interp.NetworkBinding
	directIn []string
}

// WithOutput directs Print output to w instead of the default io.Discard.
func WithOutput(w io.Writer) RunOption {
	return func(c *runConfig) { c.output = w }
}

// WithDirectInput runs the program in direct (non-interactive) mode,
// serving lines in order for every input() expression/InputStmt; no
// RunHandle rendezvous is used for input in this mode.
func WithDirectInput(lines ...string) RunOption {
	return func(c *runConfig) { c.directIn = lines }
}

// ChannelConfig maps a channel declaration's endpoint id to the network
// role this process plays for it: an explicit host:port to listen on, or
// to connect out to. A channel declared with two endpoint ids that has
// neither id present here stays purely in-process.
type ChannelConfig map[string]ChannelEndpoint

// ChannelEndpoint names one side of a networked channel binding.
type ChannelEndpoint struct {
	Addr   string
	Listen bool
}

// WithChannelConfig wires networked channel endpoints into the run.
func WithChannelConfig(cfg ChannelConfig) RunOption {
	return func(c *runConfig) {
		if c.bindings == nil {
			c.bindings = make(map[string]interp.NetworkBinding, len(cfg))
		}
		for id, ep := range cfg {
			c.bindings[id] = interp.NetworkBinding{Addr: ep.Addr, Listen: ep.Listen}
		}
	}
}

// RunHandle is a live program run. When the run was started without
// WithDirectInput, it implements interp.InputProvider itself as a
// single-slot rendezvous: the evaluator's goroutine blocks in ReadLine
// until an embedder calls SupplyInput with the next line.
type RunHandle struct {
	ID uuid.UUID

	mu      sync.Mutex
	prompt  string
	waiting bool

	response chan string
	done     chan struct{}
	err      error
}

func newRunHandle() *RunHandle {
	return &RunHandle{
		ID:       uuid.New(),
		response: make(chan string, 1),
		done:     make(chan struct{}),
	}
}

// ReadLine implements interp.InputProvider: it publishes prompt, marks the
// run as waiting, and blocks until SupplyInput delivers a line.
func (h *RunHandle) ReadLine(prompt string) (string, error) {
	h.mu.Lock()
	h.prompt = prompt
	h.waiting = true
	h.mu.Unlock()

	line, ok := <-h.response

	h.mu.Lock()
	h.waiting = false
	h.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("run %s closed while waiting for input", h.ID)
	}
	return line, nil
}

// Prompt reports the most recently requested prompt text and whether the
// run is currently blocked waiting for a line.
func (h *RunHandle) Prompt() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.prompt, h.waiting
}

// SupplyInput delivers one line to a pending ReadLine call. It returns an
// error if the run is not currently waiting on input.
func (h *RunHandle) SupplyInput(line string) error {
	h.mu.Lock()
	waiting := h.waiting
	h.mu.Unlock()
	if !waiting {
		return fmt.Errorf("run %s has no pending input request", h.ID)
	}
	select {
	case h.response <- line:
		return nil
	default:
		return fmt.Errorf("run %s already has a line queued", h.ID)
	}
}

// Done returns a channel closed once the run finishes.
func (h *RunHandle) Done() <-chan struct{} { return h.done }

// Wait blocks until the run finishes and returns its terminal error, if any.
func (h *RunHandle) Wait() error {
	<-h.done
	return h.err
}

// Execute runs prog on its own goroutine and returns immediately with a
// handle for observing completion and, in interactive mode, supplying
// input. Run errors (parse/semantic issues are caller's responsibility via
// Analyze; this only reports runtime failures) surface from Wait.
func Execute(prog *ast.Program, opts ...RunOption) *RunHandle {
	cfg := &runConfig{output: io.Discard}
	for _, opt := range opts {
		opt(cfg)
	}

	h := newRunHandle()

	var provider interp.InputProvider = h
	if cfg.directIn != nil {
		provider = interp.NewSliceProvider(cfg.directIn)
	}

	in := interp.New(cfg.output, provider)
	if len(cfg.bindings) > 0 {
		in.SetNetworkBindings(cfg.bindings)
	}

	go func() {
		defer close(h.done)
		h.err = in.Run(prog)
	}()

	return h
}
