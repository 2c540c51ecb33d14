// Package console drives simulations from a terminal and renders their output.
package console

import (
	"attackSimBackend/internal/core/domain"
	"attackSimBackend/internal/core/service"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type Console struct {
	simulationService service.SimulationServiceInterface
	renderer          *Renderer
	out               io.Writer
}

func NewConsole(svc service.SimulationServiceInterface, out io.Writer, cfg *Config) *Console {
	return &Console{
		simulationService: svc,
		renderer:          NewRenderer(lipgloss.NewRenderer(out), cfg),
		out:               out,
	}
}

func (c *Console) Renderer() *Renderer {
	return c.renderer
}

// Simulate starts a run, streams its events to the output as they happen and
// prints the result. Cancelling ctx stops the run; the Cancelled result is
// still rendered and returned.
func (c *Console) Simulate(ctx context.Context, targetID string, strategy domain.Strategy) (*service.RunHandle, domain.RunResult, error) {
	handle, err := c.simulationService.StartRun(ctx, targetID, strategy)
	if err != nil {
		fmt.Fprintln(c.out, c.renderer.Rejection(err))
		return nil, domain.RunResult{}, err
	}

	var result domain.RunResult
	delivered := handle.Subscribe(
		func(ev domain.LogEvent) {
			fmt.Fprintln(c.out, c.renderer.Event(ev))
		},
		func(r domain.RunResult) {
			result = r
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, c.renderer.Result(r))
		},
	)
	<-delivered
	return handle, result, nil
}
