package sse

import (
	"bytes"
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/teamdraft/internal/model"
	"github.com/mcoot/teamdraft/internal/web/view"
)

// SSE event names for HTML fragments; JSON events use their model.EventType
const (
	EventBoard = "board"
	EventWheel = "wheel"
)

// Renderer converts session state to HTML fragments for SSE
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderBoard renders the whole board wrapped for an out-of-band swap
func (r *Renderer) RenderBoard(ctx context.Context, s model.Session) (string, error) {
	return renderOOB(ctx, view.BoardID, view.Board(s))
}

// RenderWheel renders only the wheel wrapped for an out-of-band swap
func (r *Renderer) RenderWheel(ctx context.Context, spin *model.SpinView) (string, error) {
	return renderOOB(ctx, view.WheelID, view.Wheel(spin))
}

func renderOOB(ctx context.Context, id string, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return WrapForOOBSwap(id, buf.String()), nil
}

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="true">` + html + `</div>`
}
