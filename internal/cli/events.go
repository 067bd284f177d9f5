package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/teamdraft/internal/web/sse"
)

// Largest SSE line accepted; board fragments are the big ones
const maxEventLine = 1 << 20

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput bool
		html       bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream live session events",
		Long: `Connect to the server's SSE endpoint and stream events in real-time.

Events include:
  - roster_updated, settings_updated
  - teams_ready: teams were published
  - pick_started, pick_progress, pick_resolved: wheel activity
  - draft_paused, draft_resumed, draft_cancelled
  - side_call_requested, side_toss_started, side_toss_result, side_complete,
    side_toss_reset: the coin toss

HTML fragments (board, wheel) are hidden unless --html is set.

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(cmd.OutOrStdout(), jsonOutput, html)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&html, "html", false, "Include rendered HTML fragments")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openStream connects to the SSE endpoint. SSE is on the web router, not the API router.
func openStream(ctx context.Context) (*http.Response, error) {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for SSE
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return resp, nil
}

// readSSE parses an SSE stream and calls fn once per complete event.
// Comment lines and retry hints are skipped.
func readSSE(r io.Reader, fn func(event, data string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLine)

	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			// End of event
			if currentEvent != "" {
				fn(currentEvent, strings.Join(dataLines, "\n"))
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	return scanner.Err()
}

func streamEvents(w io.Writer, jsonOutput, html bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	resp, err := openStream(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !jsonOutput {
		fmt.Fprintf(w, "Connected to %s\n", cfg.ServerURL)
	}

	err = readSSE(resp.Body, func(event, data string) {
		if !html && (event == sse.EventBoard || event == sse.EventWheel) {
			return
		}
		printEvent(w, time.Now(), event, data, jsonOutput)
	})

	// Context cancellation is expected
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "\nDisconnected")
	}
	return nil
}

func printEvent(w io.Writer, now time.Time, event, data string, jsonOutput bool) {
	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Fprintln(w, string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	// Truncate data if it's too long for display
	displayData := data
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	// Remove newlines for cleaner display
	displayData = strings.ReplaceAll(displayData, "\n", " ")
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, event, displayData)
}
