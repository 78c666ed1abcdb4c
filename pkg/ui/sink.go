package ui

import (
	"fmt"
	"io"
	"os"

	"trailerdl/pkg/catalog"
	"trailerdl/pkg/outcome"
)

// TerminalSink renders orchestration results to a terminal. It implements
// the orchestrate.Sink interface and holds no state of its own beyond the
// running result index used for numbering.
type TerminalSink struct {
	out       io.Writer
	nextIndex int
}

// NewTerminalSink creates a sink writing to stdout.
func NewTerminalSink() *TerminalSink {
	return &TerminalSink{out: os.Stdout}
}

// NewTerminalSinkWriter creates a sink writing to w.
func NewTerminalSinkWriter(w io.Writer) *TerminalSink {
	return &TerminalSink{out: w}
}

// RenderResults prints one page of search results. A cleared page restarts
// the numbering; an appended page continues it.
func (s *TerminalSink) RenderResults(videos []catalog.Video, clear bool) {
	if clear {
		s.nextIndex = 0
	}

	for _, v := range videos {
		s.nextIndex++
		title := v.Title
		if title == "" {
			title = v.URL
		}
		fmt.Fprintf(s.out, "  %s %s\n", Cyan(fmt.Sprintf("[%d]", s.nextIndex)), title)
		fmt.Fprintf(s.out, "      %s\n", Dim(v.URL))
	}
}

// RenderStatus prints the classified outcome of a download.
func (s *TerminalSink) RenderStatus(o outcome.Outcome) {
	if !o.Success {
		msg := o.Message
		if msg == "" {
			msg = "Download failed"
		}
		fmt.Fprintln(s.out, Red(msg))
		return
	}

	if o.Title != "" {
		fmt.Fprintf(s.out, "%s: %s\n", Cyan("Video"), Yellow(o.Title))
	}
	fmt.Fprintf(s.out, "%s: %s\n", Cyan("Code"), o.VideoCode)
	fmt.Fprintf(s.out, "%s: %s\n", Cyan("Trailer"), assetBadge(o.Trailer))
	fmt.Fprintf(s.out, "%s: %s\n", Cyan("Thumbnail"), assetBadge(o.Thumbnail))
	fmt.Fprintf(s.out, "%s: %s\n", Cyan("Screenshots"), screenshotBadge(o))
	fmt.Fprintf(s.out, "%s: %s\n", Cyan("Directory"), o.Directory)
	if o.Message != "" {
		fmt.Fprintln(s.out, Green(o.Message))
	}
}

// RenderError prints a user-visible error message.
func (s *TerminalSink) RenderError(msg string) {
	fmt.Fprintln(s.out, Red(msg))
}

// RenderNotice prints a transient, non-error message.
func (s *TerminalSink) RenderNotice(msg string) {
	fmt.Fprintln(s.out, Yellow(msg))
}

// SetBusy reflects operation progress in the terminal.
func (s *TerminalSink) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(s.out, Dim("working..."))
	}
}

func assetBadge(ok bool) string {
	if ok {
		return Green("Downloaded")
	}
	return Red("Failed")
}

func screenshotBadge(o outcome.Outcome) string {
	counts := fmt.Sprintf("%d/%d", o.Successful, o.Total)
	switch o.Screenshots() {
	case outcome.ScreenshotsAll:
		return Green(counts)
	case outcome.ScreenshotsPartial:
		return Yellow(counts)
	default:
		return Red(counts)
	}
}
