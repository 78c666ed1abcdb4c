package orchestrate

import (
	"trailerdl/pkg/catalog"
	"trailerdl/pkg/outcome"
)

// Sink receives classified results for rendering. It owns no state beyond
// what it is told; the orchestrator never touches a rendering surface
// directly.
type Sink interface {
	// RenderResults shows one page of search results. When clear is set
	// the page replaces whatever was shown before.
	RenderResults(videos []catalog.Video, clear bool)

	// RenderStatus shows the classified outcome of a completed download.
	RenderStatus(o outcome.Outcome)

	// RenderError shows a user-visible error message.
	RenderError(msg string)

	// RenderNotice shows a transient, non-error message ("please wait",
	// "no results", "No More Results").
	RenderNotice(msg string)

	// SetBusy reflects whether an operation is in flight.
	SetBusy(busy bool)
}
