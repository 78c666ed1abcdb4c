// Package orchestrate serializes search, pagination, and download
// operations against the catalog API and routes their classified results
// to a presentation sink.
package orchestrate

import (
	"errors"
	"fmt"

	"trailerdl/pkg/catalog"
	"trailerdl/pkg/logger"
	"trailerdl/pkg/outcome"
	"trailerdl/pkg/session"
)

// Gateway defines the catalog API operations the orchestrator drives.
type Gateway interface {
	Search(name string, page int) (*catalog.SearchResponse, error)
	Download(videoURL, name string) (*catalog.DownloadResponse, error)
	DownloadRandom(name string) (*catalog.DownloadResponse, error)
}

const pleaseWaitNotice = "Please wait for the current operation to finish"

// Orchestrator ties the single-flight guard, the search session, the
// gateway, and the outcome interpreter together. All state transitions go
// through the guard; every exit path releases it.
type Orchestrator struct {
	gateway Gateway
	sink    Sink
	guard   Guard
	session session.Session
	logger  logger.Logger
}

// New creates an orchestrator with an idle guard and no active session.
func New(gateway Gateway, sink Sink, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Orchestrator{
		gateway: gateway,
		sink:    sink,
		logger:  log,
	}
}

// Session returns a copy of the current search session.
func (o *Orchestrator) Session() session.Session {
	s := o.session
	s.Accumulated = append([]catalog.Video(nil), o.session.Accumulated...)
	return s
}

// Busy reports whether an operation is in flight.
func (o *Orchestrator) Busy() bool {
	return o.guard.Busy()
}

// Search starts a new search session for a performer name. An empty query
// is rejected before the guard is entered and never issues a network call.
func (o *Orchestrator) Search(query string) {
	// Validate on a scratch session so a rejected query cannot disturb
	// the one in progress.
	var probe session.Session
	if err := probe.Start(query); err != nil {
		o.sink.RenderNotice(err.Error())
		return
	}

	if !o.guard.TryEnter() {
		o.sink.RenderNotice(pleaseWaitNotice)
		return
	}
	defer o.guard.Exit()
	o.sink.SetBusy(true)
	defer o.sink.SetBusy(false)

	o.session = probe
	o.logger.InfoWithFields("starting search", map[string]interface{}{
		"query": o.session.Query,
	})

	o.fetchPage(true)
}

// LoadMore fetches the next page of the current session. It is silently
// ignored when no more pages exist; overlapping triggers get a notice.
func (o *Orchestrator) LoadMore() {
	if !o.session.Active() || !o.session.HasMore {
		return
	}

	if !o.guard.TryEnter() {
		o.sink.RenderNotice(pleaseWaitNotice)
		return
	}
	defer o.guard.Exit()
	o.sink.SetBusy(true)
	defer o.sink.SetBusy(false)

	page := o.session.NextPage()
	o.logger.DebugWithFields("loading more results", map[string]interface{}{
		"query": o.session.Query,
		"page":  page,
	})

	o.fetchPage(false)
}

// fetchPage issues the search call for the session's current page and
// folds the result in. Callers hold the guard.
func (o *Orchestrator) fetchPage(clear bool) {
	resp, err := o.gateway.Search(o.session.Query, o.session.Page)
	if err != nil {
		o.surfaceError(err)
		return
	}

	shown := o.session.ApplyPage(resp.Videos, clear)
	o.sink.RenderResults(resp.Videos, clear)

	// The displayed count is the latest page's count, not the running
	// total across pages.
	if shown == 0 && clear {
		o.sink.RenderNotice("No videos found")
	} else {
		o.sink.RenderNotice(fmt.Sprintf("%d videos", shown))
	}

	if !o.session.HasMore {
		o.sink.RenderNotice("No More Results")
	}
}

// Download fetches the assets of a specific video for the current
// performer. A download needs an active session to supply the name.
func (o *Orchestrator) Download(videoURL string) {
	if !o.session.Active() {
		o.sink.RenderNotice("Search for an actress first")
		return
	}
	if videoURL == "" {
		o.sink.RenderNotice("No video selected")
		return
	}

	if !o.guard.TryEnter() {
		o.sink.RenderNotice(pleaseWaitNotice)
		return
	}
	defer o.guard.Exit()
	o.sink.SetBusy(true)
	defer o.sink.SetBusy(false)

	o.logger.InfoWithFields("requesting download", map[string]interface{}{
		"query": o.session.Query,
		"video": videoURL,
	})

	resp, err := o.gateway.Download(videoURL, o.session.Query)
	if err != nil {
		o.surfaceError(err)
		return
	}

	o.sink.RenderStatus(outcome.Interpret(resp))
}

// DownloadRandom fetches the assets of a random video for the current
// performer.
func (o *Orchestrator) DownloadRandom() {
	if !o.session.Active() {
		o.sink.RenderNotice("Search for an actress first")
		return
	}

	if !o.guard.TryEnter() {
		o.sink.RenderNotice(pleaseWaitNotice)
		return
	}
	defer o.guard.Exit()
	o.sink.SetBusy(true)
	defer o.sink.SetBusy(false)

	o.logger.InfoWithFields("requesting random download", map[string]interface{}{
		"query": o.session.Query,
	})

	resp, err := o.gateway.DownloadRandom(o.session.Query)
	if err != nil {
		o.surfaceError(err)
		return
	}

	o.sink.RenderStatus(outcome.Interpret(resp))
}

// surfaceError reports a gateway failure to the sink. Errors never escape
// the orchestrator; the guard's deferred release returns it to idle.
func (o *Orchestrator) surfaceError(err error) {
	var gerr *catalog.GatewayError
	if errors.As(err, &gerr) {
		o.logger.WarnWithFields("operation failed", map[string]interface{}{
			"kind":  string(gerr.Kind),
			"error": gerr.Detail,
		})
		o.sink.RenderError("Error: " + gerr.Detail)
		return
	}

	o.logger.WithError(err).Warn("operation failed")
	o.sink.RenderError("Error: " + err.Error())
}
