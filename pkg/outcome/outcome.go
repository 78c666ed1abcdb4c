// Package outcome classifies raw download responses into the discrete,
// user-facing states the presentation layer renders.
package outcome

import "trailerdl/pkg/catalog"

// ScreenshotState is the tri-state classification of the screenshot batch.
type ScreenshotState string

const (
	ScreenshotsNone    ScreenshotState = "none"
	ScreenshotsPartial ScreenshotState = "partial"
	ScreenshotsAll     ScreenshotState = "all"
)

// unknownField stands in for identifiers the response did not carry.
const unknownField = "unknown"

// Outcome is the interpreted result of one download operation. The asset
// and screenshot fields are only meaningful when Success is true; on
// failure only Message is guaranteed populated.
type Outcome struct {
	Success    bool
	Title      string
	Message    string
	Trailer    bool
	Thumbnail  bool
	Total      int
	Successful int
	VideoCode  string
	Directory  string
}

// Screenshots classifies the screenshot batch: none when nothing succeeded,
// all when every requested screenshot succeeded, partial otherwise.
//
// The successful >= total comparison (rather than ==) keeps the historical
// behavior for the successful > total corner, which real responses never
// produce (the fetch engine counts successes out of total).
func (o Outcome) Screenshots() ScreenshotState {
	switch {
	case o.Successful == 0:
		return ScreenshotsNone
	case o.Successful >= o.Total:
		return ScreenshotsAll
	default:
		return ScreenshotsPartial
	}
}

// Interpret maps a raw download response onto an Outcome. It is total:
// every missing optional field gets a default, and a nil response is
// treated as an empty failure.
func Interpret(resp *catalog.DownloadResponse) Outcome {
	out := Outcome{
		VideoCode: unknownField,
		Directory: unknownField,
	}
	if resp == nil {
		return out
	}

	out.Success = resp.Success
	out.Title = resp.VideoTitle
	out.Message = resp.Message

	if resp.Details == nil {
		return out
	}

	out.Trailer = resp.Details.Trailer
	out.Thumbnail = resp.Details.Thumbnail
	out.Total = resp.Details.Summary.TotalScreenshots
	out.Successful = resp.Details.Summary.SuccessfulScreenshots

	if resp.Details.Summary.VideoCode != "" {
		out.VideoCode = resp.Details.Summary.VideoCode
	}
	if resp.Details.Summary.Directory != "" {
		out.Directory = resp.Details.Summary.Directory
	}

	return out
}
