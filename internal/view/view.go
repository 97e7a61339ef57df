// Package view renders AppState snapshots to HTML. Every function here is a
// pure function of its arguments.
package view

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/marsdash/internal/state"
)

// Options carries the page chrome that does not live in AppState.
type Options struct {
	Title  string
	Footer template.HTML
}

// Wrap renders every item with each and wraps the concatenation in a
// container div carrying label as its class.
func Wrap[T any](label string, items []T, each func(T) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s">`, esc(label))
	for _, item := range items {
		b.WriteString(each(item))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// RenderApp renders the full mount content: header, rover section and footer.
func RenderApp(s state.AppState, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<header><h2>%s</h2></header>`, esc(opts.Title))
	b.WriteString(`<main><section>`)
	b.WriteString(RenderRoverSection(s))
	b.WriteString(`</section></main>`)
	fmt.Fprintf(&b, `<footer>%s</footer>`, opts.Footer)
	return b.String()
}

// Renderer binds opts so the result can be handed to a state.Store.
func Renderer(opts Options) state.Renderer {
	return func(s state.AppState) string {
		return RenderApp(s, opts)
	}
}

// RenderRoverSection picks the section for the current selection and fetch
// status.
func RenderRoverSection(s state.AppState) string {
	if !s.HasSelection() {
		return RenderRoverList(s.Rovers)
	}

	switch s.Fetch.Status {
	case state.StatusLoaded:
		return RenderRoverDetail(s)
	case state.StatusEmpty:
		return renderEmpty(s.SelectedRover)
	case state.StatusFailed:
		return renderFailed(s.SelectedRover, s.Fetch.Err)
	default:
		return renderLoading(s.SelectedRover)
	}
}

// RenderRoverList renders one selector button per catalog entry.
func RenderRoverList(rovers []string) string {
	return Wrap("rover-container", rovers, roverCard)
}

// RenderRoverDetail renders the mission info and photo grid of a loaded
// payload, framed by two back buttons.
func RenderRoverDetail(s state.AppState) string {
	payload := s.Fetch.Payload
	mission, ok := payload.Mission()
	if !ok {
		return renderEmpty(s.SelectedRover)
	}

	var b strings.Builder
	b.WriteString(`<ul class="info-container">`)
	fmt.Fprintf(&b, `<li>Name of the Rover: %s</li>`, esc(mission.Name))
	fmt.Fprintf(&b, `<li>Date of Launch from Earth: %s</li>`, esc(mission.LaunchDate))
	fmt.Fprintf(&b, `<li>Date of Landing on Mars: %s</li>`, esc(mission.LandingDate))
	fmt.Fprintf(&b, `<li>Status of the Mission: %s</li>`, esc(mission.Status))
	fmt.Fprintf(&b, `<li>Photos taken by %s : %s</li>`, esc(mission.Name), esc(payload.CaptureDate()))
	b.WriteString(`</ul>`)
	b.WriteString(backButton)
	b.WriteString(RenderPhotoGrid(s.SelectedRover, payload.ImageURLs()))
	b.WriteString(backButton)
	return b.String()
}

// RenderPhotoGrid renders one image per URL.
func RenderPhotoGrid(roverName string, urls []string) string {
	return Wrap("photo-container", urls, func(url string) string {
		return photoElement(roverName, url)
	})
}

const (
	backButton  = `<button class="back-button" data-action="back">Back</button>`
	retryButton = `<button class="retry-button" data-action="retry">Retry</button>`
)

func roverCard(name string) string {
	n := esc(name)
	return fmt.Sprintf(`<button class="rover-card" data-action="select" data-rover="%s"><h2 class="card-title">%s</h2></button>`, n, n)
}

func photoElement(roverName, url string) string {
	return fmt.Sprintf(`<img class="photo" src="%s" alt="Photo taken on Mars by %s"/>`, esc(url), esc(roverName))
}

func renderLoading(roverName string) string {
	return fmt.Sprintf(`<p class="status-notice loading">Loading data for %s&hellip;</p>`, esc(roverName))
}

func renderEmpty(roverName string) string {
	return fmt.Sprintf(`<p class="status-notice empty">%s has no photos to show.</p>`, esc(roverName)) + backButton
}

func renderFailed(roverName, reason string) string {
	var b strings.Builder
	b.WriteString(`<div class="status-notice error">`)
	fmt.Fprintf(&b, `<p>Could not load data for %s.</p>`, esc(roverName))
	if reason != "" {
		fmt.Fprintf(&b, `<p class="error-detail">%s</p>`, esc(reason))
	}
	b.WriteString(retryButton)
	b.WriteString(`</div>`)
	b.WriteString(backButton)
	return b.String()
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}
