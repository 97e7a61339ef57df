// Package rover describes the payload the backend returns for one rover.
package rover

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoPhotos is returned when a payload decodes but carries no photos, so
// there is no mission info to read.
var ErrNoPhotos = errors.New("payload contains no photos")

// Mission is the rover mission info repeated on every photo.
type Mission struct {
	Name        string `json:"name"`
	LaunchDate  string `json:"launch_date"`
	LandingDate string `json:"landing_date"`
	Status      string `json:"status"`
}

// Photo is one image taken by a rover.
type Photo struct {
	ImgSrc    string  `json:"img_src"`
	EarthDate string  `json:"earth_date"`
	Rover     Mission `json:"rover"`
}

// Payload is the decoded backend response for a rover.
type Payload struct {
	Photos []Photo `json:"photos"`
}

type envelope struct {
	Results *Payload `json:"results"`
}

// Decode parses a backend response body of the form
// {"results":{"photos":[...]}}. A well-formed body with an empty photo list
// returns the payload together with ErrNoPhotos.
func Decode(body []byte) (*Payload, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding rover payload: %w", err)
	}
	if env.Results == nil {
		return nil, fmt.Errorf("decoding rover payload: missing results")
	}
	if len(env.Results.Photos) == 0 {
		return env.Results, ErrNoPhotos
	}
	return env.Results, nil
}

// Mission returns the mission info of the first photo.
func (p *Payload) Mission() (Mission, bool) {
	if p == nil || len(p.Photos) == 0 {
		return Mission{}, false
	}
	return p.Photos[0].Rover, true
}

// CaptureDate returns the earth date of the first photo. All photos in one
// payload share the same date.
func (p *Payload) CaptureDate() string {
	if p == nil || len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0].EarthDate
}

// ImageURLs returns img_src of every photo in payload order.
func (p *Payload) ImageURLs() []string {
	if p == nil {
		return nil
	}
	urls := make([]string, len(p.Photos))
	for i, ph := range p.Photos {
		urls[i] = ph.ImgSrc
	}
	return urls
}
