package rover

import (
	"errors"
	"testing"
)

const curiosityBody = `{
  "results": {
    "photos": [
      {"img_src": "https://mars.example/1.jpg", "earth_date": "2015-05-30",
       "rover": {"name": "Curiosity", "launch_date": "2011-11-26", "landing_date": "2012-08-06", "status": "active"}},
      {"img_src": "https://mars.example/2.jpg", "earth_date": "2015-05-30",
       "rover": {"name": "Curiosity", "launch_date": "2011-11-26", "landing_date": "2012-08-06", "status": "active"}}
    ]
  }
}`

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(curiosityBody))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(p.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(p.Photos))
	}

	m, ok := p.Mission()
	if !ok {
		t.Fatal("expected mission info")
	}
	if m.Name != "Curiosity" || m.LaunchDate != "2011-11-26" || m.LandingDate != "2012-08-06" || m.Status != "active" {
		t.Errorf("unexpected mission %+v", m)
	}
	if got := p.CaptureDate(); got != "2015-05-30" {
		t.Errorf("CaptureDate = %q, want 2015-05-30", got)
	}

	urls := p.ImageURLs()
	if len(urls) != 2 || urls[0] != "https://mars.example/1.jpg" || urls[1] != "https://mars.example/2.jpg" {
		t.Errorf("ImageURLs = %v", urls)
	}
}

func TestDecodeEmptyPhotos(t *testing.T) {
	p, err := Decode([]byte(`{"results":{"photos":[]}}`))
	if !errors.Is(err, ErrNoPhotos) {
		t.Fatalf("expected ErrNoPhotos, got %v", err)
	}
	if p == nil {
		t.Fatal("expected payload alongside ErrNoPhotos")
	}
	if _, ok := p.Mission(); ok {
		t.Error("empty payload must not report mission info")
	}
	if p.CaptureDate() != "" {
		t.Error("empty payload must not report a capture date")
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, body := range []string{`not json`, `{}`, `{"results": null}`, `[1,2]`} {
		if _, err := Decode([]byte(body)); err == nil || errors.Is(err, ErrNoPhotos) {
			t.Errorf("Decode(%q): expected decode error, got %v", body, err)
		}
	}
}

func TestNilPayloadHelpers(t *testing.T) {
	var p *Payload
	if _, ok := p.Mission(); ok {
		t.Error("nil payload has no mission")
	}
	if p.ImageURLs() != nil {
		t.Error("nil payload has no urls")
	}
}
