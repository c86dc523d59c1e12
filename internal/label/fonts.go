package label

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-pdf/fpdf"

	applog "nutrilabel/internal/log"
)

const (
	// DefaultFontPath is where the bundled Hangul-capable font is expected,
	// relative to the working directory.
	DefaultFontPath = "web/static/fonts/NotoSansKR-Regular.ttf"

	fallbackFamily = "Helvetica"
	unicodeFamily  = "NotoSansKR"
)

// FontStatus reports whether the Unicode label font can be used.
type FontStatus int

const (
	FontUnavailable FontStatus = iota
	FontAvailable
)

func (s FontStatus) String() string {
	if s == FontAvailable {
		return "available"
	}
	return "unavailable"
}

// FontCapability is the memoized result of probing the label font. Data and
// Family are set only when Status is FontAvailable.
type FontCapability struct {
	Status FontStatus
	Family string
	Data   []byte
	Reason string
}

// Available reports whether the Unicode font can be embedded.
func (c FontCapability) Available() bool {
	return c.Status == FontAvailable && len(c.Data) > 0
}

// FontLoader reads and validates the label font at most once.
type FontLoader struct {
	path string

	once       sync.Once
	capability FontCapability
}

// NewFontLoader returns a loader for the TrueType font at path. An empty path
// selects DefaultFontPath.
func NewFontLoader(path string) *FontLoader {
	if path == "" {
		path = DefaultFontPath
	}
	return &FontLoader{path: path}
}

// Path returns the font location the loader probes.
func (l *FontLoader) Path() string {
	return l.path
}

// Load returns the font capability, probing the file on first use. A missing
// or unreadable font yields FontUnavailable; it is never an error.
func (l *FontLoader) Load() FontCapability {
	l.once.Do(func() {
		l.capability = probeFont(l.path)
		if l.capability.Available() {
			applog.Info(context.Background(), "label font registered", "path", l.path, "family", l.capability.Family)
		} else {
			applog.Warn(context.Background(), "label font unavailable, falling back to built-in Latin font",
				"path", l.path,
				"reason", l.capability.Reason,
			)
		}
	})
	return l.capability
}

func probeFont(path string) (capability FontCapability) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return FontCapability{Status: FontUnavailable, Reason: err.Error()}
	}

	defer func() {
		if r := recover(); r != nil {
			capability = FontCapability{Status: FontUnavailable, Reason: fmt.Sprintf("parse font: %v", r)}
		}
	}()

	probe := fpdf.New("P", "mm", "A4", "")
	probe.AddUTF8FontFromBytes(unicodeFamily, "", data)
	if err := probe.Error(); err != nil {
		return FontCapability{Status: FontUnavailable, Reason: err.Error()}
	}

	return FontCapability{Status: FontAvailable, Family: unicodeFamily, Data: data}
}
