package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	defaultsDir = "defaults/"
	iconDir     = "icon/"
)

//go:embed defaults/*.json
var defaultsFS embed.FS

//go:embed icon/*.svg
var iconFS embed.FS

var iconCache sync.Map

// DefaultConfig returns the bundled config.json used to seed first run.
func DefaultConfig() []byte {
	return mustRead(defaultsFS, defaultsDir+"config.json")
}

// DefaultDates returns the bundled dates.json used to seed first run.
func DefaultDates() []byte {
	return mustRead(defaultsFS, defaultsDir+"dates.json")
}

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	path := iconDir + fileName
	if cached, ok := iconCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := iconFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	iconCache.Store(path, resource)
	return resource, nil
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

func mustRead(fs embed.FS, path string) []byte {
	data, err := fs.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("load resource %s: %w", path, err))
	}
	return data
}
