// Package artifacts renders the files the installer leaves behind: the markdown
// installation guide and the desktop shortcut.
package artifacts

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/temu-compare/extinstall/internal/extension"
	"github.com/temu-compare/extinstall/pkg/util"
)

// GuideData is interpolated into the installation guide.
type GuideData struct {
	Root             string
	Platform         string
	RuntimeVersion   string
	BrowserPath      string
	ExtensionVersion string
	Command          string
}

var guideTemplate = template.Must(template.New("guide").Parse(`# {{.Name}} - Installation Guide

## Quick Install (Automated)

1. **Run the installer**: ` + "`{{.Command}}`" + `
2. **Follow the prompts** in the terminal
3. **Chrome will open** to the extensions page
4. **Enable Developer Mode** (toggle in top-right)
5. **Click "Load unpacked"** and select this folder
6. **Pin the extension** to your toolbar

## Manual Install

1. **Open Chrome** and go to ` + "`{{.PageURL}}`" + `
2. **Enable Developer Mode** (toggle in top-right)
3. **Click "Load unpacked"**
4. **Select this folder**: ` + "`{{.Root}}`" + `
5. **Pin the extension** to your toolbar

## Testing

1. **Visit Amazon**: {{.FirstTestURL}}
2. **Wait 2-3 seconds** for the overlay to appear
3. **See price comparison** with Temu
4. **Click "Buy on Temu"** to test functionality

## Troubleshooting

- **Extension not loading**: Make sure Developer Mode is enabled
- **No overlay appearing**: Refresh the Amazon page
- **Product not detected**: Try a different Amazon product
- **Icons missing**: The extension uses SVG icons (no PNG required)

## System Information

- **Extension Directory**: {{.Root}}
- **Extension Version**: {{.ExtensionVersion}}
- **Platform**: {{.Platform}}
- **Go Runtime**: {{.RuntimeVersion}}
- **Chrome Path**: {{.BrowserPath}}

## Support

For issues or questions, check the README.md file or create an issue in the repository.
`))

// RenderGuide returns the guide document for data.
func RenderGuide(data GuideData) ([]byte, error) {
	view := struct {
		GuideData
		Name         string
		PageURL      string
		FirstTestURL string
	}{
		GuideData:    data,
		Name:         extension.ExtensionName,
		PageURL:      extension.ExtensionsPageURL,
		FirstTestURL: extension.TestURLs[0].URL,
	}
	view.BrowserPath = util.OrDefault(data.BrowserPath, "Not found")
	view.ExtensionVersion = util.OrDash(data.ExtensionVersion)

	var buf bytes.Buffer
	if err := guideTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render guide: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteGuide (re)writes the guide into data.Root and returns its path.
func WriteGuide(data GuideData) (string, error) {
	content, err := RenderGuide(data)
	if err != nil {
		return "", err
	}
	path := filepath.Join(data.Root, extension.GuideFile)
	if err := util.WriteFileMode(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write guide: %w", err)
	}
	return path, nil
}
