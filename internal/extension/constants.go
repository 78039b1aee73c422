// Package extension describes the unpacked Temu Price Comparison extension on disk:
// which files it must ship and what its manifest has to declare.
package extension

const (
	// ExtensionName is the human-readable name of the extension
	ExtensionName = "Temu Price Comparison"

	// ManifestFile is the manifest path relative to the extension root
	ManifestFile = "manifest.json"

	// ExtensionsPageURL is Chrome's extension-management page
	ExtensionsPageURL = "chrome://extensions/"

	// GuideFile is the installation guide written to the extension root
	GuideFile = "INSTALLATION_GUIDE.md"

	// ShortcutBaseName is the desktop shortcut file name without extension
	ShortcutBaseName = "Temu-Extension-Install"
)

// RequiredFiles lists the paths, relative to the extension root, that must exist
// before the extension can be loaded unpacked.
var RequiredFiles = []string{
	ManifestFile,
	"content/content.js",
	"background/background.js",
	"popup/popup.html",
	"popup/popup.css",
	"popup/popup.js",
}

// RequiredManifestFields are checked in order; the first absent one fails validation.
var RequiredManifestFields = []string{
	"manifest_version",
	"name",
	"version",
	"description",
}

// TestURL is an Amazon product page the overlay should appear on.
type TestURL struct {
	URL   string
	Label string
}

// TestURLs are shown after installation so the user can try the extension.
var TestURLs = []TestURL{
	{URL: "https://www.amazon.com/dp/B08N5WRWNW", Label: "Echo Dot"},
	{URL: "https://www.amazon.com/dp/B07ZPKBL9V", Label: "Wireless Earbuds"},
}
