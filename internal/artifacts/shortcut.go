package artifacts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/temu-compare/extinstall/internal/extension"
	"github.com/temu-compare/extinstall/pkg/util"
)

// ShortcutData is interpolated into the platform's launcher template.
type ShortcutData struct {
	GOOS        string
	DesktopDir  string
	Root        string
	BrowserPath string
}

type shortcutKind struct {
	ext      string
	mode     os.FileMode
	template *template.Template
}

// shortcutTable maps GOOS to its launcher. Any GOOS without an entry gets the
// freedesktop entry.
var shortcutTable = map[string]shortcutKind{
	"darwin": {
		ext:  ".command",
		mode: 0755,
		template: template.Must(template.New("darwin").Parse(`#!/bin/bash
open -a "Google Chrome" "{{.PageURL}}"
echo "Chrome Extensions page opened"
echo "Select folder: {{.Root}}"
`)),
	},
	"windows": {
		ext:  ".bat",
		mode: 0644,
		template: template.Must(template.New("windows").Parse("@echo off\r\n" +
			"start chrome {{.PageURL}}\r\n" +
			"echo Chrome Extensions page opened\r\n" +
			"echo Select folder: {{.Root}}\r\n" +
			"pause\r\n")),
	},
	"linux": {
		ext:  ".desktop",
		mode: 0755,
		template: template.Must(template.New("linux").Parse(`[Desktop Entry]
Version=1.0
Type=Application
Name=Temu Extension Install
Comment=Install {{.Name}} Extension
Exec={{.Exec}} {{.PageURL}}
Icon=google-chrome
Terminal=false
Categories=Network;WebBrowser;
`)),
	},
}

func shortcutFor(goos string) shortcutKind {
	if kind, ok := shortcutTable[goos]; ok {
		return kind
	}
	return shortcutTable["linux"]
}

// ShortcutPath returns where the shortcut for data.GOOS is written.
func ShortcutPath(data ShortcutData) string {
	return filepath.Join(data.DesktopDir, extension.ShortcutBaseName+shortcutFor(data.GOOS).ext)
}

// RenderShortcut returns the launcher content for data.GOOS.
func RenderShortcut(data ShortcutData) ([]byte, error) {
	view := struct {
		ShortcutData
		Name    string
		PageURL string
		Exec    string
	}{
		ShortcutData: data,
		Name:         extension.ExtensionName,
		PageURL:      extension.ExtensionsPageURL,
		Exec:         util.OrDefault(data.BrowserPath, "google-chrome"),
	}
	if data.BrowserPath != "" {
		view.Exec = quoteExecArg(data.BrowserPath)
	}

	var buf bytes.Buffer
	if err := shortcutFor(data.GOOS).template.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render shortcut: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteShortcut writes the launcher to the desktop directory and returns its
// path. The desktop directory is not created when missing.
func WriteShortcut(data ShortcutData) (string, error) {
	content, err := RenderShortcut(data)
	if err != nil {
		return "", err
	}
	path := ShortcutPath(data)
	if err := util.WriteFileMode(path, content, shortcutFor(data.GOOS).mode); err != nil {
		return "", fmt.Errorf("failed to write shortcut: %w", err)
	}
	return path, nil
}

// quoteExecArg quotes one argument of a desktop entry Exec key. Inside the
// quotes ", `, $ and \ are backslash-escaped; the value is then escaped again
// as a desktop entry string, and % is doubled so it is not read as a field code.
func quoteExecArg(arg string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '`', '$':
			b.WriteString(`\\`)
			b.WriteRune(r)
		case '\\':
			b.WriteString(`\\\\`)
		case '%':
			b.WriteString("%%")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
