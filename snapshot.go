package main

import (
	"bytes"
	"fmt"
	"html/template"
	"image/color"
	"os"
	"path/filepath"

	"github.com/luabagg/orcgen/v2"
)

var heatmapPage = template.Must(template.New("heatmap").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: monospace; margin: 8px; }
table { border-collapse: collapse; }
td { width: 12px; height: 12px; padding: 0; font-size: 0; }
th { font-size: 9px; font-weight: normal; padding: 0 2px; }
</style>
</head>
<body>
<h3>{{.Title}}</h3>
<p>{{.Total}} records, max {{.Max}} per bucket</p>
<table>
{{- range $x, $row := .Rows}}
<tr><th>{{$x}}</th>
{{- range $row}}<td style="background:{{.Color}}" title="{{.Count}}"></td>{{end}}</tr>
{{- end}}
</table>
</body>
</html>
`))

type pageCell struct {
	Count int
	Color template.CSS
}

type pageData struct {
	Title string
	Total int
	Max   int
	Rows  [][]pageCell
}

func renderHTML(title string, g *Grid) ([]byte, error) {
	maxCount := g.Max()
	data := pageData{Title: title, Total: g.Total(), Max: maxCount, Rows: make([][]pageCell, gridSize)}
	for x := range gridSize {
		data.Rows[x] = make([]pageCell, gridSize)
		for y := range gridSize {
			data.Rows[x][y] = pageCell{Count: g[x][y], Color: cssColor(heatColor(g[x][y], maxCount))}
		}
	}

	var buf bytes.Buffer
	if err := heatmapPage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("error in executing heatmap template: %w", err)
	}
	return buf.Bytes(), nil
}

func cssColor(c color.RGBA) template.CSS {
	return template.CSS(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

// writeHTML writes the heatmap page to htmlPath and, if snapshotPath is set,
// screenshots it in a headless browser. Without htmlPath the page goes to a
// temporary file.
func writeHTML(htmlPath, snapshotPath, title string, g *Grid) error {
	page, err := renderHTML(title, g)
	if err != nil {
		return err
	}

	if htmlPath == "" {
		tmp, err := os.CreateTemp("", "heatmap-*.html")
		if err != nil {
			return fmt.Errorf("error in creating temporary html file: %w", err)
		}
		htmlPath = tmp.Name()
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("error in closing temporary html file [%v]: %w", htmlPath, err)
		}
		defer func() {
			if err := os.Remove(htmlPath); err != nil {
				clog.Errorf("error in removing temporary html file [%v]: %v", htmlPath, err)
			}
		}()
	}

	clog.Infof("writing heatmap page to [%v]...", htmlPath)
	if err := os.WriteFile(htmlPath, page, 0644); err != nil {
		return fmt.Errorf("error in writing html file [%v]: %w", htmlPath, err)
	}

	if snapshotPath == "" {
		return nil
	}
	return takeSnapshot(htmlPath, snapshotPath)
}

func takeSnapshot(htmlPath, snapshotPath string) (err error) {
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("error in resolving html path [%v]: %w", htmlPath, err)
	}
	pageURL := "file://" + filepath.ToSlash(absPath)
	clog.Infof("taking snapshot of [%v] to [%v]...", pageURL, snapshotPath)

	// the browser driver panics on launch failures
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("error in taking snapshot [%v]: recovered panic: %v", pageURL, r)
		}
	}()

	h := orcgen.NewHandler(orcgen.ScreenshotConfig{FromSurface: true})
	pngPass, err := orcgen.ConvertWebpage(h, pageURL)
	if err != nil {
		return fmt.Errorf("error while loading the webpage [%v]: %w", pageURL, err)
	}

	if err := os.WriteFile(snapshotPath, pngPass.File, 0644); err != nil {
		return fmt.Errorf("error while writing the snapshot file [%v]: %w", snapshotPath, err)
	}
	return nil
}
