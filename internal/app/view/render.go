package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"

	"transcribe-ui/internal/app/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// TableHeaders are the column titles of the transcription table
var TableHeaders = []string{"Audio Filename", "Transcribed Text", "Created Timestamp"}

// DefaultRefreshSeconds is how often a page polls while an upload is in flight
const DefaultRefreshSeconds = 1

type pageData struct {
	State          State
	RefreshSeconds int
}

// RenderHTML writes the full page for s
func RenderHTML(w io.Writer, s State) error {
	return pageTemplate.Execute(w, pageData{State: s, RefreshSeconds: DefaultRefreshSeconds})
}

// RenderText writes the transcription table, or the empty message, for a terminal
func RenderText(w io.Writer, s State) error {
	if len(s.Transcriptions) == 0 {
		_, err := fmt.Fprintln(w, s.EmptyMessage())
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range append([][]string{TableHeaders}, Rows(s.Transcriptions)...) {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", row[0], row[1], row[2]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Rows flattens records into table cells, in list order
func Rows(records []model.Transcription) [][]string {
	return lo.Map(records, func(t model.Transcription, _ int) []string {
		return []string{t.AudioFilename, t.TranscribedText, t.CreatedAt}
	})
}
