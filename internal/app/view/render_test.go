package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcribe-ui/internal/app/model"
	"transcribe-ui/internal/app/testutil"
)

func renderDoc(t *testing.T, s State) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, s))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func hasText(doc *goquery.Document, text string) bool {
	found := false
	doc.Find("h1, h2, div, td, button, li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) == text {
			found = true
			return false
		}
		return true
	})
	return found
}

func TestRenderInitialPage(t *testing.T) {
	doc := renderDoc(t, State{Transcriptions: []model.Transcription{}})

	assert.True(t, hasText(doc, "Audio Transcription App"))
	assert.True(t, hasText(doc, "Upload Audio File(s)"))
	assert.True(t, hasText(doc, "Transcriptions"))
	assert.True(t, hasText(doc, "Search by Audio Filename"))
	assert.True(t, hasText(doc, NoStoredMessage))

	upload := doc.Find(`form[action="/upload"] button`)
	require.Equal(t, 1, upload.Length())
	assert.Equal(t, "Upload", strings.TrimSpace(upload.Text()))
	_, disabled := upload.Attr("disabled")
	assert.True(t, disabled, "no files selected")

	input := doc.Find(`[data-testid="file-upload-input"]`)
	require.Equal(t, 1, input.Length())
	_, multiple := input.Attr("multiple")
	assert.True(t, multiple)
	assert.Equal(t, "files", input.AttrOr("name", ""))

	search := doc.Find(`input[placeholder="Search by filename"]`)
	require.Equal(t, 1, search.Length())
	assert.Equal(t, "/reset", doc.Find(`button[formaction]`).AttrOr("formaction", ""))

	assert.Zero(t, doc.Find("#loading_overlay").Length())
	assert.Zero(t, doc.Find(`meta[http-equiv="refresh"]`).Length())
}

func TestRenderUploadButtonState(t *testing.T) {
	testCases := []struct {
		name     string
		state    State
		disabled bool
	}{
		{name: "no files", state: State{}, disabled: true},
		{name: "files selected", state: State{SelectedFiles: []string{"test.mp3"}}, disabled: false},
		{name: "loading", state: State{SelectedFiles: []string{"test.mp3"}, IsLoading: true}, disabled: true},
		{name: "loading without files", state: State{IsLoading: true}, disabled: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := renderDoc(t, tc.state)
			_, disabled := doc.Find(`form[action="/upload"] button`).Attr("disabled")
			assert.Equal(t, tc.disabled, disabled)
		})
	}
}

func TestRenderLoadingOverlay(t *testing.T) {
	doc := renderDoc(t, State{SelectedFiles: []string{"test.mp3"}, IsLoading: true})

	overlay := doc.Find("#loading_overlay")
	require.Equal(t, 1, overlay.Length())
	assert.Equal(t, "Loading...", strings.TrimSpace(overlay.Text()))
	assert.Contains(t, overlay.AttrOr("style", ""), "position: fixed")
	assert.Equal(t, 1, doc.Find(`meta[http-equiv="refresh"]`).Length())
	assert.True(t, hasText(doc, "test.mp3"))
}

func TestRenderTable(t *testing.T) {
	records := testutil.Transcriptions()
	doc := renderDoc(t, State{Transcriptions: records})

	table := doc.Find("#transcriptions_table")
	require.Equal(t, 1, table.Length())

	headers := table.Find("th").Map(func(_ int, sel *goquery.Selection) string { return sel.Text() })
	assert.Equal(t, TableHeaders, headers)

	rows := table.Find("tbody tr")
	require.Equal(t, len(records), rows.Length())
	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td").Map(func(_ int, sel *goquery.Selection) string { return sel.Text() })
		assert.Equal(t, Rows(records)[i], cells)
		assert.Equal(t, records[i].CreatedAt, row.AttrOr("data-key", ""))
	})
	assert.Zero(t, doc.Find("#empty_message").Length())
}

func TestRenderSearchResult(t *testing.T) {
	doc := renderDoc(t, State{
		Transcriptions: []model.Transcription{testutil.SearchFixture()},
		SearchTerm:     "search",
		IsSearched:     true,
	})

	for _, text := range []string{"search.mp3", "search transcription", "2025-02-02 02:52:32.543544"} {
		assert.True(t, hasText(doc, text), text)
	}
	assert.Equal(t, "search", doc.Find(`input[name="search_term"]`).AttrOr("value", ""))
}

func TestRenderEmptyMessages(t *testing.T) {
	assert.True(t, hasText(renderDoc(t, State{IsSearched: true}), NoMatchMessage))
	assert.True(t, hasText(renderDoc(t, State{IsSearched: false}), NoStoredMessage))
}

func TestRenderEscapesContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, State{Transcriptions: []model.Transcription{{
		AudioFilename:   "<script>alert(1)</script>.mp3",
		TranscribedText: "a & b",
		CreatedAt:       "2025-01-01 00:00:00",
	}}}))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, State{Transcriptions: testutil.Transcriptions()}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+len(testutil.TestTranscriptions))
	assert.True(t, strings.HasPrefix(lines[0], "Audio Filename"))
	assert.Contains(t, lines[1], "test.mp3")
	assert.Contains(t, lines[1], "2025-01-01 08:58:30.543544")

	buf.Reset()
	require.NoError(t, RenderText(&buf, State{IsSearched: true}))
	assert.Equal(t, NoMatchMessage+"\n", buf.String())
}
