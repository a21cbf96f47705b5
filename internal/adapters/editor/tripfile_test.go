package editor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgenie/internal/domain"
)

func lisbon() domain.Trip {
	return domain.Trip{
		ID:           "srv-1",
		Destination:  "Lisbon",
		Country:      "Portugal",
		StartDate:    "2026-06-01",
		EndDate:      "2026-06-05",
		Travelers:    2,
		TravelerType: "couple",
		Vibes:        []string{"food"},
		Status:       domain.TripStatusDraft,
	}
}

func TestUnchangedDocumentYieldsEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrip(&buf, lisbon()))
	assert.Contains(t, buf.String(), "# Trip srv-1")

	in, err := ReadChanges(&buf, lisbon())
	require.NoError(t, err)
	assert.True(t, in.IsEmpty())
}

func TestEditedFieldsAreReported(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrip(&buf, lisbon()))
	edited := strings.Replace(buf.String(), `"Lisbon"`, `"Porto"`, 1)
	edited = strings.Replace(edited, `["food"]`, `["food", "wine"]`, 1)

	in, err := ReadChanges(strings.NewReader(edited), lisbon())
	require.NoError(t, err)
	require.NotNil(t, in.Destination)
	assert.Equal(t, "Porto", *in.Destination)
	assert.Equal(t, []string{"food", "wine"}, in.Vibes)
	assert.Nil(t, in.Country)
	assert.Nil(t, in.Travelers)
}

func TestInvalidTOML(t *testing.T) {
	_, err := ReadChanges(strings.NewReader("destination = "), lisbon())
	assert.Error(t, err)
}

func TestNoEditor(t *testing.T) {
	o := &Opener{getenv: func(string) string { return "" }}
	t.Setenv("PATH", t.TempDir())

	_, err := o.Command(context.Background(), "trip.toml")
	assert.ErrorContains(t, err, "no editor found")
}

func TestEditorArguments(t *testing.T) {
	o := &Opener{getenv: func(k string) string {
		if k == "EDITOR" {
			return "code --wait"
		}
		return ""
	}}

	cmd, err := o.Command(context.Background(), "trip.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "trip.toml"}, cmd.Args)
}

func TestEditTripRunsEditor(t *testing.T) {
	o := &Opener{getenv: func(k string) string {
		if k == "EDITOR" {
			return "sed -i s/couple/family/"
		}
		return ""
	}}

	in, err := o.EditTrip(context.Background(), lisbon())
	require.NoError(t, err)
	require.NotNil(t, in.TravelerType)
	assert.Equal(t, "family", *in.TravelerType)
}
