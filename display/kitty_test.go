package display

import (
	"bytes"
	"testing"

	"github.com/soypat/kirkkaus"
	"github.com/soypat/kirkkaus/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKittySinkUpload(t *testing.T) {
	var buf bytes.Buffer
	sink := NewKittySink(&buf, 40, 20)
	img := kirkkaus.Fill(8, 4, kirkkaus.RGB{R: 200, G: 10, B: 10})

	h1, err := sink.Upload(preview.KeyPreview, img)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1b_G")

	h2, err := sink.Upload(preview.KeyHistogram, img)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "distinct keys get distinct images")

	again, err := sink.Upload(preview.KeyPreview, img)
	require.NoError(t, err)
	assert.Equal(t, h1, again, "same key reuses its image id")

	_, err = sink.Upload(preview.KeyPreview, kirkkaus.NewBufferRaw(0, 0, nil))
	assert.Error(t, err)
}
