package imager

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestSaveAndOpen(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/media/")
	require.NoError(t, err)

	data := pngBytes(t, 3, 2)
	img, err := store.Save(bytes.NewReader(data), "cat.png", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "cat.png", img.Name)
	assert.Equal(t, int64(len(data)), img.SizeBytes)
	require.True(t, strings.HasPrefix(img.Url, "/media/"))
	assert.True(t, strings.HasSuffix(img.Url, ".png"))

	key := strings.TrimPrefix(img.Url, "/media/")
	rc, err := store.Open(key)
	require.NoError(t, err)
	defer rc.Close()

	stored, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/media")
	require.NoError(t, err)

	_, err = store.Open("../../etc/passwd")
	require.Error(t, err)
}

func TestOpenMissingKey(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/media")
	require.NoError(t, err)

	_, err = store.Open("deadbeef.png")
	require.Error(t, err)
}

func TestProbe(t *testing.T) {
	w, h := Probe(bytes.NewReader(pngBytes(t, 7, 5)))
	assert.Equal(t, 7, w)
	assert.Equal(t, 5, h)
}

func TestProbeGarbageYieldsZero(t *testing.T) {
	w, h := Probe(strings.NewReader("not an image"))
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)
}
