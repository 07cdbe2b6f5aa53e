package resources

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestBundle_ReadsGraphAndLabels(t *testing.T) {
	b := NewBundle(fstest.MapFS{
		GraphFile:  {Data: []byte{0x0a, 0x01}},
		LabelsFile: {Data: []byte("dummy\nkit fox\r\nEnglish setter\n")},
	})

	graph, err := b.Graph()
	require.NoError(t, err)
	require.Equal(t, []byte{0x0a, 0x01}, graph)

	labels, err := b.Labels()
	require.NoError(t, err)
	require.Equal(t, []string{"dummy", "kit fox", "English setter"}, labels)
}

func TestBundle_MissingResources(t *testing.T) {
	b := NewBundle(fstest.MapFS{})

	_, err := b.Graph()
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = b.Labels()
	require.ErrorIs(t, err, fs.ErrNotExist)
}
