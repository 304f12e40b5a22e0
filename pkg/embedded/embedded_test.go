package embedded

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestFS() {
	Init(fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte("version: \"1.0\"\n")},
		"assets/images/ui/slider_bg.png": {Data: []byte{0x89, 'P', 'N', 'G'}},
	}, fstest.MapFS{
		"data/ui.yaml": {Data: []byte("window:\n  width: 740\n")},
	})
}

func TestReadFile_RoutesByPrefix(t *testing.T) {
	initTestFS()

	data, err := ReadFile("assets/config/resources.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "version")

	data, err = ReadFile("./data/ui.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "740")
}

func TestReadFile_Errors(t *testing.T) {
	initTestFS()

	_, err := ReadFile("other/file.txt")
	assert.ErrorContains(t, err, "unknown resource path prefix")

	_, err = ReadFile("assets/missing.png")
	assert.Error(t, err)
}

func TestExistsAndGlob(t *testing.T) {
	initTestFS()

	assert.True(t, Exists("assets/images/ui/slider_bg.png"))
	assert.False(t, Exists("assets/images/ui/nope.png"))
	assert.False(t, Exists("data/assets/ui.yaml"))

	matches, err := Glob("assets/images/ui/*.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/images/ui/slider_bg.png"}, matches)
}

func TestNotInitialized(t *testing.T) {
	initialized = false
	defer initTestFS()

	_, err := ReadFile("assets/config/resources.yaml")
	assert.ErrorContains(t, err, "not initialized")
	assert.False(t, IsInitialized())
}
