package store

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replica-sync/models"
)

func TestImportTOML(t *testing.T) {
	doc := `
[profiles.photos]
root_a = "/home/me/photos"
root_b = "https://nas:8443"
username = "me"
ignore = ["*.tmp", ".git"]

[profiles.docs]
root_a = "/home/me/docs"
root_b = "/mnt/backup/docs"
`
	profiles, err := ImportTOML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "docs", profiles[0].Name)
	assert.Equal(t, "/mnt/backup/docs", profiles[0].RootB)
	assert.Equal(t, "photos", profiles[1].Name)
	assert.Equal(t, "me", profiles[1].Username)
	assert.Equal(t, []string{"*.tmp", ".git"}, profiles[1].Ignore)
}

func TestImportTOML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "syntax", doc: "[profiles.x\nroot_a=", want: ErrDecodingProfile},
		{name: "missing root", doc: "[profiles.x]\nroot_a = \"/a\"\n", want: models.ErrInvalidProfile},
		{name: "same roots", doc: "[profiles.x]\nroot_a = \"/a\"\nroot_b = \"/a\"\n", want: models.ErrInvalidProfile},
		{name: "bad pattern", doc: "[profiles.x]\nroot_a = \"/a\"\nroot_b = \"/b\"\nignore = [\"[\"]\n", want: models.ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportTOML(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExportTOML_ReadableByImport(t *testing.T) {
	in := []models.Profile{
		{Name: "b", RootA: "/1", RootB: "/2"},
		{Name: "a", RootA: "/3", RootB: "http://host:80", Username: "u", Ignore: []string{"*.o"}},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTOML(&buf, in))
	assert.Contains(t, buf.String(), "[profiles.a]")
	assert.NotContains(t, buf.String(), "created_at")

	out, err := ImportTOML(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[1], out[0])
	assert.Equal(t, in[0], out[1])
}
