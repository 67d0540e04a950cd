package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	set := Default()
	require.NoError(t, set.Validate())
	assert.Len(t, set.Back.Primary.Lines, 7)
	assert.Len(t, set.Inner.Primary.Lines, 5)
	assert.Equal(t, "2024", set.Title.Revealed)
}

func TestFace_Block(t *testing.T) {
	f := Default().Inner
	assert.Equal(t, "1. DeFi 2.0 Innovations", f.Block(Primary).Lines[0].Text)
	assert.Equal(t, "Hidden Insights: The Future", f.Block(Alternate).Lines[0].Text)
}

func TestLoad_OverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	data := `
[letter]
top = "Dear reader"

[[back.alternate.lines]]
kind = "heading"
text = "Appendix"

[[back.alternate.lines]]
kind = "list"
items = ["one", "two"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Dear reader", set.Letter.Top)
	assert.Equal(t, "Web3 Thesis...", set.Letter.Middle, "untouched keys keep defaults")
	require.Len(t, set.Back.Alternate.Lines, 2)
	assert.Equal(t, []string{"one", "two"}, set.Back.Alternate.Lines[1].Items)
}

func TestLoad_RejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	data := `
[[inner.primary.lines]]
kind = "marquee"
text = "nope"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "primary", Primary.String())
	assert.Equal(t, "alternate", Alternate.String())
}
