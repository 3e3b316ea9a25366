package textextract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_PlainTextIsVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cursorrules")
	body := "  Always use BLoC.\n\n- keep widgets small\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFile_DOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rule.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t xml:space="preserve">Prefer </w:t></w:r><w:r><w:t>composition</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Prefer composition", got)
}

func TestReadFile_InvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0644))

	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract(nil, 0, ".xlsx")
	assert.Error(t, err)
}

func TestDocxText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "paragraphs and breaks",
			body: `<w:body><w:p><w:r><w:t>Rule  one</w:t></w:r></w:p>` +
				`<w:p><w:r><w:t xml:space="preserve">Rule </w:t></w:r><w:r><w:t>two</w:t><w:br/><w:t>cont</w:t></w:r></w:p>` +
				`<w:p></w:p></w:body>`,
			want: "Rule one\nRule two\ncont",
		},
		{
			name: "entities",
			body: `<w:body><w:p><w:r><w:t>Use A &amp; B &lt;T&gt; &quot;q&quot; &#x263A;</w:t></w:r></w:p></w:body>`,
			want: "Use A & B <T> \"q\" \u263a",
		},
		{
			name: "tab",
			body: `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t></w:r></w:p>`,
			want: "a b",
		},
		{
			name: "text outside runs ignored",
			body: `<w:body><w:p><w:pPr>style</w:pPr><w:r><w:t>kept</w:t></w:r></w:p></w:body>`,
			want: "kept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := docxText(strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocxText_Malformed(t *testing.T) {
	_, err := docxText(strings.NewReader(`<w:p><w:t>open`))
	assert.Error(t, err)
}
