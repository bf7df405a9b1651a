package packager

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/apk-packager/internal/domain/apk"
)

// TestRenderReadme_Raw writes the markdown unchanged.
func TestRenderReadme_Raw(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, RenderReadme(&out, 0, true))
	require.Equal(t, apk.Readme(), out.String())
}

// TestRenderReadme_Styled renders the markdown for a terminal.
func TestRenderReadme_Styled(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, RenderReadme(&out, 60, false))
	require.NotEmpty(t, out.String())
}
