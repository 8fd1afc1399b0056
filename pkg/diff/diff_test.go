package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateUnifiedDiffIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte(":root {\n  --app-bg: #ffffff;\n}\n")
	require.Empty(t, GenerateUnifiedDiff(content, content, "base", "merged"))
}

func TestGenerateUnifiedDiffSingleLineChange(t *testing.T) {
	t.Parallel()

	before := []byte(":root {\n  --app-bg: #ffffff;\n  --app-text: #111111;\n}\n")
	after := []byte(":root {\n  --app-bg: #000000;\n  --app-text: #111111;\n}\n")

	result := GenerateUnifiedDiff(before, after, "base", "merged")

	require.Contains(t, result, "--- base\n+++ merged\n")
	require.Contains(t, result, "@@ -1,4 +1,4 @@")
	require.Contains(t, result, "-  --app-bg: #ffffff;\n")
	require.Contains(t, result, "+  --app-bg: #000000;\n")
	require.Contains(t, result, "   --app-text: #111111;\n")
}

func TestGenerateUnifiedDiffAddedAndRemovedLines(t *testing.T) {
	t.Parallel()

	before := []byte("a\nb\n")
	after := []byte("a\nc\nd\n")

	result := GenerateUnifiedDiff(before, after, "before", "after")
	require.Contains(t, result, "-b\n")
	require.Contains(t, result, "+c\n+d\n")

	removed, added := ChangedLines(before, after)
	require.Equal(t, 1, removed)
	require.Equal(t, 2, added)
}

func TestGenerateUnifiedDiffTruncates(t *testing.T) {
	t.Parallel()

	var before, after strings.Builder
	for i := 0; i < maxDiffLines; i++ {
		fmt.Fprintf(&before, "old %d\n", i)
		fmt.Fprintf(&after, "new %d\n", i)
	}

	result := GenerateUnifiedDiff([]byte(before.String()), []byte(after.String()), "a", "b")
	require.True(t, strings.HasSuffix(result, truncateMessage+"\n"))
}
