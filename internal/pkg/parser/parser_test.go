package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"普通名称", "Plain T-Shirt", "Plain T-Shirt"},
		{"去掉标签", "<b>Vintage</b> Cap", "Vintage Cap"},
		{"去掉脚本", "<script>alert(1)</script>Shorts", "Shorts"},
		{"保留与号", "Salt & Pepper", "Salt & Pepper"},
		{"合并空白", "  rock \n music  ", "rock music"},
		{"只有标签", "<i></i>", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeName(tc.input))
		})
	}
}

func TestMarkdownToHTML(t *testing.T) {
	t.Run("渲染强调", func(t *testing.T) {
		out, err := MarkdownToHTML("**soft** cotton")
		require.NoError(t, err)
		assert.Contains(t, out, "<strong>soft</strong>")
	})

	t.Run("清理脚本", func(t *testing.T) {
		out, err := MarkdownToHTML("hello <script>alert(1)</script>")
		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "hello")
	})

	t.Run("空白内容", func(t *testing.T) {
		out, err := MarkdownToHTML("   ")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
