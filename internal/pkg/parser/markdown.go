/*
 * @Description: 商品描述的 Markdown 渲染
 * @Author: 安知鱼
 * @Date: 2025-08-08 15:57:23
 * @LastEditTime: 2026-10-14 16:20:47
 * @LastEditors: 安知鱼
 */
package parser

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var mdParser goldmark.Markdown
var policy *bluemonday.Policy

func init() {
	// 商品描述只需要常见的 GFM 语法
	mdParser = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // 表格、删除线、任务列表、自动链接
			extension.Typographer, // 美化排版
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(), // 原始 HTML 交给 bluemonday 清理
		),
	)

	policy = bluemonday.UGCPolicy()
	policy.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
}

// MarkdownToHTML 将 Markdown 字符串转换为安全的 HTML 字符串，空白内容返回空串
func MarkdownToHTML(mdContent string) (string, error) {
	if strings.TrimSpace(mdContent) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(mdContent), &buf); err != nil {
		return "", err
	}
	// 使用 bluemonday 清理 HTML，防止 XSS
	return policy.Sanitize(buf.String()), nil
}
