/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:36
 * @LastEditTime: 2026-10-14 16:22:05
 * @LastEditors: 安知鱼
 */
package parser

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy *bluemonday.Policy

func init() {
	// StrictPolicy 会移除所有的HTML标签
	strictPolicy = bluemonday.StrictPolicy()
}

// SanitizeName 去掉名称中的所有标签并合并空白，用于分类、商品和标签名。
// bluemonday 会转义 & 等字符，这里还原成纯文本，输出时由 JSON 编码负责转义。
func SanitizeName(name string) string {
	plain := html.UnescapeString(strictPolicy.Sanitize(name))
	return strings.Join(strings.Fields(plain), " ")
}
