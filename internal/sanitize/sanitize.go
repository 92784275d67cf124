package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 用户提交的自由文本一律走严格策略,去掉所有标签
var policy = bluemonday.StrictPolicy()

// Text 清理自由文本并去掉首尾空白
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
