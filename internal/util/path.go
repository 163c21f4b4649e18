package util

import (
	"path/filepath"
	"strings"
)

// SafeRelPath 校验报告产物路径：必须是相对路径，
// 且规范化后仍落在存储根目录之内。
func SafeRelPath(name string) bool {
	if name == "" || filepath.IsAbs(name) {
		return false
	}
	clean := filepath.Clean(name)
	return clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
