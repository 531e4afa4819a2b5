package util

import "strings"

// TrimSpace: 문자열 양쪽 끝의 공백을 제거한다. (strings.TrimSpace 래퍼)
func TrimSpace(s string) string {
	return strings.TrimSpace(s)
}

// Normalize: 문자열을 소문자로 변환하고 양쪽 공백을 제거한다.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SplitLines: 텍스트를 행 단위로 분리한다.
// CRLF를 허용하며, 마지막 개행 뒤에는 빈 항목을 만들지 않는다.
// 내부의 빈 행은 그대로 유지된다 (로스터 파일의 실수 감지를 위해 걸러내지 않음).
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}

	return strings.Split(text, "\n")
}
