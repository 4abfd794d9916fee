package lyrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseLRC 逐行解析 LRC 文本，返回按源顺序排列的歌词行
//
// 每一行只解释第一对方括号；元数据标签（如 [ar:xxx]）、时间戳无法解析的行
// 以及没有文本的行都会被丢弃。不会重新排序。
func ParseLRC(lrc string) []Line {
	var result []Line

	for _, raw := range strings.Split(lrc, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, "[") {
			continue
		}
		end := strings.Index(line, "]")
		if end < 0 {
			continue
		}

		stamp := line[1:end]
		text := strings.TrimSpace(line[end+1:])

		if isMetadataTag(stamp) {
			continue
		}

		seconds, err := parseTimestamp(stamp)
		if err != nil {
			continue
		}

		if text == "" {
			continue
		}

		result = append(result, Line{
			Time:  seconds,
			Words: strings.Fields(text),
			Text:  text,
		})
	}

	return result
}

// isMetadataTag 带冒号且不以数字开头的标签视为元数据
func isMetadataTag(stamp string) bool {
	if !strings.Contains(stamp, ":") {
		return false
	}
	return stamp == "" || stamp[0] < '0' || stamp[0] > '9'
}

// parseTimestamp 解析 mm:ss.xx 或纯秒数
func parseTimestamp(stamp string) (float64, error) {
	var seconds float64

	if minStr, secStr, ok := strings.Cut(stamp, ":"); ok {
		min, err := strconv.ParseFloat(strings.TrimSpace(minStr), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid minutes in %q: %w", stamp, err)
		}
		sec, err := strconv.ParseFloat(strings.TrimSpace(secStr), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds in %q: %w", stamp, err)
		}
		seconds = min*60 + sec
	} else {
		sec, err := strconv.ParseFloat(strings.TrimSpace(stamp), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", stamp, err)
		}
		seconds = sec
	}

	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, fmt.Errorf("timestamp %q out of range", stamp)
	}
	return seconds, nil
}

// joinText 按行拼接原始文本
func joinText(lines []Line) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}
