package lyrics

import "sort"

const (
	// SourceLRCLib 来自 lrclib.net 的歌词
	SourceLRCLib = "lrclib.net"
	// SourceFallback 合成的占位歌词
	SourceFallback = "fallback"

	// ErrNoLyricsFound 关闭回退时的错误信息
	ErrNoLyricsFound = "No lyrics found"
)

// Line 一行带时间戳的歌词
type Line struct {
	Time  float64  `json:"time"`  // 距歌曲开始的秒数
	Words []string `json:"words"` // 按空白切分的单词，不为空
	Text  string   `json:"-"`     // 原始文本（已去除首尾空白）
}

// Result 一次查询的最终结果，对应输出的 JSON 文档
type Result struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Synced  []Line `json:"synced"`
	Source  string `json:"source,omitempty"`
	LrcRaw  string `json:"lrcRaw,omitempty"`
	Error   string `json:"error,omitempty"`
}

// newResult 由解析后的歌词行构建成功的结果
func newResult(lines []Line, source, raw string) Result {
	return Result{
		Success: true,
		Text:    joinText(lines),
		Synced:  lines,
		Source:  source,
		LrcRaw:  raw,
	}
}

// NotFound 返回关闭回退时使用的失败结果
func NotFound() Result {
	return Result{
		Success: false,
		Text:    "",
		Synced:  []Line{},
		Error:   ErrNoLyricsFound,
	}
}

// LineIndexAt 返回时间 t 时应显示的歌词行下标，在第一行之前返回 -1
func (r Result) LineIndexAt(t float64) int {
	// 第一个 Time > t 的位置减一即为当前行
	return sort.Search(len(r.Synced), func(i int) bool {
		return r.Synced[i].Time > t
	}) - 1
}
