package lyrics

import (
	"fmt"
	"strings"
)

const placeholderTemplate = `[00:00.00]Now playing: %s
[00:04.00]By: %s
[00:08.00]Lyrics are not available right now
[00:12.00]But the music plays on
[00:16.00]Enjoy the melody and rhythm
[00:20.00]Let the sound move you
[00:24.00]Music connects us all
[00:28.00]Sing along if you know the words
[00:32.00]♪`

// PlaceholderLRC 生成占位 LRC 文本，标题在 0 秒，歌手在 4 秒
func PlaceholderLRC(artist, title string) string {
	return fmt.Sprintf(placeholderTemplate, singleLine(title), singleLine(artist))
}

// Fallback 用占位歌词构建结果，和真实歌词走同一个解析器
func Fallback(artist, title string) Result {
	raw := PlaceholderLRC(artist, title)
	return newResult(ParseLRC(raw), SourceFallback, raw)
}

// singleLine 换行会破坏模板的行结构
func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
