package player

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoTrack 播放器没有返回歌手或标题
var ErrNoTrack = errors.New("no track is playing")

// Runner 执行外部命令并返回 stdout
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Player 通过 playerctl 读取当前播放的歌曲
type Player struct {
	run Runner
}

func New() *Player {
	return &Player{run: execRunner}
}

// NewWithRunner 使用自定义 Runner（测试使用）
func NewWithRunner(run Runner) *Player {
	return &Player{run: run}
}

// CurrentTrack 返回当前歌曲的歌手和标题
func (p *Player) CurrentTrack(ctx context.Context) (artist, title string, err error) {
	out, err := p.run(ctx, "playerctl", "metadata", "--format", "{{artist}}\t{{title}}")
	if err != nil {
		return "", "", fmt.Errorf("playerctl metadata failed: %w", err)
	}

	artist, title, _ = strings.Cut(strings.TrimRight(string(out), "\r\n"), "\t")
	artist, title = strings.TrimSpace(artist), strings.TrimSpace(title)
	if artist == "" || title == "" {
		return "", "", ErrNoTrack
	}
	return artist, title, nil
}

// Position 返回当前播放进度（秒）
func (p *Player) Position(ctx context.Context) (float64, error) {
	out, err := p.run(ctx, "playerctl", "position")
	if err != nil {
		return 0, fmt.Errorf("playerctl position failed: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid playback position %q: %w", out, err)
	}
	return seconds, nil
}
