package player

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func fakeRunner(out string, err error) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "playerctl" {
			return nil, errors.New("unexpected command " + name)
		}
		return []byte(out), err
	}
}

func TestCurrentTrack(t *testing.T) {
	p := NewWithRunner(fakeRunner("Queen\tBohemian Rhapsody - Remastered 2011\n", nil))
	artist, title, err := p.CurrentTrack(context.Background())
	if err != nil {
		t.Fatalf("CurrentTrack failed: %v", err)
	}
	if artist != "Queen" || title != "Bohemian Rhapsody - Remastered 2011" {
		t.Errorf("got %q / %q", artist, title)
	}
}

func TestCurrentTrackErrors(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
	}{
		{"command_failed", "", errors.New("No players found")},
		{"empty_output", "\n", nil},
		{"missing_title", "Queen\t\n", nil},
		{"missing_artist", "\tSong\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewWithRunner(fakeRunner(tt.out, tt.err))
			if _, _, err := p.CurrentTrack(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPosition(t *testing.T) {
	p := NewWithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if strings.Join(args, " ") != "position" {
			t.Errorf("unexpected args %v", args)
		}
		return []byte("12.345678\n"), nil
	})
	pos, err := p.Position(context.Background())
	if err != nil || pos != 12.345678 {
		t.Errorf("Position() = %v, %v", pos, err)
	}

	if _, err := NewWithRunner(fakeRunner("n/a", nil)).Position(context.Background()); err == nil {
		t.Error("expected parse error")
	}
}
