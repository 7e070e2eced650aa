package core

import (
	"strings"
	"testing"
)

// rowText returns row y of the screen without colors.
func rowText(s *Screen, y int) string {
	return strings.Split(s.String(), "\n")[y]
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	if got, want := s.String(), "      \n      \n      "; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSetCellClipsOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 4, 0},
		{"above", 0, -1},
		{"below", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(4, 2)
			s.SetColored(tt.x, tt.y, '#', ColorRed)
			if strings.ContainsRune(s.String(), '#') {
				t.Errorf("write at (%d, %d) leaked into the buffer", tt.x, tt.y)
			}
			if c := s.GetCell(tt.x, tt.y); c != blankCell {
				t.Errorf("GetCell(%d, %d) = %+v, want blank", tt.x, tt.y, c)
			}
		})
	}
}

func TestDrawTextColored(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(5, 1, "dirt", ColorBrown)

	if got := rowText(s, 1); got != "     dir" {
		t.Errorf("row 1 = %q, want clipped %q", got, "     dir")
	}
	for x := 5; x < 8; x++ {
		if c := s.GetCell(x, 1); c.Color != ColorBrown {
			t.Errorf("cell (%d, 1) color = %d, want brown", x, c.Color)
		}
	}
	if c := s.GetCell(4, 1); c.Color != ColorDefault {
		t.Errorf("cell before text got color %d", c.Color)
	}
}

func TestDrawTextCentered(t *testing.T) {
	tests := []struct {
		width int
		text  string
		want  string
	}{
		{10, "ab", "    ab    "},
		{9, "ab", "   ab    "},
		{5, "PAUSED", "PAUSE"},
	}

	for _, tt := range tests {
		s := NewScreen(tt.width, 1)
		s.DrawTextCentered(0, tt.text)
		if got := rowText(s, 0); got != tt.want {
			t.Errorf("width %d: row = %q, want %q", tt.width, got, tt.want)
		}
	}
}

func TestMessageBox(t *testing.T) {
	s := NewScreen(7, 4)
	s.DrawText(0, 1, "xxxxxxx")

	r := NewRect(1, 0, 5, 4)
	s.DrawRect(r, ' ')
	s.DrawBox(r)

	want := strings.Join([]string{
		" ┌───┐ ",
		"x│   │x",
		" │   │ ",
		" └───┘ ",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("box:\n%s\nwant:\n%s", got, want)
	}
}

func TestClearResetsColor(t *testing.T) {
	s := NewScreen(3, 1)
	s.DrawTextColored(0, 0, "abc", ColorGreen)
	s.Clear()

	for x := 0; x < 3; x++ {
		if c := s.GetCell(x, 0); c != blankCell {
			t.Errorf("cell %d after Clear = %+v", x, c)
		}
	}
}

func TestResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "grass")
	s.DrawText(0, 2, "stone")

	s.Resize(3, 2)
	if got := s.String(); got != "gra\n   " {
		t.Errorf("after shrink = %q", got)
	}

	s.Resize(5, 3)
	if got := s.String(); got != "gra  \n     \n     " {
		t.Errorf("after grow = %q", got)
	}
}
