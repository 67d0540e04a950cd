// Package content holds the text shown on the paper faces.
package content

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is returned when a content file is malformed.
var ErrInvalid = errors.New("content: invalid")

// Variant selects which block a face displays.
type Variant int

const (
	Primary Variant = iota
	Alternate
)

func (v Variant) String() string {
	if v == Alternate {
		return "alternate"
	}
	return "primary"
}

// Kind is the typographic role of a line.
type Kind string

const (
	Heading   Kind = "heading"
	Paragraph Kind = "paragraph"
	List      Kind = "list"
)

// Line is one top-level child of a block. A list line carries its bullets in Items.
type Line struct {
	Kind  Kind     `toml:"kind"`
	Text  string   `toml:"text"`
	Items []string `toml:"items"`
}

// Block is the full text of one variant.
type Block struct {
	Lines []Line `toml:"lines"`
}

// Face holds both variants of a content-bearing face.
type Face struct {
	Primary   Block `toml:"primary"`
	Alternate Block `toml:"alternate"`
}

// Block returns the block for v.
func (f Face) Block(v Variant) Block {
	if v == Alternate {
		return f.Alternate
	}
	return f.Primary
}

// Title is the outer face heading. The last line is the year, which is
// struck through and followed by Revealed once hidden content shows.
type Title struct {
	Lines    []string `toml:"lines"`
	Revealed string   `toml:"revealed"`
}

// Letter holds the label of each fold segment.
type Letter struct {
	Top    string `toml:"top"`
	Middle string `toml:"middle"`
	Bottom string `toml:"bottom"`
}

// Set is all text used by the letter and the page.
type Set struct {
	Letter Letter `toml:"letter"`
	Title  Title  `toml:"title"`
	Back   Face   `toml:"back"`
	Inner  Face   `toml:"inner"`
}

// Load reads a TOML content file. Sections left out of the file keep the
// default text.
func Load(path string) (Set, error) {
	var set Set
	if _, err := toml.DecodeFile(path, &set); err != nil {
		return Set{}, fmt.Errorf("content: parse %s: %w", path, err)
	}
	set = set.withDefaults(Default())
	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	return set, nil
}

func (s Set) withDefaults(def Set) Set {
	if s.Letter.Top == "" {
		s.Letter.Top = def.Letter.Top
	}
	if s.Letter.Middle == "" {
		s.Letter.Middle = def.Letter.Middle
	}
	if s.Letter.Bottom == "" {
		s.Letter.Bottom = def.Letter.Bottom
	}
	if len(s.Title.Lines) == 0 {
		s.Title.Lines = def.Title.Lines
	}
	if s.Title.Revealed == "" {
		s.Title.Revealed = def.Title.Revealed
	}
	s.Back = s.Back.withDefaults(def.Back)
	s.Inner = s.Inner.withDefaults(def.Inner)
	return s
}

func (f Face) withDefaults(def Face) Face {
	if len(f.Primary.Lines) == 0 {
		f.Primary = def.Primary
	}
	if len(f.Alternate.Lines) == 0 {
		f.Alternate = def.Alternate
	}
	return f
}

// Validate checks every block has lines and every line a known kind.
func (s Set) Validate() error {
	if len(s.Title.Lines) == 0 {
		return fmt.Errorf("%w: empty title", ErrInvalid)
	}
	faces := map[string]Face{"back": s.Back, "inner": s.Inner}
	for name, f := range faces {
		for _, v := range []Variant{Primary, Alternate} {
			b := f.Block(v)
			if len(b.Lines) == 0 {
				return fmt.Errorf("%w: %s/%s has no lines", ErrInvalid, name, v)
			}
			for i, l := range b.Lines {
				switch l.Kind {
				case Heading, Paragraph:
					if l.Text == "" {
						return fmt.Errorf("%w: %s/%s line %d is empty", ErrInvalid, name, v, i)
					}
				case List:
					if len(l.Items) == 0 {
						return fmt.Errorf("%w: %s/%s line %d has no items", ErrInvalid, name, v, i)
					}
				default:
					return fmt.Errorf("%w: %s/%s line %d has kind %q", ErrInvalid, name, v, i, l.Kind)
				}
			}
		}
	}
	return nil
}
