package model

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Genre is a catalog genre. ID is zero when the source only supplied a name.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList decodes either a list of names or a list of {id,name} objects and
// always holds the object form.
type GenreList []Genre

// UnmarshalJSON implements json.Unmarshaler.
func (g *GenreList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*g = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	out := make(GenreList, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return fmt.Errorf("genres: %w", err)
			}
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, Genre{Name: name})
			}
			continue
		}
		var obj Genre
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("genres: %w", err)
		}
		obj.Name = strings.TrimSpace(obj.Name)
		if obj.Name != "" || obj.ID != 0 {
			out = append(out, obj)
		}
	}
	*g = out
	return nil
}

// Names returns the genre names in order.
func (g GenreList) Names() []string {
	out := make([]string, 0, len(g))
	for _, genre := range g {
		if genre.Name != "" {
			out = append(out, genre.Name)
		}
	}
	return out
}

// GenreNames builds a GenreList from bare names.
func GenreNames(names ...string) GenreList {
	out := make(GenreList, len(names))
	for i, n := range names {
		out[i] = Genre{Name: n}
	}
	return out
}
