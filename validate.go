package tileset

import (
	"fmt"
	"strconv"
	"strings"
)

// Problem is a single validation failure
type Problem struct {
	Field   string      // eg. "tile[4].image.source"
	Value   interface{} // the offending value
	Message string
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

// ValidationError bundles all problems found in a tileset.
type ValidationError struct {
	Problems []Problem
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return strings.Join(msgs, "; ")
}

// validator accumulates problems
type validator struct {
	problems []Problem
}

func (v *validator) add(field string, value interface{}, format string, args ...interface{}) {
	v.problems = append(v.problems, Problem{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

// Validate checks the tileset is internally consistent.
// All problems are returned in a *ValidationError (or nil if there are none).
func Validate(ts *Tileset) error {
	v := &validator{}

	if ts.Name == "" {
		v.add("name", ts.Name, "must not be empty")
	}
	if ts.TileWidth <= 0 {
		v.add("tilewidth", ts.TileWidth, "must be > 0")
	}
	if ts.TileHeight <= 0 {
		v.add("tileheight", ts.TileHeight, "must be > 0")
	}
	if ts.Columns < 0 {
		v.add("columns", ts.Columns, "must be >= 0")
	}

	if ts.IsCollection() {
		if ts.TileCount != len(ts.TileList) {
			v.add("tilecount", ts.TileCount, "declares %d tiles but %d are defined", ts.TileCount, len(ts.TileList))
		}
	} else {
		validateImage(v, "image", ts.Image)
	}

	validateProperties(v, "properties", ts.Properties)

	seen := map[uint]bool{}
	for i, t := range ts.TileList {
		field := fmt.Sprintf("tile[%d]", i)

		if seen[t.ID] {
			v.add(field+".id", t.ID, "duplicate id %d", t.ID)
		}
		seen[t.ID] = true

		if ts.IsCollection() {
			if t.Image == nil {
				v.add(field+".image", nil, "tile %d has no image", t.ID)
			} else {
				validateImage(v, field+".image", t.Image)
			}
		} else if int(t.ID) >= ts.TileCount {
			v.add(field+".id", t.ID, "id %d is outside the tileset (tilecount %d)", t.ID, ts.TileCount)
		}

		validateProperties(v, field+".properties", t.Properties)
		validateType(v, field, t)
	}

	return v.err()
}

func validateImage(v *validator, field string, img *Image) {
	if img.Source == "" {
		v.add(field+".source", img.Source, "must not be empty")
	}
	if img.Width <= 0 {
		v.add(field+".width", img.Width, "must be > 0")
	}
	if img.Height <= 0 {
		v.add(field+".height", img.Height, "must be > 0")
	}
}

func validateProperties(v *validator, field string, props []*Property) {
	names := map[string]bool{}
	for _, p := range props {
		pfield := fmt.Sprintf("%s.%s", field, p.Name)
		if p.Name == "" {
			v.add(field, p.Name, "property name must not be empty")
		}
		if names[p.Name] {
			v.add(pfield, p.Name, "duplicate property")
		}
		names[p.Name] = true

		value, ok := p.value()
		if !ok {
			continue
		}

		var err error
		switch p.Type {
		case "", PropString, PropFile, PropColor:
		case PropInt:
			_, err = strconv.ParseInt(value, 10, 64)
		case PropFloat:
			_, err = strconv.ParseFloat(value, 64)
		case PropBool:
			if value != "true" && value != "false" {
				err = fmt.Errorf("expected true or false")
			}
		default:
			v.add(pfield, p.Type, "unsupported property type %q", p.Type)
		}
		if err != nil {
			v.add(pfield, value, "invalid %s value %q", p.Type, value)
		}
	}
}

func validateType(v *validator, field string, t *Tile) {
	for _, p := range t.Properties {
		if p.Name != TypeProperty {
			continue
		}
		if p.Type != "" && p.Type != PropString {
			v.add(field+".type", p.Type, "type property must be a string, got %s", p.Type)
		}
		if value, _ := p.value(); value == "" {
			v.add(field+".type", "", "type property must not be empty")
		}
	}
}

// ValidateLayers checks every tile type in the tileset maps to a layer.
func ValidateLayers(ts *Tileset, lm *LayerMap) error {
	v := &validator{}
	for i, t := range ts.TileList {
		typ := t.Type()
		if typ == "" {
			continue
		}
		if _, ok := lm.Layer(typ); !ok {
			v.add(fmt.Sprintf("tile[%d].type", i), typ, "type %q is not mapped to a layer", typ)
		}
	}
	return v.err()
}
