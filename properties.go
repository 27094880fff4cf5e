package tileset

import (
	"sort"
	"strconv"
)

const (
	// Property types
	// see doc.mapeditor.org/en/stable/reference/tmx-map-format/#properties
	PropString = "string"
	PropInt    = "int"
	PropFloat  = "float"
	PropBool   = "bool"
	PropColor  = "color"
	PropFile   = "file"

	// TypeProperty is the property name carrying a tiles gameplay tag
	TypeProperty = "type"
)

// Properties is a more straight forward []*Property (used by the raw XML)
// that handles types a bit more gracefully.
//
// Color & file properties are kept as strings, but remember their declared
// type so they're written back out the same way.
type Properties struct {
	ints    map[string]int
	floats  map[string]float64
	strings map[string]string
	bools   map[string]bool
	kinds   map[string]string // string-like type (color, file) by key
}

// NewProperties returns an empty properties
func NewProperties() *Properties {
	return &Properties{
		ints:    map[string]int{},
		floats:  map[string]float64{},
		strings: map[string]string{},
		bools:   map[string]bool{},
		kinds:   map[string]string{},
	}
}

// Merge properties `o` into this properties
func (p *Properties) Merge(o *Properties) *Properties {
	if o == nil {
		return p
	}
	for k, v := range o.ints {
		p.SetInt(k, v)
	}
	for k, v := range o.floats {
		p.SetFloat(k, v)
	}
	for k, v := range o.strings {
		p.setStringKind(k, v, o.kinds[k])
	}
	for k, v := range o.bools {
		p.SetBool(k, v)
	}
	return p
}

// Len returns the number of set properties
func (p *Properties) Len() int {
	return len(p.ints) + len(p.floats) + len(p.strings) + len(p.bools)
}

// Keys returns all property names, sorted
func (p *Properties) Keys() []string {
	keys := make([]string, 0, p.Len())
	for k := range p.ints {
		keys = append(keys, k)
	}
	for k := range p.floats {
		keys = append(keys, k)
	}
	for k := range p.strings {
		keys = append(keys, k)
	}
	for k := range p.bools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toList mutates our nicer properties wrapper back into []*Property understood
// by the XML encoder. Output is sorted by name.
func (p *Properties) toList() []*Property {
	ps := []*Property{}
	for k, v := range p.ints {
		ps = append(ps, &Property{Name: k, Value: strconv.Itoa(v), Type: PropInt})
	}
	for k, v := range p.floats {
		ps = append(ps, &Property{Name: k, Value: strconv.FormatFloat(v, 'f', -1, 64), Type: PropFloat})
	}
	for k, v := range p.bools {
		ps = append(ps, &Property{Name: k, Value: strconv.FormatBool(v), Type: PropBool})
	}
	for k, v := range p.strings {
		// string is the default type, Tiled omits it
		ps = append(ps, &Property{Name: k, Value: v, Type: p.kinds[k]})
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Name < ps[j].Name })
	return ps
}

// newPropertiesFromList turns the XML []Property into our nicer properties
// wrapper struct. Values that fail to parse as their declared type are
// dropped here; Validate reports them.
func newPropertiesFromList(in []*Property) *Properties {
	ps := NewProperties()

	for _, i := range in {
		value, ok := i.value()
		if !ok {
			logger.Debug().Str("property", i.Name).Msg("skipping property with no value")
			continue
		}

		switch i.Type {
		case PropInt:
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				continue
			}
			ps.SetInt(i.Name, int(v))
		case PropFloat:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			ps.SetFloat(i.Name, v)
		case PropBool:
			ps.SetBool(i.Name, value == "true")
		case PropColor, PropFile:
			ps.setStringKind(i.Name, value, i.Type)
		default:
			// object & class properties are not used by tilesets
			ps.SetString(i.Name, value)
		}
	}

	return ps
}

// ParseProperties reads raw key=value strings (eg. from the command line)
// guessing their types: bool, int, float then string.
func ParseProperties(in map[string]string) *Properties {
	p := NewProperties()

	for k, v := range in {
		if v == "true" {
			p.SetBool(k, true)
			continue
		} else if v == "false" {
			p.SetBool(k, false)
			continue
		}

		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.SetInt(k, int(i))
		} else if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.SetFloat(k, f)
		} else {
			p.SetString(k, v)
		}
	}

	return p
}

// Delete removes `key` whatever its type
func (p *Properties) Delete(key string) {
	delete(p.ints, key)
	delete(p.floats, key)
	delete(p.strings, key)
	delete(p.bools, key)
	delete(p.kinds, key)
}

func (p *Properties) String(key string) (string, bool) {
	v, ok := p.strings[key]
	return v, ok
}

func (p *Properties) SetString(key, value string) {
	p.setStringKind(key, value, "")
}

func (p *Properties) setStringKind(key, value, kind string) {
	p.Delete(key)
	p.strings[key] = value
	if kind != "" && kind != PropString {
		p.kinds[key] = kind
	}
}

func (p *Properties) Int(key string) (int, bool) {
	v, ok := p.ints[key]
	return v, ok
}

func (p *Properties) SetInt(key string, value int) {
	p.Delete(key)
	p.ints[key] = value
}

func (p *Properties) Float(key string) (float64, bool) {
	v, ok := p.floats[key]
	return v, ok
}

func (p *Properties) SetFloat(key string, value float64) {
	p.Delete(key)
	p.floats[key] = value
}

func (p *Properties) Bool(key string) (bool, bool) {
	v, ok := p.bools[key]
	return v, ok
}

func (p *Properties) SetBool(key string, value bool) {
	p.Delete(key)
	p.bools[key] = value
}

// File returns a file property, ok is false if `key` is not a file
func (p *Properties) File(key string) (string, bool) {
	if p.kinds[key] != PropFile {
		return "", false
	}
	return p.strings[key], true
}

// SetFile sets a file (path) property
func (p *Properties) SetFile(key, path string) {
	p.setStringKind(key, path, PropFile)
}

// Color returns a color property (#AARRGGBB), ok is false if `key` is not a color
func (p *Properties) Color(key string) (string, bool) {
	if p.kinds[key] != PropColor {
		return "", false
	}
	return p.strings[key], true
}

// SetColor sets a color property
func (p *Properties) SetColor(key, color string) {
	p.setStringKind(key, color, PropColor)
}
