package tileset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertiesFromList(t *testing.T) {
	props := newPropertiesFromList([]*Property{
		{Name: "type", Value: "lava"},
		{Name: "damage", Type: PropInt, Value: "3"},
		{Name: "friction", Type: PropFloat, Value: "0.7"},
		{Name: "solid", Type: PropBool, Value: "true"},
		{Name: "sound", Type: PropFile, Value: "hiss.wav"},
		{Name: "glow", Type: PropColor, Value: "#ffff0000"},
		{Name: "notes", Text: "\n  line one\n  "},
		{Name: "empty"},
		{Name: "broken", Type: PropInt, Value: "three"},
	})

	s, ok := props.String("type")
	assert.True(t, ok)
	assert.Equal(t, "lava", s)

	i, ok := props.Int("damage")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	f, ok := props.Float("friction")
	assert.True(t, ok)
	assert.Equal(t, 0.7, f)

	b, ok := props.Bool("solid")
	assert.True(t, ok)
	assert.True(t, b)

	file, ok := props.File("sound")
	assert.True(t, ok)
	assert.Equal(t, "hiss.wav", file)

	c, ok := props.Color("glow")
	assert.True(t, ok)
	assert.Equal(t, "#ffff0000", c)

	_, ok = props.Color("sound")
	assert.False(t, ok)

	s, ok = props.String("notes")
	assert.True(t, ok)
	assert.Equal(t, "line one", s)

	_, ok = props.String("empty")
	assert.False(t, ok)
	_, ok = props.Int("broken")
	assert.False(t, ok)

	assert.Equal(t, []string{"damage", "friction", "glow", "notes", "solid", "sound", "type"}, props.Keys())
}

func TestPropertiesToList(t *testing.T) {
	props := NewProperties()
	props.SetString("type", "coin")
	props.SetInt("value", 5)
	props.SetBool("spin", false)
	props.SetFloat("scale", 0.5)
	props.SetFile("sound", "coin.wav")

	assert.Equal(t, []*Property{
		{Name: "scale", Type: PropFloat, Value: "0.5"},
		{Name: "sound", Type: PropFile, Value: "coin.wav"},
		{Name: "spin", Type: PropBool, Value: "false"},
		{Name: "type", Value: "coin"},
		{Name: "value", Type: PropInt, Value: "5"},
	}, props.toList())
}

func TestPropertiesSetReplacesType(t *testing.T) {
	props := NewProperties()
	props.SetInt("x", 1)
	props.SetString("x", "one")

	_, ok := props.Int("x")
	assert.False(t, ok)
	assert.Equal(t, 1, props.Len())

	props.SetColor("x", "#ff000000")
	_, ok = props.Color("x")
	assert.True(t, ok)

	props.SetBool("x", true)
	_, ok = props.Color("x")
	assert.False(t, ok)
	_, ok = props.String("x")
	assert.False(t, ok)

	props.Delete("x")
	assert.Equal(t, 0, props.Len())
}

func TestPropertiesMerge(t *testing.T) {
	a := NewProperties()
	a.SetString("type", "lava")
	a.SetInt("damage", 1)

	b := NewProperties()
	b.SetInt("damage", 5)
	b.SetFile("sound", "hiss.wav")

	a.Merge(b).Merge(nil)

	d, _ := a.Int("damage")
	assert.Equal(t, 5, d)
	s, _ := a.String("type")
	assert.Equal(t, "lava", s)
	f, ok := a.File("sound")
	assert.True(t, ok)
	assert.Equal(t, "hiss.wav", f)
}

func TestParseProperties(t *testing.T) {
	props := ParseProperties(map[string]string{
		"type":   "ladder",
		"climb":  "true",
		"solid":  "false",
		"rungs":  "12",
		"weight": "2.5",
	})

	s, _ := props.String("type")
	assert.Equal(t, "ladder", s)
	b, ok := props.Bool("climb")
	assert.True(t, ok)
	assert.True(t, b)
	b, ok = props.Bool("solid")
	assert.True(t, ok)
	assert.False(t, b)
	i, _ := props.Int("rungs")
	assert.Equal(t, 12, i)
	f, _ := props.Float("weight")
	assert.Equal(t, 2.5, f)
}
