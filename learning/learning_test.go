package learning

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	mods := Modules()
	require.Len(t, mods, 3)
	for _, m := range mods {
		assert.NotEmpty(t, m.Tips)
		assert.Contains(t, m.Quiz.Options, m.Quiz.Correct, m.ID)
	}
}

func TestCatalogueIsNotShared(t *testing.T) {
	mods := Modules()
	mods[0].Quiz.Options[1] = "X"
	mods[0].Tips[0] = "X"

	m, err := Module(mods[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Adding compost", m.Quiz.Options[1])
	assert.NotEqual(t, "X", Modules()[0].Tips[0])

	m.Quiz.Options[0] = "X"
	res, err := Check(m.ID, "Deep plowing")
	require.NoError(t, err)
	assert.False(t, res.Correct)
}

func TestModuleJSONHidesAnswer(t *testing.T) {
	m, err := Module("crop-rotation")
	require.NoError(t, err)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"Correct"`)
	assert.NotContains(t, string(b), `"correct"`)
}

func TestCardLifecycle(t *testing.T) {
	m, _ := Module("smart-irrigation")
	c := NewCard(m)

	assert.False(t, c.Open)
	assert.Equal(t, "Explore", c.ToggleLabel())
	c.Toggle()
	assert.True(t, c.Open)
	assert.Equal(t, "Hide", c.ToggleLabel())

	c.Select("Noon")
	assert.Equal(t, "", c.Feedback())
	c.Submit()
	assert.False(t, c.Correct())
	assert.Equal(t, "Try again. Answer: Early morning", c.Feedback())

	c.Select("Early morning")
	assert.False(t, c.Submitted)
	assert.False(t, c.Correct())
	c.Submit()
	assert.True(t, c.Correct())
	assert.Equal(t, "Correct!", c.Feedback())

	c.Toggle()
	assert.False(t, c.Open)
	assert.True(t, c.Correct())
}

func TestCheck(t *testing.T) {
	res, err := Check("soil-health-basics", "Adding compost")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Empty(t, res.Expected)
	assert.Equal(t, "Correct!", res.Feedback)

	res, err = Check("soil-health-basics", "Deep plowing")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "Adding compost", res.Expected)

	_, err = Check("soil-health-basics", "adding compost")
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = Check("beekeeping", "Adding compost")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}
