package randomtest

import (
	"errors"
	"testing"

	"github.com/ayuyan/bot/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedReplaysValues(t *testing.T) {
	s := New(4, 0, 19)

	v, err := s.Sample(1, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = s.Sample(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = s.Sample(0, 20)
	require.NoError(t, err)
	assert.Equal(t, 19, v)

	assert.Equal(t, []Call{{1, 7}, {0, 2}, {0, 20}}, s.Calls())
	assert.Zero(t, s.Remaining())
}

func TestScriptedRejectsOutOfRangeValue(t *testing.T) {
	s := New(6)
	_, err := s.Sample(0, 6)
	assert.Error(t, err)
}

func TestScriptedExhausted(t *testing.T) {
	s := New()
	_, err := s.Sample(0, 6)
	assert.Error(t, err)
}

func TestScriptedEmptyRange(t *testing.T) {
	s := New(1)
	_, err := s.Sample(3, 3)
	assert.True(t, errors.Is(err, random.ErrInvalidRange))
	assert.Equal(t, 1, s.Remaining())
}
