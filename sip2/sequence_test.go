package sip2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_Next(t *testing.T) {
	seq := NewSequence()

	expected := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0}
	for i, want := range expected {
		assert.Equal(t, want, seq.Next(), "call %d", i+1)
	}
}

func TestSequence_WrapsRepeatedly(t *testing.T) {
	seq := NewSequence()

	for i := 0; i < 35; i++ {
		assert.Equal(t, i%10, seq.Next())
	}
}
