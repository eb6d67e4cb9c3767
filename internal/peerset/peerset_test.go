package peerset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterDedupesByHostAuthority(t *testing.T) {
	s := New("")
	s.Register("http://localhost:5001")
	s.Register("localhost:5001")
	s.Register("localhost:5002")

	assert.ElementsMatch(t, []string{"localhost:5001", "localhost:5002"}, s.List())
}

func TestRegisterNeverAddsSelf(t *testing.T) {
	s := New("localhost:5000")
	s.Register("http://localhost:5000")
	s.Register("localhost:5001")

	assert.ElementsMatch(t, []string{"localhost:5001"}, s.List())
}

func TestReplaceAllAlsoFiltersSelf(t *testing.T) {
	s := New("localhost:5000")
	s.ReplaceAll([]string{"localhost:5000", "localhost:5001"})

	assert.ElementsMatch(t, []string{"localhost:5001"}, s.List())
}
