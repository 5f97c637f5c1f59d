package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	result := Substitute("Hello {name}", map[string]string{"name": "Ana"})
	assert.Equal(t, "Hello Ana", result)
}

func TestSubstituteMultipleTokens(t *testing.T) {
	values := map[string]string{"customer_name": "Dana", "agent_name": "Omer"}
	result := Substitute("Hi {customer_name}, this is {agent_name}. Bye {customer_name}!", values)
	assert.Equal(t, "Hi Dana, this is Omer. Bye Dana!", result)
}

func TestSubstituteUnmappedTokenStaysVerbatim(t *testing.T) {
	result := Substitute("Hello {name}, ref {ticket_id}", map[string]string{"name": "Ana"})
	assert.Equal(t, "Hello Ana, ref {ticket_id}", result)
}

func TestSubstituteNilValues(t *testing.T) {
	result := Substitute("Hello {name}", nil)
	assert.Equal(t, "Hello {name}", result)
}

func TestSubstituteIgnoresNonTokenBraces(t *testing.T) {
	result := Substitute("code {a b} stays, {x} goes", map[string]string{"x": "y"})
	assert.Equal(t, "code {a b} stays, y goes", result)
}
