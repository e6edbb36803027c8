package hostname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	endpoint, authenticated := Build("balius-m1.demeter.run", "tok123")
	assert.Equal(t, "balius-m1.demeter.run", endpoint)
	assert.Equal(t, "tok123.balius-m1.demeter.run", authenticated)
}
