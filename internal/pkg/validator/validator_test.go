package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type regionRequest struct {
	Name string `validate:"omitempty,region_name"`
	Zoom int    `validate:"min=0,max=24"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(regionRequest{Name: "Brazil", Zoom: 5}))
	assert.NoError(t, Validate(regionRequest{Zoom: 0}))
	assert.Error(t, Validate(regionRequest{Name: `Bra"zil`, Zoom: 5}))
	assert.Error(t, Validate(regionRequest{Name: "Brazil", Zoom: 30}))
}
