package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils"
)

type item struct {
	id   int32
	name string
}

func TestFindByID(t *testing.T) {
	data := []item{{0, "a"}, {1, "b"}, {2, "c"}}
	id := func(i item) int32 { return i.id }

	all, failed := utils.FindByID(data, id, nil)
	assert.Equal(t, data, all)
	assert.Empty(t, failed)

	some, failed := utils.FindByID(data, id, []int32{2, 7, 0})
	assert.Equal(t, []item{{2, "c"}, {0, "a"}}, some)
	assert.Equal(t, []int32{7}, failed)
}
