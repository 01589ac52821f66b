// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelfy/pkg/pointer"
)

func TestPointer(t *testing.T) {
	value := pointer.To(3.5)
	assert.Equal(t, 3.5, *value)
	assert.Equal(t, 3.5, pointer.Val(value))
	assert.Equal(t, 0.0, pointer.Val[float64](nil))

	assert.Equal(t, "owned", pointer.Fallback[string](nil, "owned"))
	assert.Equal(t, "wanted", pointer.Fallback(pointer.To("wanted"), "owned"))
}
