// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/libris/pkg/pointer"
)

func TestToAndVal(t *testing.T) {
	year := pointer.To(1937)
	assert.Equal(t, 1937, *year)
	assert.Equal(t, 1937, pointer.Val(year))

	var missing *string
	assert.Equal(t, "", pointer.Val(missing))
}
