package pointer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

func walkFixture(t *testing.T) *tree.Node {
	t.Helper()
	root := tree.NewObject()
	require.NoError(t, root.Add("b", tree.NewArray(tree.NewInt(1), tree.NewObject())))
	require.NoError(t, root.Add("a/x", tree.NewString("s")))
	return root
}

func TestWalkOrder(t *testing.T) {
	var got []string
	err := Walk(walkFixture(t), func(p Pointer, _ *tree.Node) error {
		got = append(got, p.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "/b", "/b/0", "/b/1", "/a~1x"}, got)
}

func TestWalkSkipChildren(t *testing.T) {
	var got []string
	err := Walk(walkFixture(t), func(p Pointer, n *tree.Node) error {
		got = append(got, p.String())
		if n.Kind() == tree.Array {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "/b", "/a~1x"}, got)
}

func TestWalkStopsOnError(t *testing.T) {
	stop := errors.New("stop")
	count := 0
	err := Walk(walkFixture(t), func(p Pointer, _ *tree.Node) error {
		count++
		if p.String() == "/b/0" {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, count)
}

func TestWalkNilRoot(t *testing.T) {
	called := false
	require.NoError(t, Walk(nil, func(Pointer, *tree.Node) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}
