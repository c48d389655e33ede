package accessibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuralHashIgnoresNameValueChildren(t *testing.T) {
	b := newTestBuilder()

	first := b.Build(elem("AXButton").at(10, 20, 30, 40).enabled().titled("Save"))
	second := b.Build(elem("AXButton").at(10, 20, 30, 40).enabled().titled("Cancel").kids(
		elem("AXStaticText").at(11, 21, 5, 5),
	))

	require.NotEmpty(t, first.Identifier)
	assert.Equal(t, first.Identifier, second.Identifier,
		"two structurally identical elements alias to the same identifier")
}

func TestStructuralHashSensitivity(t *testing.T) {
	b := newTestBuilder()
	base := b.Build(elem("AXButton").at(10, 20, 30, 40).enabled())

	moved := b.Build(elem("AXButton").at(11, 20, 30, 40).enabled())
	resized := b.Build(elem("AXButton").at(10, 20, 31, 40).enabled())
	disabled := b.Build(elem("AXButton").at(10, 20, 30, 40))
	otherRole := b.Build(elem("AXCheckBox").at(10, 20, 30, 40).enabled())

	assert.NotEqual(t, base.Identifier, moved.Identifier)
	assert.NotEqual(t, base.Identifier, resized.Identifier)
	assert.NotEqual(t, base.Identifier, disabled.Identifier)
	assert.NotEqual(t, base.Identifier, otherRole.Identifier)
}

func TestStructuralHashEmptyWithoutGeometry(t *testing.T) {
	b := newTestBuilder()
	node := b.Build(&fakeNode{attrs: map[string]Value{AttrRole: StringValue("AXButton")}})
	assert.Empty(t, node.Identifier)
}

func TestContentHashEmptyForLeaves(t *testing.T) {
	b := newTestBuilder()
	leaf := b.Build(elem("AXButton").at(0, 0, 10, 10))
	assert.Empty(t, leaf.ContentIdentifier)
}

func TestContentHashOrderSensitiveForDistinctChildren(t *testing.T) {
	b := newTestBuilder()

	childA := func() *fakeNode { return elem("AXButton").at(0, 0, 10, 10) }
	childB := func() *fakeNode { return elem("AXButton").at(20, 0, 10, 10) }

	forward := b.Build(elem("AXGroup").at(0, 0, 100, 100).kids(childA(), childB()))
	reversed := b.Build(elem("AXGroup").at(0, 0, 100, 100).kids(childB(), childA()))

	assert.NotEqual(t, forward.ContentIdentifier, reversed.ContentIdentifier,
		"the ordered structural pass must distinguish child order")
}

func TestContentHashSortedContentInvariance(t *testing.T) {
	b := newTestBuilder()

	// Two children that are structurally identical but carry different
	// subtree content. Swapping them changes neither the ordered structural
	// concatenation (equal identifiers) nor the sorted content sequence, so
	// the content identifier is stable.
	left := func() *fakeNode {
		return elem("AXGroup").at(0, 0, 10, 10).kids(elem("AXStaticText").at(1, 1, 2, 2))
	}
	right := func() *fakeNode {
		return elem("AXGroup").at(0, 0, 10, 10).kids(elem("AXStaticText").at(5, 5, 2, 2))
	}

	forward := b.Build(elem("AXGroup").at(0, 0, 100, 100).kids(left(), right()))
	swapped := b.Build(elem("AXGroup").at(0, 0, 100, 100).kids(right(), left()))

	assert.Equal(t, forward.ContentIdentifier, swapped.ContentIdentifier)
}

func TestContentHashChangesWithSubtree(t *testing.T) {
	b := newTestBuilder()

	tree := func(w float64) *UINode {
		return b.Build(elem(RoleWindow).at(0, 0, 500, 500).kids(
			elem("AXGroup").at(10, 10, 100, 100).kids(
				elem("AXButton").at(20, 20, w, 10),
			),
			elem("AXGroup").at(200, 10, 100, 100),
		))
	}

	base := tree(40)
	changed := tree(41)

	assert.NotEqual(t, base.ContentIdentifier, changed.ContentIdentifier,
		"a changed subtree must change the root content identifier")
	assert.Equal(t, base.Children[1].Identifier, changed.Children[1].Identifier,
		"unrelated siblings keep their identifiers")
	assert.Equal(t, base.Children[1].ContentIdentifier, changed.Children[1].ContentIdentifier)
}

func TestHashString(t *testing.T) {
	assert.Empty(t, hashString(""))
	assert.Len(t, hashString("x"), 32)
	assert.Equal(t, hashString("abc"), hashString("abc"))
}
