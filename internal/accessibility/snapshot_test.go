package accessibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	apps    []Application
	root    *fakeNode
	appsErr error
}

func (p *fakePlatform) Accessor() Accessor { return fakeAccessor{} }

func (p *fakePlatform) Applications() ([]Application, error) {
	return p.apps, p.appsErr
}

func (p *fakePlatform) SystemRoot() (Node, error) { return p.root, nil }

func TestCaptureBuildsAllApplicationWindows(t *testing.T) {
	editorWindow := elem(RoleWindow).at(0, 0, 800, 600).titled("Editor").kids(
		elem("AXButton").at(10, 10, 40, 20),
	)
	browserWindow := elem(RoleWindow).at(100, 100, 1024, 768).titled("Browser")

	p := &fakePlatform{apps: []Application{
		{Name: "Editor", PID: 100, Frontmost: false, Windows: []Node{editorWindow}},
		{Name: "Browser", PID: 200, Frontmost: true, Windows: []Node{browserWindow}},
		{Name: "Daemon", PID: 300},
	}}

	snap, err := Capture(p, nil)
	require.NoError(t, err)

	assert.Equal(t, "Browser", snap.FrontmostApplication)
	require.Len(t, snap.Windows, 2, "applications without windows are not listed")
	assert.Equal(t, "Editor", snap.Windows[0].AppName)
	assert.Equal(t, int32(100), snap.Windows[0].PID)
	assert.True(t, snap.Windows[0].HasWindows)
	require.Len(t, snap.Windows[0].Windows, 1)
	assert.Len(t, snap.Windows[0].Windows[0].Children, 1)
}

func TestCaptureFallsBackToFirstApplication(t *testing.T) {
	window := elem(RoleWindow).at(0, 0, 10, 10)
	p := &fakePlatform{apps: []Application{
		{Name: "Only", PID: 1, Windows: []Node{window}},
	}}

	snap, err := Capture(p, nil)
	require.NoError(t, err)
	assert.Equal(t, "Only", snap.FrontmostApplication)
}

func TestCaptureNoApplications(t *testing.T) {
	_, err := Capture(&fakePlatform{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no visible windows")
}

func TestCaptureNoAccessibleWindows(t *testing.T) {
	p := &fakePlatform{apps: []Application{
		{Name: "Background", PID: 42},
	}}

	_, err := Capture(p, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accessible windows")
	assert.Contains(t, err.Error(), "Background")
}

func TestCaptureDepthOptionPropagates(t *testing.T) {
	window := elem(RoleWindow).at(0, 0, 100, 100).kids(
		elem("AXGroup").at(1, 1, 10, 10).kids(
			elem("AXButton").at(2, 2, 5, 5),
		),
	)
	p := &fakePlatform{apps: []Application{
		{Name: "App", PID: 1, Windows: []Node{window}},
	}}

	snap, err := Capture(p, nil, WithMaxDepth(1))
	require.NoError(t, err)
	top := snap.Windows[0].Windows[0]
	require.Len(t, top.Children, 1)
	assert.Empty(t, top.Children[0].Children)
}

func TestFindByRoleAndTitle(t *testing.T) {
	target := elem("AXButton").at(10, 10, 40, 20).titled("Save")
	tree := elem(RoleWindow).at(0, 0, 800, 600).kids(
		elem("AXGroup").at(0, 0, 100, 100).kids(
			elem("AXButton").at(5, 5, 40, 20).titled("Cancel"),
			target,
		),
	)

	b := newTestBuilder()

	m, ok := b.Find(tree, Criteria{Role: "AXButton", Title: "Save"})
	require.True(t, ok)
	assert.Equal(t, "Save", m.Title)
	require.NotNil(t, m.Position)
	assert.Equal(t, Point{X: 10, Y: 10}, *m.Position)

	_, ok = b.Find(tree, Criteria{Role: "AXMenu"})
	assert.False(t, ok)
}

func TestFindDepthFirstReturnsFirstMatch(t *testing.T) {
	tree := elem(RoleWindow).at(0, 0, 800, 600).kids(
		elem("AXGroup").at(0, 0, 100, 100).kids(
			elem("AXButton").at(1, 1, 10, 10).titled("first"),
		),
		elem("AXButton").at(2, 2, 10, 10).titled("second"),
	)

	m, ok := newTestBuilder().Find(tree, Criteria{Role: "AXButton"})
	require.True(t, ok)
	assert.Equal(t, "first", m.Title)
}

func TestFindByValue(t *testing.T) {
	tree := elem(RoleWindow).at(0, 0, 100, 100).kids(
		elem("AXTextField").at(1, 1, 50, 20).valued(StringValue("hello")),
	)

	m, ok := newTestBuilder().Find(tree, Criteria{Value: "hello"})
	require.True(t, ok)
	assert.Equal(t, "hello", m.Value)
}
