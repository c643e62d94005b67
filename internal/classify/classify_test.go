package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlab/weft/internal/block"
)

func decl(t *testing.T, name string, iface block.Interface, role block.Role, updates ...StateRef) BlockDecl {
	t.Helper()
	b, err := block.NewAtomic(name, iface, role)
	require.NoError(t, err)
	return BlockDecl{Block: b, Updates: updates}
}

func sampleSpec(t *testing.T) Spec {
	t.Helper()
	return Spec{
		Blocks: []BlockDecl{
			decl(t, "Demand", block.Interface{ForwardOut: block.NewPorts("Orders")}, block.RoleBoundary),
			decl(t, "Pricing", block.Interface{
				ForwardIn:  block.NewPorts("Orders"),
				ForwardOut: block.NewPorts("Price"),
			}, block.RolePolicy),
			decl(t, "Inventory", block.Interface{
				ForwardIn:  block.NewPorts("Price"),
				ForwardOut: block.NewPorts("Stock"),
			}, block.RoleMechanism,
				StateRef{Entity: "Warehouse", Variable: "stock"}),
			decl(t, "Admission", block.Interface{
				ForwardIn:  block.NewPorts("Stock"),
				ForwardOut: block.NewPorts("Approval"),
			}, block.RoleControl),
		},
		Entities: []EntityDecl{
			{Name: "Warehouse", Variables: []string{"stock", "capacity"}},
			{Name: "Market", Variables: []string{"price"}},
		},
	}
}

func TestClassifyPartition(t *testing.T) {
	c, err := Classify(sampleSpec(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Demand"}, c.Boundary)
	assert.Equal(t, []string{"Pricing"}, c.Policy)
	assert.Equal(t, []string{"Inventory"}, c.Mechanism)
	assert.Equal(t, []string{"Admission"}, c.Control)
}

func TestClassifyPartitionCompleteAndDisjoint(t *testing.T) {
	spec := sampleSpec(t)
	c, err := Classify(spec)
	require.NoError(t, err)

	// The union of the four role sets covers every block exactly once.
	seen := make(map[string]int)
	for _, set := range c.RoleSets() {
		for _, name := range set {
			seen[name]++
		}
	}
	assert.Len(t, seen, len(spec.Blocks))
	for name, count := range seen {
		assert.Equalf(t, 1, count, "block %q classified %d times", name, count)
	}
}

func TestClassifyStateVectorOrder(t *testing.T) {
	c, err := Classify(sampleSpec(t))
	require.NoError(t, err)
	assert.Equal(t, []StateRef{
		{Entity: "Warehouse", Variable: "stock"},
		{Entity: "Warehouse", Variable: "capacity"},
		{Entity: "Market", Variable: "price"},
	}, c.StateVector)
}

func TestClassifyUpdateMap(t *testing.T) {
	c, err := Classify(sampleSpec(t))
	require.NoError(t, err)
	assert.Equal(t, map[string][]StateRef{
		"Inventory": {{Entity: "Warehouse", Variable: "stock"}},
	}, c.Updates)
}

func TestClassifyPorts(t *testing.T) {
	c, err := Classify(sampleSpec(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Orders"}, c.InputPorts)
	// Policy then control, in declaration order.
	assert.Equal(t, []string{"Price", "Approval"}, c.DecisionPorts)
}

func TestClassifyInvalidRole(t *testing.T) {
	spec := Spec{Blocks: []BlockDecl{{
		Block: &block.Atomic{Name: "Rogue", Role: block.Role(42)},
	}}}
	_, err := Classify(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Rogue"`)
}

func TestClassifyEmptySpec(t *testing.T) {
	c, err := Classify(Spec{})
	require.NoError(t, err)
	assert.Empty(t, c.Boundary)
	assert.Empty(t, c.StateVector)
	assert.Empty(t, c.Updates)
}
