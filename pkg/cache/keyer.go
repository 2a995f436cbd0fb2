package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys.
type Keyer interface {
	// LayoutKey addresses the flattened layout of a script.
	LayoutKey(scriptHash string, opts LayoutKeyOpts) string

	// ArtifactKey addresses one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the inputs besides the script that affect a layout.
type LayoutKeyOpts struct {
	Border float64 `json:"border"`
}

// ArtifactKeyOpts holds the render options that affect an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	Labels     bool    `json:"labels,omitempty"`
	Background string  `json:"background,omitempty"`
	Inset      bool    `json:"inset,omitempty"`
	Engine     string  `json:"engine,omitempty"`
	Name       string  `json:"name,omitempty"`

	VisibleOnly bool `json:"visible_only,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:" followed by a hash of its inputs.
func (DefaultKeyer) LayoutKey(scriptHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", scriptHash, opts)
}

// ArtifactKey returns "artifact:" followed by a hash of its inputs.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
