package symtree

import (
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML form of a declaration tree.
type Snapshot struct {
	Package      string `yaml:"package"`
	Declarations []Decl `yaml:"declarations"`
}

// Decl is one declaration in a Snapshot.
type Decl struct {
	Kind    string `yaml:"kind"`
	Name    string `yaml:"name,omitempty"`
	Members []Decl `yaml:"members,omitempty"`
}

// Decode reads a YAML snapshot and builds its tree.
func Decode(r io.Reader) (*Tree, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "decode tree snapshot")
	}
	return snap.Tree()
}

// Tree builds the snapshot into an immutable Tree.
func (s Snapshot) Tree() (*Tree, error) {
	b := NewBuilder(s.Package)
	var add func(parent NodeID, decls []Decl, path string) error
	add = func(parent NodeID, decls []Decl, path string) error {
		for i, d := range decls {
			kind, err := ParseKind(d.Kind)
			if err != nil {
				return errors.Wrapf(err, "declaration %s[%d]", path, i)
			}
			id := b.Add(parent, kind, d.Name)
			if err := add(id, d.Members, path+"/"+d.Name); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(NoNode, s.Declarations, ""); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
