package golang

import (
	"go/ast"
	"go/token"

	"github.com/calumari/declgen/internal/symtree"
)

// Tree builds the declaration tree of the package. Named types become
// classes holding their fields and methods; package funcs, vars and consts
// are top-level functions and properties. Declarations inside function
// bodies hang off their function, and function literals are anonymous
// locals.
func (p *Package) Tree() *symtree.Tree {
	b := symtree.NewBuilder(p.pkg.Name)
	types := map[string]symtree.NodeID{}
	var methods []*ast.FuncDecl

	for _, f := range p.pkg.Syntax {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				addGenDecl(b, symtree.NoNode, d, types)
			case *ast.FuncDecl:
				if d.Recv != nil {
					methods = append(methods, d)
					continue
				}
				fn := b.Add(symtree.NoNode, symtree.KindFunction, d.Name.Name)
				addLocals(b, fn, d.Body)
			}
		}
	}
	// receivers may be declared after their methods
	for _, m := range methods {
		parent, ok := types[receiverName(m.Recv)]
		if !ok {
			parent = symtree.NoNode
		}
		fn := b.Add(parent, symtree.KindFunction, m.Name.Name)
		addLocals(b, fn, m.Body)
	}
	return b.Build()
}

func addGenDecl(b *symtree.Builder, parent symtree.NodeID, d *ast.GenDecl, types map[string]symtree.NodeID) {
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			id := b.Add(parent, symtree.KindClass, s.Name.Name)
			if types != nil {
				types[s.Name.Name] = id
			}
			if st, ok := s.Type.(*ast.StructType); ok {
				addFields(b, id, st)
			}
		case *ast.ValueSpec:
			for _, n := range s.Names {
				if n.Name == "_" {
					b.Add(parent, symtree.KindProperty, "")
					continue
				}
				b.Add(parent, symtree.KindProperty, n.Name)
			}
		}
	}
}

func addFields(b *symtree.Builder, parent symtree.NodeID, st *ast.StructType) {
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			b.Add(parent, symtree.KindProperty, embeddedName(f.Type))
			continue
		}
		for _, n := range f.Names {
			b.Add(parent, symtree.KindProperty, n.Name)
		}
	}
}

// addLocals records the declarations made directly in a function body.
// Nested function literals are anonymous and their bodies are not entered.
func addLocals(b *symtree.Builder, fn symtree.NodeID, body *ast.BlockStmt) {
	if body == nil {
		return
	}
	ast.Inspect(body, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.FuncLit:
			b.Add(fn, symtree.KindLocal, "")
			return false
		case *ast.DeclStmt:
			if gd, ok := s.Decl.(*ast.GenDecl); ok {
				addGenDecl(b, fn, gd, nil)
			}
			return false
		case *ast.AssignStmt:
			if s.Tok != token.DEFINE {
				return true
			}
			for _, lhs := range s.Lhs {
				if id, ok := lhs.(*ast.Ident); ok && id.Name != "_" {
					b.Add(fn, symtree.KindProperty, id.Name)
				}
			}
		}
		return true
	})
}

func receiverName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}
	return embeddedName(recv.List[0].Type)
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	}
	return ""
}
