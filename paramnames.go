package automock

import (
	"go/token"
	"reflect"
	"runtime"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// sourceIndex recovers constructor parameter names, which reflection does not expose, by
// parsing the file the constructor was compiled from. Parsed files are kept for the lifetime
// of the index.
type sourceIndex struct {
	files map[string]*parsedFile
}

type parsedFile struct {
	dec  *decorator.Decorator
	file *dst.File
	err  error
}

func newSourceIndex() *sourceIndex {
	return &sourceIndex{files: map[string]*parsedFile{}}
}

func (s *sourceIndex) parse(filename string) *parsedFile {
	if pf, ok := s.files[filename]; ok {
		return pf
	}
	dec := decorator.NewDecorator(token.NewFileSet())
	file, err := dec.ParseFile(filename, nil, 0)
	pf := &parsedFile{dec: dec, file: file, err: err}
	s.files[filename] = pf
	return pf
}

// paramNames finds the declaration of fn in its source file. The declaration is matched by the
// line the function starts on, and for declared functions by name as a fallback. If the source
// can't be read or the match is ambiguous, ok is false.
func (s *sourceIndex) paramNames(fn reflect.Value) (names []string, ok bool) {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return nil, false
	}
	filename, line := rf.FileLine(rf.Entry())
	pf := s.parse(filename)
	if pf.err != nil {
		return nil, false
	}

	numIn := fn.Type().NumIn()
	base := baseFuncName(rf.Name())

	var byLine, byName [][]string
	dst.Inspect(pf.file, func(n dst.Node) bool {
		var fnType *dst.FuncType
		declName := ""
		switch node := n.(type) {
		case *dst.FuncDecl:
			fnType = node.Type
			declName = node.Name.Name
		case *dst.FuncLit:
			fnType = node.Type
		default:
			return true
		}

		candidate := fieldNames(fnType.Params)
		if len(candidate) != numIn {
			return true
		}
		if astNode, found := pf.dec.Ast.Nodes[n]; found && pf.dec.Fset.Position(astNode.Pos()).Line == line {
			byLine = append(byLine, candidate)
		} else if declName != "" && declName == base {
			byName = append(byName, candidate)
		}
		return true
	})

	switch {
	case len(byLine) == 1:
		return byLine[0], true
	case len(byLine) == 0 && len(byName) == 1:
		return byName[0], true
	default:
		return nil, false
	}
}

// fieldNames flattens a parameter list. Unnamed parameters are returned as empty strings.
func fieldNames(fields *dst.FieldList) []string {
	var names []string
	if fields == nil {
		return names
	}
	for _, field := range fields.List {
		if len(field.Names) == 0 {
			names = append(names, "")
			continue
		}
		for _, ident := range field.Names {
			names = append(names, ident.Name)
		}
	}
	return names
}
