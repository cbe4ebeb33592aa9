package swodlrcli

import (
	"embed"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

//go:embed graphql-documents/*.graphql
var documentFS embed.FS

// Document is a named GraphQL query bundled with the binary.
type Document struct {
	Name   string
	Source string
	AST    *ast.QueryDocument
}

// LoadDocument locates the bundled GraphQL document for a command and parses
// it. The document is named after the command with dashes replaced by
// underscores, e.g. get-users-products -> graphql-documents/get_users_products.graphql.
func LoadDocument(command string) (*Document, error) {
	name := strings.ReplaceAll(command, "-", "_")
	path := "graphql-documents/" + name + ".graphql"

	raw, err := documentFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphql document not found: %s", path)
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: path, Input: string(raw)})
	if err != nil {
		return nil, fmt.Errorf("invalid graphql document %s: %w", path, err)
	}

	return &Document{
		Name:   name,
		Source: string(raw),
		AST:    doc,
	}, nil
}
