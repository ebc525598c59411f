// Package cbptest provides shared CBOR value fixtures for this
// codebase's tests, loaded from YAML.
package cbptest

import (
	"github.com/goccy/go-yaml"

	"github.com/cborpath/cborpath/cborval"
)

// Book is one entry of the bookstore fixture's "book" array.
type Book struct {
	Category string  `yaml:"category"`
	Author   string  `yaml:"author"`
	Title    string  `yaml:"title"`
	ISBN     string  `yaml:"isbn,omitempty"`
	Price    float64 `yaml:"price"`
}

// Value builds the Book's CBOR Map, with fields in the same order the
// JSONPath draft's running example uses.
func (b Book) Value() cborval.Value {
	entries := []cborval.MapEntry{
		{Key: cborval.Text("category"), Value: cborval.Text(b.Category)},
		{Key: cborval.Text("author"), Value: cborval.Text(b.Author)},
		{Key: cborval.Text("title"), Value: cborval.Text(b.Title)},
	}
	if b.ISBN != "" {
		entries = append(entries, cborval.MapEntry{Key: cborval.Text("isbn"), Value: cborval.Text(b.ISBN)})
	}
	entries = append(entries, cborval.MapEntry{Key: cborval.Text("price"), Value: cborval.Float(b.Price)})
	return cborval.Map(entries...)
}

// Bicycle is the bookstore fixture's "bicycle" value.
type Bicycle struct {
	Color string  `yaml:"color"`
	Price float64 `yaml:"price"`
}

// Value builds the Bicycle's CBOR Map.
func (b Bicycle) Value() cborval.Value {
	return cborval.Map(
		cborval.MapEntry{Key: cborval.Text("color"), Value: cborval.Text(b.Color)},
		cborval.MapEntry{Key: cborval.Text("price"), Value: cborval.Float(b.Price)},
	)
}

// Store is the bookstore fixture's "store" value.
type Store struct {
	Books   []Book  `yaml:"book"`
	Bicycle Bicycle `yaml:"bicycle"`
}

// Value builds the Store's CBOR Map.
func (s Store) Value() cborval.Value {
	books := make([]cborval.Value, len(s.Books))
	for i, b := range s.Books {
		books[i] = b.Value()
	}
	return cborval.Map(
		cborval.MapEntry{Key: cborval.Text("book"), Value: cborval.Array(books...)},
		cborval.MapEntry{Key: cborval.Text("bicycle"), Value: s.Bicycle.Value()},
	)
}

// Document is a parsed fixture document: one top-level "store" key.
type Document struct {
	Store Store `yaml:"store"`
}

// Value builds the Document's CBOR Map.
func (d Document) Value() cborval.Value {
	return cborval.Map(cborval.MapEntry{Key: cborval.Text("store"), Value: d.Store.Value()})
}

// Load parses a fixture document from YAML source.
func Load(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Bookstore returns the bookstore fixture shared across this
// codebase's tests, matching the JSONPath draft's running example.
func Bookstore() cborval.Value {
	doc, err := Load([]byte(bookstoreYAML))
	if err != nil {
		panic(err)
	}
	return doc.Value()
}

const bookstoreYAML = `
store:
  book:
    - category: reference
      author: Nigel Rees
      title: Sayings of the Century
      price: 8.95
    - category: fiction
      author: Evelyn Waugh
      title: Sword of Honour
      price: 12.99
    - category: fiction
      author: Herman Melville
      title: Moby Dick
      isbn: 0-553-21311-3
      price: 8.99
    - category: fiction
      author: J. R. R. Tolkien
      title: The Lord of the Rings
      isbn: 0-395-19395-8
      price: 22.99
  bicycle:
    color: red
    price: 399
`
